// planner/planner.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"fmt"
	"time"

	"github.com/mmp/tangentplan/log"
	"github.com/mmp/tangentplan/util"
)

// Planner is the tangent-A* flight path planner's external interface: a
// caller constructs one with New, hands it a data model via Init, and then
// repeatedly calls GetAdjustPath to route a plane's waypoint list around
// the configured obstacles without leaving the configured flight zones.
//
// A Planner is not safe for concurrent use; a caller running several
// planes through the same configuration should hold its own lock or run
// one Planner per goroutine.
type Planner struct {
	config Config
	lg     *log.Logger

	origin    Location
	flyZones  []FlyZone
	obstacles []Obstacle

	projector Projector
	graph     *Graph
	world     *world

	obstacleNodes []*Node
	cornerNodes   []*Node
	allNodes      []*Node
}

// New returns a Planner configured with a (deep-copied) Config. Init must
// be called before GetAdjustPath will do anything useful.
func New(config Config) *Planner {
	return &Planner{config: config.Clone()}
}

// SetLogger attaches a structured logger; nil (the default) is fine, since
// every *log.Logger method tolerates a nil receiver.
func (p *Planner) SetLogger(lg *log.Logger) {
	p.lg = lg
}

// Init installs the flight zones and obstacles the planner will route
// around and builds the initial search graph. It panics, joining every
// violation it finds, if the data model fails validation: per the
// propagation policy, preconditions are checked once here and fail hard,
// while every later per-search failure degrades gracefully instead.
func (p *Planner) Init(flyzones []FlyZone, obstacles []Obstacle) {
	origin := deriveOrigin(flyzones)
	if err := validateFlyZones(flyzones, origin); err != nil {
		panic(err)
	}
	if err := validateObstacles(obstacles); err != nil {
		panic(err)
	}

	p.origin = origin
	p.flyZones = util.MapSlice(flyzones, func(z FlyZone) FlyZone { return util.DuplicateSlice(z) })
	p.obstacles = util.DuplicateSlice(obstacles)
	p.rebuild()

	p.lg.Infof("planner initialized: %d flight zone(s), %d obstacle(s), %d graph node(s), race detector=%v",
		len(p.flyZones), len(p.obstacles), len(p.allNodes), log.RaceEnabled)
}

// SetConfig replaces the tunable parameters and rebuilds the graph, since
// BufferSize, TurningRadius and VirtualizeFlyZone all affect its shape.
func (p *Planner) SetConfig(config Config) {
	p.config = config.Clone()
	p.rebuild()
}

// SetFlyZone replaces the flight zones, re-validates them, and rebuilds.
func (p *Planner) SetFlyZone(flyzones []FlyZone) {
	origin := deriveOrigin(flyzones)
	if err := validateFlyZones(flyzones, origin); err != nil {
		panic(err)
	}
	p.origin = origin
	p.flyZones = util.MapSlice(flyzones, func(z FlyZone) FlyZone { return util.DuplicateSlice(z) })
	p.rebuild()
}

// SetObstacles replaces the obstacles, re-validates them, and rebuilds.
func (p *Planner) SetObstacles(obstacles []Obstacle) {
	if err := validateObstacles(obstacles); err != nil {
		panic(err)
	}
	p.obstacles = util.DuplicateSlice(obstacles)
	p.rebuild()
}

// deriveOrigin anchors the local-tangent-plane projection at the first
// vertex of the first configured flight zone, so that every projected
// coordinate in a build stays small regardless of where on the globe the
// zones sit. It is recomputed on every SetFlyZone, which is harmless since
// the whole graph is rebuilt from the new projection in the same call.
func deriveOrigin(zones []FlyZone) Location {
	if len(zones) > 0 && len(zones[0]) > 0 {
		return zones[0][0]
	}
	return Location{}
}

func validateFlyZones(zones []FlyZone, origin Location) error {
	var e util.ErrorLogger
	e.Push("flight zones")
	defer e.Pop()

	if len(zones) == 0 {
		e.ErrorString("at least one flight zone is required")
		return e.Errors()
	}

	proj := NewProjector(origin)
	for i, z := range zones {
		e.Push(fmt.Sprintf("zone %d", i))
		if len(z) < 3 {
			e.ErrorString("at least 3 vertices required, got %d", len(z))
		} else {
			pts := proj.ToPoints(z)
			if _, degenerate := PolygonOrientation(pts); degenerate {
				e.ErrorString("vertices are collinear")
			}
			if selfIntersects(pts) {
				e.ErrorString("polygon edges self-intersect")
			}
		}
		e.Pop()
	}
	return e.Errors()
}

// selfIntersects reports whether any two non-adjacent edges of the
// (projected, closed) polygon pts cross.
func selfIntersects(pts []Point) bool {
	n := len(pts)
	for i := 0; i < n; i++ {
		a0, a1 := pts[i], pts[(i+1)%n]
		for j := i + 1; j < n; j++ {
			if j == i || j == (i+1)%n || (j+1)%n == i {
				continue // shares a vertex with edge i
			}
			b0, b1 := pts[j], pts[(j+1)%n]
			if Intersect(a0, a1, b0, b1) {
				return true
			}
		}
	}
	return false
}

func validateObstacles(obstacles []Obstacle) error {
	var e util.ErrorLogger
	e.Push("obstacles")
	defer e.Pop()

	for i, o := range obstacles {
		e.Push(fmt.Sprintf("obstacle %d", i))
		if o.Radius <= 0 {
			e.ErrorString("radius must be positive, got %v", o.Radius)
		}
		if o.Height < 0 {
			e.ErrorString("height must not be negative, got %v", o.Height)
		}
		e.Pop()
	}
	return e.Errors()
}

// rebuild projects the current flight zones and obstacles relative to
// origin and builds a fresh search graph: one node per (buffered)
// obstacle, one per virtualised flight-zone corner (when enabled), every
// pairwise tangent between them, and the flight-zone sentinels on every
// real obstacle node they chord.
func (p *Planner) rebuild() {
	p.projector = NewProjector(p.origin)

	w := &world{}
	for _, z := range p.flyZones {
		pts := p.projector.ToPoints(z)
		n := len(pts)
		for i := 0; i < n; i++ {
			w.flyZoneEdges = append(w.flyZoneEdges, polyEdge{P0: pts[i], P1: pts[(i+1)%n]})
		}
	}
	for _, o := range p.obstacles {
		w.obstacles = append(w.obstacles, obstaclePoint{
			Center: p.projector.ToPoint(o.Location),
			Radius: o.Radius + p.config.BufferSize,
			Height: o.Height,
		})
	}

	g := newGraph()

	var obstacleNodes []*Node
	for _, o := range p.obstacles {
		pt := p.projector.ToPoint(o.Location)
		obstacleNodes = append(obstacleNodes, g.AddNode(pt, o.Radius+p.config.BufferSize, o.Height, false))
	}

	var cornerNodes []*Node
	if p.config.VirtualizeFlyZone {
		for _, z := range p.flyZones {
			pts := p.projector.ToPoints(z)
			cornerNodes = append(cornerNodes, virtualizeFlyZone(g, pts, p.config.TurningRadius)...)
		}
	}

	all := make([]*Node, 0, len(obstacleNodes)+len(cornerNodes))
	all = append(all, obstacleNodes...)
	all = append(all, cornerNodes...)
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			linkTangents(g, all[i], all[j], w, p.config.VertexMergeThreshold)
		}
	}
	insertFlyZoneSentinels(g, obstacleNodes, w.flyZoneEdges)

	p.graph = g
	p.world = w
	p.obstacleNodes = obstacleNodes
	p.cornerNodes = cornerNodes
	p.allNodes = all

	if err := g.CheckRingInvariants(); err != nil {
		// A build-time invariant violation is our own bug, not a bad
		// caller input; surface it loudly rather than silently planning
		// against a corrupt graph.
		panic(err)
	}
}

// GetAdjustPath routes plane's current position through waypoints,
// inserting tangent-A* intermediate points around every configured
// obstacle and flight-zone boundary between each consecutive pair. It
// never panics: a leg whose search fails (no feasible path, or the
// configured MaxProcessTime elapses) is left unchanged, so the caller
// always gets back at least its original waypoint list.
//
// GetAdjustPath is a free function rather than a method because a method
// cannot introduce the payload type parameter T that Waypoint carries.
func GetAdjustPath[T any](p *Planner, plane Plane, waypoints []Waypoint[T]) []Waypoint[T] {
	if p.graph == nil || len(waypoints) == 0 {
		return waypoints
	}

	var deadline time.Time
	if p.config.MaxProcessTime > 0 {
		deadline = time.Now().Add(p.config.MaxProcessTime)
	}

	out := make([]Waypoint[T], 0, len(waypoints))
	prev := plane.Location
	for _, wp := range waypoints {
		if pts, ok := p.planLeg(prev, wp.Location, deadline); ok {
			for _, rp := range pts {
				out = append(out, Waypoint[T]{
					Location: p.projector.ToLocation(rp.Location),
					Radius:   rp.Radius,
				})
			}
		}
		out = append(out, wp)
		prev = wp.Location
	}
	return out
}

// planLeg runs a single tangent-A* search between two geodetic locations,
// temporarily extending the permanent graph with a zero-radius node at
// each end (a zero-radius node's tangents to a positive-radius node
// reduce exactly to the classic point-to-circle tangent construction, so
// no separate code path is needed for the start/end case). Every
// temporary vertex it allocates, on the temporary nodes or merged onto
// existing ones, is pruned before returning.
func (p *Planner) planLeg(start, end Location, deadline time.Time) ([]reconstructedPoint, bool) {
	startPt := p.projector.ToPoint(start)
	endPt := p.projector.ToPoint(end)

	startNode := p.graph.AddNode(startPt, 0, start.Alt, true)
	endNode := p.graph.AddNode(endPt, 0, end.Alt, true)

	var temp []VertexIndex
	for _, n := range p.allNodes {
		temp = append(temp, linkTangents(p.graph, startNode, n, p.world, p.config.VertexMergeThreshold)...)
		temp = append(temp, linkTangents(p.graph, n, endNode, p.world, p.config.VertexMergeThreshold)...)
	}
	temp = append(temp, linkTangents(p.graph, startNode, endNode, p.world, p.config.VertexMergeThreshold)...)

	defer func() {
		p.graph.PruneVertices(temp)
		p.graph.DeleteNode(startNode)
		p.graph.DeleteNode(endNode)
	}()

	startIdx := soleVertex(p.graph, startNode)
	endIdx := soleVertex(p.graph, endNode)
	if startIdx == InvalidIndex || endIdx == InvalidIndex {
		p.lg.Warn("leg has no tangent candidates at all", "start", start, "end", end)
		return nil, false
	}
	p.graph.Vertex(startIdx).Kind = KindStart
	p.graph.Vertex(endIdx).Kind = KindEnd

	minAlt := start.Alt
	if end.Alt < minAlt {
		minAlt = end.Alt
	}

	result := astar(p.graph, startIdx, endIdx, minAlt, deadline)
	if !result.found {
		return nil, false
	}
	return reconstructPath(p.graph, result.path, start.Alt, end.Alt), true
}

// DebugSummary returns a deterministic-order snapshot of the built graph's
// size, using util.OrderedMap (rather than a plain map) so that repeated
// runs against the same input print byte-identical JSON regardless of Go's
// randomized map iteration order.
func (p *Planner) DebugSummary() *util.OrderedMap {
	om := util.NewOrderedMap()
	om.Set("flyZones", len(p.flyZones))
	om.Set("obstacles", len(p.obstacles))
	om.Set("obstacleNodes", len(p.obstacleNodes))
	om.Set("cornerNodes", len(p.cornerNodes))
	om.Set("graphNodes", len(p.allNodes))
	return om
}

// soleVertex returns the one non-header vertex a zero-radius temporary
// node accumulates (every tangent onto it merges at arc-length 0,
// regardless of mergeThreshold), or InvalidIndex if the node never linked
// to anything.
func soleVertex(g *Graph, n *Node) VertexIndex {
	if lh := g.Vertex(n.LeftHeader); lh.Next != n.LeftHeader {
		return lh.Next
	}
	if rh := g.Vertex(n.RightHeader); rh.Next != n.RightHeader {
		return rh.Next
	}
	return InvalidIndex
}
