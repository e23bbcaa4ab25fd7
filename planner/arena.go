// planner/arena.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import "github.com/mmp/tangentplan/util"

// VertexIndex stably identifies a Vertex across the lifetime of a Graph.
// Rings and connections reference vertices by index rather than by
// pointer so that the graph can be backed by a flat arena instead of a
// pointer-cyclic structure: a ring neighbour and a tangent connection can
// both name the same vertex without either owning it.
type VertexIndex int

const (
	InvalidIndex VertexIndex = 0

	firstVertexIndex VertexIndex = 1
)

// VertexKind tags the role a Vertex plays, per the Design Notes'
// variant-typed-vertex requirement.
type VertexKind int

const (
	KindNormal VertexKind = iota
	KindHeader
	KindSentinel
	KindStart
	KindEnd
)

// NodeIndex stably identifies a Node.
type NodeIndex int

// Node is a circle in the planar frame: a real (buffered) obstacle, a
// virtualised flight-zone corner, or a temporary start/end node created
// for a single search.
type Node struct {
	Index  NodeIndex
	Origin Point
	Radius float32
	Height float32

	// LeftHeader/RightHeader are the sentinel header vertices of this
	// node's two rings: left holds angles in [0,2*Pi), right holds
	// angles in (-2*Pi,0].
	LeftHeader  VertexIndex
	RightHeader VertexIndex

	// Virtual is true for flight-zone corner turning nodes and for the
	// temporary start/end nodes a search creates; it is never true for a
	// real (obstacle) node.
	Virtual bool
}

// Connection is a directed tangent edge from the owning vertex to
// another. Threshold is the flyover altitude the edge requires: 0 when it
// clears every obstacle, otherwise the tallest cylinder it crosses.
type Connection struct {
	To        VertexIndex
	Distance  float32
	Threshold float32
}

// Vertex is a point on a node's circumference participating in the
// search graph.
type Vertex struct {
	Index    VertexIndex
	Node     NodeIndex
	Angle    float32
	Location Point
	Kind     VertexKind
	Sentinel bool

	// A* search fields, meaningful only during/after a search and reset
	// by resetSearchFields before each one.
	GCost  float32
	FCost  float32
	Parent VertexIndex

	Connections []Connection

	// Prev/Next are this vertex's neighbours within its node's ring.
	Prev, Next VertexIndex

	// Temporary is not set by the planner: planLeg tracks the vertices it
	// creates for a single search through the index list linkTangents
	// returns, and hands that list to PruneVertices once the search
	// returns.
	Temporary bool
}

// Graph is the planner's vertex/node arena: the sole owner of every Node
// and Vertex, referenced everywhere else purely by stable index.
type Graph struct {
	nodes    map[NodeIndex]*Node
	vertices map[VertexIndex]*Vertex

	nextNode   NodeIndex
	nextVertex VertexIndex

	heapEntryPool util.ObjectArena[heapEntry]
}

func newGraph() *Graph {
	return &Graph{
		nodes:      make(map[NodeIndex]*Node),
		vertices:   make(map[VertexIndex]*Vertex),
		nextNode:   1,
		nextVertex: firstVertexIndex,
	}
}

func (g *Graph) Vertex(idx VertexIndex) *Vertex { return g.vertices[idx] }
func (g *Graph) Node(idx NodeIndex) *Node       { return g.nodes[idx] }

func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	return out
}

// AddNode creates a new node with two empty (header-only) rings.
func (g *Graph) AddNode(origin Point, radius, height float32, virtual bool) *Node {
	n := &Node{Index: g.nextNode, Origin: origin, Radius: radius, Height: height, Virtual: virtual}
	g.nextNode++

	lh := g.newVertex(n.Index, KindHeader, 0, origin)
	rh := g.newVertex(n.Index, KindHeader, 0, origin)
	lh.Prev, lh.Next = lh.Index, lh.Index
	rh.Prev, rh.Next = rh.Index, rh.Index
	n.LeftHeader, n.RightHeader = lh.Index, rh.Index

	g.nodes[n.Index] = n
	return n
}

func (g *Graph) newVertex(node NodeIndex, kind VertexKind, angle float32, loc Point) *Vertex {
	v := &Vertex{Index: g.nextVertex, Node: node, Kind: kind, Angle: angle, Location: loc}
	g.nextVertex++
	g.vertices[v.Index] = v
	return v
}

func (n *Node) headerFor(angle float32) VertexIndex {
	if angle >= 0 {
		return n.LeftHeader
	}
	return n.RightHeader
}

// traverseRings walks the ring holding angle (left when angle >= 0, right
// otherwise) starting from its header, returning the vertex immediately
// before the insertion point and the one immediately after it. When the
// ring is empty (or angle belongs after the last non-header entry), next
// is the header itself.
func (g *Graph) traverseRings(n *Node, angle float32) (current, next VertexIndex) {
	header := n.headerFor(angle)
	left := angle >= 0

	cur := header
	for {
		nxt := g.vertices[cur].Next
		if nxt == header {
			return cur, nxt
		}
		nv := g.vertices[nxt]
		if left && nv.Angle >= angle {
			return cur, nxt
		}
		if !left && nv.Angle <= angle {
			return cur, nxt
		}
		cur = nxt
	}
}

// GetVertex locates the insertion position for angle on node n's
// circumference, merging into an existing vertex when it falls within
// mergeThreshold (an arc length, in metres) of one, and otherwise
// inserting a fresh vertex at the correct ring position. On a zero-radius
// node every angle lies at arc length 0, so it always merges into an
// existing vertex whatever mergeThreshold is.
func (g *Graph) GetVertex(n *Node, angle float32, loc Point, mergeThreshold float32) (*Vertex, bool) {
	left := angle >= 0
	cur, next := g.traverseRings(n, angle)

	header := n.headerFor(angle)
	for _, cand := range []VertexIndex{cur, next} {
		if cand == header {
			continue
		}
		cv := g.vertices[cand]
		if n.Radius == 0 ||
			ArcLength(left, cv.Angle, angle, n.Radius) < mergeThreshold ||
			ArcLength(left, angle, cv.Angle, n.Radius) < mergeThreshold {
			return cv, false
		}
	}

	v := g.newVertex(n.Index, KindNormal, angle, loc)
	g.linkBetween(cur, next, v.Index)
	return v, true
}

// InsertVertex links v unconditionally between the ring position its
// angle belongs at, without the merge-threshold check GetVertex performs.
func (g *Graph) InsertVertex(n *Node, v *Vertex) {
	cur, next := g.traverseRings(n, v.Angle)
	g.linkBetween(cur, next, v.Index)
}

func (g *Graph) linkBetween(before, after, v VertexIndex) {
	bv, av, nv := g.vertices[before], g.vertices[after], g.vertices[v]
	bv.Next = v
	nv.Prev = before
	nv.Next = after
	av.Prev = v
}

// PruneVertices unlinks every vertex in list from its ring and deletes it
// from the arena. It is used to reclaim per-search temporaries on every
// exit path (success, no-path, deadline).
func (g *Graph) PruneVertices(list []VertexIndex) {
	for _, idx := range list {
		v, ok := g.vertices[idx]
		if !ok {
			continue
		}
		if v.Prev != InvalidIndex && v.Next != InvalidIndex {
			pv, nv := g.vertices[v.Prev], g.vertices[v.Next]
			if pv != nil && nv != nil {
				pv.Next = v.Next
				nv.Prev = v.Prev
			}
		}
		delete(g.vertices, idx)
	}
}

// DeleteNode removes a node and both its header vertices once every other
// vertex it owned has already been pruned by PruneVertices. Used to
// reclaim the temporary start/end nodes a single GetAdjustPath search
// creates.
func (g *Graph) DeleteNode(n *Node) {
	delete(g.vertices, n.LeftHeader)
	delete(g.vertices, n.RightHeader)
	delete(g.nodes, n.Index)
}

// AddConnection records a directed tangent edge from 'from' to 'to'.
func (g *Graph) AddConnection(from, to VertexIndex, distance, threshold float32) {
	v := g.vertices[from]
	v.Connections = append(v.Connections, Connection{To: to, Distance: distance, Threshold: threshold})
}

// CheckRingInvariants verifies, for every node, that each ring forms a
// closed loop through its header with strictly monotonic angles, and that
// prev/next links are mutually consistent. It exists to back the ring
// invariant property tests (spec'd to hold after init, every set_*, and
// every GetAdjustPath).
func (g *Graph) CheckRingInvariants() error {
	for _, n := range g.nodes {
		if err := g.checkRing(n.LeftHeader, true); err != nil {
			return err
		}
		if err := g.checkRing(n.RightHeader, false); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) checkRing(header VertexIndex, left bool) error {
	prevAngle := float32(0)
	haveLast := false
	cur := header
	for {
		v := g.vertices[cur]
		if v.Kind != KindHeader {
			if haveLast {
				if left && v.Angle < prevAngle {
					return ringOrderError(left)
				}
				if !left && v.Angle > prevAngle {
					return ringOrderError(left)
				}
			}
			prevAngle = v.Angle
			haveLast = true
		}
		nxt := g.vertices[v.Next]
		if nxt.Prev != cur {
			return errRingLinkMismatch
		}
		cur = v.Next
		if cur == header {
			return nil
		}
	}
}

func ringOrderError(left bool) error {
	if left {
		return errLeftRingOrder
	}
	return errRightRingOrder
}

var (
	errLeftRingOrder    = ringError("left ring angles not strictly increasing")
	errRightRingOrder   = ringError("right ring angles not strictly decreasing")
	errRingLinkMismatch = ringError("ring prev/next links are inconsistent")
)

type ringError string

func (e ringError) Error() string { return string(e) }
