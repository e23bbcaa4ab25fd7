// planner/virtualizer.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import tpmath "github.com/mmp/tangentplan/math"

// virtualizeFlyZone inserts a virtual turning-radius node at each
// sufficiently sharp corner of a (projected) flight-zone polygon, per
// spec §4.3. Vertices are walked in clockwise order regardless of the
// polygon's stored winding.
func virtualizeFlyZone(g *Graph, zone []Point, turningRadius float32) []*Node {
	if len(zone) < 3 || turningRadius <= 0 {
		return nil
	}

	clockwise, degenerate := PolygonOrientation(zone)
	if degenerate {
		return nil
	}
	pts := zone
	if !clockwise {
		pts = make([]Point, len(zone))
		for i, p := range zone {
			pts[len(zone)-1-i] = p
		}
	}

	n := len(pts)
	var nodes []*Node
	for i := 0; i < n; i++ {
		a := pts[(i-1+n)%n]
		v := pts[i]
		b := pts[(i+1)%n]

		corner, ok := cornerNode(a, v, b, turningRadius)
		if !ok {
			continue
		}
		nodes = append(nodes, g.AddNode(corner, turningRadius, 0, true))
	}
	return nodes
}

// cornerNode computes the virtual turning-node centre at polygon vertex v
// (with clockwise-order neighbours a, b), or ok=false if the corner is
// degenerate (collinear) or too tight for the turning radius to fit
// within either adjacent edge.
func cornerNode(a, v, b Point, turningRadius float32) (Point, bool) {
	vaXY := tpmath.Normalize2f(tpmath.Sub2f(a.XY(), v.XY()))
	vbXY := tpmath.Normalize2f(tpmath.Sub2f(b.XY(), v.XY()))

	sum := tpmath.Add2f(vaXY, vbXY)
	sumLen := tpmath.Length2f(sum)
	if sumLen < 1e-5 {
		// The two edges are (nearly) collinear through v: no well-defined
		// bisector.
		return Point{}, false
	}
	bisector := tpmath.Scale2f(sum, 1/sumLen)

	cosHalf := tpmath.Clamp(tpmath.Dot(vaXY, bisector), -1, 1)
	halfAngle := tpmath.SafeACos(cosHalf)
	if halfAngle < 1e-4 {
		return Point{}, false
	}

	cross := vaXY[0]*vbXY[1] - vaXY[1]*vbXY[0]
	// Walking the polygon clockwise, a convex corner turns the direction
	// of travel clockwise at v; with va and vb both pointing away from v,
	// cross(va,vb) > 0 signals that turn in standard (x east, y north)
	// axes. A corner where the turn goes the other way is reflex (an
	// outward notch) and gets the simpler d = turning_radius placement
	// spec'd for that case.
	reflex := cross < 0

	var d float32
	if reflex {
		d = turningRadius
	} else {
		d = turningRadius / tpmath.Sin(halfAngle)
	}

	edgeA := tpmath.Distance2f(a.XY(), v.XY())
	edgeB := tpmath.Distance2f(b.XY(), v.XY())
	if d > edgeA || d > edgeB {
		return Point{}, false
	}

	center := tpmath.Add2f(v.XY(), tpmath.Scale2f(bisector, d))
	return Point{X: center[0], Y: center[1], Z: v.Z}, true
}

// insertFlyZoneSentinels marks, on every real obstacle node whose circle
// chords a flight-zone edge, the two chord-intersection angles as
// sentinel vertices: ring-hugging must not cross them, since doing so
// would carry the path outside the flight zone (spec §4.3).
func insertFlyZoneSentinels(g *Graph, nodes []*Node, edges []polyEdge) {
	for _, n := range nodes {
		if n.Virtual {
			continue
		}
		for _, e := range edges {
			p1, p2, ok := LineCircleIntersect(e.P0, e.P1, n.Origin, n.Radius)
			if !ok {
				continue
			}
			for _, p := range [2]Point{p1, p2} {
				angle := tpmath.NormalizeAngle(tpmath.Atan2(p.Y-n.Origin.Y, p.X-n.Origin.X))
				sv := g.newVertex(n.Index, KindSentinel, angle, angleLocation(n, angle))
				sv.Sentinel = true
				g.InsertVertex(n, sv)
			}
		}
	}
}
