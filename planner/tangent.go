// planner/tangent.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import tpmath "github.com/mmp/tangentplan/math"

// tangentPair is one candidate tangent line between two nodes: the angle
// of its touch point on each node's circumference.
type tangentPair struct {
	angle1, angle2 float32
}

// tangentCandidates is the full set of candidate edges (and, when the
// circles overlap, sentinel markers) the generator proposes between two
// nodes, per spec §4.4.
type tangentCandidates struct {
	outer, inner []tangentPair
	// sentinels1/sentinels2 hold the angles of obstacle-sentinel points
	// on node 1 and node 2 respectively, populated only when the circles
	// overlap or one contains the other (d <= r1+r2).
	sentinels1, sentinels2 []float32
}

// generateTangents enumerates the outer/inner tangent candidates (or, if
// the circles overlap, the obstacle sentinel angles) between two nodes at
// centre-to-centre distance d.
func generateTangents(n1, n2 *Node) tangentCandidates {
	c1, c2 := n1.Origin, n2.Origin
	r1, r2 := n1.Radius, n2.Radius
	d := tpmath.Distance2f(c1.XY(), c2.XY())
	if d == 0 {
		return tangentCandidates{}
	}

	theta := tpmath.Atan2(c2.Y-c1.Y, c2.X-c1.X)
	theta1 := tpmath.NormalizeAngle(theta)
	theta2 := tpmath.NormalizeAngle(theta + tpmath.Pi)

	var tc tangentCandidates

	// Outer tangents always exist.
	ratio := tpmath.Clamp(tpmath.Abs(r1-r2)/d, -1, 1)
	gamma2 := tpmath.SafeACos(ratio)
	if r2 > r1 {
		gamma2 = tpmath.Pi - gamma2
	}
	tc.outer = []tangentPair{
		pair(theta1+gamma2, theta2+gamma2),
		pair(theta1-gamma2, theta2-gamma2),
	}

	if d <= r1+r2 {
		// Circles overlap or one contains the other: no inner tangents;
		// mark the chord-intersection angles as obstacle sentinels
		// instead.
		if r1 > 0 && r2 > 0 && d > 0 {
			thetaS := tpmath.SafeACos(tpmath.Clamp((r1*r1+d*d-r2*r2)/(2*r1*d), -1, 1))
			phiS := tpmath.SafeACos(tpmath.Clamp((r2*r2+d*d-r1*r1)/(2*r2*d), -1, 1))
			tc.sentinels1 = []float32{tpmath.NormalizeAngle(theta1 + thetaS), tpmath.NormalizeAngle(theta1 - thetaS)}
			tc.sentinels2 = []float32{tpmath.NormalizeAngle(theta2 - phiS), tpmath.NormalizeAngle(theta2 + phiS)}
		}
		return tc
	}

	// Inner tangents, when the circles are far enough apart and both
	// radii are positive (a zero-radius node, e.g. a temporary start/end
	// point, has no "crossing" tangent of its own).
	if r1 > 0 && r2 > 0 {
		gamma1 := tpmath.SafeACos(tpmath.Clamp((r1+r2)/d, -1, 1))
		tc.inner = []tangentPair{
			pair(theta1+gamma1, theta2-gamma1),
			pair(theta1-gamma1, theta2+gamma1),
		}
	}

	return tc
}

// pair builds a tangentPair with both angles canonicalized into [0,2*Pi):
// every angle this package stores on a ring lives in that range, so the
// right ring ((-2*Pi,0]) a Node's Vertex data model supports stays
// structurally available but is never populated in practice.
func pair(angle1, angle2 float32) tangentPair {
	return tangentPair{angle1: tpmath.NormalizeAngle(angle1), angle2: tpmath.NormalizeAngle(angle2)}
}

func angleLocation(n *Node, angle float32) Point {
	return Point{
		X: n.Origin.X + n.Radius*tpmath.Cos(angle),
		Y: n.Origin.Y + n.Radius*tpmath.Sin(angle),
		Z: n.Origin.Z,
	}
}

// linkTangents runs every candidate tangent between n1 and n2 through the
// validity oracle, skips Invalid ones, and inserts the rest as reciprocal
// edges between merged ring vertices. It also inserts any obstacle
// sentinels the generator produced. It returns the index of every vertex
// it newly allocated (as opposed to merged into); a caller linking a
// transient search node into the permanent graph uses this to know
// exactly which vertices on the OTHER node must be pruned afterward.
func linkTangents(g *Graph, n1, n2 *Node, w *world, mergeThreshold float32) []VertexIndex {
	tc := generateTangents(n1, n2)

	var created []VertexIndex
	link := func(pairs []tangentPair) {
		for _, tp := range pairs {
			p1 := angleLocation(n1, tp.angle1)
			p2 := angleLocation(n2, tp.angle2)
			validity := validPath(p1, p2, w)
			if !validity.IsValid() {
				continue
			}

			v1, new1 := g.GetVertex(n1, tp.angle1, p1, mergeThreshold)
			v2, new2 := g.GetVertex(n2, tp.angle2, p2, mergeThreshold)
			if new1 {
				created = append(created, v1.Index)
			}
			if new2 {
				created = append(created, v2.Index)
			}
			dist := tpmath.Distance2f(p1.XY(), p2.XY())
			g.AddConnection(v1.Index, v2.Index, dist, validity.Threshold())
			g.AddConnection(v2.Index, v1.Index, dist, validity.Threshold())
		}
	}
	link(tc.outer)
	link(tc.inner)

	for _, a := range tc.sentinels1 {
		sv := g.newVertex(n1.Index, KindSentinel, a, angleLocation(n1, a))
		sv.Sentinel = true
		g.InsertVertex(n1, sv)
		created = append(created, sv.Index)
	}
	for _, a := range tc.sentinels2 {
		sv := g.newVertex(n2.Index, KindSentinel, a, angleLocation(n2, a))
		sv.Sentinel = true
		g.InsertVertex(n2, sv)
		created = append(created, sv.Index)
	}
	return created
}
