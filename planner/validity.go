// planner/validity.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import tpmath "github.com/mmp/tangentplan/math"

// polyEdge is one edge of a (planar, projected) flight-zone polygon.
type polyEdge struct {
	P0, P1 Point
}

// obstaclePoint is a (projected, buffered) obstacle circle.
type obstaclePoint struct {
	Center Point
	Radius float32
	Height float32
}

// world bundles the projected, buffered geometry a validity check runs
// against: the flight-zone edges a candidate segment must not cross, and
// the obstacle circles it may fly over above their height.
type world struct {
	flyZoneEdges []polyEdge
	obstacles    []obstaclePoint
}

// validPath implements the validity oracle (spec §4.5): a segment is
// Invalid if it crosses any flight-zone edge, otherwise Flyover(h) where h
// is the tallest obstacle cylinder it horizontally crosses (0, i.e.
// Valid, if it crosses none).
func validPath(a, b Point, w *world) PathValidity {
	for _, e := range w.flyZoneEdges {
		if Intersect(a, b, e.P0, e.P1) {
			return Invalid()
		}
	}

	var maxH float32
	for _, o := range w.obstacles {
		p1, p2, ok := LineCircleIntersect(a, b, o.Center, o.Radius)
		if !ok {
			continue
		}
		// A tangent line grazes its own obstacle's circle at exactly one
		// point (that's what makes it a tangent); chordLen is ~0 there,
		// distinguishing a graze from an actual crossing through the
		// obstacle's footprint, which is the only case that demands
		// clearance altitude.
		const grazeEps = 1e-3
		if tpmath.Distance2f(p1.XY(), p2.XY()) < grazeEps {
			continue
		}
		if o.Height > maxH {
			maxH = o.Height
		}
	}
	return Flyover(maxH)
}
