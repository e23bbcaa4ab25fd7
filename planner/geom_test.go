// planner/geom_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"testing"

	tpmath "github.com/mmp/tangentplan/math"
)

func TestIntersectCrossing(t *testing.T) {
	a, b := Point{X: 0, Y: 0}, Point{X: 10, Y: 10}
	c, d := Point{X: 0, Y: 10}, Point{X: 10, Y: 0}
	if !Intersect(a, b, c, d) {
		t.Errorf("expected crossing segments to intersect")
	}
}

func TestIntersectDisjoint(t *testing.T) {
	a, b := Point{X: 0, Y: 0}, Point{X: 1, Y: 0}
	c, d := Point{X: 0, Y: 5}, Point{X: 1, Y: 5}
	if Intersect(a, b, c, d) {
		t.Errorf("expected parallel, disjoint segments not to intersect")
	}
}

func TestIntersectCollinearOverlap(t *testing.T) {
	a, b := Point{X: 0, Y: 0}, Point{X: 10, Y: 0}
	c, d := Point{X: 5, Y: 0}, Point{X: 15, Y: 0}
	if !Intersect(a, b, c, d) {
		t.Errorf("expected collinear overlapping segments to intersect")
	}
}

// TestLineCircleIntersectAgreement exercises the Open Question requiring
// the two independent line-circle formulations to agree to within 1e-3 m
// on a segment that clearly crosses the circle.
func TestLineCircleIntersectAgreement(t *testing.T) {
	a, b := Point{X: -10, Y: 0}, Point{X: 10, Y: 0}
	c := Point{X: 0, Y: 0}
	radius := float32(5)

	p1, p2, ok := LineCircleIntersect(a, b, c, radius)
	if !ok {
		t.Fatalf("LineCircleIntersect found no crossing")
	}
	q1, q2, ok := CircularIntersect(a, b, c, radius)
	if !ok {
		t.Fatalf("CircularIntersect found no crossing")
	}

	near := func(x, y Point) bool {
		return tpmath.Distance2f(x.XY(), y.XY()) < 1e-3
	}
	agree := (near(p1, q1) && near(p2, q2)) || (near(p1, q2) && near(p2, q1))
	if !agree {
		t.Errorf("formulations disagree: perpendicular (%+v,%+v) vs circular (%+v,%+v)", p1, p2, q1, q2)
	}
}

func TestLineCircleIntersectMiss(t *testing.T) {
	a, b := Point{X: -10, Y: 100}, Point{X: 10, Y: 100}
	c := Point{X: 0, Y: 0}
	if _, _, ok := LineCircleIntersect(a, b, c, 5); ok {
		t.Errorf("expected a line far from the circle not to intersect")
	}
}

func TestPolygonOrientation(t *testing.T) {
	ccw := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if cw, degenerate := PolygonOrientation(ccw); cw || degenerate {
		t.Errorf("expected a counter-clockwise square, got clockwise=%v degenerate=%v", cw, degenerate)
	}

	cw := []Point{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
	if clockwise, degenerate := PolygonOrientation(cw); !clockwise || degenerate {
		t.Errorf("expected a clockwise square, got clockwise=%v degenerate=%v", clockwise, degenerate)
	}

	collinear := []Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}
	if _, degenerate := PolygonOrientation(collinear); !degenerate {
		t.Errorf("expected collinear points to be reported degenerate")
	}
}

func TestNormalizeAngleRange(t *testing.T) {
	angles := []float32{0, 0.1, tpmath.Pi, 2 * tpmath.Pi, -0.1, -tpmath.Pi, 7, -7}
	for _, a := range angles {
		pos := NormalizeAngle(true, a)
		if pos < 0 || pos >= 2*tpmath.Pi {
			t.Errorf("NormalizeAngle(true, %v) = %v, want [0, 2*Pi)", a, pos)
		}
		neg := NormalizeAngle(false, a)
		if neg > 0 || neg <= -2*tpmath.Pi {
			t.Errorf("NormalizeAngle(false, %v) = %v, want (-2*Pi, 0]", a, neg)
		}
	}
}
