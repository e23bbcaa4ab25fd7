// planner/virtualizer_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"testing"

	tpmath "github.com/mmp/tangentplan/math"
)

// TestVirtualizeFlyZoneSquare checks that a turning-radius node is placed
// at each convex corner of a square, on the bisector, at the distance
// turning_radius/sin(half_angle) the 90-degree case spec's (half_angle is
// 45 degrees here, so the offset is turningRadius*sqrt(2)).
func TestVirtualizeFlyZoneSquare(t *testing.T) {
	zone := []Point{
		{X: 0, Y: 0},
		{X: 100, Y: 0},
		{X: 100, Y: 100},
		{X: 0, Y: 100},
	}
	turningRadius := float32(10)

	g := newGraph()
	nodes := virtualizeFlyZone(g, zone, turningRadius)
	if len(nodes) != 4 {
		t.Fatalf("got %d corner nodes, want 4", len(nodes))
	}

	// Each corner node should sit turningRadius in from both edges meeting
	// at its corner, i.e. at (10,10), (90,10), (90,90) and (10,90).
	want := []Point{
		{X: 10, Y: 10},
		{X: 90, Y: 10},
		{X: 90, Y: 90},
		{X: 10, Y: 90},
	}
	const eps = 1e-2
	used := make([]bool, len(want))
	for _, n := range nodes {
		if n.Radius != turningRadius {
			t.Errorf("corner node radius = %v, want %v", n.Radius, turningRadius)
		}
		matched := false
		for i, w := range want {
			if used[i] {
				continue
			}
			if tpmath.Abs(n.Origin.X-w.X) < eps && tpmath.Abs(n.Origin.Y-w.Y) < eps {
				used[i] = true
				matched = true
				break
			}
		}
		if !matched {
			t.Errorf("corner node %+v did not match any of the expected corners %+v", n.Origin, want)
		}
	}
}

func TestVirtualizeFlyZoneDegenerateSkipped(t *testing.T) {
	// A straight-through corner, where consecutive edges are collinear
	// through the middle vertex, has no well-defined bisector and should be
	// skipped.
	zone := []Point{
		{X: 0, Y: 0},
		{X: 50, Y: 0},
		{X: 100, Y: 0},
		{X: 50, Y: 100},
	}
	g := newGraph()
	nodes := virtualizeFlyZone(g, zone, 10)
	// The vertex straddling the collinear run has no well-defined
	// bisector and must be skipped, so fewer nodes come out than the
	// zone has vertices.
	if len(nodes) >= len(zone) {
		t.Errorf("got %d corner nodes from a %d-vertex zone with a collinear run, want fewer", len(nodes), len(zone))
	}
}

func TestVirtualizeFlyZoneTooSmall(t *testing.T) {
	// turning radius larger than the polygon's own edges can't fit.
	zone := []Point{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
	}
	g := newGraph()
	nodes := virtualizeFlyZone(g, zone, 1000)
	if len(nodes) != 0 {
		t.Errorf("got %d corner nodes for an oversized turning radius, want 0", len(nodes))
	}
}
