// planner/astar_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import "testing"

// TestGetAdjustPathDetoursAroundObstacle builds a square flight zone with a
// single central obstacle and asks for a straight leg that passes directly
// over the obstacle's center at an altitude below its height. The direct
// segment's Flyover threshold (the obstacle height) then exceeds the leg's
// minimum altitude, so astar must reject it and route around the
// obstacle's tangent/perimeter vertices instead.
func TestGetAdjustPathDetoursAroundObstacle(t *testing.T) {
	origin := Location{Lat: 0.5, Lon: 0.5}
	proj := NewProjector(origin)

	toLoc := func(x, y, z float32) Location {
		return proj.ToLocation(Point{X: x, Y: y, Z: z})
	}

	zone := FlyZone{
		toLoc(-1000, -1000, 0),
		toLoc(1000, -1000, 0),
		toLoc(1000, 1000, 0),
		toLoc(-1000, 1000, 0),
	}
	obstacle := Obstacle{Location: toLoc(0, 0, 0), Radius: 100, Height: 50}

	config := DefaultConfig()
	config.BufferSize = 5
	config.TurningRadius = 50
	config.VertexMergeThreshold = 1

	p := New(config)
	p.Init([]FlyZone{zone}, []Obstacle{obstacle})

	start := toLoc(-900, 0, 10)
	end := toLoc(900, 0, 10)

	result := GetAdjustPath(p, Plane{Location: start}, []Waypoint[struct{}]{{Location: end, Radius: 50}})

	if len(result) <= 1 {
		t.Fatalf("got %d waypoints, want a detour inserted ahead of the destination", len(result))
	}
	last := result[len(result)-1]
	if last.Location != end {
		t.Errorf("final waypoint location = %+v, want unchanged destination %+v", last.Location, end)
	}
	if last.Radius != 50 {
		t.Errorf("final waypoint radius = %v, want 50 (unchanged)", last.Radius)
	}
}

// TestGetAdjustPathNoObstacleLeavesLegUntouched checks the other side of the
// same propagation policy: a leg with nothing in its way gets no
// intermediate waypoints at all.
func TestGetAdjustPathNoObstacleLeavesLegUntouched(t *testing.T) {
	origin := Location{Lat: 0.5, Lon: 0.5}
	proj := NewProjector(origin)
	toLoc := func(x, y, z float32) Location { return proj.ToLocation(Point{X: x, Y: y, Z: z}) }

	zone := FlyZone{
		toLoc(-1000, -1000, 0),
		toLoc(1000, -1000, 0),
		toLoc(1000, 1000, 0),
		toLoc(-1000, 1000, 0),
	}
	obstacle := Obstacle{Location: toLoc(0, 800, 0), Radius: 50, Height: 50}

	config := DefaultConfig()
	p := New(config)
	p.Init([]FlyZone{zone}, []Obstacle{obstacle})

	start := toLoc(-900, -900, 10)
	end := toLoc(-900, -700, 10)

	result := GetAdjustPath(p, Plane{Location: start}, []Waypoint[struct{}]{{Location: end, Radius: 10}})
	if len(result) != 1 {
		t.Errorf("got %d waypoints for a clear leg, want exactly the original 1", len(result))
	}
}
