// planner/fuzz_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"testing"

	tpmath "github.com/mmp/tangentplan/math"
	tprand "github.com/mmp/tangentplan/rand"
)

// TestFuzzNormalizeAngleRange exercises invariant 4 (spec.md §8) with a
// seeded PCG32 stream of angles well outside [-2*Pi, 2*Pi]: NormalizeAngle
// must still fold every one of them into its documented half-open range.
func TestFuzzNormalizeAngleRange(t *testing.T) {
	r := tprand.New()
	r.Seed(0xC0FFEE)
	for i := 0; i < 5000; i++ {
		theta := r.Float32Range(-1000, 1000)
		if pos := NormalizeAngle(true, theta); pos < 0 || pos >= 2*tpmath.Pi {
			t.Fatalf("NormalizeAngle(true, %v) = %v, want [0, 2pi)", theta, pos)
		}
		if neg := NormalizeAngle(false, theta); neg > 0 || neg <= -2*tpmath.Pi {
			t.Fatalf("NormalizeAngle(false, %v) = %v, want (-2pi, 0]", theta, neg)
		}
	}
}

// TestFuzzGetAdjustPathHoldsInvariants generates randomized-but-reproducible
// obstacle placements along an otherwise-fixed flight leg (spec.md §8) and
// checks invariants 1 and 2 against whatever GetAdjustPath returns: every
// resulting segment must satisfy validPath at an altitude threshold no
// higher than the leg guarantees, and the graph's ring structure must still
// be well-formed once the leg's temporary vertices are pruned back out.
func TestFuzzGetAdjustPathHoldsInvariants(t *testing.T) {
	origin := Location{Lat: 0.5, Lon: 0.5}
	proj := NewProjector(origin)
	toLoc := func(x, y, z float32) Location { return proj.ToLocation(Point{X: x, Y: y, Z: z}) }

	zone := FlyZone{
		toLoc(-2000, -2000, 0),
		toLoc(2000, -2000, 0),
		toLoc(2000, 2000, 0),
		toLoc(-2000, 2000, 0),
	}
	start := toLoc(-1800, 0, 100)
	end := toLoc(1800, 0, 100)

	r := tprand.New()
	r.Seed(20240613)

	for trial := 0; trial < 20; trial++ {
		obstacle := Obstacle{
			Location: toLoc(0, r.Float32Range(-50, 50), 0),
			Radius:   r.Float32Range(50, 120),
			Height:   r.Float32Range(0, 100),
		}

		config := DefaultConfig()
		config.BufferSize = 5
		config.TurningRadius = 50
		config.VertexMergeThreshold = 1

		p := New(config)
		p.Init([]FlyZone{zone}, []Obstacle{obstacle})

		result := GetAdjustPath(p, Plane{Location: start}, []Waypoint[struct{}]{{Location: end, Radius: 50}})

		prev := proj.ToPoint(start)
		for _, wp := range result {
			cur := proj.ToPoint(wp.Location)
			v := validPath(prev, cur, p.world)

			minAlt := prev.Z
			if cur.Z < minAlt {
				minAlt = cur.Z
			}
			if !v.IsValid() {
				t.Fatalf("trial %d (obstacle %+v): segment %+v -> %+v crosses a flight-zone edge", trial, obstacle, prev, cur)
			}
			if v.Threshold() > minAlt {
				t.Fatalf("trial %d (obstacle %+v): segment %+v -> %+v needs flyover altitude %v, leg only clears %v",
					trial, obstacle, prev, cur, v.Threshold(), minAlt)
			}
			prev = cur
		}

		if err := p.graph.CheckRingInvariants(); err != nil {
			t.Fatalf("trial %d: ring invariants violated after GetAdjustPath: %v", trial, err)
		}
	}
}
