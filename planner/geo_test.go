// planner/geo_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"math"
	"testing"
)

func TestProjectorOriginIsZero(t *testing.T) {
	origin := Location{Lat: 0.7, Lon: -1.2, Alt: 100}
	proj := NewProjector(origin)
	pt := proj.ToPoint(origin)
	if pt.X != 0 || pt.Y != 0 {
		t.Errorf("projecting the origin gave %+v, want X=Y=0", pt)
	}
	if pt.Z != origin.Alt {
		t.Errorf("altitude got %v, want %v", pt.Z, origin.Alt)
	}
}

func TestProjectorRoundTrip(t *testing.T) {
	origin := Location{Lat: 0.7, Lon: -1.2, Alt: 100}
	proj := NewProjector(origin)

	locs := []Location{
		origin,
		{Lat: 0.7005, Lon: -1.1990, Alt: 500},
		{Lat: 0.6990, Lon: -1.2010, Alt: 0},
		{Lat: 0.70002, Lon: -1.20003, Alt: -25},
	}
	for _, l := range locs {
		pt := proj.ToPoint(l)
		back := proj.ToLocation(pt)
		if math.Abs(back.Lat-l.Lat) > 1e-9 {
			t.Errorf("lat round-trip: got %v, want %v", back.Lat, l.Lat)
		}
		if math.Abs(back.Lon-l.Lon) > 1e-9 {
			t.Errorf("lon round-trip: got %v, want %v", back.Lon, l.Lon)
		}
		if back.Alt != l.Alt {
			t.Errorf("alt round-trip: got %v, want %v", back.Alt, l.Alt)
		}
	}
}

func TestProjectorToPoints(t *testing.T) {
	origin := Location{Lat: 0.1, Lon: 0.2}
	proj := NewProjector(origin)
	locs := []Location{origin, {Lat: 0.1001, Lon: 0.2001}}
	pts := proj.ToPoints(locs)
	if len(pts) != len(locs) {
		t.Fatalf("got %d points, want %d", len(pts), len(locs))
	}
	if pts[0].X != 0 || pts[0].Y != 0 {
		t.Errorf("first point should be the origin, got %+v", pts[0])
	}
}
