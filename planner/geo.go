// planner/geo.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import "math"

// EarthRadiusM is the spherical Earth radius, in metres, used by the
// local-tangent-plane projection below.
const EarthRadiusM = 6371000.0

// Projector converts between geodetic Locations and planar Points anchored
// at a fixed origin Location. It holds no mutable state once constructed,
// so the same Projector can be shared across every node/vertex the graph
// builds for a given planner configuration.
type Projector struct {
	origin Location
}

// NewProjector returns a Projector anchored at origin.
func NewProjector(origin Location) Projector {
	return Projector{origin: origin}
}

func (p Projector) Origin() Location { return p.origin }

// ToPoint projects a geodetic Location into the local planar frame:
//
//	x = 2*R*asin(cos(lat)*sin((lon-origin.lon)/2))
//	y = R*(lat-origin.lat)
//
// Altitude passes through unchanged.
func (p Projector) ToPoint(l Location) Point {
	x := 2 * EarthRadiusM * math.Asin(math.Cos(l.Lat)*math.Sin((l.Lon-p.origin.Lon)/2))
	y := EarthRadiusM * (l.Lat - p.origin.Lat)
	return Point{X: float32(x), Y: float32(y), Z: l.Alt}
}

// ToLocation inverts ToPoint: it recovers latitude and longitude from a
// planar Point projected relative to the same origin.
func (p Projector) ToLocation(pt Point) Location {
	lat := p.origin.Lat + float64(pt.Y)/EarthRadiusM
	s := math.Sin(float64(pt.X)/(2*EarthRadiusM)) / math.Cos(lat)
	s = math.Max(-1, math.Min(1, s))
	lon := p.origin.Lon + 2*math.Asin(s)
	return Location{Lat: lat, Lon: lon, Alt: pt.Z}
}

// ToPoints projects every Location in locs, preserving order.
func (p Projector) ToPoints(locs []Location) []Point {
	pts := make([]Point, len(locs))
	for i, l := range locs {
		pts[i] = p.ToPoint(l)
	}
	return pts
}
