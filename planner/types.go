// planner/types.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

// Location is a geodetic position: latitude and longitude in radians,
// altitude in metres.
type Location struct {
	Lat, Lon float64
	Alt      float32
}

// Point is a planar position relative to a projector's origin: X is
// metres east, Y metres north, Z the passed-through altitude in metres.
type Point struct {
	X, Y, Z float32
}

func (p Point) XY() [2]float32 { return [2]float32{p.X, p.Y} }

// Obstacle is a right circular cylinder threatening the path: a ground
// position, a horizontal radius and a height, both in metres.
type Obstacle struct {
	Location Location
	Radius   float32
	Height   float32
}

// FlyZone is a simple polygon of at least three geodetic vertices; vertex
// order may be clockwise or counter-clockwise; PolygonOrientation detects
// the sense. A plane must stay within the union of all configured zones.
type FlyZone []Location

// Waypoint is a point the plane should pass near, with a tolerance radius
// and an arbitrary caller payload threaded through unchanged.
type Waypoint[T any] struct {
	Location Location
	Radius   float32
	Payload  T
}

// Plane is the aircraft's current state. Only Location is required; the
// rest describe kinematics this planner does not model and are carried
// for a caller's own bookkeeping.
type Plane struct {
	Location    Location
	Yaw         *float32
	Pitch       *float32
	Roll        *float32
	Airspeed    *float32
	Groundspeed *float32
	Wind        *Point
}

///////////////////////////////////////////////////////////////////////////
// PathValidity

// PathValidity is the tagged result of testing a candidate straight
// segment against flight zones and obstacles. It is deliberately not a
// boolean: Flyover carries the altitude a plane must clear to use the
// segment, and Invalid absorbs every other outcome once set.
type PathValidity struct {
	invalid       bool
	flyoverHeight float32
}

// Valid reports a segment that clears every obstacle horizontally and
// stays inside the flight zones.
func Valid() PathValidity { return PathValidity{} }

// Invalid reports a segment that exits the flight zone union.
func Invalid() PathValidity { return PathValidity{invalid: true} }

// Flyover reports a segment usable only above height h, the tallest
// cylinder it horizontally crosses.
func Flyover(h float32) PathValidity { return PathValidity{flyoverHeight: h} }

func (v PathValidity) IsValid() bool         { return !v.invalid }
func (v PathValidity) Threshold() float32    { return v.flyoverHeight }
func (v PathValidity) IsFlyover() bool       { return !v.invalid && v.flyoverHeight > 0 }

// Combine merges the validity of two independently-tested obstructions
// along the same segment: Invalid is absorbing, otherwise the higher of
// the two flyover thresholds wins.
func (v PathValidity) Combine(o PathValidity) PathValidity {
	if v.invalid || o.invalid {
		return Invalid()
	}
	if o.flyoverHeight > v.flyoverHeight {
		return o
	}
	return v
}
