// math/geom.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
	"sort"
)

///////////////////////////////////////////////////////////////////////////
// Extent2D

// Extent2D represents a 2D bounding box with the two vertices at its
// opposite minimum and maximum corners.
type Extent2D struct {
	P0, P1 [2]float32
}

// EmptyExtent2D returns an Extent2D representing an empty bounding box.
func EmptyExtent2D() Extent2D {
	return Extent2D{P0: [2]float32{1e30, 1e30}, P1: [2]float32{-1e30, -1e30}}
}

// Extent2DFromPoints returns an Extent2D that bounds all of the provided
// points.
func Extent2DFromPoints(pts [][2]float32) Extent2D {
	e := EmptyExtent2D()
	for _, p := range pts {
		for d := 0; d < 2; d++ {
			if p[d] < e.P0[d] {
				e.P0[d] = p[d]
			}
			if p[d] > e.P1[d] {
				e.P1[d] = p[d]
			}
		}
	}
	return e
}

func (e Extent2D) Width() float32 {
	return e.P1[0] - e.P0[0]
}

func (e Extent2D) Height() float32 {
	return e.P1[1] - e.P0[1]
}

func (e Extent2D) Center() [2]float32 {
	return [2]float32{(e.P0[0] + e.P1[0]) / 2, (e.P0[1] + e.P1[1]) / 2}
}

// Expand expands the extent by the given distance in all directions.
func (e Extent2D) Expand(d float32) Extent2D {
	return Extent2D{
		P0: [2]float32{e.P0[0] - d, e.P0[1] - d},
		P1: [2]float32{e.P1[0] + d, e.P1[1] + d}}
}

func (e Extent2D) Inside(p [2]float32) bool {
	return p[0] >= e.P0[0] && p[0] <= e.P1[0] && p[1] >= e.P0[1] && p[1] <= e.P1[1]
}

// Overlaps returns true if the two provided Extent2Ds overlap.
func Overlaps(a Extent2D, b Extent2D) bool {
	x := (a.P1[0] >= b.P0[0]) && (a.P0[0] <= b.P1[0])
	y := (a.P1[1] >= b.P0[1]) && (a.P0[1] <= b.P1[1])
	return x && y
}

// ClosestPointInBox returns the closest point to p that is inside the
// Extent2D. (If p is already inside it, it is returned unchanged.)
func (e Extent2D) ClosestPointInBox(p [2]float32) [2]float32 {
	return [2]float32{Clamp(p[0], e.P0[0], e.P1[0]), Clamp(p[1], e.P0[1], e.P1[1])}
}

///////////////////////////////////////////////////////////////////////////
// Vertex rounding helpers (rounding to a fixed number of decimal places so
// that values differing only by float roundoff compare equal).

func RoundTo(v float32, places int) float32 {
	scale := Pow(10, float32(places))
	return Floor(v*scale+0.5) / scale
}

///////////////////////////////////////////////////////////////////////////
// Geometry

// LineLineIntersect returns the intersection point of the two lines
// specified by the vertices (p1f, p2f) and (p3f, p4f). An additional
// returned Boolean value indicates whether a valid intersection was found.
// (There's no intersection for parallel lines, and none may be found in
// cases with tricky numerics.)
func LineLineIntersect(p1f, p2f, p3f, p4f [2]float32) ([2]float32, bool) {
	// It's important to do this in float64, given differences of
	// similar-ish values...
	p1 := [2]float64{float64(p1f[0]), float64(p1f[1])}
	p2 := [2]float64{float64(p2f[0]), float64(p2f[1])}
	p3 := [2]float64{float64(p3f[0]), float64(p3f[1])}
	p4 := [2]float64{float64(p4f[0]), float64(p4f[1])}

	d12 := [2]float64{p1[0] - p2[0], p1[1] - p2[1]}
	d34 := [2]float64{p3[0] - p4[0], p3[1] - p4[1]}
	denom := d12[0]*d34[1] - d12[1]*d34[0]
	if gomath.Abs(denom) < 1e-5 {
		return [2]float32{}, false
	}
	numx := (p1[0]*p2[1]-p1[1]*p2[0])*(p3[0]-p4[0]) - (p1[0]-p2[0])*(p3[0]*p4[1]-p3[1]*p4[0])
	numy := (p1[0]*p2[1]-p1[1]*p2[0])*(p3[1]-p4[1]) - (p1[1]-p2[1])*(p3[0]*p4[1]-p3[1]*p4[0])

	return [2]float32{float32(numx / denom), float32(numy / denom)}, true
}

// SegmentSegmentIntersect returns the intersection point of the two line
// segments (p1, p2) and (p3, p4). An additional returned Boolean value
// indicates whether a valid intersection was found within both segments.
func SegmentSegmentIntersect(p1, p2, p3, p4 [2]float32) ([2]float32, bool) {
	p, ok := LineLineIntersect(p1, p2, p3, p4)
	if !ok {
		return [2]float32{}, false
	}

	b0 := Extent2DFromPoints([][2]float32{p1, p2})
	b1 := Extent2DFromPoints([][2]float32{p3, p4})

	return p, b0.Inside(p) && b1.Inside(p)
}

// SignedPointLineDistance returns the signed distance from the point p to
// the infinite line defined by (p0, p1); looking from p0 towards p1 (x
// east, y north), points to the right of the line have positive distances
// and points to the left negative ones.
func SignedPointLineDistance(p, p0, p1 [2]float32) float32 {
	dx, dy := p1[0]-p0[0], p1[1]-p0[1]
	sq := dx*dx + dy*dy
	if sq == 0 {
		return Infinity
	}
	return (dx*(p0[1]-p[1]) - dy*(p0[0]-p[0])) / Sqrt(sq)
}

// PointLineDistance returns the minimum distance from p to the infinite
// line defined by (p0, p1).
func PointLineDistance(p, p0, p1 [2]float32) float32 {
	return Abs(SignedPointLineDistance(p, p0, p1))
}

// PerpendicularDistance returns the minimum distance from point p to the
// segment (v, w), clamping the projection to the segment's extent.
// https://stackoverflow.com/a/1501725
func PerpendicularDistance(p, v, w [2]float32) float32 {
	l := Sub2f(v, w)
	l2 := Dot(l, l)
	if l2 == 0 {
		return Length2f(Sub2f(p, v))
	}
	t := Clamp(Dot(Sub2f(p, v), Sub2f(w, v))/l2, 0, 1)
	proj := Add2f(v, Scale2f(Sub2f(w, v), t))
	return Distance2f(p, proj)
}

// PointSegmentDistance is an alias for PerpendicularDistance kept for
// parity with the naming the scalar geometry kernel historically used.
func PointSegmentDistance(p, v, w [2]float32) float32 {
	return PerpendicularDistance(p, v, w)
}

// ClosestPointOnLine returns the closest point on the (infinite) line to
// the given point p.
func ClosestPointOnLine(line [2][2]float32, p [2]float32) [2]float32 {
	x1, y1 := line[0][0], line[0][1]
	x2, y2 := line[1][0], line[1][1]

	t := (((p[0] - x1) * (x2 - x1)) + ((p[1] - y1) * (y2 - y1))) / ((x2-x1)*(x2-x1) + (y2-y1)*(y2-y1))

	return [2]float32{Lerp(t, x1, x2), Lerp(t, y1, y2)}
}

// PointInPolygon checks whether the given point is inside the given
// polygon; it assumes that the last vertex does not repeat the first one,
// and so includes the edge from pts[len(pts)-1] to pts[0] in its test.
func PointInPolygon(p [2]float32, pts [][2]float32) bool {
	inside := false
	for i := 0; i < len(pts); i++ {
		p0, p1 := pts[i], pts[(i+1)%len(pts)]
		if (p0[1] <= p[1] && p[1] < p1[1]) || (p1[1] <= p[1] && p[1] < p0[1]) {
			x := p0[0] + (p[1]-p0[1])*(p1[0]-p0[0])/(p1[1]-p0[1])
			if x > p[0] {
				inside = !inside
			}
		}
	}
	return inside
}

// PolygonOrientation returns +1 if the polygon's vertices are wound
// counter-clockwise and -1 if clockwise, via the shoelace formula. The
// polygon must not repeat its first vertex as its last.
func PolygonOrientation(pts [][2]float32) float32 {
	var sum float32
	for i := range pts {
		p0, p1 := pts[i], pts[(i+1)%len(pts)]
		sum += (p1[0] - p0[0]) * (p1[1] + p0[1])
	}
	return Sign(-sum)
}

var (
	// circlePoints caches vertex positions of a unit circle at the origin
	// for specified tessellation rates, so that repeated CirclePoints
	// calls don't recompute them.
	circlePoints map[int][][2]float32
)

// CirclePoints returns the vertices for a unit circle at the origin with
// the given number of segments; it creates the vertex slice if this
// tessellation rate hasn't been seen before and otherwise returns a
// preexisting one.
func CirclePoints(nsegs int) [][2]float32 {
	if circlePoints == nil {
		circlePoints = make(map[int][][2]float32)
	}
	if _, ok := circlePoints[nsegs]; !ok {
		var pts [][2]float32
		for d := 0; d < nsegs; d++ {
			angle := Radians(float32(d) / float32(nsegs) * 360)
			pt := [2]float32{Sin(angle), Cos(angle)}
			pts = append(pts, pt)
		}
		circlePoints[nsegs] = pts
	}

	return circlePoints[nsegs]
}

// https://en.wikibooks.org/wiki/Algorithm_Implementation/Geometry/Convex_hull/Monotone_chain
func ConvexHull(points [][2]float32) [][2]float32 {
	n := len(points)
	if n <= 1 {
		return append([][2]float32{}, points...)
	}

	pts := append([][2]float32{}, points...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] == pts[j][0] {
			return pts[i][1] < pts[j][1]
		}
		return pts[i][0] < pts[j][0]
	})

	cross := func(o, a, b [2]float32) float32 {
		return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
	}

	lower := make([][2]float32, 0, n)
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	upper := make([][2]float32, 0, n)
	for i := n - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

///////////////////////////////////////////////////////////////////////////
// Circle intersection and arcs

// NormalizeAngle reduces an angle in radians to the range [0, 2*Pi).
func NormalizeAngle(a float32) float32 {
	a = Mod(a, 2*Pi)
	if a < 0 {
		a += 2 * Pi
	}
	return a
}

// ArcLength returns the length of the arc of a circle with the given
// radius subtended by the angle (in radians) from a1 to a2, sweeping in
// the direction of increasing angle (counter-clockwise).
func ArcLength(radius, a1, a2 float32) float32 {
	da := NormalizeAngle(a2) - NormalizeAngle(a1)
	if da < 0 {
		da += 2 * Pi
	}
	return radius * da
}

// PerpendicularIntersect finds the points (if any) where the bounded
// segment (p0,p1) crosses the circle centered at c with the given radius,
// by dropping a perpendicular from the center to the line and solving for
// the half-chord length. The foot of the perpendicular is clamped to the
// segment's span before it is tested against radius, matching the
// clamped-projection shape of PerpendicularDistance above: an unclamped
// foot would report a crossing for a circle that sits near the segment's
// infinite extension but nowhere close to the segment itself.
func PerpendicularIntersect(p0, p1, c [2]float32, radius float32) ([2][2]float32, bool) {
	d := Sub2f(p1, p0)
	length := Length2f(d)
	if length == 0 {
		return [2][2]float32{}, false
	}
	dir := Scale2f(d, 1/length)

	toCenter := Sub2f(c, p0)
	tClosest := Clamp(Dot(toCenter, dir), 0, length)
	closest := Add2f(p0, Scale2f(dir, tClosest))
	distToCenter := Distance2f(closest, c)

	if distToCenter > radius {
		return [2][2]float32{}, false
	}

	halfChord := Sqrt(Sqr(radius) - Sqr(distToCenter))
	t0 := Clamp(tClosest-halfChord, 0, length)
	t1 := Clamp(tClosest+halfChord, 0, length)
	i0 := Add2f(p0, Scale2f(dir, t0))
	i1 := Add2f(p0, Scale2f(dir, t1))
	return [2][2]float32{i0, i1}, true
}

// CircularIntersect finds the points (if any) where the bounded segment
// (p0,p1) crosses the circle centered at c with the given radius, via the
// quadratic-in-t parametrization of the line. It is kept alongside
// PerpendicularIntersect as an independent formulation: the two are
// expected to agree to within floating-point tolerance, and disagreement
// between them on a borderline (near-tangent) case is itself diagnostic.
// The roots are rejected outright if they both fall below 0 or both fall
// above 1 (the circle crosses the line the segment lies on, but not the
// segment itself) and otherwise clamped into [0,1] before being returned.
func CircularIntersect(p0, p1, c [2]float32, radius float32) ([2][2]float32, bool) {
	d := Sub2f(p1, p0)
	f := Sub2f(p0, c)

	a := Dot(d, d)
	if a == 0 {
		return [2][2]float32{}, false
	}
	b := 2 * Dot(f, d)
	cc := Dot(f, f) - radius*radius

	disc := b*b - 4*a*cc
	if disc < 0 {
		return [2][2]float32{}, false
	}
	sq := Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)

	if t1 < 0 || t0 > 1 {
		return [2][2]float32{}, false
	}
	t0, t1 = Clamp(t0, 0, 1), Clamp(t1, 0, 1)

	i0 := Add2f(p0, Scale2f(d, t0))
	i1 := Add2f(p0, Scale2f(d, t1))
	return [2][2]float32{i0, i1}, true
}

// LineCircleIntersect finds where the segment from p0 to p1 crosses the
// circle centered at c with the given radius. It returns the
// PerpendicularIntersect result (including its clamping to the segment's
// ends), which is numerically steadier for near-tangent lines;
// CircularIntersect is not evaluated.
func LineCircleIntersect(p0, p1, c [2]float32, radius float32) ([2][2]float32, bool) {
	return PerpendicularIntersect(p0, p1, c, radius)
}
