// planner/waypoints.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

// reconstructedPoint is an intermediate waypoint recovered from a search,
// carrying the radius of the node it sits on (per spec §4.7, "each
// produced Waypoint carries the vertex's node radius").
type reconstructedPoint struct {
	Location Point
	Radius   float32
}

// reconstructPath walks path (START..END, as returned by astar) and
// produces the intermediate waypoints between them, excluding the start
// and end vertices themselves: a caller already has those. Altitude is
// linearly interpolated along accumulated g_cost, per spec §4.7.
func reconstructPath(g *Graph, path []VertexIndex, startAlt, endAlt float32) []reconstructedPoint {
	if len(path) <= 2 {
		return nil
	}

	endGCost := g.Vertex(path[len(path)-1]).GCost
	var out []reconstructedPoint
	for _, idx := range path[1 : len(path)-1] {
		v := g.Vertex(idx)
		var alt float32
		if endGCost > 0 {
			alt = startAlt + (v.GCost/endGCost)*(endAlt-startAlt)
		} else {
			alt = startAlt
		}
		loc := v.Location
		loc.Z = alt
		out = append(out, reconstructedPoint{
			Location: loc,
			Radius:   g.Node(v.Node).Radius,
		})
	}
	return out
}
