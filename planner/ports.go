// planner/ports.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

// GridPlanner is the interface an alternative, grid-based A* planner
// would satisfy to stand in for (or be compared against) the tangent-A*
// core. It is a declaration only: no implementation lives in this
// package, and Planner has no field or parameter that takes one.
type GridPlanner interface {
	PlanGrid(start, goal Point, cellSize float64) ([]Point, bool)
}

// GeodeticSource loads the data model (flight zones, obstacles, initial
// waypoints) from an external store. Not implemented here: geodetic I/O
// is out of scope for the planner core.
type GeodeticSource interface {
	LoadFlyZones() ([]FlyZone, error)
	LoadObstacles() ([]Obstacle, error)
	LoadWaypoints() ([]Waypoint[any], error)
}

// TextParser turns a textual description of a flight zone or waypoint
// list into the data model. Not implemented here: parsing textual input
// is out of scope for the planner core.
type TextParser interface {
	ParseFlyZone(text string) (FlyZone, error)
	ParseWaypoints(text string) ([]Waypoint[any], error)
}
