// wire/wire.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package wire defines the msgpack wire format a caller uses to send a
// planning request to, and receive an adjusted waypoint list from, the
// tangent-A* planner, and the Encode/Decode helpers that (de)serialize it.
package wire

import (
	"io"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mmp/tangentplan/planner"
	"github.com/mmp/tangentplan/util"
)

// LocationDTO mirrors planner.Location on the wire. Field tags are present
// so a JSON-encoded request can be structurally validated with
// util.CheckJSON before being decoded, not because msgpack or
// encoding/json need them for ordinary (de)serialization.
type LocationDTO struct {
	Lat float64 `json:"Lat"`
	Lon float64 `json:"Lon"`
	Alt float32 `json:"Alt"`
}

func (l LocationDTO) toLocation() planner.Location {
	return planner.Location{Lat: l.Lat, Lon: l.Lon, Alt: l.Alt}
}

func fromLocation(l planner.Location) LocationDTO {
	return LocationDTO{Lat: l.Lat, Lon: l.Lon, Alt: l.Alt}
}

// ObstacleDTO mirrors planner.Obstacle on the wire.
type ObstacleDTO struct {
	Location LocationDTO `json:"Location"`
	Radius   float32     `json:"Radius"`
	Height   float32     `json:"Height"`
}

// FlyZoneDTO mirrors planner.FlyZone on the wire.
type FlyZoneDTO []LocationDTO

// WaypointDTO mirrors planner.Waypoint[struct{}] on the wire: the payload
// a caller threads through Waypoint is its own concern and never crosses
// this wire format.
type WaypointDTO struct {
	Location LocationDTO `json:"Location"`
	Radius   float32     `json:"Radius"`
}

// ConfigDTO mirrors planner.Config on the wire; MaxProcessTime crosses as
// whole milliseconds since msgpack has no native time.Duration encoding.
type ConfigDTO struct {
	BufferSize           float32 `json:"BufferSize"`
	MaxProcessTimeMS     int64   `json:"MaxProcessTimeMS"`
	TurningRadius        float32 `json:"TurningRadius"`
	VertexMergeThreshold float32 `json:"VertexMergeThreshold"`
	VirtualizeFlyZone    bool    `json:"VirtualizeFlyZone"`
}

func (c ConfigDTO) toConfig() planner.Config {
	return planner.Config{
		BufferSize:           c.BufferSize,
		MaxProcessTime:       time.Duration(c.MaxProcessTimeMS) * time.Millisecond,
		TurningRadius:        c.TurningRadius,
		VertexMergeThreshold: c.VertexMergeThreshold,
		VirtualizeFlyZone:    c.VirtualizeFlyZone,
	}
}

func fromConfig(c planner.Config) ConfigDTO {
	return ConfigDTO{
		BufferSize:           c.BufferSize,
		MaxProcessTimeMS:     c.MaxProcessTime.Milliseconds(),
		TurningRadius:        c.TurningRadius,
		VertexMergeThreshold: c.VertexMergeThreshold,
		VirtualizeFlyZone:    c.VirtualizeFlyZone,
	}
}

// PlanRequest is everything a caller sends the planner in one round trip:
// the configuration, the data model (flight zones and obstacles), the
// plane's current position, and the waypoint list to adjust.
type PlanRequest struct {
	Config    ConfigDTO     `json:"Config"`
	FlyZones  []FlyZoneDTO  `json:"FlyZones"`
	Obstacles []ObstacleDTO `json:"Obstacles"`
	Plane     LocationDTO   `json:"Plane"`
	Waypoints []WaypointDTO `json:"Waypoints"`
}

// PlanResponse is the adjusted waypoint list the planner sends back.
type PlanResponse struct {
	Waypoints []WaypointDTO `json:"Waypoints"`
}

// FailureDTO is the structured-failure arm of a PlanResult, reported in
// JSON mode when a request can't be decoded or otherwise never reaches a
// PlanResponse.
type FailureDTO struct {
	Error string `json:"Error"`
}

// PlanResult is the JSON-mode envelope around a plan outcome: either a
// PlanResponse or a FailureDTO, distinguished by util.OneOf rather than a
// third "ok" sentinel field.
type PlanResult = util.OneOf[PlanResponse, FailureDTO]

// NewPlanResult wraps a successful PlanResponse as a PlanResult.
func NewPlanResult(resp PlanResponse) PlanResult {
	return PlanResult{A: &resp}
}

// NewPlanFailure wraps an error as a PlanResult.
func NewPlanFailure(err error) PlanResult {
	return PlanResult{B: &FailureDTO{Error: err.Error()}}
}

// PlannerConfig converts the request's wire-format Config into a
// planner.Config.
func (r *PlanRequest) PlannerConfig() planner.Config {
	return r.Config.toConfig()
}

// FlightZones converts the request's wire-format zones into planner.FlyZone
// values.
func (r *PlanRequest) FlightZones() []planner.FlyZone {
	zones := make([]planner.FlyZone, len(r.FlyZones))
	for i, z := range r.FlyZones {
		zone := make(planner.FlyZone, len(z))
		for j, l := range z {
			zone[j] = l.toLocation()
		}
		zones[i] = zone
	}
	return zones
}

// ObstacleList converts the request's wire-format obstacles into
// planner.Obstacle values.
func (r *PlanRequest) ObstacleList() []planner.Obstacle {
	obs := make([]planner.Obstacle, len(r.Obstacles))
	for i, o := range r.Obstacles {
		obs[i] = planner.Obstacle{Location: o.Location.toLocation(), Radius: o.Radius, Height: o.Height}
	}
	return obs
}

// PlaneState converts the request's plane position into a planner.Plane
// carrying only Location; the wire format has nothing to say about the
// kinematic fields a caller may otherwise fill in locally.
func (r *PlanRequest) PlaneState() planner.Plane {
	return planner.Plane{Location: r.Plane.toLocation()}
}

// WaypointList converts the request's wire-format waypoints into
// planner.Waypoint[struct{}] values, ready to hand to planner.GetAdjustPath.
func (r *PlanRequest) WaypointList() []planner.Waypoint[struct{}] {
	wps := make([]planner.Waypoint[struct{}], len(r.Waypoints))
	for i, w := range r.Waypoints {
		wps[i] = planner.Waypoint[struct{}]{Location: w.Location.toLocation(), Radius: w.Radius}
	}
	return wps
}

// NewPlanResponse packages an adjusted waypoint list for the wire.
func NewPlanResponse[T any](waypoints []planner.Waypoint[T]) PlanResponse {
	dtos := make([]WaypointDTO, len(waypoints))
	for i, w := range waypoints {
		dtos[i] = WaypointDTO{Location: fromLocation(w.Location), Radius: w.Radius}
	}
	return PlanResponse{Waypoints: dtos}
}

// Encode msgpack-encodes v to w, optionally running it through a flate
// compressor first (worthwhile for a PlanRequest with many flight-zone
// vertices or obstacles; not for the much smaller PlanResponse).
func Encode(w io.Writer, v any, compress bool) error {
	if !compress {
		return msgpack.NewEncoder(w).Encode(v)
	}
	fw, err := flate.NewWriter(w, flate.BestSpeed)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(fw).Encode(v); err != nil {
		return err
	}
	return fw.Close()
}

// Decode msgpack-decodes v from r, inverting Encode. compress must match
// whatever Encode was called with.
func Decode(r io.Reader, v any, compress bool) error {
	if !compress {
		return msgpack.NewDecoder(r).Decode(v)
	}
	fr := flate.NewReader(r)
	defer fr.Close()
	return msgpack.NewDecoder(fr).Decode(v)
}
