// wire/wire_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mmp/tangentplan/planner"
	"github.com/mmp/tangentplan/util"
)

func testRequest() PlanRequest {
	return PlanRequest{
		Config: ConfigDTO{TurningRadius: 50, BufferSize: 10},
		FlyZones: []FlyZoneDTO{
			{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1}, {Lat: 1, Lon: 0}},
		},
		Obstacles: []ObstacleDTO{{Location: LocationDTO{Lat: 0.5, Lon: 0.5}, Radius: 100, Height: 50}},
		Plane:     LocationDTO{Lat: 0, Lon: 0},
		Waypoints: []WaypointDTO{{Location: LocationDTO{Lat: 1, Lon: 1}, Radius: 10}},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, compress := range []bool{false, true} {
		req := testRequest()
		var buf bytes.Buffer
		if err := Encode(&buf, req, compress); err != nil {
			t.Fatalf("Encode(compress=%v): %v", compress, err)
		}

		var got PlanRequest
		if err := Decode(&buf, &got, compress); err != nil {
			t.Fatalf("Decode(compress=%v): %v", compress, err)
		}
		if len(got.FlyZones) != len(req.FlyZones) || len(got.Obstacles) != len(req.Obstacles) {
			t.Errorf("Decode(compress=%v) = %+v, want %+v", compress, got, req)
		}
	}
}

// TestPlanResultJSON exercises PlanResult's two arms: a successful
// PlanResponse and a FailureDTO. Both must pass CheckJSON, which
// dispatches to util.OneOf's JSONChecker implementation rather than
// expecting the envelope to carry both arms at once.
func TestPlanResultJSON(t *testing.T) {
	ok := NewPlanResult(NewPlanResponse([]planner.Waypoint[struct{}]{
		{Location: planner.Location{Lat: 1, Lon: 1}, Radius: 10},
	}))
	failure := NewPlanFailure(errors.New("malformed request"))

	for _, result := range []PlanResult{ok, failure} {
		b, err := json.Marshal(result)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}

		var el util.ErrorLogger
		util.CheckJSON[PlanResult](b, &el)
		if el.HaveErrors() {
			t.Errorf("CheckJSON(%s) reported errors: %s", b, el.String())
		}
	}

	// The successful arm is tried first by OneOf.UnmarshalJSON, so it's the
	// one case that round-trips unambiguously.
	b, err := json.Marshal(ok)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var round PlanResult
	if err := json.Unmarshal(b, &round); err != nil {
		t.Fatalf("Unmarshal(%s): %v", b, err)
	}
	if round.A == nil || len(round.A.Waypoints) != 1 {
		t.Errorf("Unmarshal(%s) = %+v, want a single-waypoint PlanResponse", b, round)
	}
}
