// planner/config.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"time"

	"github.com/brunoga/deep"
)

// MinBuffer is the BufferSize DefaultConfig returns. A Config built any
// other way that leaves BufferSize at zero adds no buffer.
const MinBuffer float32 = 5

// Config enumerates the planner's tunable parameters, per the recognized
// options a caller may set via New or SetConfig.
type Config struct {
	// BufferSize is added to every obstacle radius before it enters the
	// graph, in metres.
	BufferSize float32
	// MaxProcessTime is the wall-clock deadline for a single
	// GetAdjustPath call.
	MaxProcessTime time.Duration
	// TurningRadius is the tightest arc, in metres, the plane can fly;
	// it sizes the virtual nodes placed at flight-zone corners. The
	// temporary start/end nodes of a search have radius 0 and do not use
	// it.
	TurningRadius float32
	// VertexMergeThreshold is the arc-length, in metres, below which
	// GetVertex reuses an existing ring vertex instead of inserting a
	// new one.
	VertexMergeThreshold float32
	// VirtualizeFlyZone, when false, skips inserting corner turning
	// nodes entirely.
	VirtualizeFlyZone bool
}

// DefaultConfig returns reasonable defaults: a small obstacle buffer, a
// generous but bounded search deadline, and flight-zone virtualisation
// enabled.
func DefaultConfig() Config {
	return Config{
		BufferSize:           MinBuffer,
		MaxProcessTime:       2 * time.Second,
		TurningRadius:        50,
		VertexMergeThreshold: 1,
		VirtualizeFlyZone:    true,
	}
}

// Clone returns an independent deep copy of the config, so a caller's
// subsequent mutation of a Config value passed to SetConfig cannot alias
// planner-owned state.
func (c Config) Clone() Config {
	return deep.MustCopy(c)
}
