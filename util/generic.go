// util/generic.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/iancoleman/orderedmap"
	"golang.org/x/exp/constraints"
)

///////////////////////////////////////////////////////////////////////////
// OrderedMap

// OrderedMap wraps orderedmap.OrderedMap so that debug dumps of planner
// state (graph size, search trace) marshal with deterministic key order
// instead of Go's randomized map iteration.
type OrderedMap struct {
	orderedmap.OrderedMap
}

// NewOrderedMap returns an OrderedMap ready for Set calls. The zero value's
// embedded orderedmap.OrderedMap has no backing storage initialized, so
// callers building one up (rather than unmarshaling it from JSON, which
// initializes it itself) must go through this constructor.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{OrderedMap: *orderedmap.New()}
}

func (o *OrderedMap) CheckJSON(json interface{}) bool {
	_, ok := json.(map[string]interface{})
	return ok
}

///////////////////////////////////////////////////////////////////////////
// OneOf

// OneOf holds exactly one of two possible representations of a value; it
// is used by the wire envelope so a response can carry either a waypoint
// list or a structured failure without a third sentinel field.
type OneOf[A, B any] struct {
	A *A
	B *B
}

func (o OneOf[A, B]) MarshalJSON() ([]byte, error) {
	if o.A != nil {
		return json.Marshal(*o.A)
	} else if o.B != nil {
		return json.Marshal(*o.B)
	} else {
		return []byte("null"), nil
	}
}

func (o *OneOf[A, B]) UnmarshalJSON(j []byte) error {
	o.A = nil
	o.B = nil
	if string(j) == "null" {
		return nil
	}

	var a A
	if err := json.Unmarshal(j, &a); err == nil {
		o.A = &a
		return nil
	}
	var b B
	err := json.Unmarshal(j, &b)
	if err == nil {
		o.B = &b
	}
	return err
}

func (o OneOf[A, B]) CheckJSON(json interface{}) bool {
	return TypeCheckJSON[A](json) || TypeCheckJSON[B](json)
}

///////////////////////////////////////////////////////////////////////////

func Select[T any](sel bool, a, b T) T {
	if sel {
		return a
	}
	return b
}

// SortedMapKeys returns the keys of the given map, sorted from low to high.
func SortedMapKeys[K constraints.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}

// DuplicateSlice returns a newly-allocated slice that is a copy of the
// provided one.
func DuplicateSlice[V any](s []V) []V {
	dupe := make([]V, len(s))
	copy(dupe, s)
	return dupe
}

// DeleteSliceElement deletes the i-th element of the given slice,
// returning the resulting slice.
//
// Note that the provided slice s is modified!
func DeleteSliceElement[V any](s []V, i int) []V {
	return slices.Delete(s, i, i+1)
}

// InsertSliceElement inserts the given value v at the index i in the
// slice s, moving all elements after i one place forward.
func InsertSliceElement[V any](s []V, i int, v V) []V {
	return slices.Insert(s, i, v)
}

// MapSlice returns the slice that is the result of applying the provided
// xform function to all the elements of the given slice.
func MapSlice[F, T any](from []F, xform func(F) T) []T {
	to := make([]T, len(from))
	for i := range from {
		to[i] = xform(from[i])
	}
	return to
}

// FilterSlice applies the given filter function pred to the given slice,
// returning a new slice that only contains elements where pred returned
// true.
func FilterSlice[V any](s []V, pred func(V) bool) []V {
	var filtered []V
	for i := range s {
		if pred(s[i]) {
			filtered = append(filtered, s[i])
		}
	}
	return filtered
}
