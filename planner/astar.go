// planner/astar.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"container/heap"
	"time"

	tpmath "github.com/mmp/tangentplan/math"
)

// heapEntry is a single (possibly stale) open-list candidate. Since
// container/heap has no decrease-key, a vertex whose cost improves is
// simply pushed again under a fresh entry; a popped entry is ignored if
// it no longer matches the vertex's current cost.
type heapEntry struct {
	vertex VertexIndex
	fCost  float32
	seq    int
	index  int
}

// openHeap is a min-heap by fCost; among equal costs the most recently
// pushed entry sorts first, giving the LIFO tie-break spec §4.6 accepts.
type openHeap []*heapEntry

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].fCost != h[j].fCost {
		return h[i].fCost < h[j].fCost
	}
	return h[i].seq > h[j].seq
}
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *openHeap) Push(x any) {
	e := x.(*heapEntry)
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// searchResult is the outcome of a single A* search between a temporary
// start and end node.
type searchResult struct {
	path  []VertexIndex // START..END inclusive, in order
	found bool
}

// astar runs the search described in spec §4.6 from startIdx to endIdx
// over g, considering only connections whose Threshold does not exceed
// minAltitude (the lower of the two waypoint altitudes being linked), and
// returns once END is popped, the open list empties, or deadline passes.
func astar(g *Graph, startIdx, endIdx VertexIndex, minAltitude float32, deadline time.Time) searchResult {
	endPoint := g.Vertex(endIdx).Location

	resetSearchFields(g)

	start := g.Vertex(startIdx)
	start.GCost = 0
	start.FCost = tpmath.Distance2f(start.Location.XY(), endPoint.XY())

	open := &openHeap{}
	heap.Init(open)
	seq := 0

	// entries is a pooled backing store for heap nodes: Reset at the
	// start of every search so the many searches a single GetAdjustPath
	// call runs (one per consecutive waypoint pair) reuse the same
	// backing array instead of each allocating its own.
	g.heapEntryPool.Reset()
	push := func(v *Vertex) {
		seq++
		e := g.heapEntryPool.AllocClear()
		*e = heapEntry{vertex: v.Index, fCost: v.FCost, seq: seq}
		heap.Push(open, e)
	}
	push(start)

	closed := make(map[VertexIndex]bool)

	for open.Len() > 0 {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return searchResult{found: false}
		}

		e := heap.Pop(open).(*heapEntry)
		v := g.Vertex(e.vertex)
		if v == nil || closed[v.Index] {
			continue
		}
		if v.FCost != e.fCost {
			// Stale entry from before a cost improvement; skip it.
			continue
		}
		closed[v.Index] = true

		if v.Index == endIdx {
			return searchResult{path: reconstructIndices(g, startIdx, endIdx), found: true}
		}

		for _, c := range v.Connections {
			if c.Threshold > minAltitude {
				continue
			}
			relax(g, v, c.To, v.GCost+c.Distance, endPoint, closed, push)
		}

		relaxRingHug(g, v, endPoint, closed, push)
	}

	return searchResult{found: false}
}

func resetSearchFields(g *Graph) {
	for _, v := range g.vertices {
		v.GCost = tpmath.Infinity
		v.FCost = tpmath.Infinity
		v.Parent = InvalidIndex
	}
}

func relax(g *Graph, from *Vertex, to VertexIndex, tentativeG float32, endPoint Point,
	closed map[VertexIndex]bool, push func(*Vertex)) {
	u := g.Vertex(to)
	if u == nil || u.Sentinel || closed[u.Index] {
		return
	}
	if tentativeG >= u.GCost {
		return
	}
	u.GCost = tentativeG
	u.FCost = tentativeG + tpmath.Distance2f(u.Location.XY(), endPoint.XY())
	u.Parent = from.Index
	push(u)
}

// relaxRingHug relaxes path-hugging moves along v's ring: the immediate
// neighbour in both directions, with the header treated as a transparent
// hop to the neighbour beyond it (the header itself is never a valid
// A* vertex).
func relaxRingHug(g *Graph, v *Vertex, endPoint Point, closed map[VertexIndex]bool, push func(*Vertex)) {
	n := g.Node(v.Node)
	left := v.Angle >= 0

	hug := func(neighbourOf func(*Vertex) VertexIndex, forward bool) {
		// arc is the sweep between two ring positions in the direction of
		// travel: ring order when following Next, the reverse when
		// following Prev.
		arc := func(from, to float32) float32 {
			if forward {
				return ArcLength(left, from, to, n.Radius)
			}
			return ArcLength(left, to, from, n.Radius)
		}
		nxt := neighbourOf(v)
		w := g.Vertex(nxt)
		dist := arc(v.Angle, w.Angle)
		if w.Kind == KindHeader {
			beyond := neighbourOf(w)
			bw := g.Vertex(beyond)
			if bw.Kind == KindHeader {
				return // empty ring, nothing beyond the header
			}
			dist += arc(w.Angle, bw.Angle)
			relax(g, v, beyond, v.GCost+dist, endPoint, closed, push)
			return
		}
		relax(g, v, nxt, v.GCost+dist, endPoint, closed, push)
	}

	hug(func(x *Vertex) VertexIndex { return x.Next }, true)
	hug(func(x *Vertex) VertexIndex { return x.Prev }, false)
}

// reconstructIndices walks the parent chain from endIdx back to startIdx.
func reconstructIndices(g *Graph, startIdx, endIdx VertexIndex) []VertexIndex {
	var rev []VertexIndex
	for idx := endIdx; ; {
		rev = append(rev, idx)
		if idx == startIdx {
			break
		}
		idx = g.Vertex(idx).Parent
		if idx == InvalidIndex {
			break
		}
	}
	path := make([]VertexIndex, len(rev))
	for i, idx := range rev {
		path[len(rev)-1-i] = idx
	}
	return path
}
