// planner/arena_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import "testing"

func TestGetVertexInsertsInAngleOrder(t *testing.T) {
	g := newGraph()
	n := g.AddNode(Point{}, 100, 0, false)

	angles := []float32{2.0, 0.5, 1.5, 0.1}
	for _, a := range angles {
		if _, created := g.GetVertex(n, a, Point{}, 0); !created {
			t.Fatalf("GetVertex(%v) unexpectedly merged on an empty ring", a)
		}
	}

	if err := g.CheckRingInvariants(); err != nil {
		t.Fatalf("ring invariants violated after inserting in scrambled order: %v", err)
	}

	// Walk the left ring and confirm strictly increasing order.
	var got []float32
	for cur := g.Vertex(n.LeftHeader).Next; cur != n.LeftHeader; cur = g.Vertex(cur).Next {
		got = append(got, g.Vertex(cur).Angle)
	}
	want := []float32{0.1, 0.5, 1.5, 2.0}
	if len(got) != len(want) {
		t.Fatalf("got %d ring entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ring order[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGetVertexMergesWithinThreshold(t *testing.T) {
	g := newGraph()
	n := g.AddNode(Point{}, 1000, 0, false)

	v1, created := g.GetVertex(n, 1.0, Point{}, 5)
	if !created {
		t.Fatalf("first insertion on an empty ring should always create")
	}

	// A second angle close enough that its arc length (radius 1000) is
	// under the 5m merge threshold should reuse v1 rather than insert.
	v2, created := g.GetVertex(n, 1.0+1e-5, Point{}, 5)
	if created {
		t.Errorf("expected a near-duplicate angle to merge, got a new vertex")
	}
	if v2.Index != v1.Index {
		t.Errorf("merged vertex index = %v, want %v", v2.Index, v1.Index)
	}

	// An angle far enough away must create a distinct vertex.
	v3, created := g.GetVertex(n, 2.0, Point{}, 5)
	if !created {
		t.Errorf("expected a distant angle to create a new vertex")
	}
	if v3.Index == v1.Index {
		t.Errorf("distant angle should not have merged onto v1")
	}

	if err := g.CheckRingInvariants(); err != nil {
		t.Errorf("ring invariants violated: %v", err)
	}
}

func TestPruneVerticesRemovesFromRing(t *testing.T) {
	g := newGraph()
	n := g.AddNode(Point{}, 100, 0, false)

	var created []VertexIndex
	for _, a := range []float32{0.5, 1.0, 1.5} {
		v, _ := g.GetVertex(n, a, Point{}, 0)
		created = append(created, v.Index)
	}

	// Prune the middle vertex (angle 1.0) and confirm the ring closes back
	// up around it and invariants still hold.
	g.PruneVertices([]VertexIndex{created[1]})

	if _, ok := g.vertices[created[1]]; ok {
		t.Errorf("pruned vertex %v still present in the arena", created[1])
	}
	if err := g.CheckRingInvariants(); err != nil {
		t.Errorf("ring invariants violated after pruning: %v", err)
	}

	var got []float32
	for cur := g.Vertex(n.LeftHeader).Next; cur != n.LeftHeader; cur = g.Vertex(cur).Next {
		got = append(got, g.Vertex(cur).Angle)
	}
	if len(got) != 2 || got[0] != 0.5 || got[1] != 1.5 {
		t.Errorf("ring after prune = %v, want [0.5 1.5]", got)
	}
}

func TestDeleteNodeRemovesHeadersAndNode(t *testing.T) {
	g := newGraph()
	n := g.AddNode(Point{}, 50, 0, true)
	v, _ := g.GetVertex(n, 0.3, Point{}, 0)

	g.PruneVertices([]VertexIndex{v.Index})
	g.DeleteNode(n)

	if _, ok := g.nodes[n.Index]; ok {
		t.Errorf("node %v still present after DeleteNode", n.Index)
	}
	if _, ok := g.vertices[n.LeftHeader]; ok {
		t.Errorf("left header still present after DeleteNode")
	}
	if _, ok := g.vertices[n.RightHeader]; ok {
		t.Errorf("right header still present after DeleteNode")
	}
}

func TestCheckRingInvariantsDetectsOutOfOrder(t *testing.T) {
	g := newGraph()
	n := g.AddNode(Point{}, 100, 0, false)

	a, _ := g.GetVertex(n, 0.5, Point{}, 0)
	b, _ := g.GetVertex(n, 1.5, Point{}, 0)

	// Corrupt the ring directly: swap the two vertices' order without
	// fixing their angles, which a well-formed insertion would never do.
	lh := g.Vertex(n.LeftHeader)
	lh.Next = b.Index
	b.Prev = n.LeftHeader
	b.Next = a.Index
	a.Prev = b.Index
	a.Next = n.LeftHeader
	lh.Prev = a.Index

	if err := g.CheckRingInvariants(); err == nil {
		t.Errorf("expected CheckRingInvariants to detect an out-of-order ring")
	}
}
