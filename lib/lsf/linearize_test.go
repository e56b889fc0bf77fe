// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsf

import (
	"testing"

	"github.com/larris-tools/lsfconv/lib/lsresource"
)

func TestLinearizeSingleAttribute(t *testing.T) {
	node := lsresource.NewNode("n")
	node.SetAttribute("k", lsresource.Int(42))
	res := &lsresource.Resource{}
	if err := res.AddRegion(&lsresource.Region{Name: "root", Root: lsresource.NewNode("root")}); err != nil {
		t.Fatalf("AddRegion: %v", err)
	}
	res.Regions[0].Root.AddChild(node)

	table, nodes, attrs, values, err := linearize(res)
	if err != nil {
		t.Fatalf("linearize: %v", err)
	}

	if len(nodes) != 2 {
		t.Fatalf("got %d node entries, want 2", len(nodes))
	}
	nEntry := nodes[1]
	if nEntry.parentIndex != 0 || nEntry.firstAttributeIndex != 0 {
		t.Fatalf("node entry = %+v, want parent=0 first_attr=0", nEntry)
	}

	if len(attrs) != 1 {
		t.Fatalf("got %d attribute entries, want 1", len(attrs))
	}
	a := attrs[0]
	if a.typ != lsresource.TypeInt || a.length != 4 || a.valueOffset != 0 || a.nextAttributeIndex != -1 {
		t.Fatalf("attribute entry = %+v, want type=4 length=4 offset=0 next=-1", a)
	}

	want := []byte{0x2A, 0x00, 0x00, 0x00}
	if string(values) != string(want) {
		t.Fatalf("values = %v, want %v", values, want)
	}

	if _, err := table.resolve(a.nameHandle); err != nil {
		t.Fatalf("resolving attribute name handle: %v", err)
	}
}

func TestLinearizeDelinearizeSiblingOrderPreserved(t *testing.T) {
	root := lsresource.NewNode("r")
	root.AddChild(lsresource.NewNode("a"))
	root.AddChild(lsresource.NewNode("b"))
	root.AddChild(lsresource.NewNode("a"))

	res := &lsresource.Resource{}
	if err := res.AddRegion(&lsresource.Region{Name: "r", Root: root}); err != nil {
		t.Fatalf("AddRegion: %v", err)
	}

	got := roundTripResource(t, res)

	region, ok := got.Region("r")
	if !ok {
		t.Fatalf("region %q missing after round trip", "r")
	}
	if len(region.Root.Children) != 3 {
		t.Fatalf("got %d children, want 3", len(region.Root.Children))
	}
	names := make([]string, len(region.Root.Children))
	for i, c := range region.Root.Children {
		names[i] = c.Name
	}
	if names[0] != "a" || names[1] != "b" || names[2] != "a" {
		t.Fatalf("child order = %v, want [a b a]", names)
	}
	if len(region.Root.ChildrenNamed("a")) != 2 {
		t.Fatalf("ChildrenNamed(a) = %d, want 2", len(region.Root.ChildrenNamed("a")))
	}
}

func TestLinearizeStringInterningDedup(t *testing.T) {
	root := lsresource.NewNode("root")
	root.AddChild(lsresource.NewNode("x"))
	root.AddChild(lsresource.NewNode("x"))
	root.AddChild(lsresource.NewNode("x"))

	res := &lsresource.Resource{}
	if err := res.AddRegion(&lsresource.Region{Name: "root", Root: root}); err != nil {
		t.Fatalf("AddRegion: %v", err)
	}

	table, nodes, _, _, err := linearize(res)
	if err != nil {
		t.Fatalf("linearize: %v", err)
	}

	var handles []handle
	for _, n := range nodes {
		name, err := table.resolve(n.nameHandle)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if name == "x" {
			handles = append(handles, n.nameHandle)
		}
	}
	if len(handles) != 3 {
		t.Fatalf("found %d nodes named x, want 3", len(handles))
	}
	for _, h := range handles[1:] {
		if h != handles[0] {
			t.Fatalf("node x handles differ: %v vs %v, want all equal", h, handles[0])
		}
	}

	_, chain := handles[0].unpack()
	if chain != 0 {
		t.Fatalf("chain index = %d, want 0 (single dedup'd entry)", chain)
	}
}

func TestLinearizeRejectsDuplicateAttributeKeys(t *testing.T) {
	node := lsresource.NewNode("n")
	node.Attributes = append(node.Attributes,
		lsresource.Attribute{Key: "k", Value: lsresource.Int(1)},
		lsresource.Attribute{Key: "k", Value: lsresource.Int(2)},
	)
	res := &lsresource.Resource{}
	if err := res.AddRegion(&lsresource.Region{Name: "n", Root: node}); err != nil {
		t.Fatalf("AddRegion: %v", err)
	}

	if _, _, _, _, err := linearize(res); err == nil {
		t.Fatal("linearize() with duplicate attribute keys succeeded, want ErrEncode")
	}
}

func TestLinearizeAttributeSlicesAreDisjoint(t *testing.T) {
	node := lsresource.NewNode("n")
	node.SetAttribute("a", lsresource.Int(1))
	node.SetAttribute("b", lsresource.String("hello"))
	node.SetAttribute("c", lsresource.Float(2.5))

	res := &lsresource.Resource{}
	if err := res.AddRegion(&lsresource.Region{Name: "n", Root: node}); err != nil {
		t.Fatalf("AddRegion: %v", err)
	}

	_, _, attrs, values, err := linearize(res)
	if err != nil {
		t.Fatalf("linearize: %v", err)
	}

	type span struct{ start, end uint64 }
	var spans []span
	for _, a := range attrs {
		start := uint64(a.valueOffset)
		end := start + uint64(a.length)
		if end > uint64(len(values)) {
			t.Fatalf("attribute slice [%d,%d) exceeds values chunk of length %d", start, end, len(values))
		}
		spans = append(spans, span{start, end})
	}
	for i := range spans {
		for j := range spans {
			if i == j {
				continue
			}
			if spans[i].start < spans[j].end && spans[j].start < spans[i].end {
				t.Fatalf("attribute slices %v and %v overlap", spans[i], spans[j])
			}
		}
	}
}

func TestDelinearizeTopologicalOrderViolationIsFatal(t *testing.T) {
	table := newStringTable()
	h, err := table.intern("n")
	if err != nil {
		t.Fatalf("intern: %v", err)
	}
	entries := []nodeEntry{
		{nameHandle: h, parentIndex: 5, firstAttributeIndex: -1, nextSiblingIndex: -1},
	}

	if _, err := delinearize(lsresource.Metadata{}, table, entries, nil, nil, PolicyStrict()); err == nil {
		t.Fatal("delinearize() with out-of-range parent_index succeeded, want error")
	}
}

func TestDelinearizeAttributeChainCycleIsFatal(t *testing.T) {
	table := newStringTable()
	nameHandle, err := table.intern("n")
	if err != nil {
		t.Fatalf("intern: %v", err)
	}
	attrHandle, err := table.intern("k")
	if err != nil {
		t.Fatalf("intern: %v", err)
	}

	nodes := []nodeEntry{{nameHandle: nameHandle, parentIndex: -1, firstAttributeIndex: 0, nextSiblingIndex: -1}}
	attrs := []attributeEntry{
		{nameHandle: attrHandle, typ: lsresource.TypeInt, length: 4, nextAttributeIndex: 0, valueOffset: 0},
	}
	values := []byte{0, 0, 0, 0}

	if _, err := delinearize(lsresource.Metadata{}, table, nodes, attrs, values, PolicyStrict()); err == nil {
		t.Fatal("delinearize() with a self-cyclic attribute chain succeeded, want error")
	}
}

// roundTripResource linearizes res, decodes the flat arrays straight
// back without going through the chunk layout or compression, and
// returns the reconstructed Resource.
func roundTripResource(t *testing.T, res *lsresource.Resource) *lsresource.Resource {
	t.Helper()

	table, nodes, attrs, values, err := linearize(res)
	if err != nil {
		t.Fatalf("linearize: %v", err)
	}
	got, err := delinearize(res.Metadata, table, nodes, attrs, values, PolicyStrict())
	if err != nil {
		t.Fatalf("delinearize: %v", err)
	}
	return got
}
