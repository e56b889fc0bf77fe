// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsresource

import "testing"

func TestResourceRegion(t *testing.T) {
	r := &Resource{}
	root := NewNode("root")
	if err := r.AddRegion(&Region{Name: "root", Root: root}); err != nil {
		t.Fatalf("AddRegion: %v", err)
	}

	got, ok := r.Region("root")
	if !ok || got.Root != root {
		t.Fatalf("Region(%q) = %v, %v; want %v, true", "root", got, ok, root)
	}

	if _, ok := r.Region("missing"); ok {
		t.Fatalf("Region(%q) found a region that was never added", "missing")
	}
}

func TestResourceAddRegionDuplicate(t *testing.T) {
	r := &Resource{}
	if err := r.AddRegion(&Region{Name: "dup", Root: NewNode("dup")}); err != nil {
		t.Fatalf("first AddRegion: %v", err)
	}
	if err := r.AddRegion(&Region{Name: "dup", Root: NewNode("dup")}); err == nil {
		t.Fatal("AddRegion with a duplicate name succeeded; want error")
	}
}

func TestNodeAttributeLastWins(t *testing.T) {
	n := NewNode("n")
	n.SetAttribute("k", Int(1))
	n.SetAttribute("k", Int(2))

	if len(n.Attributes) != 1 {
		t.Fatalf("len(Attributes) = %d, want 1", len(n.Attributes))
	}
	v, ok := n.Attribute("k")
	if !ok {
		t.Fatal("Attribute(\"k\") not found")
	}
	got, ok := v.(IntValue)
	if !ok || got.Value != 2 {
		t.Fatalf("Attribute(\"k\") = %v, want IntValue{2}", v)
	}
}

func TestNodeValidateAttributesDetectsDuplicates(t *testing.T) {
	n := &Node{Name: "n", Attributes: []Attribute{
		{Key: "k", Value: Int(1)},
		{Key: "k", Value: Int(2)},
	}}
	if err := n.ValidateAttributes(); err == nil {
		t.Fatal("ValidateAttributes on a hand-built duplicate-key node succeeded; want error")
	}
}

func TestChildrenNamedPreservesOrder(t *testing.T) {
	parent := NewNode("r")
	a1 := NewNode("a")
	b := NewNode("b")
	a2 := NewNode("a")
	parent.AddChild(a1)
	parent.AddChild(b)
	parent.AddChild(a2)

	as := parent.ChildrenNamed("a")
	if len(as) != 2 || as[0] != a1 || as[1] != a2 {
		t.Fatalf("ChildrenNamed(\"a\") = %v, want [a1 a2]", as)
	}

	var names []string
	for _, c := range parent.Children {
		names = append(names, c.Name)
	}
	want := []string{"a", "b", "a"}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("Children order = %v, want %v", names, want)
		}
	}
}

func TestAttributeTypeValidity(t *testing.T) {
	if !TypeMat4x3.IsValid() {
		t.Error("TypeMat4x3 should be valid (id 33)")
	}
	if AttributeType(34).IsValid() {
		t.Error("AttributeType(34) should not be valid")
	}
}
