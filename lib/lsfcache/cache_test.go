// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsfcache

import (
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/larris-tools/lsfconv/lib/lsresource"
)

func sampleResource() *lsresource.Resource {
	root := lsresource.NewNode("root")
	root.SetAttribute("name", lsresource.String("hello"))
	root.SetAttribute("count", lsresource.UInt(7))
	root.SetAttribute("pos", lsresource.Vec3([3]float32{1, 2, 3}))
	root.SetAttribute("guid", lsresource.UUIDOf(uuid.MustParse("01020304-0506-0708-090a-0b0c0d0e0f10")))
	root.SetAttribute("caption", lsresource.TranslatedString(1, "Hello", "h0123"))

	child := lsresource.NewNode("child")
	child.SetAttribute("id", lsresource.Int(42))
	root.AddChild(child)

	res := &lsresource.Resource{Metadata: lsresource.Metadata{Major: 4, Minor: 0, Revision: 9, Build: 0}}
	if err := res.AddRegion(&lsresource.Region{Name: "root", Root: root}); err != nil {
		panic(err)
	}
	return res
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	res := sampleResource()

	data, err := Marshal(res)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.Metadata != res.Metadata {
		t.Fatalf("Metadata = %+v, want %+v", got.Metadata, res.Metadata)
	}
	region, ok := got.Region("root")
	if !ok {
		t.Fatal("region root missing after round trip")
	}
	name, _ := region.Root.Attribute("name")
	if name != lsresource.String("hello") {
		t.Fatalf("attribute name = %#v, want String(hello)", name)
	}
	if len(region.Root.Children) != 1 || region.Root.Children[0].Name != "child" {
		t.Fatalf("children = %+v, want one child named child", region.Root.Children)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	res := sampleResource()

	first, err := Marshal(res)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(res)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}

	if string(first) != string(second) {
		t.Error("deterministic encoding violated across two Marshal calls")
	}
}

func TestKeyIsStableForIdenticalBytes(t *testing.T) {
	a := Key([]byte("same content"))
	b := Key([]byte("same content"))
	if a != b {
		t.Fatalf("Key produced different digests for identical input: %q != %q", a, b)
	}

	c := Key([]byte("different content"))
	if a == c {
		t.Fatal("Key produced identical digests for different input")
	}
}

func TestCacheStoreLookupRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cache, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	res := sampleResource()
	key := Key([]byte("source bytes"))

	if _, ok := cache.Lookup(key); ok {
		t.Fatal("Lookup on an empty cache returned a hit")
	}

	if err := cache.Store(key, res); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, ok := cache.Lookup(key)
	if !ok {
		t.Fatal("Lookup after Store returned a miss")
	}
	if got.Metadata != res.Metadata {
		t.Fatalf("Metadata = %+v, want %+v", got.Metadata, res.Metadata)
	}
}

func TestCacheEvict(t *testing.T) {
	dir := t.TempDir()
	cache, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	key := Key([]byte("to be evicted"))
	if err := cache.Store(key, sampleResource()); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := cache.Evict(key); err != nil {
		t.Fatalf("Evict: %v", err)
	}
	if _, ok := cache.Lookup(key); ok {
		t.Fatal("Lookup after Evict returned a hit")
	}

	// Evicting a missing key is not an error.
	if err := cache.Evict(key); err != nil {
		t.Fatalf("Evict on an already-absent key: %v", err)
	}
}

func TestLookupOnCorruptEntryIsAMiss(t *testing.T) {
	dir := t.TempDir()
	cache, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	key := Key([]byte("corrupt"))
	if err := os.WriteFile(cache.path(key), []byte("not cbor"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, ok := cache.Lookup(key); ok {
		t.Fatal("Lookup on a corrupt entry returned a hit")
	}
}
