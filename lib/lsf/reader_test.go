// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsf

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/larris-tools/lsfconv/lib/lsresource"
)

func TestWriteReadEmptyResource(t *testing.T) {
	res := &lsresource.Resource{Metadata: lsresource.Metadata{Timestamp: 0}}

	var buf bytes.Buffer
	if err := Write(&buf, res, WriterConfig{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf, PolicyStrict())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Regions) != 0 {
		t.Fatalf("got %d regions, want 0", len(got.Regions))
	}
}

func TestWriteReadSingleAttributeRoundTrip(t *testing.T) {
	node := lsresource.NewNode("n")
	node.SetAttribute("k", lsresource.Int(42))
	res := &lsresource.Resource{}
	if err := res.AddRegion(&lsresource.Region{Name: "n", Root: node}); err != nil {
		t.Fatalf("AddRegion: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, res, WriterConfig{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf, PolicyStrict())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	region, ok := got.Region("n")
	if !ok {
		t.Fatal("region n missing after round trip")
	}
	value, ok := region.Root.Attribute("k")
	if !ok {
		t.Fatal("attribute k missing after round trip")
	}
	if !reflect.DeepEqual(value, lsresource.Int(42)) {
		t.Fatalf("attribute k = %#v, want Int(42)", value)
	}
}

func TestReadWriteReadIsIdempotent(t *testing.T) {
	res := buildSampleResource()

	var firstBuf bytes.Buffer
	if err := Write(&firstBuf, res, WriterConfig{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	firstRead, err := Read(bytes.NewReader(firstBuf.Bytes()), PolicyStrict())
	if err != nil {
		t.Fatalf("first Read: %v", err)
	}

	var secondBuf bytes.Buffer
	if err := Write(&secondBuf, firstRead, WriterConfig{}); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	secondRead, err := Read(bytes.NewReader(secondBuf.Bytes()), PolicyStrict())
	if err != nil {
		t.Fatalf("second Read: %v", err)
	}

	if !reflect.DeepEqual(firstRead, secondRead) {
		t.Fatalf("read->write->read not idempotent:\nfirst:  %+v\nsecond: %+v", firstRead, secondRead)
	}
}

func TestReadRejectsUnsupportedVersion(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(magic)
	buf.Write(leUint32(99))
	buf.Write(make([]byte, 12))

	if _, err := Read(&buf, PolicyStrict()); err == nil {
		t.Fatal("Read() on an unsupported version succeeded, want error")
	}
}

// TestReadMalformedAttributeTolerance builds an LSF file with one
// valid Int attribute and one attribute whose (offset, length) slice
// exceeds the Values chunk. Under PolicyTolerant, the read succeeds
// and the bad attribute decodes to Unreadable.
func TestReadMalformedAttributeTolerance(t *testing.T) {
	table := newStringTable()
	nodeHandle, err := table.intern("n")
	if err != nil {
		t.Fatalf("intern: %v", err)
	}
	goodHandle, err := table.intern("good")
	if err != nil {
		t.Fatalf("intern: %v", err)
	}
	badHandle, err := table.intern("bad")
	if err != nil {
		t.Fatalf("intern: %v", err)
	}

	values := []byte{0x2A, 0x00, 0x00, 0x00}
	attrs := []attributeEntry{
		{nameHandle: goodHandle, typ: lsresource.TypeInt, length: 4, nextAttributeIndex: 1, valueOffset: 0},
		{nameHandle: badHandle, typ: lsresource.TypeInt, length: 4, nextAttributeIndex: -1, valueOffset: 1000},
	}
	nodes := []nodeEntry{
		{nameHandle: nodeHandle, parentIndex: -1, firstAttributeIndex: 0, nextSiblingIndex: -1},
	}

	var buf bytes.Buffer
	header := fileHeader{version: DefaultWriteVersion}
	chunks := rawChunks{
		strings:    table.encode(),
		nodes:      encodeNodeEntries(nodes),
		attributes: encodeAttributeEntries(attrs),
		values:     values,
	}
	if err := writeChunks(&buf, header, true, packFlags(methodNone, 0), chunks); err != nil {
		t.Fatalf("writeChunks: %v", err)
	}

	var tolerated []string
	policy := PolicyTolerant(func(nodeName, attrKey string, typeID byte, err error) {
		tolerated = append(tolerated, attrKey)
	})

	fileBytes := buf.Bytes()
	got, err := Read(&buf, policy)
	if err != nil {
		t.Fatalf("Read under PolicyTolerant: %v", err)
	}

	region, ok := got.Region("n")
	if !ok {
		t.Fatal("region n missing")
	}
	goodValue, ok := region.Root.Attribute("good")
	if !ok || !reflect.DeepEqual(goodValue, lsresource.Int(42)) {
		t.Fatalf("attribute good = %#v, ok=%v, want Int(42)", goodValue, ok)
	}
	badValue, ok := region.Root.Attribute("bad")
	if !ok {
		t.Fatal("attribute bad missing")
	}
	if _, isUnreadable := badValue.(lsresource.Unreadable); !isUnreadable {
		t.Fatalf("attribute bad = %#v, want lsresource.Unreadable", badValue)
	}
	if len(tolerated) != 1 || tolerated[0] != "bad" {
		t.Fatalf("tolerated = %v, want [bad]", tolerated)
	}

	// The same file under PolicyStrict must fail outright.
	strictBuf := bytes.NewReader(fileBytes)
	if _, err := Read(strictBuf, PolicyStrict()); err == nil {
		t.Fatal("Read under PolicyStrict succeeded on malformed attribute, want error")
	}
}

func buildSampleResource() *lsresource.Resource {
	root := lsresource.NewNode("root")
	root.SetAttribute("name", lsresource.String("hello"))
	child := lsresource.NewNode("child")
	child.SetAttribute("count", lsresource.UInt(7))
	child.SetAttribute("ratio", lsresource.Float(0.5))
	root.AddChild(child)
	root.AddChild(lsresource.NewNode("child"))

	res := &lsresource.Resource{Metadata: lsresource.Metadata{Timestamp: 1700000000}}
	_ = res.AddRegion(&lsresource.Region{Name: "root", Root: root})
	return res
}
