// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsx

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/larris-tools/lsfconv/lib/lsresource"
)

func TestWriteReadRoundTrip(t *testing.T) {
	root := lsresource.NewNode("root")
	root.SetAttribute("name", lsresource.String("hello"))
	root.SetAttribute("count", lsresource.UInt(7))
	root.SetAttribute("ratio", lsresource.Float(0.5))
	root.SetAttribute("flag", lsresource.Bool(true))
	root.SetAttribute("pos", lsresource.Vec3([3]float32{1, 2, 3}))

	child := lsresource.NewNode("child")
	child.SetAttribute("id", lsresource.Int(42))
	root.AddChild(child)
	root.AddChild(lsresource.NewNode("child"))

	res := &lsresource.Resource{Metadata: lsresource.Metadata{Major: 4, Minor: 0, Revision: 9, Build: 0}}
	if err := res.AddRegion(&lsresource.Region{Name: "root", Root: root}); err != nil {
		t.Fatalf("AddRegion: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, res); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got.Metadata != res.Metadata {
		t.Fatalf("Metadata = %+v, want %+v", got.Metadata, res.Metadata)
	}

	region, ok := got.Region("root")
	if !ok {
		t.Fatal("region root missing after round trip")
	}
	if len(region.Root.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(region.Root.Children))
	}

	name, _ := region.Root.Attribute("name")
	if !reflect.DeepEqual(name, lsresource.String("hello")) {
		t.Fatalf("attribute name = %#v, want String(hello)", name)
	}
	pos, _ := region.Root.Attribute("pos")
	if !reflect.DeepEqual(pos, lsresource.Vec3([3]float32{1, 2, 3})) {
		t.Fatalf("attribute pos = %#v, want Vec3(1,2,3)", pos)
	}
}

func TestWriteProducesSpecShapedDocument(t *testing.T) {
	node := lsresource.NewNode("n")
	node.SetAttribute("k", lsresource.Int(42))
	res := &lsresource.Resource{Metadata: lsresource.Metadata{Major: 4, Minor: 0, Revision: 9, Build: 0}}
	if err := res.AddRegion(&lsresource.Region{Name: "n", Root: node}); err != nil {
		t.Fatalf("AddRegion: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, res); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		`<version major="4" minor="0" revision="9" build="0">`,
		`<region id="n">`,
		`<node id="n">`,
		`<attribute id="k" type="int32" value="42">`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q; got:\n%s", want, out)
		}
	}
}

func TestUUIDTextFormRoundTrip(t *testing.T) {
	node := lsresource.NewNode("n")
	id := uuid.MustParse("01020304-0506-0708-090a-0b0c0d0e0f10")
	node.SetAttribute("guid", lsresource.UUIDOf(id))
	res := &lsresource.Resource{}
	if err := res.AddRegion(&lsresource.Region{Name: "n", Root: node}); err != nil {
		t.Fatalf("AddRegion: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, res); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), `value="01020304-0506-0708-090a-0b0c0d0e0f10"`) {
		t.Fatalf("LSX text form of a guid must not apply the LSF byte swap; got:\n%s", buf.String())
	}

	got, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	region, _ := got.Region("n")
	value, _ := region.Root.Attribute("guid")
	if !reflect.DeepEqual(value, lsresource.UUIDOf(id)) {
		t.Fatalf("attribute guid = %#v, want UUIDOf(%v)", value, id)
	}
}

func TestReadRejectsUnknownType(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<save>
  <version major="1" minor="0" revision="0" build="0"></version>
  <region id="r">
    <node id="r">
      <attribute id="k" type="nonsense" value="1"></attribute>
    </node>
  </region>
</save>`

	if _, err := Read(strings.NewReader(doc)); err == nil {
		t.Fatal("Read() with an unknown attribute type succeeded, want error")
	}
}

func TestReadRejectsDuplicateAttributeKeys(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<save>
  <version major="1" minor="0" revision="0" build="0"></version>
  <region id="r">
    <node id="r">
      <attribute id="k" type="int32" value="1"></attribute>
      <attribute id="k" type="int32" value="2"></attribute>
    </node>
  </region>
</save>`

	if _, err := Read(strings.NewReader(doc)); err == nil {
		t.Fatal("Read() with a duplicate attribute key succeeded, want error")
	}
}

func TestStringAndLSStringRemainDistinctTypeNames(t *testing.T) {
	strName, _ := typeName(lsresource.TypeString)
	lsName, _ := typeName(lsresource.TypeLSString)
	if strName == lsName {
		t.Fatalf("String and LSString share the LSX type name %q; the wire type id must be preserved", strName)
	}

	st, ok := typeByName(strName)
	if !ok || st != lsresource.TypeString {
		t.Fatalf("typeByName(%q) = %v, %v, want TypeString, true", strName, st, ok)
	}
	lt, ok := typeByName(lsName)
	if !ok || lt != lsresource.TypeLSString {
		t.Fatalf("typeByName(%q) = %v, %v, want TypeLSString, true", lsName, lt, ok)
	}
}
