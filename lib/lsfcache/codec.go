// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsfcache

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/larris-tools/lsfconv/lib/lsresource"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Two cache writes of the same
// Resource produce byte-identical entries.
var encMode cbor.EncMode

// decMode is the CBOR decoder configured to accept standard CBOR.
var decMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	// uuid.UUID implements encoding.TextMarshaler/TextUnmarshaler;
	// encode it as a CBOR text string (its canonical hyphenated form)
	// rather than as a 16-element byte array, so a cache entry reads
	// the same GUID representation a human would see in LSX.
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("lsfcache: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("lsfcache: CBOR decoder initialization failed: " + err.Error())
	}
}

// cachedResource, cachedRegion and cachedNode mirror lib/lsresource's
// exported model with cbor tags; NodeAttribute is an interface, which
// CBOR cannot decode on its own, so each attribute is split into a
// type tag plus a type-specific payload (cachedAttribute).
type cachedResource struct {
	Metadata lsresource.Metadata `cbor:"metadata"`
	Regions  []cachedRegion      `cbor:"regions"`
}

type cachedRegion struct {
	Name string     `cbor:"name"`
	Root cachedNode `cbor:"root"`
}

type cachedNode struct {
	Name       string            `cbor:"name"`
	Attributes []cachedAttribute `cbor:"attributes,omitempty"`
	Children   []cachedNode      `cbor:"children,omitempty"`
}

type cachedAttribute struct {
	Key     string                   `cbor:"key"`
	Type    lsresource.AttributeType `cbor:"type"`
	Payload cbor.RawMessage          `cbor:"payload"`
}

// Marshal encodes res as a self-contained CBOR document.
func Marshal(res *lsresource.Resource) ([]byte, error) {
	doc := cachedResource{Metadata: res.Metadata}
	for _, region := range res.Regions {
		node, err := marshalNode(region.Root)
		if err != nil {
			return nil, fmt.Errorf("region %q: %w", region.Name, err)
		}
		doc.Regions = append(doc.Regions, cachedRegion{Name: region.Name, Root: node})
	}
	return encMode.Marshal(doc)
}

// Unmarshal decodes a CBOR document produced by [Marshal] back into a
// Resource.
func Unmarshal(data []byte) (*lsresource.Resource, error) {
	var doc cachedResource
	if err := decMode.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("lsfcache: malformed cache entry: %w", err)
	}

	res := &lsresource.Resource{Metadata: doc.Metadata}
	for _, region := range doc.Regions {
		root, err := unmarshalNode(region.Root)
		if err != nil {
			return nil, fmt.Errorf("region %q: %w", region.Name, err)
		}
		if err := res.AddRegion(&lsresource.Region{Name: region.Name, Root: root}); err != nil {
			return nil, fmt.Errorf("lsfcache: malformed cache entry: %w", err)
		}
	}
	return res, nil
}

func marshalNode(n *lsresource.Node) (cachedNode, error) {
	out := cachedNode{Name: n.Name}

	for _, attr := range n.Attributes {
		payload, err := encMode.Marshal(attributePayload(attr.Value))
		if err != nil {
			return cachedNode{}, fmt.Errorf("attribute %q: %w", attr.Key, err)
		}
		out.Attributes = append(out.Attributes, cachedAttribute{
			Key:     attr.Key,
			Type:    attr.Value.AttributeType(),
			Payload: payload,
		})
	}

	for _, child := range n.Children {
		childNode, err := marshalNode(child)
		if err != nil {
			return cachedNode{}, err
		}
		out.Children = append(out.Children, childNode)
	}

	return out, nil
}

func unmarshalNode(n cachedNode) (*lsresource.Node, error) {
	node := lsresource.NewNode(n.Name)

	for _, attr := range n.Attributes {
		value, err := decodeAttribute(attr.Type, attr.Payload)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", attr.Key, err)
		}
		node.SetAttribute(attr.Key, value)
	}

	for _, child := range n.Children {
		childNode, err := unmarshalNode(child)
		if err != nil {
			return nil, err
		}
		node.AddChild(childNode)
	}

	return node, nil
}

// attributePayload extracts the Go value CBOR should serialize for
// v. Scalars and fixed-size arrays serialize directly; the
// type-carrying wrapper (attrType) itself is never encoded, since the
// cachedAttribute.Type field already preserves the wire type id.
func attributePayload(v lsresource.NodeAttribute) any {
	switch v := v.(type) {
	case lsresource.NoneValue, lsresource.Unreadable:
		return nil
	case lsresource.ByteValue:
		return v.Value
	case lsresource.ShortValue:
		return v.Value
	case lsresource.UShortValue:
		return v.Value
	case lsresource.IntValue:
		return v.Value
	case lsresource.UIntValue:
		return v.Value
	case lsresource.FloatValue:
		return v.Value
	case lsresource.DoubleValue:
		return v.Value
	case lsresource.IVec2Value:
		return v.Value
	case lsresource.IVec3Value:
		return v.Value
	case lsresource.IVec4Value:
		return v.Value
	case lsresource.Vec2Value:
		return v.Value
	case lsresource.Vec3Value:
		return v.Value
	case lsresource.Vec4Value:
		return v.Value
	case lsresource.Mat2Value:
		return v.Value
	case lsresource.Mat3Value:
		return v.Value
	case lsresource.Mat4Value:
		return v.Value
	case lsresource.Mat3x4Value:
		return v.Value
	case lsresource.Mat4x3Value:
		return v.Value
	case lsresource.BoolValue:
		return v.Value
	case lsresource.StringValue:
		return v.Value
	case lsresource.PathValue:
		return v.Value
	case lsresource.FixedStringValue:
		return v.Value
	case lsresource.LSStringValue:
		return v.Value
	case lsresource.ULongLongValue:
		return v.Value
	case lsresource.ScratchBufferValue:
		return v.Value
	case lsresource.LongValue:
		return v.Value
	case lsresource.Int8Value:
		return v.Value
	case lsresource.WStringValue:
		return v.Value
	case lsresource.LSWStringValue:
		return v.Value
	case lsresource.UUIDValue:
		return v.Value
	case lsresource.Int64Value:
		return v.Value
	case lsresource.TranslatedStringValue:
		return translatedPayload{Version: v.Version, Value: v.Value, Handle: v.Handle}
	case lsresource.TranslatedFSStringValue:
		args := make([]fsArgumentPayload, len(v.Arguments))
		for i, arg := range v.Arguments {
			args[i] = fsArgumentPayload{
				Key:     arg.Key,
				Payload: translatedPayload{Version: arg.Value.Version, Value: arg.Value.Value, Handle: arg.Value.Handle},
			}
		}
		return translatedFSPayload{Version: v.Version, Value: v.Value, Handle: v.Handle, Arguments: args}
	default:
		return nil
	}
}

type translatedPayload struct {
	Version uint32 `cbor:"version"`
	Value   string `cbor:"value"`
	Handle  string `cbor:"handle"`
}

type fsArgumentPayload struct {
	Key     string             `cbor:"key"`
	Payload translatedPayload `cbor:"payload"`
}

type translatedFSPayload struct {
	Version   uint32              `cbor:"version"`
	Value     string              `cbor:"value"`
	Handle    string              `cbor:"handle"`
	Arguments []fsArgumentPayload `cbor:"arguments,omitempty"`
}

func decodeAttribute(typ lsresource.AttributeType, payload cbor.RawMessage) (lsresource.NodeAttribute, error) {
	switch typ {
	case lsresource.TypeNone:
		return lsresource.None(), nil
	case lsresource.TypeByte:
		var v uint8
		err := decMode.Unmarshal(payload, &v)
		return lsresource.Byte(v), err
	case lsresource.TypeShort:
		var v int16
		err := decMode.Unmarshal(payload, &v)
		return lsresource.Short(v), err
	case lsresource.TypeUShort:
		var v uint16
		err := decMode.Unmarshal(payload, &v)
		return lsresource.UShort(v), err
	case lsresource.TypeInt:
		var v int32
		err := decMode.Unmarshal(payload, &v)
		return lsresource.Int(v), err
	case lsresource.TypeUInt:
		var v uint32
		err := decMode.Unmarshal(payload, &v)
		return lsresource.UInt(v), err
	case lsresource.TypeFloat:
		var v float32
		err := decMode.Unmarshal(payload, &v)
		return lsresource.Float(v), err
	case lsresource.TypeDouble:
		var v float64
		err := decMode.Unmarshal(payload, &v)
		return lsresource.Double(v), err
	case lsresource.TypeIVec2:
		var v [2]int32
		err := decMode.Unmarshal(payload, &v)
		return lsresource.IVec2(v), err
	case lsresource.TypeIVec3:
		var v [3]int32
		err := decMode.Unmarshal(payload, &v)
		return lsresource.IVec3(v), err
	case lsresource.TypeIVec4:
		var v [4]int32
		err := decMode.Unmarshal(payload, &v)
		return lsresource.IVec4(v), err
	case lsresource.TypeVec2:
		var v [2]float32
		err := decMode.Unmarshal(payload, &v)
		return lsresource.Vec2(v), err
	case lsresource.TypeVec3:
		var v [3]float32
		err := decMode.Unmarshal(payload, &v)
		return lsresource.Vec3(v), err
	case lsresource.TypeVec4:
		var v [4]float32
		err := decMode.Unmarshal(payload, &v)
		return lsresource.Vec4(v), err
	case lsresource.TypeMat2:
		var v [4]float32
		err := decMode.Unmarshal(payload, &v)
		return lsresource.Mat2(v), err
	case lsresource.TypeMat3:
		var v [9]float32
		err := decMode.Unmarshal(payload, &v)
		return lsresource.Mat3(v), err
	case lsresource.TypeMat4:
		var v [16]float32
		err := decMode.Unmarshal(payload, &v)
		return lsresource.Mat4(v), err
	case lsresource.TypeMat3x4:
		var v [12]float32
		err := decMode.Unmarshal(payload, &v)
		return lsresource.Mat3x4(v), err
	case lsresource.TypeMat4x3:
		var v [12]float32
		err := decMode.Unmarshal(payload, &v)
		return lsresource.Mat4x3(v), err
	case lsresource.TypeBool:
		var v bool
		err := decMode.Unmarshal(payload, &v)
		return lsresource.Bool(v), err
	case lsresource.TypeString:
		var v string
		err := decMode.Unmarshal(payload, &v)
		return lsresource.String(v), err
	case lsresource.TypePath:
		var v string
		err := decMode.Unmarshal(payload, &v)
		return lsresource.Path(v), err
	case lsresource.TypeFixedString:
		var v string
		err := decMode.Unmarshal(payload, &v)
		return lsresource.FixedString(v), err
	case lsresource.TypeLSString:
		var v string
		err := decMode.Unmarshal(payload, &v)
		return lsresource.LSString(v), err
	case lsresource.TypeULongLong:
		var v uint64
		err := decMode.Unmarshal(payload, &v)
		return lsresource.ULongLong(v), err
	case lsresource.TypeScratchBuffer:
		var v []byte
		err := decMode.Unmarshal(payload, &v)
		return lsresource.ScratchBuffer(v), err
	case lsresource.TypeLong:
		var v int64
		err := decMode.Unmarshal(payload, &v)
		return lsresource.Long(v), err
	case lsresource.TypeInt8:
		var v int8
		err := decMode.Unmarshal(payload, &v)
		return lsresource.Int8(v), err
	case lsresource.TypeWString:
		var v string
		err := decMode.Unmarshal(payload, &v)
		return lsresource.WString(v), err
	case lsresource.TypeLSWString:
		var v string
		err := decMode.Unmarshal(payload, &v)
		return lsresource.LSWString(v), err
	case lsresource.TypeUUID:
		var v uuid.UUID
		err := decMode.Unmarshal(payload, &v)
		return lsresource.UUIDOf(v), err
	case lsresource.TypeInt64:
		var v int64
		err := decMode.Unmarshal(payload, &v)
		return lsresource.Int64(v), err
	case lsresource.TypeTranslatedString:
		var v translatedPayload
		err := decMode.Unmarshal(payload, &v)
		return lsresource.TranslatedString(v.Version, v.Value, v.Handle), err
	case lsresource.TypeTranslatedFSString:
		var v translatedFSPayload
		if err := decMode.Unmarshal(payload, &v); err != nil {
			return nil, err
		}
		args := make([]lsresource.TranslatedFSStringArgument, len(v.Arguments))
		for i, arg := range v.Arguments {
			args[i] = lsresource.TranslatedFSStringArgument{
				Key:   arg.Key,
				Value: lsresource.TranslatedString(arg.Payload.Version, arg.Payload.Value, arg.Payload.Handle),
			}
		}
		return lsresource.TranslatedFSString(v.Version, v.Value, v.Handle, args), nil
	default:
		return lsresource.NewUnreadable(typ), nil
	}
}
