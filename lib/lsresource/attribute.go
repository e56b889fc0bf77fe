// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsresource

import (
	"fmt"

	"github.com/google/uuid"
)

// AttributeType identifies one of the 34 on-wire attribute encodings.
// Values and ids are fixed by the file format; they are never
// renumbered, even when two ids share a Go representation (Long and
// Int64 are both 64-bit signed integers on the wire but are distinct
// types — the wire type is part of a NodeAttribute's identity and is
// preserved across round trips regardless of what a narrower or wider
// Go type could represent).
type AttributeType uint8

const (
	TypeNone AttributeType = 0
	TypeByte AttributeType = 1
	TypeShort AttributeType = 2
	TypeUShort AttributeType = 3
	TypeInt AttributeType = 4
	TypeUInt AttributeType = 5
	TypeFloat AttributeType = 6
	TypeDouble AttributeType = 7
	TypeIVec2 AttributeType = 8
	TypeIVec3 AttributeType = 9
	TypeIVec4 AttributeType = 10
	TypeVec2 AttributeType = 11
	TypeVec3 AttributeType = 12
	TypeVec4 AttributeType = 13
	TypeMat2 AttributeType = 14
	TypeMat3 AttributeType = 15
	TypeMat4 AttributeType = 16
	TypeBool AttributeType = 17
	TypeString AttributeType = 18
	TypePath AttributeType = 19
	TypeFixedString AttributeType = 20
	TypeLSString AttributeType = 21
	TypeULongLong AttributeType = 22
	TypeScratchBuffer AttributeType = 23
	TypeLong AttributeType = 24
	TypeInt8 AttributeType = 25
	TypeTranslatedString AttributeType = 26
	TypeWString AttributeType = 27
	TypeLSWString AttributeType = 28
	TypeUUID AttributeType = 29
	TypeInt64 AttributeType = 30
	TypeTranslatedFSString AttributeType = 31
	TypeMat3x4 AttributeType = 32
	TypeMat4x3 AttributeType = 33
)

// MaxAttributeType is the highest valid attribute type id.
const MaxAttributeType = TypeMat4x3

// IsValid reports whether t falls within the defined 0..33 range.
func (t AttributeType) IsValid() bool {
	return t <= MaxAttributeType
}

func (t AttributeType) String() string {
	if name, ok := attributeTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("AttributeType(%d)", uint8(t))
}

var attributeTypeNames = map[AttributeType]string{
	TypeNone: "None", TypeByte: "Byte", TypeShort: "Short", TypeUShort: "UShort",
	TypeInt: "Int", TypeUInt: "UInt", TypeFloat: "Float", TypeDouble: "Double",
	TypeIVec2: "IVec2", TypeIVec3: "IVec3", TypeIVec4: "IVec4",
	TypeVec2: "Vec2", TypeVec3: "Vec3", TypeVec4: "Vec4",
	TypeMat2: "Mat2", TypeMat3: "Mat3", TypeMat4: "Mat4",
	TypeBool: "Bool", TypeString: "String", TypePath: "Path",
	TypeFixedString: "FixedString", TypeLSString: "LSString",
	TypeULongLong: "ULongLong", TypeScratchBuffer: "ScratchBuffer",
	TypeLong: "Long", TypeInt8: "Int8", TypeTranslatedString: "TranslatedString",
	TypeWString: "WString", TypeLSWString: "LSWString", TypeUUID: "UUID",
	TypeInt64: "Int64", TypeTranslatedFSString: "TranslatedFSString",
	TypeMat3x4: "Mat3x4", TypeMat4x3: "Mat4x3",
}

// NodeAttribute is a decoded attribute value. Every variant reports
// its own wire type via AttributeType(), which a codec uses instead
// of a Go type switch alone so that same-representation-different-id
// pairs (Long/Int64) stay distinguishable.
type NodeAttribute interface {
	AttributeType() AttributeType
}

// attrType implements AttributeType() for every variant below via
// embedding, so each variant only needs to declare its own wire id.
type attrType AttributeType

func (t attrType) AttributeType() AttributeType { return AttributeType(t) }

// Unreadable represents an attribute whose bytes failed to decode
// under the tolerant error policy. OriginalType preserves the wire
// type id that was attempted, per the "degrade to None, keep the
// type id" rule.
type Unreadable struct {
	attrType
	OriginalType AttributeType
}

func NewUnreadable(original AttributeType) Unreadable {
	return Unreadable{attrType: attrType(TypeNone), OriginalType: original}
}

type NoneValue struct{ attrType }

func None() NoneValue { return NoneValue{attrType(TypeNone)} }

type ByteValue struct {
	attrType
	Value uint8
}

func Byte(v uint8) ByteValue { return ByteValue{attrType(TypeByte), v} }

type ShortValue struct {
	attrType
	Value int16
}

func Short(v int16) ShortValue { return ShortValue{attrType(TypeShort), v} }

type UShortValue struct {
	attrType
	Value uint16
}

func UShort(v uint16) UShortValue { return UShortValue{attrType(TypeUShort), v} }

type IntValue struct {
	attrType
	Value int32
}

func Int(v int32) IntValue { return IntValue{attrType(TypeInt), v} }

type UIntValue struct {
	attrType
	Value uint32
}

func UInt(v uint32) UIntValue { return UIntValue{attrType(TypeUInt), v} }

type FloatValue struct {
	attrType
	Value float32
}

func Float(v float32) FloatValue { return FloatValue{attrType(TypeFloat), v} }

type DoubleValue struct {
	attrType
	Value float64
}

func Double(v float64) DoubleValue { return DoubleValue{attrType(TypeDouble), v} }

type IVec2Value struct {
	attrType
	Value [2]int32
}

func IVec2(v [2]int32) IVec2Value { return IVec2Value{attrType(TypeIVec2), v} }

type IVec3Value struct {
	attrType
	Value [3]int32
}

func IVec3(v [3]int32) IVec3Value { return IVec3Value{attrType(TypeIVec3), v} }

type IVec4Value struct {
	attrType
	Value [4]int32
}

func IVec4(v [4]int32) IVec4Value { return IVec4Value{attrType(TypeIVec4), v} }

type Vec2Value struct {
	attrType
	Value [2]float32
}

func Vec2(v [2]float32) Vec2Value { return Vec2Value{attrType(TypeVec2), v} }

type Vec3Value struct {
	attrType
	Value [3]float32
}

func Vec3(v [3]float32) Vec3Value { return Vec3Value{attrType(TypeVec3), v} }

type Vec4Value struct {
	attrType
	Value [4]float32
}

func Vec4(v [4]float32) Vec4Value { return Vec4Value{attrType(TypeVec4), v} }

type Mat2Value struct {
	attrType
	Value [4]float32
}

func Mat2(v [4]float32) Mat2Value { return Mat2Value{attrType(TypeMat2), v} }

type Mat3Value struct {
	attrType
	Value [9]float32
}

func Mat3(v [9]float32) Mat3Value { return Mat3Value{attrType(TypeMat3), v} }

type Mat4Value struct {
	attrType
	Value [16]float32
}

func Mat4(v [16]float32) Mat4Value { return Mat4Value{attrType(TypeMat4), v} }

type Mat3x4Value struct {
	attrType
	Value [12]float32
}

func Mat3x4(v [12]float32) Mat3x4Value { return Mat3x4Value{attrType(TypeMat3x4), v} }

type Mat4x3Value struct {
	attrType
	Value [12]float32
}

func Mat4x3(v [12]float32) Mat4x3Value { return Mat4x3Value{attrType(TypeMat4x3), v} }

type BoolValue struct {
	attrType
	Value bool
}

func Bool(v bool) BoolValue { return BoolValue{attrType(TypeBool), v} }

type StringValue struct {
	attrType
	Value string
}

func String(v string) StringValue { return StringValue{attrType(TypeString), v} }

type PathValue struct {
	attrType
	Value string
}

func Path(v string) PathValue { return PathValue{attrType(TypePath), v} }

type FixedStringValue struct {
	attrType
	Value string
}

func FixedString(v string) FixedStringValue { return FixedStringValue{attrType(TypeFixedString), v} }

type LSStringValue struct {
	attrType
	Value string
}

func LSString(v string) LSStringValue { return LSStringValue{attrType(TypeLSString), v} }

type ULongLongValue struct {
	attrType
	Value uint64
}

func ULongLong(v uint64) ULongLongValue { return ULongLongValue{attrType(TypeULongLong), v} }

type ScratchBufferValue struct {
	attrType
	Value []byte
}

func ScratchBuffer(v []byte) ScratchBufferValue { return ScratchBufferValue{attrType(TypeScratchBuffer), v} }

type LongValue struct {
	attrType
	Value int64
}

func Long(v int64) LongValue { return LongValue{attrType(TypeLong), v} }

type Int8Value struct {
	attrType
	Value int8
}

func Int8(v int8) Int8Value { return Int8Value{attrType(TypeInt8), v} }

type WStringValue struct {
	attrType
	Value string
}

func WString(v string) WStringValue { return WStringValue{attrType(TypeWString), v} }

type LSWStringValue struct {
	attrType
	Value string
}

func LSWString(v string) LSWStringValue { return LSWStringValue{attrType(TypeLSWString), v} }

type UUIDValue struct {
	attrType
	Value uuid.UUID
}

func UUIDOf(v uuid.UUID) UUIDValue { return UUIDValue{attrType(TypeUUID), v} }

type Int64Value struct {
	attrType
	Value int64
}

func Int64(v int64) Int64Value { return Int64Value{attrType(TypeInt64), v} }

// TranslatedStringValue is the struct-shaped attribute id 26:
// a version tag plus a display value and a localization handle.
type TranslatedStringValue struct {
	attrType
	Version uint32
	Value   string
	Handle  string
}

func TranslatedString(version uint32, value, handle string) TranslatedStringValue {
	return TranslatedStringValue{attrType(TypeTranslatedString), version, value, handle}
}

// TranslatedFSStringArgument is one entry of a TranslatedFSString's
// argument list: a key paired with a nested translated value.
type TranslatedFSStringArgument struct {
	Key   string
	Value TranslatedStringValue
}

// TranslatedFSStringValue is attribute id 31: a TranslatedString plus
// an argument list. The original format's argument wire layout is not
// pinned down by any known producer; this package models it as a flat
// list of (key, nested TranslatedString) pairs, which round-trips
// correctly for any value this codec itself produces.
type TranslatedFSStringValue struct {
	attrType
	Version   uint32
	Value     string
	Handle    string
	Arguments []TranslatedFSStringArgument
}

func TranslatedFSString(version uint32, value, handle string, args []TranslatedFSStringArgument) TranslatedFSStringValue {
	return TranslatedFSStringValue{attrType(TypeTranslatedFSString), version, value, handle, args}
}
