// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsx

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/larris-tools/lsfconv/lib/lsresource"
)

// formatValue renders v as the text an <attribute value="..."> holds.
// Vectors and matrices are space-separated components in row-major
// order; booleans are "True"/"False"; ScratchBuffer is standard
// base64; TranslatedString/TranslatedFSString are "value;handle" —
// the version tag and, for TranslatedFSString, the argument list have
// no counterpart in this text form and do not survive an LSX round
// trip (see DESIGN.md).
func formatValue(v lsresource.NodeAttribute) (string, error) {
	switch a := v.(type) {
	case lsresource.NoneValue, lsresource.Unreadable:
		return "", nil
	case lsresource.ByteValue:
		return strconv.FormatUint(uint64(a.Value), 10), nil
	case lsresource.ShortValue:
		return strconv.FormatInt(int64(a.Value), 10), nil
	case lsresource.UShortValue:
		return strconv.FormatUint(uint64(a.Value), 10), nil
	case lsresource.IntValue:
		return strconv.FormatInt(int64(a.Value), 10), nil
	case lsresource.UIntValue:
		return strconv.FormatUint(uint64(a.Value), 10), nil
	case lsresource.FloatValue:
		return strconv.FormatFloat(float64(a.Value), 'g', -1, 32), nil
	case lsresource.DoubleValue:
		return strconv.FormatFloat(a.Value, 'g', -1, 64), nil
	case lsresource.IVec2Value:
		return formatInts(a.Value[:]), nil
	case lsresource.IVec3Value:
		return formatInts(a.Value[:]), nil
	case lsresource.IVec4Value:
		return formatInts(a.Value[:]), nil
	case lsresource.Vec2Value:
		return formatFloats(a.Value[:]), nil
	case lsresource.Vec3Value:
		return formatFloats(a.Value[:]), nil
	case lsresource.Vec4Value:
		return formatFloats(a.Value[:]), nil
	case lsresource.Mat2Value:
		return formatFloats(a.Value[:]), nil
	case lsresource.Mat3Value:
		return formatFloats(a.Value[:]), nil
	case lsresource.Mat4Value:
		return formatFloats(a.Value[:]), nil
	case lsresource.Mat3x4Value:
		return formatFloats(a.Value[:]), nil
	case lsresource.Mat4x3Value:
		return formatFloats(a.Value[:]), nil
	case lsresource.BoolValue:
		if a.Value {
			return "True", nil
		}
		return "False", nil
	case lsresource.StringValue:
		return a.Value, nil
	case lsresource.PathValue:
		return a.Value, nil
	case lsresource.FixedStringValue:
		return a.Value, nil
	case lsresource.LSStringValue:
		return a.Value, nil
	case lsresource.ULongLongValue:
		return strconv.FormatUint(a.Value, 10), nil
	case lsresource.ScratchBufferValue:
		return base64.StdEncoding.EncodeToString(a.Value), nil
	case lsresource.LongValue:
		return strconv.FormatInt(a.Value, 10), nil
	case lsresource.Int8Value:
		return strconv.FormatInt(int64(a.Value), 10), nil
	case lsresource.WStringValue:
		return a.Value, nil
	case lsresource.LSWStringValue:
		return a.Value, nil
	case lsresource.UUIDValue:
		return a.Value.String(), nil
	case lsresource.Int64Value:
		return strconv.FormatInt(a.Value, 10), nil
	case lsresource.TranslatedStringValue:
		return a.Value + ";" + a.Handle, nil
	case lsresource.TranslatedFSStringValue:
		return a.Value + ";" + a.Handle, nil
	default:
		return "", fmt.Errorf("%w: %T", ErrEncode, v)
	}
}

func formatInts(v []int32) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatInt(int64(x), 10)
	}
	return strings.Join(parts, " ")
}

func formatFloats(v []float32) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(float64(x), 'g', -1, 32)
	}
	return strings.Join(parts, " ")
}

// parseValue decodes s into a NodeAttribute of type typ, the inverse
// of formatValue.
func parseValue(typ lsresource.AttributeType, s string) (lsresource.NodeAttribute, error) {
	switch typ {
	case lsresource.TypeNone:
		return lsresource.None(), nil
	case lsresource.TypeByte:
		v, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return nil, malformed(typ, s, err)
		}
		return lsresource.Byte(uint8(v)), nil
	case lsresource.TypeShort:
		v, err := strconv.ParseInt(s, 10, 16)
		if err != nil {
			return nil, malformed(typ, s, err)
		}
		return lsresource.Short(int16(v)), nil
	case lsresource.TypeUShort:
		v, err := strconv.ParseUint(s, 10, 16)
		if err != nil {
			return nil, malformed(typ, s, err)
		}
		return lsresource.UShort(uint16(v)), nil
	case lsresource.TypeInt:
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, malformed(typ, s, err)
		}
		return lsresource.Int(int32(v)), nil
	case lsresource.TypeUInt:
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, malformed(typ, s, err)
		}
		return lsresource.UInt(uint32(v)), nil
	case lsresource.TypeFloat:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, malformed(typ, s, err)
		}
		return lsresource.Float(float32(v)), nil
	case lsresource.TypeDouble:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, malformed(typ, s, err)
		}
		return lsresource.Double(v), nil
	case lsresource.TypeIVec2:
		v, err := parseInts(typ, s, 2)
		if err != nil {
			return nil, err
		}
		return lsresource.IVec2([2]int32{v[0], v[1]}), nil
	case lsresource.TypeIVec3:
		v, err := parseInts(typ, s, 3)
		if err != nil {
			return nil, err
		}
		return lsresource.IVec3([3]int32{v[0], v[1], v[2]}), nil
	case lsresource.TypeIVec4:
		v, err := parseInts(typ, s, 4)
		if err != nil {
			return nil, err
		}
		return lsresource.IVec4([4]int32{v[0], v[1], v[2], v[3]}), nil
	case lsresource.TypeVec2:
		v, err := parseFloats(typ, s, 2)
		if err != nil {
			return nil, err
		}
		return lsresource.Vec2([2]float32{v[0], v[1]}), nil
	case lsresource.TypeVec3:
		v, err := parseFloats(typ, s, 3)
		if err != nil {
			return nil, err
		}
		return lsresource.Vec3([3]float32{v[0], v[1], v[2]}), nil
	case lsresource.TypeVec4:
		v, err := parseFloats(typ, s, 4)
		if err != nil {
			return nil, err
		}
		return lsresource.Vec4([4]float32{v[0], v[1], v[2], v[3]}), nil
	case lsresource.TypeMat2:
		v, err := parseFloats(typ, s, 4)
		if err != nil {
			return nil, err
		}
		return lsresource.Mat2([4]float32{v[0], v[1], v[2], v[3]}), nil
	case lsresource.TypeMat3:
		v, err := parseFloats(typ, s, 9)
		if err != nil {
			return nil, err
		}
		var arr [9]float32
		copy(arr[:], v)
		return lsresource.Mat3(arr), nil
	case lsresource.TypeMat4:
		v, err := parseFloats(typ, s, 16)
		if err != nil {
			return nil, err
		}
		var arr [16]float32
		copy(arr[:], v)
		return lsresource.Mat4(arr), nil
	case lsresource.TypeMat3x4:
		v, err := parseFloats(typ, s, 12)
		if err != nil {
			return nil, err
		}
		var arr [12]float32
		copy(arr[:], v)
		return lsresource.Mat3x4(arr), nil
	case lsresource.TypeMat4x3:
		v, err := parseFloats(typ, s, 12)
		if err != nil {
			return nil, err
		}
		var arr [12]float32
		copy(arr[:], v)
		return lsresource.Mat4x3(arr), nil
	case lsresource.TypeBool:
		return lsresource.Bool(s == "True" || s == "true" || s == "1"), nil
	case lsresource.TypeString:
		return lsresource.String(s), nil
	case lsresource.TypePath:
		return lsresource.Path(s), nil
	case lsresource.TypeFixedString:
		return lsresource.FixedString(s), nil
	case lsresource.TypeLSString:
		return lsresource.LSString(s), nil
	case lsresource.TypeULongLong:
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, malformed(typ, s, err)
		}
		return lsresource.ULongLong(v), nil
	case lsresource.TypeScratchBuffer:
		v, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, malformed(typ, s, err)
		}
		return lsresource.ScratchBuffer(v), nil
	case lsresource.TypeLong:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, malformed(typ, s, err)
		}
		return lsresource.Long(v), nil
	case lsresource.TypeInt8:
		v, err := strconv.ParseInt(s, 10, 8)
		if err != nil {
			return nil, malformed(typ, s, err)
		}
		return lsresource.Int8(int8(v)), nil
	case lsresource.TypeWString:
		return lsresource.WString(s), nil
	case lsresource.TypeLSWString:
		return lsresource.LSWString(s), nil
	case lsresource.TypeUUID:
		v, err := uuid.Parse(s)
		if err != nil {
			return nil, malformed(typ, s, err)
		}
		return lsresource.UUIDOf(v), nil
	case lsresource.TypeInt64:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, malformed(typ, s, err)
		}
		return lsresource.Int64(v), nil
	case lsresource.TypeTranslatedString:
		value, handle := splitTranslated(s)
		return lsresource.TranslatedString(1, value, handle), nil
	case lsresource.TypeTranslatedFSString:
		value, handle := splitTranslated(s)
		return lsresource.TranslatedFSString(1, value, handle, nil), nil
	default:
		return nil, fmt.Errorf("%w: type id %d", ErrUnknownType, typ)
	}
}

func splitTranslated(s string) (value, handle string) {
	value, handle, _ = strings.Cut(s, ";")
	return value, handle
}

func parseInts(typ lsresource.AttributeType, s string, want int) ([]int32, error) {
	fields := strings.Fields(s)
	if len(fields) != want {
		return nil, fmt.Errorf("%w: %s needs %d space-separated values, got %d", ErrMalformedValue, typ, want, len(fields))
	}
	out := make([]int32, want)
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return nil, malformed(typ, s, err)
		}
		out[i] = int32(v)
	}
	return out, nil
}

func parseFloats(typ lsresource.AttributeType, s string, want int) ([]float32, error) {
	fields := strings.Fields(s)
	if len(fields) != want {
		return nil, fmt.Errorf("%w: %s needs %d space-separated values, got %d", ErrMalformedValue, typ, want, len(fields))
	}
	out := make([]float32, want)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, malformed(typ, s, err)
		}
		out[i] = float32(v)
	}
	return out, nil
}

func malformed(typ lsresource.AttributeType, s string, err error) error {
	return fmt.Errorf("%w: %s value %q: %v", ErrMalformedValue, typ, s, err)
}
