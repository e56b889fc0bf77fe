// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf16"

	"github.com/google/uuid"

	"github.com/larris-tools/lsfconv/lib/lsresource"
)

// encodeAttributeValue renders v's payload as it appears in the
// Values chunk. Fixed-size scalars, vectors, and matrices need no
// internal delimiter — the attribute entry's (offset, length) pair is
// the only bound. Every variable-length type (the string and buffer
// kinds, plus TranslatedString/TranslatedFSString) carries its own
// internal u32 length prefix ahead of its payload, per the attribute
// table's "length-prefixed" wire format; the entry's own length then
// covers the prefix plus the payload.
func encodeAttributeValue(v lsresource.NodeAttribute) ([]byte, error) {
	switch a := v.(type) {
	case lsresource.NoneValue, lsresource.Unreadable:
		return nil, nil

	case lsresource.ByteValue:
		return []byte{a.Value}, nil
	case lsresource.Int8Value:
		return []byte{byte(a.Value)}, nil
	case lsresource.BoolValue:
		if a.Value {
			return []byte{1}, nil
		}
		return []byte{0}, nil

	case lsresource.ShortValue:
		return leUint16(uint16(a.Value)), nil
	case lsresource.UShortValue:
		return leUint16(a.Value), nil

	case lsresource.IntValue:
		return leUint32(uint32(a.Value)), nil
	case lsresource.UIntValue:
		return leUint32(a.Value), nil
	case lsresource.FloatValue:
		return leUint32(math.Float32bits(a.Value)), nil

	case lsresource.ULongLongValue:
		return leUint64(a.Value), nil
	case lsresource.LongValue:
		return leUint64(uint64(a.Value)), nil
	case lsresource.Int64Value:
		return leUint64(uint64(a.Value)), nil
	case lsresource.DoubleValue:
		return leUint64(math.Float64bits(a.Value)), nil

	case lsresource.IVec2Value:
		return encodeInt32s(a.Value[:]), nil
	case lsresource.IVec3Value:
		return encodeInt32s(a.Value[:]), nil
	case lsresource.IVec4Value:
		return encodeInt32s(a.Value[:]), nil
	case lsresource.Vec2Value:
		return encodeFloat32s(a.Value[:]), nil
	case lsresource.Vec3Value:
		return encodeFloat32s(a.Value[:]), nil
	case lsresource.Vec4Value:
		return encodeFloat32s(a.Value[:]), nil
	case lsresource.Mat2Value:
		return encodeFloat32s(a.Value[:]), nil
	case lsresource.Mat3Value:
		return encodeFloat32s(a.Value[:]), nil
	case lsresource.Mat4Value:
		return encodeFloat32s(a.Value[:]), nil
	case lsresource.Mat3x4Value:
		return encodeFloat32s(a.Value[:]), nil
	case lsresource.Mat4x3Value:
		return encodeFloat32s(a.Value[:]), nil

	case lsresource.StringValue:
		return encodeLengthPrefixedBytes([]byte(a.Value)), nil
	case lsresource.PathValue:
		return encodeLengthPrefixedBytes([]byte(a.Value)), nil
	case lsresource.FixedStringValue:
		return encodeLengthPrefixedBytes([]byte(a.Value)), nil
	case lsresource.LSStringValue:
		return encodeLengthPrefixedBytes([]byte(a.Value)), nil
	case lsresource.ScratchBufferValue:
		return encodeLengthPrefixedBytes(a.Value), nil

	case lsresource.WStringValue:
		return encodeLengthPrefixedBytes(encodeUTF16(a.Value)), nil
	case lsresource.LSWStringValue:
		return encodeLengthPrefixedBytes(encodeUTF16(a.Value)), nil

	case lsresource.UUIDValue:
		wire := swapUUID(a.Value)
		return wire[:], nil

	case lsresource.TranslatedStringValue:
		var buf bytes.Buffer
		encodeTranslatedStringBody(&buf, a)
		return buf.Bytes(), nil

	case lsresource.TranslatedFSStringValue:
		var buf bytes.Buffer
		encodeTranslatedStringBody(&buf, lsresource.TranslatedString(a.Version, a.Value, a.Handle))
		encodeUint32(&buf, uint32(len(a.Arguments)))
		for _, arg := range a.Arguments {
			encodeLengthPrefixed(&buf, arg.Key)
			encodeTranslatedStringBody(&buf, arg.Value)
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("%w: no encoder for %T", ErrEncode, v)
	}
}

// decodeAttributeValue parses data (the attribute's Values-chunk
// slice, already isolated by offset and length) under typ.
func decodeAttributeValue(typ lsresource.AttributeType, data []byte) (lsresource.NodeAttribute, error) {
	switch typ {
	case lsresource.TypeNone:
		return lsresource.None(), nil

	case lsresource.TypeByte:
		if err := requireLen(data, 1, typ); err != nil {
			return nil, err
		}
		return lsresource.Byte(data[0]), nil
	case lsresource.TypeInt8:
		if err := requireLen(data, 1, typ); err != nil {
			return nil, err
		}
		return lsresource.Int8(int8(data[0])), nil
	case lsresource.TypeBool:
		if err := requireLen(data, 1, typ); err != nil {
			return nil, err
		}
		return lsresource.Bool(data[0] != 0), nil

	case lsresource.TypeShort:
		if err := requireLen(data, 2, typ); err != nil {
			return nil, err
		}
		return lsresource.Short(int16(binary.LittleEndian.Uint16(data))), nil
	case lsresource.TypeUShort:
		if err := requireLen(data, 2, typ); err != nil {
			return nil, err
		}
		return lsresource.UShort(binary.LittleEndian.Uint16(data)), nil

	case lsresource.TypeInt:
		if err := requireLen(data, 4, typ); err != nil {
			return nil, err
		}
		return lsresource.Int(int32(binary.LittleEndian.Uint32(data))), nil
	case lsresource.TypeUInt:
		if err := requireLen(data, 4, typ); err != nil {
			return nil, err
		}
		return lsresource.UInt(binary.LittleEndian.Uint32(data)), nil
	case lsresource.TypeFloat:
		if err := requireLen(data, 4, typ); err != nil {
			return nil, err
		}
		return lsresource.Float(math.Float32frombits(binary.LittleEndian.Uint32(data))), nil

	case lsresource.TypeULongLong:
		if err := requireLen(data, 8, typ); err != nil {
			return nil, err
		}
		return lsresource.ULongLong(binary.LittleEndian.Uint64(data)), nil
	case lsresource.TypeLong:
		if err := requireLen(data, 8, typ); err != nil {
			return nil, err
		}
		return lsresource.Long(int64(binary.LittleEndian.Uint64(data))), nil
	case lsresource.TypeInt64:
		if err := requireLen(data, 8, typ); err != nil {
			return nil, err
		}
		return lsresource.Int64(int64(binary.LittleEndian.Uint64(data))), nil
	case lsresource.TypeDouble:
		if err := requireLen(data, 8, typ); err != nil {
			return nil, err
		}
		return lsresource.Double(math.Float64frombits(binary.LittleEndian.Uint64(data))), nil

	case lsresource.TypeIVec2:
		v, err := decodeInt32s(data, 2, typ)
		if err != nil {
			return nil, err
		}
		return lsresource.IVec2([2]int32{v[0], v[1]}), nil
	case lsresource.TypeIVec3:
		v, err := decodeInt32s(data, 3, typ)
		if err != nil {
			return nil, err
		}
		return lsresource.IVec3([3]int32{v[0], v[1], v[2]}), nil
	case lsresource.TypeIVec4:
		v, err := decodeInt32s(data, 4, typ)
		if err != nil {
			return nil, err
		}
		return lsresource.IVec4([4]int32{v[0], v[1], v[2], v[3]}), nil

	case lsresource.TypeVec2:
		v, err := decodeFloat32s(data, 2, typ)
		if err != nil {
			return nil, err
		}
		return lsresource.Vec2([2]float32{v[0], v[1]}), nil
	case lsresource.TypeVec3:
		v, err := decodeFloat32s(data, 3, typ)
		if err != nil {
			return nil, err
		}
		return lsresource.Vec3([3]float32{v[0], v[1], v[2]}), nil
	case lsresource.TypeVec4:
		v, err := decodeFloat32s(data, 4, typ)
		if err != nil {
			return nil, err
		}
		return lsresource.Vec4([4]float32{v[0], v[1], v[2], v[3]}), nil

	case lsresource.TypeMat2:
		v, err := decodeFloat32s(data, 4, typ)
		if err != nil {
			return nil, err
		}
		return lsresource.Mat2([4]float32{v[0], v[1], v[2], v[3]}), nil
	case lsresource.TypeMat3:
		v, err := decodeFloat32s(data, 9, typ)
		if err != nil {
			return nil, err
		}
		var arr [9]float32
		copy(arr[:], v)
		return lsresource.Mat3(arr), nil
	case lsresource.TypeMat4:
		v, err := decodeFloat32s(data, 16, typ)
		if err != nil {
			return nil, err
		}
		var arr [16]float32
		copy(arr[:], v)
		return lsresource.Mat4(arr), nil
	case lsresource.TypeMat3x4:
		v, err := decodeFloat32s(data, 12, typ)
		if err != nil {
			return nil, err
		}
		var arr [12]float32
		copy(arr[:], v)
		return lsresource.Mat3x4(arr), nil
	case lsresource.TypeMat4x3:
		v, err := decodeFloat32s(data, 12, typ)
		if err != nil {
			return nil, err
		}
		var arr [12]float32
		copy(arr[:], v)
		return lsresource.Mat4x3(arr), nil

	case lsresource.TypeString:
		v, err := decodeLengthPrefixedBytes(data, typ)
		if err != nil {
			return nil, err
		}
		return lsresource.String(string(v)), nil
	case lsresource.TypePath:
		v, err := decodeLengthPrefixedBytes(data, typ)
		if err != nil {
			return nil, err
		}
		return lsresource.Path(string(v)), nil
	case lsresource.TypeFixedString:
		v, err := decodeLengthPrefixedBytes(data, typ)
		if err != nil {
			return nil, err
		}
		return lsresource.FixedString(string(v)), nil
	case lsresource.TypeLSString:
		v, err := decodeLengthPrefixedBytes(data, typ)
		if err != nil {
			return nil, err
		}
		return lsresource.LSString(string(v)), nil
	case lsresource.TypeScratchBuffer:
		v, err := decodeLengthPrefixedBytes(data, typ)
		if err != nil {
			return nil, err
		}
		return lsresource.ScratchBuffer(v), nil

	case lsresource.TypeWString:
		v, err := decodeLengthPrefixedBytes(data, typ)
		if err != nil {
			return nil, err
		}
		return lsresource.WString(decodeUTF16(v)), nil
	case lsresource.TypeLSWString:
		v, err := decodeLengthPrefixedBytes(data, typ)
		if err != nil {
			return nil, err
		}
		return lsresource.LSWString(decodeUTF16(v)), nil

	case lsresource.TypeUUID:
		if err := requireLen(data, 16, typ); err != nil {
			return nil, err
		}
		var wire [16]byte
		copy(wire[:], data)
		return lsresource.UUIDOf(unswapUUID(wire)), nil

	case lsresource.TypeTranslatedString:
		r := bytes.NewReader(data)
		v, err := decodeTranslatedStringBody(r)
		if err != nil {
			return nil, err
		}
		return v, nil

	case lsresource.TypeTranslatedFSString:
		r := bytes.NewReader(data)
		base, err := decodeTranslatedStringBody(r)
		if err != nil {
			return nil, err
		}
		argCount, err := decodeUint32(r)
		if err != nil {
			return nil, fmt.Errorf("lsf: TranslatedFSString argument count: %w", err)
		}
		var args []lsresource.TranslatedFSStringArgument
		for i := uint32(0); i < argCount; i++ {
			key, err := decodeLengthPrefixed(r)
			if err != nil {
				return nil, fmt.Errorf("lsf: TranslatedFSString argument %d key: %w", i, err)
			}
			nested, err := decodeTranslatedStringBody(r)
			if err != nil {
				return nil, fmt.Errorf("lsf: TranslatedFSString argument %d value: %w", i, err)
			}
			args = append(args, lsresource.TranslatedFSStringArgument{Key: key, Value: nested})
		}
		return lsresource.TranslatedFSString(base.Version, base.Value, base.Handle, args), nil

	default:
		return nil, &unknownAttributeType{typeID: byte(typ)}
	}
}

func requireLen(data []byte, n int, typ lsresource.AttributeType) error {
	if len(data) != n {
		return fmt.Errorf("%w: %s value has %d bytes, want %d", ErrTruncated, typ, len(data), n)
	}
	return nil
}

func leUint16(v uint16) []byte {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, v)
	return buf
}

func leUint32(v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return buf
}

func leUint64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return buf
}

func encodeInt32s(values []int32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	return buf
}

func encodeFloat32s(values []float32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeInt32s(data []byte, count int, typ lsresource.AttributeType) ([]int32, error) {
	if err := requireLen(data, 4*count, typ); err != nil {
		return nil, err
	}
	out := make([]int32, count)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out, nil
}

func decodeFloat32s(data []byte, count int, typ lsresource.AttributeType) ([]float32, error) {
	if err := requireLen(data, 4*count, typ); err != nil {
		return nil, err
	}
	out := make([]float32, count)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out, nil
}

// encodeUTF16 renders s as raw little-endian UTF-16 code units,
// matching the engine's "wide" string types. There is no terminator
// and no byte-order mark; the caller wraps the result in the u32 byte
// count that encodeLengthPrefixedBytes adds.
func encodeUTF16(s string) []byte {
	units := utf16.Encode([]rune(s))
	buf := make([]byte, 2*len(units))
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[i*2:], u)
	}
	return buf
}

func decodeUTF16(data []byte) string {
	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(data[i*2:])
	}
	return string(utf16.Decode(units))
}

// swapUUID and unswapUUID implement the wire byte order demonstrated
// by this format's worked example: the first three groups of a
// standard RFC 4122 byte sequence (4, 2, and 2 bytes) are each
// reversed in place; the trailing 8-byte group is left unchanged.
// The transform is its own inverse; unswapUUID applies the same
// reversals to turn wire bytes back into a uuid.UUID.
func swapUUID(u uuid.UUID) [16]byte {
	var out [16]byte
	reverseInto(out[0:4], u[0:4])
	reverseInto(out[4:6], u[4:6])
	reverseInto(out[6:8], u[6:8])
	copy(out[8:16], u[8:16])
	return out
}

func unswapUUID(wire [16]byte) uuid.UUID {
	var out uuid.UUID
	reverseInto(out[0:4], wire[0:4])
	reverseInto(out[4:6], wire[4:6])
	reverseInto(out[6:8], wire[6:8])
	copy(out[8:16], wire[8:16])
	return out
}

func reverseInto(dst, src []byte) {
	for i := range src {
		dst[i] = src[len(src)-1-i]
	}
}

func encodeUint32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func decodeUint32(r *bytes.Reader) (uint32, error) {
	var tmp [4]byte
	if _, err := io.ReadFull(r, tmp[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(tmp[:]), nil
}

func encodeLengthPrefixed(buf *bytes.Buffer, s string) {
	encodeUint32(buf, uint32(len(s)))
	buf.WriteString(s)
}

func decodeLengthPrefixed(r *bytes.Reader) (string, error) {
	n, err := decodeUint32(r)
	if err != nil {
		return "", err
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(r, out); err != nil {
		return "", fmt.Errorf("lsf: reading %d-byte string: %w", n, err)
	}
	return string(out), nil
}

// encodeLengthPrefixedBytes and decodeLengthPrefixedBytes implement
// the "length-prefixed" wire form the attribute table specifies for
// String, Path, FixedString, LSString, ScratchBuffer, WString, and
// LSWString: a u32 byte count followed by exactly that many bytes,
// nested inside the attribute entry's own (offset, length) slice.
func encodeLengthPrefixedBytes(data []byte) []byte {
	out := make([]byte, 4+len(data))
	binary.LittleEndian.PutUint32(out, uint32(len(data)))
	copy(out[4:], data)
	return out
}

func decodeLengthPrefixedBytes(data []byte, typ lsresource.AttributeType) ([]byte, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: %s value has %d bytes, need at least 4 for its length prefix", ErrTruncated, typ, len(data))
	}
	n := binary.LittleEndian.Uint32(data)
	if uint64(4+n) != uint64(len(data)) {
		return nil, fmt.Errorf("%w: %s declares %d bytes but the entry supplies %d", ErrTruncated, typ, n, len(data)-4)
	}
	return data[4:], nil
}

// encodeTranslatedStringBody writes the version, handle, and value
// fields shared by TranslatedString and TranslatedFSString in the
// order the format's struct layout specifies: `u32 version; u32
// handle_len; bytes handle; u32 value_len; bytes value`.
func encodeTranslatedStringBody(buf *bytes.Buffer, v lsresource.TranslatedStringValue) {
	encodeUint32(buf, v.Version)
	encodeLengthPrefixed(buf, v.Handle)
	encodeLengthPrefixed(buf, v.Value)
}

func decodeTranslatedStringBody(r *bytes.Reader) (lsresource.TranslatedStringValue, error) {
	version, err := decodeUint32(r)
	if err != nil {
		return lsresource.TranslatedStringValue{}, fmt.Errorf("lsf: TranslatedString version: %w", err)
	}
	handle, err := decodeLengthPrefixed(r)
	if err != nil {
		return lsresource.TranslatedStringValue{}, fmt.Errorf("lsf: TranslatedString handle: %w", err)
	}
	value, err := decodeLengthPrefixed(r)
	if err != nil {
		return lsresource.TranslatedStringValue{}, fmt.Errorf("lsf: TranslatedString value: %w", err)
	}
	return lsresource.TranslatedString(version, value, handle), nil
}
