// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsx

import "github.com/larris-tools/lsfconv/lib/lsresource"

// typeNames maps every attribute type id to the canonical name LSX
// uses in an <attribute type="..."> value. Names follow the original
// format's own spellings (resolved from original_source/src/resource.rs)
// with one deliberate change: String (18) and LSString (21) each get
// their own distinct name ("string" and "LSString") instead of
// sharing "LSString" the way the reference implementation's
// AttributeType::as_str/from_str do. That sharing is lossy — reading
// "LSString" back always reconstructs a String (18), never an
// LSString (21) — and this package's job is to preserve the wire
// type id exactly, so the two names are kept distinct. The same
// reasoning keeps Long (24) and Int64 (30) apart as "long" and
// "int64" rather than both collapsing to the reference's "int64".
var typeNames = map[lsresource.AttributeType]string{
	lsresource.TypeNone:             "None",
	lsresource.TypeByte:             "uint8",
	lsresource.TypeShort:            "int16",
	lsresource.TypeUShort:           "uint16",
	lsresource.TypeInt:              "int32",
	lsresource.TypeUInt:             "uint32",
	lsresource.TypeFloat:            "float",
	lsresource.TypeDouble:           "double",
	lsresource.TypeIVec2:            "ivec2",
	lsresource.TypeIVec3:            "ivec3",
	lsresource.TypeIVec4:            "ivec4",
	lsresource.TypeVec2:             "fvec2",
	lsresource.TypeVec3:             "fvec3",
	lsresource.TypeVec4:             "fvec4",
	lsresource.TypeMat2:             "mat2",
	lsresource.TypeMat3:             "mat3",
	lsresource.TypeMat4:             "mat4",
	lsresource.TypeBool:             "bool",
	lsresource.TypeString:           "string",
	lsresource.TypePath:             "path",
	lsresource.TypeFixedString:      "FixedString",
	lsresource.TypeLSString:         "LSString",
	lsresource.TypeULongLong:        "uint64",
	lsresource.TypeScratchBuffer:    "ScratchBuffer",
	lsresource.TypeLong:             "long",
	lsresource.TypeInt8:             "int8",
	lsresource.TypeTranslatedString: "TranslatedString",
	lsresource.TypeWString:          "WString",
	lsresource.TypeLSWString:        "LSWString",
	lsresource.TypeUUID:             "guid",
	lsresource.TypeInt64:            "int64",
	lsresource.TypeTranslatedFSString: "TranslatedFSString",
	lsresource.TypeMat3x4:           "mat3x4",
	lsresource.TypeMat4x3:           "mat4x3",
}

var namesToType map[string]lsresource.AttributeType

func init() {
	namesToType = make(map[string]lsresource.AttributeType, len(typeNames))
	for id, name := range typeNames {
		namesToType[name] = id
	}
}

func typeName(t lsresource.AttributeType) (string, bool) {
	name, ok := typeNames[t]
	return name, ok
}

func typeByName(name string) (lsresource.AttributeType, bool) {
	t, ok := namesToType[name]
	return t, ok
}
