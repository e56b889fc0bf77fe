// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsf

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// bucketCount is the fixed size of the string hash table. Every
// table this codec writes has exactly this many buckets, even when
// most are empty; a reader tolerates bucketCount == 0 as an
// alternate encoding of an empty table.
const bucketCount = 0x200

// stringTable is the bucket-chained string pool backing every name
// and attribute key in a file. Insertion order within a bucket is
// preserved; interning identifies a string by value, never by hash
// alone — hash collisions are resolved by a linear chain search.
type stringTable struct {
	buckets [][]string
}

// newStringTable returns an empty table with the standard bucket
// count, matching what a writer must emit even for a Resource with
// no strings at all.
func newStringTable() *stringTable {
	return &stringTable{buckets: make([][]string, bucketCount)}
}

// handle packs a bucket index and chain index into the 32-bit
// reference used by node and attribute entries.
type handle uint32

func packHandle(bucket, chain uint32) handle {
	return handle((bucket << 16) | (chain & 0xFFFF))
}

func (h handle) unpack() (bucket, chain uint32) {
	return uint32(h) >> 16, uint32(h) & 0xFFFF
}

// stringHash computes the canonical 32-bit hash used to place a
// string into a bucket. Any hash producing a uniform 32-bit spread
// works here — writer and reader only need to agree with themselves,
// since the handle itself (not the hash) is what travels on disk.
func stringHash(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// bucketFor applies the four-way xor-fold that turns a 32-bit hash
// into a bucket index in [0, bucketCount).
func bucketFor(h uint32) uint32 {
	return (h & 0x1FF) ^ ((h >> 9) & 0x1FF) ^ ((h >> 18) & 0x1FF) ^ ((h >> 27) & 0x1FF)
}

// intern returns the handle for s, appending it to its bucket's chain
// if not already present. The bucket is searched by value, not hash,
// so two strings with colliding hashes both get stable, distinct
// handles.
func (t *stringTable) intern(s string) (handle, error) {
	bucket := bucketFor(stringHash(s))
	chain := t.buckets[bucket]

	for i, existing := range chain {
		if existing == s {
			return packHandle(bucket, uint32(i)), nil
		}
	}

	if len(chain) >= 0x10000 {
		return 0, fmt.Errorf("%w: bucket %d already holds the maximum 65536 chain entries", ErrEncode, bucket)
	}
	if len(s) > 0xFFFF {
		return 0, fmt.Errorf("%w: string of %d bytes exceeds the 65535-byte limit", ErrEncode, len(s))
	}

	t.buckets[bucket] = append(chain, s)
	return packHandle(bucket, uint32(len(chain))), nil
}

// resolve looks up the string behind h.
func (t *stringTable) resolve(h handle) (string, error) {
	bucket, chain := h.unpack()
	if int(bucket) >= len(t.buckets) {
		return "", fmt.Errorf("%w: bucket %d out of range (table has %d buckets)", ErrCorruptStringTable, bucket, len(t.buckets))
	}
	entries := t.buckets[bucket]
	if int(chain) >= len(entries) {
		return "", fmt.Errorf("%w: chain index %d out of range (bucket %d has %d entries)", ErrCorruptStringTable, chain, bucket, len(entries))
	}
	return entries[chain], nil
}

// encode serializes the table to its on-disk chunk layout: u32
// bucket_count, then per bucket a u16 chain_length followed by that
// many length-prefixed UTF-8 strings.
func (t *stringTable) encode() []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(len(t.buckets)))

	for _, chain := range t.buckets {
		lengthBuf := make([]byte, 2)
		binary.LittleEndian.PutUint16(lengthBuf, uint16(len(chain)))
		buf = append(buf, lengthBuf...)

		for _, s := range chain {
			strLenBuf := make([]byte, 2)
			binary.LittleEndian.PutUint16(strLenBuf, uint16(len(s)))
			buf = append(buf, strLenBuf...)
			buf = append(buf, s...)
		}
	}
	return buf
}

// decodeStringTable parses the on-disk chunk layout. A bucket_count
// of zero is accepted and yields an empty table (some producers write
// files that way); any other value is taken at face value, so a
// corrupt count or chain length that runs past the chunk surfaces as
// ErrCorruptStringTable while reading chains.
func decodeStringTable(data []byte) (*stringTable, error) {
	if len(data) == 0 {
		return newStringTable(), nil
	}
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: string chunk has %d bytes, need at least 4 for bucket_count", ErrTruncated, len(data))
	}

	count := binary.LittleEndian.Uint32(data)
	pos := 4

	if count == 0 {
		return newStringTable(), nil
	}

	buckets := make([][]string, count)
	for b := uint32(0); b < count; b++ {
		if pos+2 > len(data) {
			return nil, fmt.Errorf("%w: string chunk truncated reading chain_length for bucket %d", ErrCorruptStringTable, b)
		}
		chainLen := binary.LittleEndian.Uint16(data[pos:])
		pos += 2

		chain := make([]string, 0, chainLen)
		for i := uint16(0); i < chainLen; i++ {
			if pos+2 > len(data) {
				return nil, fmt.Errorf("%w: string chunk truncated reading string length in bucket %d", ErrCorruptStringTable, b)
			}
			strLen := int(binary.LittleEndian.Uint16(data[pos:]))
			pos += 2
			if pos+strLen > len(data) {
				return nil, fmt.Errorf("%w: string chunk truncated reading %d-byte string in bucket %d", ErrCorruptStringTable, strLen, b)
			}
			chain = append(chain, string(data[pos:pos+strLen]))
			pos += strLen
		}
		buckets[b] = chain
	}

	return &stringTable{buckets: buckets}, nil
}
