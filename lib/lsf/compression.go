// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lsf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// compressionMethod is the low nibble of a chunk's compression flags
// byte: 0=none, 1=zlib, 2=lz4, 3=zstd. The high nibble is a backend
// level hint, interpreted per backend.
type compressionMethod byte

const (
	methodNone compressionMethod = 0
	methodZlib compressionMethod = 1
	methodLZ4  compressionMethod = 2
	methodZstd compressionMethod = 3
)

func splitFlags(flags byte) (compressionMethod, byte) {
	return compressionMethod(flags & 0x0F), (flags >> 4) & 0x0F
}

func packFlags(method compressionMethod, level byte) byte {
	return byte(method&0x0F) | (level&0x0F)<<4
}

// zstdEncoder and zstdDecoder are reused across calls the same way
// the teacher's artifact store reuses them: both types are safe for
// concurrent use and initialization has real setup cost.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("lsf: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("lsf: zstd decoder initialization failed: " + err.Error())
	}
}

// Decompress expands input to exactly uncompressedSize bytes under
// the method named by flags' low nibble. When input is empty and
// uncompressedSize is zero, it returns an empty slice without
// invoking any backend. The "none" path is a direct copy, and like
// every backend it fails with ErrDecompression when the result's
// length differs from uncompressedSize.
//
// version selects the LZ4 wire form: frame (self-delimited) for
// version >= 2, raw block (uncompressed size supplied externally,
// exactly as given here) below that.
func Decompress(input []byte, uncompressedSize int, flags byte, version uint32) ([]byte, error) {
	method, _ := splitFlags(flags)

	if len(input) == 0 {
		if uncompressedSize != 0 {
			return nil, fmt.Errorf("%w: empty input but expected %d uncompressed bytes", ErrDecompression, uncompressedSize)
		}
		return []byte{}, nil
	}

	switch method {
	case methodNone:
		if len(input) != uncompressedSize {
			return nil, fmt.Errorf("%w: uncompressed chunk has %d bytes, expected %d", ErrDecompression, len(input), uncompressedSize)
		}
		return input, nil

	case methodZlib:
		reader, err := zlib.NewReader(bytes.NewReader(input))
		if err != nil {
			return nil, fmt.Errorf("%w: zlib: %v", ErrDecompression, err)
		}
		defer reader.Close()
		out, err := io.ReadAll(io.LimitReader(reader, int64(uncompressedSize)+1))
		if err != nil {
			return nil, fmt.Errorf("%w: zlib: %v", ErrDecompression, err)
		}
		if len(out) != uncompressedSize {
			return nil, fmt.Errorf("%w: zlib produced %d bytes, expected %d", ErrDecompression, len(out), uncompressedSize)
		}
		return out, nil

	case methodLZ4:
		return decompressLZ4(input, uncompressedSize, version)

	case methodZstd:
		out, err := zstdDecoder.DecodeAll(input, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrDecompression, err)
		}
		if len(out) != uncompressedSize {
			return nil, fmt.Errorf("%w: zstd produced %d bytes, expected %d", ErrDecompression, len(out), uncompressedSize)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: unknown compression method %d", ErrDecompression, method)
	}
}

func decompressLZ4(input []byte, uncompressedSize int, version uint32) ([]byte, error) {
	if version >= 2 {
		reader := lz4.NewReader(bytes.NewReader(input))
		out, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4 frame: %v", ErrDecompression, err)
		}
		if len(out) != uncompressedSize {
			return nil, fmt.Errorf("%w: lz4 frame produced %d bytes, expected %d", ErrDecompression, len(out), uncompressedSize)
		}
		return out, nil
	}

	dst := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(input, dst)
	if err != nil {
		return nil, fmt.Errorf("%w: lz4 block: %v", ErrDecompression, err)
	}
	if n != uncompressedSize {
		return nil, fmt.Errorf("%w: lz4 block produced %d bytes, expected %d", ErrDecompression, n, uncompressedSize)
	}
	return dst, nil
}

// Compress produces the on-disk bytes for input under the method
// named by flags' low nibble, returning the compressed payload and
// the flags byte unchanged (callers that built flags once can pass
// the same value on to metadata without recomputing the nibble).
//
// version selects the LZ4 wire form exactly as in Decompress; this
// codec's writer always uses version >= 2 (frame format).
func Compress(input []byte, flags byte, version uint32) ([]byte, byte, error) {
	method, level := splitFlags(flags)

	switch method {
	case methodNone:
		return input, flags, nil

	case methodZlib:
		var buf bytes.Buffer
		writer, err := zlib.NewWriterLevel(&buf, zlibLevel(level))
		if err != nil {
			return nil, 0, fmt.Errorf("lsf: zlib writer: %w", err)
		}
		if _, err := writer.Write(input); err != nil {
			return nil, 0, fmt.Errorf("lsf: zlib compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, 0, fmt.Errorf("lsf: zlib compress: %w", err)
		}
		return buf.Bytes(), flags, nil

	case methodLZ4:
		out, err := compressLZ4(input, version)
		if err != nil {
			return nil, 0, err
		}
		return out, flags, nil

	case methodZstd:
		return zstdEncoder.EncodeAll(input, nil), flags, nil

	default:
		return nil, 0, fmt.Errorf("lsf: unknown compression method %d", method)
	}
}

func compressLZ4(input []byte, version uint32) ([]byte, error) {
	if version >= 2 {
		var buf bytes.Buffer
		writer := lz4.NewWriter(&buf)
		if _, err := writer.Write(input); err != nil {
			return nil, fmt.Errorf("lsf: lz4 frame compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lsf: lz4 frame compress: %w", err)
		}
		return buf.Bytes(), nil
	}

	bound := lz4.CompressBlockBound(len(input))
	dst := make([]byte, bound)
	n, err := lz4.CompressBlock(input, dst, nil)
	if err != nil {
		return nil, fmt.Errorf("lsf: lz4 block compress: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("lsf: lz4 block compress: input incompressible")
	}
	return dst[:n], nil
}

func zlibLevel(nibble byte) int {
	if nibble == 0 {
		return zlib.DefaultCompression
	}
	level := int(nibble)
	if level > 9 {
		level = 9
	}
	return level
}
