// Package compression provides optional codec support for column spill files.
// It wraps the klauspost compressors behind a single Compressor type so the
// columnar store can swap algorithms without caring about their APIs.
//
// Speed (fastest to slowest): Snappy/S2 > Zstd > Gzip
// Ratio (best to worst): Zstd > Gzip > Snappy/S2
package compression

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"

	"github.com/driftwatch/driftwatch/pkg/errors"
)

// Algorithm represents a compression algorithm.
type Algorithm string

const (
	// None represents no compression
	None Algorithm = "none"
	// Gzip represents gzip compression
	Gzip Algorithm = "gzip"
	// Snappy represents snappy compression
	Snappy Algorithm = "snappy"
	// S2 represents s2 compression (Snappy compatible)
	S2 Algorithm = "s2"
	// Zstd represents zstandard compression
	Zstd Algorithm = "zstd"
)

// Compressor compresses and decompresses byte slices with a fixed algorithm.
type Compressor struct {
	algorithm Algorithm
	zstdEnc   *zstd.Encoder
	zstdDec   *zstd.Decoder
}

// NewCompressor creates a compressor for the given algorithm.
func NewCompressor(algorithm Algorithm) (*Compressor, error) {
	c := &Compressor{algorithm: algorithm}

	switch algorithm {
	case None, Gzip, Snappy, S2:
	case Zstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to create zstd encoder")
		}
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to create zstd decoder")
		}
		c.zstdEnc = enc
		c.zstdDec = dec
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig, "unknown compression algorithm %q", algorithm)
	}

	return c, nil
}

// Algorithm returns the configured algorithm.
func (c *Compressor) Algorithm() Algorithm {
	return c.algorithm
}

// Compress compresses data in memory.
func (c *Compressor) Compress(data []byte) ([]byte, error) {
	switch c.algorithm {
	case None:
		return data, nil
	case Gzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "gzip compression failed")
		}
		if err := w.Close(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "gzip compression failed")
		}
		return buf.Bytes(), nil
	case Snappy:
		return snappy.Encode(nil, data), nil
	case S2:
		return s2.Encode(nil, data), nil
	case Zstd:
		return c.zstdEnc.EncodeAll(data, nil), nil
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig, "unknown compression algorithm %q", c.algorithm)
	}
}

// Decompress decompresses data in memory.
func (c *Compressor) Decompress(data []byte) ([]byte, error) {
	switch c.algorithm {
	case None:
		return data, nil
	case Gzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "gzip decompression failed")
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "gzip decompression failed")
		}
		return out, nil
	case Snappy:
		out, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "snappy decompression failed")
		}
		return out, nil
	case S2:
		out, err := s2.Decode(nil, data)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "s2 decompression failed")
		}
		return out, nil
	case Zstd:
		out, err := c.zstdDec.DecodeAll(data, nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "zstd decompression failed")
		}
		return out, nil
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig, "unknown compression algorithm %q", c.algorithm)
	}
}
