package egress

import (
	"bytes"
	"compress/gzip"
)

// Compressor is pluggable so test runs can disable compression entirely
// (spec.md §9). Compression failure never fails a send; callers fall back
// to the uncompressed payload.
type Compressor interface {
	// Compress returns the compressed payload and whether compression
	// was applied (so the caller can set Content-Encoding accordingly).
	Compress(data []byte) (out []byte, applied bool)
	Name() string
}

// GzipCompressor is the default, matching the original's
// flb_gzip_compress-equivalent behavior. No third-party gzip
// implementation appears anywhere in the retrieved dependency pack, so
// this one component uses compress/gzip directly (see DESIGN.md).
type GzipCompressor struct{}

func (GzipCompressor) Compress(data []byte) ([]byte, bool) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return data, false
	}
	if err := w.Close(); err != nil {
		return data, false
	}
	return buf.Bytes(), true
}

func (GzipCompressor) Name() string { return "gzip" }

// NoopCompressor disables compression, for tests.
type NoopCompressor struct{}

func (NoopCompressor) Compress(data []byte) ([]byte, bool) { return data, false }
func (NoopCompressor) Name() string                        { return "none" }
