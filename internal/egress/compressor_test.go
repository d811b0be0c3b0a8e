package egress

import (
	"bytes"
	"compress/gzip"
	"io"
	"testing"
)

func TestGzipCompressorAppliesAndDecompresses(t *testing.T) {
	input := []byte("the quick brown fox jumps over the lazy dog, repeatedly, repeatedly, repeatedly")
	out, applied := GzipCompressor{}.Compress(input)
	if !applied {
		t.Fatal("expected compression to be applied")
	}

	r, err := gzip.NewReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("gzip.NewReader() error = %v", err)
	}
	decompressed, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read decompressed: %v", err)
	}
	if !bytes.Equal(decompressed, input) {
		t.Error("decompressed output does not match input")
	}
}

func TestNoopCompressorNeverApplies(t *testing.T) {
	input := []byte("payload")
	out, applied := NoopCompressor{}.Compress(input)
	if applied {
		t.Error("NoopCompressor should never report applied=true")
	}
	if !bytes.Equal(out, input) {
		t.Error("NoopCompressor should return input unchanged")
	}
}
