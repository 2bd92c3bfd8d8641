package raster

import (
	"bytes"
	"io"
	"testing"
)

func TestPassthroughRoundTrip(t *testing.T) {
	data := []byte("some uncompressed pixel bytes")
	var out bytes.Buffer
	enc := NewPassthroughEncoder(&out, uint64(len(data)))
	if _, err := enc.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	dec := NewPassthroughDecoder(&out, uint64(len(data)))
	got, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("got %q, want %q", got, data)
	}
}

func TestPassthroughEncoderOverBudget(t *testing.T) {
	var out bytes.Buffer
	enc := NewPassthroughEncoder(&out, 3)
	if _, err := enc.Write([]byte("toolong")); err != ErrInvalidData {
		t.Errorf("got err %v, want ErrInvalidData", err)
	}
}

func TestPassthroughEncoderIncompletePage(t *testing.T) {
	var out bytes.Buffer
	enc := NewPassthroughEncoder(&out, 5)
	if _, err := enc.Write([]byte("ab")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := enc.Close(); err != ErrIncompletePage {
		t.Errorf("got err %v, want ErrIncompletePage", err)
	}
}

func TestPassthroughDecoderTruncated(t *testing.T) {
	dec := NewPassthroughDecoder(bytes.NewReader([]byte("ab")), 5)
	_, err := io.ReadAll(dec)
	if err != io.ErrUnexpectedEOF {
		t.Errorf("got err %v, want io.ErrUnexpectedEOF", err)
	}
}
