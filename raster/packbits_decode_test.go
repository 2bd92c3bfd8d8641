package raster

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-raster/printraster/internal/fuzzcorpus"
)

var sampleUncompressed = []byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0x00, 0xff, 0xff, 0x00, 0xff, 0xff, 0x00, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00, 0x00,
	0x00, 0xff, 0xff, 0xff, 0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0x00, 0xff, 0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00, 0xff, 0xff, 0x00, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00, 0xff, 0x00, 0x00, 0xff, 0x00, 0x00,
	0xff, 0x00, 0xff, 0xff, 0x00, 0xff, 0xff, 0x00, 0xff, 0xff, 0x00, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00, 0xff, 0x00, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0x00, 0xff, 0xff, 0x00, 0xff, 0xff, 0x00, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0xff, 0x00, 0x00, 0xff, 0x00, 0x00, 0xff,
	0x00, 0x00, 0xff, 0x00, 0x00, 0xff, 0x00, 0x00, 0xff, 0x00, 0x00, 0xff, 0x00, 0x00,
	0xff, 0x00, 0x00, 0xff, 0x00, 0x00, 0xff, 0x00, 0x00, 0xff, 0x00, 0x00, 0xff, 0x00,
	0x00, 0xff, 0x00, 0x00, 0xff, 0x00, 0x00, 0xff, 0x00, 0x00,
}

var sampleCompressed = []byte{
	0x00, 0x00, 0xff, 0xff, 0xff, 0x02, 0xff, 0xff, 0x00, 0x03, 0xff, 0xff, 0xff, 0x00,
	0xfe, 0xff, 0xff, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0x00, 0x02, 0xff, 0xff, 0xff,
	0x00, 0x00, 0xff, 0x00, 0x00, 0xff, 0xff, 0xff, 0x00, 0x01, 0xff, 0xff, 0x00, 0x02,
	0xff, 0xff, 0xff, 0x02, 0x00, 0xff, 0x00, 0x00, 0x02, 0xff, 0xff, 0x00, 0x02, 0xff,
	0xff, 0xff, 0x00, 0x00, 0xff, 0x00, 0x00, 0xff, 0xff, 0xff, 0x00, 0x00, 0xff, 0xff,
	0xff, 0x02, 0xff, 0xff, 0x00, 0x03, 0xff, 0xff, 0xff, 0x00, 0x07, 0xff, 0xff, 0xff,
	0x01, 0x07, 0xff, 0x00, 0x00,
}

func TestPackbitsDecoderSample(t *testing.T) {
	dec, err := NewPackbitsDecoder(bytes.NewReader(sampleCompressed), NoLimits, CodecParams{
		ChunkSize:    3,
		BytesPerLine: 3 * 8,
		TotalBytes:   3 * 8 * 8,
	})
	if err != nil {
		t.Fatalf("NewPackbitsDecoder: %v", err)
	}
	got, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if diff := cmp.Diff(sampleUncompressed, got); diff != "" {
		t.Errorf("decoded mismatch (-want +got):\n%s", diff)
	}
	if dec.BytesRemaining() != 0 {
		t.Errorf("BytesRemaining = %d, want 0", dec.BytesRemaining())
	}
}

func TestPackbitsDecoderHighlyRepetitive(t *testing.T) {
	const width, height = 512, 512
	want := bytes.Repeat([]byte{0xcc}, width*height*3)
	compressed := []byte{
		0xff, 0x7f, 0xcc, 0xcc, 0xcc, 0x7f, 0xcc, 0xcc, 0xcc, 0x7f, 0xcc, 0xcc, 0xcc, 0x7f,
		0xcc, 0xcc, 0xcc, 0xff, 0x7f, 0xcc, 0xcc, 0xcc, 0x7f, 0xcc, 0xcc, 0xcc, 0x7f, 0xcc,
		0xcc, 0xcc, 0x7f, 0xcc, 0xcc, 0xcc,
	}
	dec, err := NewPackbitsDecoder(bytes.NewReader(compressed), NoLimits, CodecParams{
		ChunkSize:    3,
		BytesPerLine: width * 3,
		TotalBytes:   width * height * 3,
	})
	if err != nil {
		t.Fatalf("NewPackbitsDecoder: %v", err)
	}
	got, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("decoded %d bytes differ from expected repeated pattern", len(got))
	}
}

func TestPackbitsDecoderEmptyPage(t *testing.T) {
	dec, err := NewPackbitsDecoder(bytes.NewReader(fuzzcorpus.EmptyPage), NoLimits, CodecParams{})
	if err != nil {
		t.Fatalf("NewPackbitsDecoder: %v", err)
	}
	got, err := io.ReadAll(dec)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d bytes, want 0", len(got))
	}
}

func TestPackbitsDecoderOneByteAtATime(t *testing.T) {
	dec, err := NewPackbitsDecoder(newOneByteReader(sampleCompressed), NoLimits, CodecParams{
		ChunkSize:    3,
		BytesPerLine: 3 * 8,
		TotalBytes:   3 * 8 * 8,
	})
	if err != nil {
		t.Fatalf("NewPackbitsDecoder: %v", err)
	}
	var got []byte
	buf := make([]byte, 1)
	for {
		n, err := dec.Read(buf)
		got = append(got, buf[:n]...)
		if err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("Read: %v", err)
		}
		if n == 0 {
			break
		}
	}
	if diff := cmp.Diff(sampleUncompressed, got); diff != "" {
		t.Errorf("decoded mismatch reading one byte at a time (-want +got):\n%s", diff)
	}
}

func TestPackbitsDecoderAdversarial(t *testing.T) {
	for _, tc := range fuzzcorpus.PackbitsAdversarial {
		t.Run(tc.Name, func(t *testing.T) {
			dec, err := NewPackbitsDecoder(bytes.NewReader(tc.Data), NoLimits, CodecParams{
				ChunkSize:    tc.ChunkSize,
				BytesPerLine: tc.BytesPerLine,
				TotalBytes:   tc.TotalBytes,
			})
			if err != nil {
				return
			}
			_, _ = io.ReadAll(dec)
		})
	}
}

// oneByteReader forces every downstream Read call to observe a short read,
// exercising the decoder's cross-call state machine the way a slow network
// transport would.
type oneByteReader struct {
	data []byte
}

func newOneByteReader(data []byte) *oneByteReader {
	return &oneByteReader{data: data}
}

func (r *oneByteReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.data[:1])
	r.data = r.data[1:]
	return n, nil
}
