package raster

import (
	"bytes"
	"testing"
)

func TestPackbitsEncoderSample(t *testing.T) {
	var out bytes.Buffer
	enc, err := NewPackbitsEncoder(&out, CodecParams{
		ChunkSize:    3,
		BytesPerLine: 3 * 8,
		TotalBytes:   3 * 8 * 8,
	})
	if err != nil {
		t.Fatalf("NewPackbitsEncoder: %v", err)
	}
	if _, err := enc.Write(sampleUncompressed); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !bytes.Equal(out.Bytes(), sampleCompressed) {
		t.Errorf("encoded mismatch:\ngot  % x\nwant % x", out.Bytes(), sampleCompressed)
	}
}

func TestPackbitsEncoderHighlyRepetitive(t *testing.T) {
	const width, height = 512, 512
	data := bytes.Repeat([]byte{0xcc}, width*height*3)
	want := []byte{
		0xff, 0x7f, 0xcc, 0xcc, 0xcc, 0x7f, 0xcc, 0xcc, 0xcc, 0x7f, 0xcc, 0xcc, 0xcc, 0x7f,
		0xcc, 0xcc, 0xcc, 0xff, 0x7f, 0xcc, 0xcc, 0xcc, 0x7f, 0xcc, 0xcc, 0xcc, 0x7f, 0xcc,
		0xcc, 0xcc, 0x7f, 0xcc, 0xcc, 0xcc,
	}
	var out bytes.Buffer
	enc, err := NewPackbitsEncoder(&out, CodecParams{
		ChunkSize:    3,
		BytesPerLine: width * 3,
		TotalBytes:   width * height * 3,
	})
	if err != nil {
		t.Fatalf("NewPackbitsEncoder: %v", err)
	}
	if _, err := enc.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("encoded mismatch:\ngot  % x\nwant % x", out.Bytes(), want)
	}
}

func TestPackbitsEncoderEmptyPage(t *testing.T) {
	var out bytes.Buffer
	enc, err := NewPackbitsEncoder(&out, CodecParams{})
	if err != nil {
		t.Fatalf("NewPackbitsEncoder: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("got %d bytes, want 0", out.Len())
	}
}

func TestPackbitsEncoderOverBudget(t *testing.T) {
	var out bytes.Buffer
	enc, err := NewPackbitsEncoder(&out, CodecParams{
		ChunkSize:    1,
		BytesPerLine: 4,
		TotalBytes:   4,
	})
	if err != nil {
		t.Fatalf("NewPackbitsEncoder: %v", err)
	}
	if _, err := enc.Write(make([]byte, 5)); err != ErrInvalidData {
		t.Errorf("Write over budget: got err %v, want ErrInvalidData", err)
	}
}

func FuzzPackbitsRoundTrip(f *testing.F) {
	f.Add([]byte{1, 2, 3, 4, 5, 6}, uint8(2), uint64(6))
	f.Add(sampleUncompressed, uint8(3), uint64(24))
	f.Add([]byte{}, uint8(0), uint64(0))
	f.Fuzz(func(t *testing.T, data []byte, chunkSize uint8, bytesPerLine uint64) {
		if chunkSize == 0 || bytesPerLine == 0 {
			return
		}
		bytesPerLine -= bytesPerLine % uint64(chunkSize)
		if bytesPerLine == 0 {
			return
		}
		total := uint64(len(data)) - uint64(len(data))%bytesPerLine
		if total == 0 {
			return
		}
		data = data[:total]

		var compressed bytes.Buffer
		enc, err := NewPackbitsEncoder(&compressed, CodecParams{
			ChunkSize:    chunkSize,
			BytesPerLine: bytesPerLine,
			TotalBytes:   total,
		})
		if err != nil {
			return
		}
		if _, err := enc.Write(data); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if err := enc.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}

		dec, err := NewPackbitsDecoder(bytes.NewReader(compressed.Bytes()), NoLimits, CodecParams{
			ChunkSize:    chunkSize,
			BytesPerLine: bytesPerLine,
			TotalBytes:   total,
		})
		if err != nil {
			t.Fatalf("NewPackbitsDecoder: %v", err)
		}
		got := make([]byte, total)
		n := 0
		for n < len(got) {
			m, err := dec.Read(got[n:])
			n += m
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if m == 0 {
				break
			}
		}
		if !bytes.Equal(got[:n], data) {
			t.Errorf("round trip mismatch: got % x, want % x", got[:n], data)
		}
	})
}
