package raster

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleHeader() *PageHeader {
	return &PageHeader{
		MediaClass:     "",
		MediaColor:     "White",
		MediaType:      "Plain",
		OutputType:     "",
		AdvanceMedia:   AdvanceNever,
		CutMedia:       CutNever,
		Jog:            JogNever,
		LeadingEdge:    EdgeTop,
		Orientation:    RotateNone,
		NumCopies:      1,
		PageSizeWidth:  612,
		PageSizeHeight: 792,
		Width:          612,
		Height:         792,
		BitsPerColor:   8,
		BitsPerPixel:   24,
		BytesPerLine:   612 * 3,
		ColorOrder:     ChunkyPixels,
		ColorSpace:     ColorSpaceRGB,
		RowCount:       0,
	}
}

func TestPageHeaderRoundTripV1(t *testing.T) {
	h := sampleHeader()
	var buf bytes.Buffer
	if err := WritePageHeader(&buf, binary.BigEndian, 1, h); err != nil {
		t.Fatalf("WritePageHeader: %v", err)
	}
	if buf.Len() != HeaderSizeV1 {
		t.Fatalf("wrote %d bytes, want %d", buf.Len(), HeaderSizeV1)
	}
	got, err := ReadPageHeader(&buf, binary.BigEndian, 1)
	if err != nil {
		t.Fatalf("ReadPageHeader: %v", err)
	}
	if diff := cmp.Diff(h, got); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPageHeaderRoundTripV2LittleEndian(t *testing.T) {
	h := sampleHeader()
	h.NumColors = 3
	h.MarkerType = "marker"
	h.RenderingIntent = "Perceptual"
	h.PageSizeName = "Letter"
	h.VendorString[0] = "vendor value"

	var buf bytes.Buffer
	if err := WritePageHeader(&buf, binary.LittleEndian, 2, h); err != nil {
		t.Fatalf("WritePageHeader: %v", err)
	}
	if buf.Len() != HeaderSizeV2 {
		t.Fatalf("wrote %d bytes, want %d", buf.Len(), HeaderSizeV2)
	}
	got, err := ReadPageHeader(&buf, binary.LittleEndian, 2)
	if err != nil {
		t.Fatalf("ReadPageHeader: %v", err)
	}
	if diff := cmp.Diff(h, got); diff != "" {
		t.Errorf("header round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPageHeaderRejectsUnknownEnum(t *testing.T) {
	h := sampleHeader()
	h.ColorOrder = 99
	var buf bytes.Buffer
	err := WritePageHeader(&buf, binary.BigEndian, 1, h)
	var unknownEnum *UnknownEnumError
	if err == nil {
		t.Fatal("expected error for unknown ColorOrder")
	}
	if !errors.As(err, &unknownEnum) {
		t.Errorf("got %v, want *UnknownEnumError", err)
	}
}

func TestPageHeaderTruncatedIsUnexpectedEOF(t *testing.T) {
	r := bytes.NewReader(make([]byte, 50))
	_, err := ReadPageHeader(r, binary.BigEndian, 1)
	if err != io.ErrUnexpectedEOF {
		t.Fatalf("got %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestParseSyncWord(t *testing.T) {
	cases := []struct {
		magic   string
		version int
		bo      binary.ByteOrder
	}{
		{"RaSt", 1, binary.BigEndian},
		{"tSaR", 1, binary.LittleEndian},
		{"RaS2", 2, binary.BigEndian},
		{"2SaR", 2, binary.LittleEndian},
		{"RaS3", 3, binary.BigEndian},
		{"3SaR", 3, binary.LittleEndian},
	}
	for _, tc := range cases {
		var b [4]byte
		copy(b[:], tc.magic)
		version, bo, err := ParseSyncWord(b)
		if err != nil {
			t.Fatalf("ParseSyncWord(%q): %v", tc.magic, err)
		}
		if version != tc.version || bo != tc.bo {
			t.Errorf("ParseSyncWord(%q) = (%d, %v), want (%d, %v)", tc.magic, version, bo, tc.version, tc.bo)
		}
		sync, err := SyncWordFor(version, bo)
		if err != nil || sync != tc.magic {
			t.Errorf("SyncWordFor(%d, %v) = (%q, %v), want %q", version, bo, sync, err, tc.magic)
		}
	}
}

func TestParseSyncWordInvalid(t *testing.T) {
	var b [4]byte
	copy(b[:], "xxxx")
	_, _, err := ParseSyncWord(b)
	if err != ErrInvalidSyncWord {
		t.Errorf("got %v, want ErrInvalidSyncWord", err)
	}
}

