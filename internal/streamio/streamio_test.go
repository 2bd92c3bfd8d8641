package streamio

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/go-raster/printraster/raster"
	"github.com/go-raster/printraster/urf"
)

func TestOpenSniffsCUPS(t *testing.T) {
	var buf bytes.Buffer
	w, err := raster.NewWriter(&buf, 1, binary.BigEndian)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	rd, err := Open(&buf, raster.NoLimits)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if rd.Format() != FormatCUPS {
		t.Errorf("Format() = %v, want FormatCUPS", rd.Format())
	}
	if rd.Version() != 1 {
		t.Errorf("Version() = %d, want 1", rd.Version())
	}
	if _, err := rd.NextPage(); err != io.EOF {
		t.Errorf("NextPage on empty stream: got %v, want io.EOF", err)
	}
}

func TestOpenSniffsURF(t *testing.T) {
	var buf bytes.Buffer
	w, err := urf.NewWriter(&buf, urf.Header{PageCount: 0})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	rd, err := Open(&buf, raster.NoLimits)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if rd.Format() != FormatURF {
		t.Errorf("Format() = %v, want FormatURF", rd.Format())
	}
	if _, err := rd.NextPage(); err != io.EOF {
		t.Errorf("NextPage on empty stream: got %v, want io.EOF", err)
	}
}
