package raster

import (
	"encoding/binary"
	"io"
)

// Writer drives a CUPS raster stream page by page, mirroring Reader.
type Writer struct {
	w       io.Writer
	bo      binary.ByteOrder
	version int

	cur PageEncoder
}

// NewWriter writes the 4-byte sync word for version/bo and returns a Writer
// ready to accept pages.
func NewWriter(w io.Writer, version int, bo binary.ByteOrder) (*Writer, error) {
	sync, err := SyncWordFor(version, bo)
	if err != nil {
		return nil, err
	}
	if err := writeFull(w, []byte(sync)); err != nil {
		return nil, err
	}
	return &Writer{w: w, bo: bo, version: version}, nil
}

// WritePage closes out any in-flight page (failing with ErrIncompletePage if
// it was not fully written), writes the next page header, and returns a
// PageEncoder for its body.
func (wr *Writer) WritePage(h *PageHeader) (PageEncoder, error) {
	if wr.cur != nil {
		if err := wr.cur.Close(); err != nil {
			return nil, err
		}
		wr.cur = nil
	}

	if err := WritePageHeader(wr.w, wr.bo, wr.version, h); err != nil {
		return nil, err
	}
	params, err := CUPSVariant(h)
	if err != nil {
		return nil, err
	}

	var enc PageEncoder
	if IsCompressed(wr.version) {
		enc, err = NewPackbitsEncoder(wr.w, params)
	} else {
		enc = NewPassthroughEncoder(wr.w, params.TotalBytes)
	}
	if err != nil {
		return nil, err
	}

	wr.cur = enc
	return enc, nil
}

// Finish closes the final page, if any, and flushes the underlying writer.
func (wr *Writer) Finish() error {
	if wr.cur != nil {
		err := wr.cur.Close()
		wr.cur = nil
		if err != nil {
			return err
		}
	}
	if f, ok := wr.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}
