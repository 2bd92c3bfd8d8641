package raster

import (
	"encoding/binary"
	"io"
)

// Reader drives a CUPS raster stream page by page (spec.md §4.6's C6, CUPS
// side). It never buffers more than one page's header: callers must fully
// drain a Page's decoder (or call NextPage again, which drains it for them)
// before the bytes of the following page can be produced.
type Reader struct {
	r       io.Reader
	bo      binary.ByteOrder
	version int
	limits  Limits

	cur *Page
}

// NewReader reads the 4-byte sync word and returns a Reader positioned
// before the first page header.
func NewReader(r io.Reader, limits Limits) (*Reader, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	version, bo, err := ParseSyncWord(magic)
	if err != nil {
		return nil, err
	}
	return &Reader{r: r, bo: bo, version: version, limits: limits}, nil
}

// Version reports the CUPS raster version this stream declared (1, 2 or 3).
func (rd *Reader) Version() int { return rd.version }

// Page is one decoded page: its header plus a PageDecoder positioned at the
// start of pixel data.
type Page struct {
	Header  *PageHeader
	Decoder PageDecoder
}

// NextPage drains any previous page and reads the next one. It returns
// io.EOF, with no error wrapping, exactly when the stream ends cleanly at a
// page boundary; any other truncation is io.ErrUnexpectedEOF.
func (rd *Reader) NextPage() (*Page, error) {
	if rd.cur != nil {
		if _, err := io.Copy(io.Discard, rd.cur.Decoder); err != nil {
			return nil, err
		}
		if rd.cur.Decoder.BytesRemaining() != 0 {
			return nil, io.ErrUnexpectedEOF
		}
		rd.cur = nil
	}

	h, err := ReadPageHeader(rd.r, rd.bo, rd.version)
	if err != nil {
		return nil, err
	}
	params, err := CUPSVariant(h)
	if err != nil {
		return nil, err
	}

	var dec PageDecoder
	if IsCompressed(rd.version) {
		dec, err = NewPackbitsDecoder(rd.r, rd.limits, params)
	} else {
		if err = rd.limits.checkLine(params.BytesPerLine); err == nil {
			err = rd.limits.checkPage(params.TotalBytes)
		}
		if err == nil {
			dec = NewPassthroughDecoder(rd.r, params.TotalBytes)
		}
	}
	if err != nil {
		return nil, err
	}

	page := &Page{Header: h, Decoder: dec}
	rd.cur = page
	return page, nil
}
