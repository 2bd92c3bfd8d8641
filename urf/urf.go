// Package urf implements the Apple URF/UNIRAST print raster format. It
// reuses raster's packbits codec for page bodies: URF bodies are always
// compressed and always chunky-pixel, unlike CUPS where compression and
// pixel layout both vary with version and header fields.
package urf

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-raster/printraster/raster"
)

var magic = [8]byte{'U', 'N', 'I', 'R', 'A', 'S', 'T', 0}

// Header is the file-level URF header: the 8-byte magic plus a 4-byte
// big-endian page count. The page count is informational only — readers
// still rely on a clean EOF at a page boundary to know when the stream
// ends, exactly as CUPS does.
type Header struct {
	PageCount uint32
}

// ColorSpace is the closed tag set of URF pixel formats.
type ColorSpace uint8

const (
	ColorSpaceSGray ColorSpace = iota
	ColorSpaceSRGB
	ColorSpaceCIELab
	ColorSpaceAdobeRGB
	ColorSpaceGray
	ColorSpaceRGB
	ColorSpaceCMYK
)

// NumColors returns the component count implied by a color space.
func (c ColorSpace) NumColors() int {
	switch c {
	case ColorSpaceSGray, ColorSpaceGray:
		return 1
	case ColorSpaceSRGB, ColorSpaceRGB, ColorSpaceCIELab, ColorSpaceAdobeRGB:
		return 3
	case ColorSpaceCMYK:
		return 4
	default:
		return 0
	}
}

func (c ColorSpace) valid() bool {
	return c <= ColorSpaceCMYK
}

// additive reports whether the decoder's 0x80 fill opcode should use 0xFF
// (additive color spaces) instead of 0x00.
func (c ColorSpace) additive() bool {
	switch c {
	case ColorSpaceSGray, ColorSpaceSRGB, ColorSpaceCIELab, ColorSpaceAdobeRGB, ColorSpaceGray, ColorSpaceRGB:
		return true
	default:
		return false
	}
}

type MediaType uint8

const (
	MediaTypeAuto MediaType = iota
	MediaTypeStationery
	MediaTypeTransparency
	MediaTypeEnvelope
	MediaTypeCardstock
	MediaTypeLabels
	MediaTypeStationeryLetterhead
	MediaTypeDisc
	MediaTypePhotographicMatte
	MediaTypePhotographicSatin
	MediaTypePhotographicSemiGloss
	MediaTypePhotographicGlossy
	MediaTypePhotographicHighGloss
	MediaTypeOther
)

func (m MediaType) valid() bool { return m <= MediaTypeOther }

type Duplex uint8

const (
	DuplexNoDuplex Duplex = iota + 1
	DuplexShortSide
	DuplexLongSide
)

func (d Duplex) valid() bool { return d >= DuplexNoDuplex && d <= DuplexLongSide }

type Quality uint8

const (
	QualityDefault Quality = 0
	QualityDraft   Quality = 3
	QualityNormal  Quality = 4
	QualityHigh    Quality = 5
)

func (q Quality) valid() bool {
	return q == QualityDefault || (q >= QualityDraft && q <= QualityHigh)
}

// MediaPosition is the closed tag set of URF input-tray positions.
type MediaPosition uint8

const (
	MediaPositionAuto MediaPosition = iota
	MediaPositionMain
	MediaPositionAlternate
	MediaPositionLargeCapacity
	MediaPositionManual
	MediaPositionEnvelope
	MediaPositionDisc
	MediaPositionPhoto
	MediaPositionHagaki
	MediaPositionMainRoll
	MediaPositionAlternateRoll
	MediaPositionTop
	MediaPositionMiddle
	MediaPositionBottom
	MediaPositionSide
	MediaPositionLeft
	MediaPositionRight
	MediaPositionCenter
	MediaPositionRear
	MediaPositionByPassTray
	MediaPositionTray1
	MediaPositionTray2
	MediaPositionTray3
	MediaPositionTray4
	MediaPositionTray5
	MediaPositionTray6
	MediaPositionTray7
	MediaPositionTray8
	MediaPositionTray9
	MediaPositionTray10
	MediaPositionTray11
	MediaPositionTray12
	MediaPositionTray13
	MediaPositionTray14
	MediaPositionTray15
	MediaPositionTray16
	MediaPositionTray17
	MediaPositionTray18
	MediaPositionTray19
	MediaPositionTray20
	MediaPositionRoll1
	MediaPositionRoll2
	MediaPositionRoll3
	MediaPositionRoll4
	MediaPositionRoll5
	MediaPositionRoll6
	MediaPositionRoll7
	MediaPositionRoll8
	MediaPositionRoll9
	MediaPositionRoll10
)

func (m MediaPosition) valid() bool { return m <= MediaPositionRoll10 }

// PageHeader is the 32-byte URF per-page header.
type PageHeader struct {
	BitsPerPixel  uint8
	ColorSpace    ColorSpace
	Duplex        Duplex
	Quality       Quality
	MediaPosition MediaPosition
	MediaType     MediaType
	Width         uint32
	Height        uint32
	DotsPerInch   uint32
}

const pageHeaderSize = 32

func decodePageHeader(raw []byte) (*PageHeader, error) {
	h := &PageHeader{
		BitsPerPixel:  raw[0],
		ColorSpace:    ColorSpace(raw[1]),
		Duplex:        Duplex(raw[2]),
		Quality:       Quality(raw[3]),
		MediaPosition: MediaPosition(raw[4]),
		MediaType:     MediaType(raw[5]),
		Width:         binary.BigEndian.Uint32(raw[12:16]),
		Height:        binary.BigEndian.Uint32(raw[16:20]),
		DotsPerInch:   binary.BigEndian.Uint32(raw[20:24]),
	}
	if !h.ColorSpace.valid() {
		return nil, &raster.UnknownEnumError{Field: "ColorSpace", Value: uint32(h.ColorSpace)}
	}
	if !h.Duplex.valid() {
		return nil, &raster.UnknownEnumError{Field: "Duplex", Value: uint32(h.Duplex)}
	}
	if !h.Quality.valid() {
		return nil, &raster.UnknownEnumError{Field: "Quality", Value: uint32(h.Quality)}
	}
	if !h.MediaPosition.valid() {
		return nil, &raster.UnknownEnumError{Field: "MediaPosition", Value: uint32(h.MediaPosition)}
	}
	if !h.MediaType.valid() {
		return nil, &raster.UnknownEnumError{Field: "MediaType", Value: uint32(h.MediaType)}
	}
	return h, nil
}

func encodePageHeader(h *PageHeader) []byte {
	raw := make([]byte, pageHeaderSize)
	raw[0] = h.BitsPerPixel
	raw[1] = byte(h.ColorSpace)
	raw[2] = byte(h.Duplex)
	raw[3] = byte(h.Quality)
	raw[4] = byte(h.MediaPosition)
	raw[5] = byte(h.MediaType)
	binary.BigEndian.PutUint32(raw[12:16], h.Width)
	binary.BigEndian.PutUint32(raw[16:20], h.Height)
	binary.BigEndian.PutUint32(raw[20:24], h.DotsPerInch)
	return raw
}

// Variant derives the wire-layout parameters for a URF page body: chunky
// pixels, chunk size equal to the whole pixel (spec.md §4.7, URF case).
func Variant(h *PageHeader) (raster.CodecParams, error) {
	if h.BitsPerPixel%8 != 0 {
		return raster.CodecParams{}, fmt.Errorf("urf: bits_per_pixel %d not a multiple of 8: %w", h.BitsPerPixel, raster.ErrInvalidData)
	}
	chunkSize := h.BitsPerPixel / 8
	bytesPerLine := uint64(h.Width) * uint64(chunkSize)
	rows := uint64(h.Width) * uint64(h.Height)
	total := rows * uint64(chunkSize)
	if chunkSize != 0 && total/uint64(chunkSize) != rows {
		return raster.CodecParams{}, &raster.DataTooLargeError{Reason: "urf page size overflow"}
	}

	fillByte := byte(0x00)
	if h.ColorSpace.additive() {
		fillByte = 0xFF
	}
	return raster.CodecParams{
		ChunkSize:    chunkSize,
		BytesPerLine: bytesPerLine,
		TotalBytes:   total,
		FillByte:     fillByte,
	}, nil
}

// Reader drives a URF stream page by page.
type Reader struct {
	r      io.Reader
	header Header
	limits raster.Limits
	cur    *Page
}

// Page is one decoded URF page.
type Page struct {
	Header  *PageHeader
	Decoder raster.PageDecoder
}

// NewReader reads the 12-byte file header (magic + page count).
func NewReader(r io.Reader, limits raster.Limits) (*Reader, error) {
	var buf [12]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if [8]byte(buf[:8]) != magic {
		return nil, raster.ErrInvalidSyncWord
	}
	return &Reader{
		r:      r,
		header: Header{PageCount: binary.BigEndian.Uint32(buf[8:12])},
		limits: limits,
	}, nil
}

// Header returns the file-level header read by NewReader.
func (rd *Reader) Header() Header { return rd.header }

// NextPage drains any previous page and reads the next one. Like
// raster.Reader.NextPage, a clean end of stream is reported as io.EOF.
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

	raw := make([]byte, pageHeaderSize)
	if _, err := io.ReadFull(rd.r, raw); err != nil {
		return nil, err
	}
	h, err := decodePageHeader(raw)
	if err != nil {
		return nil, err
	}
	params, err := Variant(h)
	if err != nil {
		return nil, err
	}
	dec, err := raster.NewPackbitsDecoder(rd.r, rd.limits, params)
	if err != nil {
		return nil, err
	}

	page := &Page{Header: h, Decoder: dec}
	rd.cur = page
	return page, nil
}

// Writer drives a URF stream page by page.
type Writer struct {
	w   io.Writer
	cur raster.PageEncoder
}

// NewWriter writes the 12-byte file header.
func NewWriter(w io.Writer, header Header) (*Writer, error) {
	var buf [12]byte
	copy(buf[:8], magic[:])
	binary.BigEndian.PutUint32(buf[8:12], header.PageCount)
	if err := writeFull(w, buf[:]); err != nil {
		return nil, err
	}
	return &Writer{w: w}, nil
}

// WritePage closes out any in-flight page, writes the next page header, and
// returns a PageEncoder for its body.
func (wr *Writer) WritePage(h *PageHeader) (raster.PageEncoder, error) {
	if wr.cur != nil {
		if err := wr.cur.Close(); err != nil {
			return nil, err
		}
		wr.cur = nil
	}

	if !h.ColorSpace.valid() {
		return nil, &raster.UnknownEnumError{Field: "ColorSpace", Value: uint32(h.ColorSpace)}
	}
	if err := writeFull(wr.w, encodePageHeader(h)); err != nil {
		return nil, err
	}
	params, err := Variant(h)
	if err != nil {
		return nil, err
	}
	enc, err := raster.NewPackbitsEncoder(wr.w, params)
	if err != nil {
		return nil, err
	}
	wr.cur = enc
	return enc, nil
}

// Finish closes the final page, if any.
func (wr *Writer) Finish() error {
	if wr.cur != nil {
		err := wr.cur.Close()
		wr.cur = nil
		return err
	}
	return nil
}

func writeFull(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if n == 0 && err == nil {
			return raster.ErrWriteZero
		}
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}
