package raster

import (
	"bytes"
	"encoding/binary"
	"io"
	"unicode/utf8"
)

// CUPS sync words: 4 bytes identifying version and byte order. V2 and V3
// share a header layout (V1's 420 bytes plus the V2 extension), but only V2
// bodies are packbits-compressed; V1 and V3 bodies are uncompressed
// passthrough.
const (
	syncV1BE = "RaSt"
	syncV1LE = "tSaR"
	syncV2BE = "RaS2"
	syncV2LE = "2SaR"
	syncV3BE = "RaS3"
	syncV3LE = "3SaR"
)

// ParseSyncWord identifies the CUPS raster variant and byte order from the
// file's first 4 bytes.
func ParseSyncWord(b [4]byte) (version int, bo binary.ByteOrder, err error) {
	switch string(b[:]) {
	case syncV1BE:
		return 1, binary.BigEndian, nil
	case syncV1LE:
		return 1, binary.LittleEndian, nil
	case syncV2BE:
		return 2, binary.BigEndian, nil
	case syncV2LE:
		return 2, binary.LittleEndian, nil
	case syncV3BE:
		return 3, binary.BigEndian, nil
	case syncV3LE:
		return 3, binary.LittleEndian, nil
	default:
		return 0, nil, ErrInvalidSyncWord
	}
}

// SyncWordFor returns the 4-byte sync word for a given version and byte
// order, the inverse of ParseSyncWord.
func SyncWordFor(version int, bo binary.ByteOrder) (string, error) {
	be := bo == binary.BigEndian
	switch {
	case version == 1 && be:
		return syncV1BE, nil
	case version == 1 && !be:
		return syncV1LE, nil
	case version == 2 && be:
		return syncV2BE, nil
	case version == 2 && !be:
		return syncV2LE, nil
	case version == 3 && be:
		return syncV3BE, nil
	case version == 3 && !be:
		return syncV3LE, nil
	default:
		return "", &UnknownEnumError{Field: "Version", Value: uint32(version)}
	}
}

// Color order, chosen per spec.md §4.6.
const (
	ChunkyPixels = 0
	BandedPixels = 1
	PlanarPixels = 2
)

// Color spaces recognized by CUPS. Values not in this set fail header
// parsing with an *UnknownEnumError.
const (
	ColorSpaceGray     = 0
	ColorSpaceRGB      = 1
	ColorSpaceRGBA     = 2
	ColorSpaceBlack    = 3
	ColorSpaceCMY      = 4
	ColorSpaceYMC      = 5
	ColorSpaceCMYK     = 6
	ColorSpaceYMCK     = 7
	ColorSpaceKCMY     = 8
	ColorSpaceKCMYcm   = 9
	ColorSpaceGMCK     = 10
	ColorSpaceGMCS     = 11
	ColorSpaceWhite    = 12
	ColorSpaceGold     = 13
	ColorSpaceSilver   = 14
	ColorSpaceCIEXYZ   = 15
	ColorSpaceCIELab   = 16
	ColorSpaceRGBW     = 17
	ColorSpaceSGray    = 18
	ColorSpaceSRGB     = 19
	ColorSpaceAdobeRGB = 20
	ColorSpaceICC1     = 32
	ColorSpaceICC2     = 33
	ColorSpaceICC3     = 34
	ColorSpaceICC4     = 35
	ColorSpaceICC5     = 36
	ColorSpaceICC6     = 37
	ColorSpaceICC7     = 38
	ColorSpaceICC8     = 39
	ColorSpaceICC9     = 40
	ColorSpaceICCA     = 41
	ColorSpaceICCB     = 42
	ColorSpaceICCC     = 43
	ColorSpaceICCD     = 44
	ColorSpaceICCE     = 45
	ColorSpaceICCF     = 46
	ColorSpaceDevice1  = 48
	ColorSpaceDevice2  = 49
	ColorSpaceDevice3  = 50
	ColorSpaceDevice4  = 51
	ColorSpaceDevice5  = 52
	ColorSpaceDevice6  = 53
	ColorSpaceDevice7  = 54
	ColorSpaceDevice8  = 55
	ColorSpaceDevice9  = 56
	ColorSpaceDeviceA  = 57
	ColorSpaceDeviceB  = 58
	ColorSpaceDeviceC  = 59
	ColorSpaceDeviceD  = 60
	ColorSpaceDeviceE  = 61
	ColorSpaceDeviceF  = 62
)

const (
	AdvanceNever     = 0
	AdvanceAfterFile = 1
	AdvanceAfterJob  = 2
	AdvanceAfterSet  = 3
	AdvanceAfterPage = 4
)

const (
	CutNever     = 0
	CutAfterFile = 1
	CutAfterJob  = 2
	CutAfterSet  = 3
	CutAfterPage = 4
)

const (
	JogNever     = 0
	JogAfterFile = 1
	JogAfterJob  = 2
	JogAfterSet  = 3
)

const (
	EdgeTop    = 0
	EdgeRight  = 1
	EdgeBottom = 2
	EdgeLeft   = 3
)

const (
	RotateNone             = 0
	RotateCounterClockwise = 1
	RotateUpsideDown       = 2
	RotateClockwise        = 3
)

// additiveColorSpaces selects fill_byte = 0xFF; every other color space uses
// 0x00 (spec.md §4.6).
var additiveColorSpaces = map[int]bool{
	ColorSpaceSGray:    true,
	ColorSpaceSRGB:     true,
	ColorSpaceCIELab:   true,
	ColorSpaceAdobeRGB: true,
	ColorSpaceGray:     true,
	ColorSpaceRGB:      true,
	ColorSpaceRGBA:     true,
	ColorSpaceRGBW:     true,
}

// FillByteForColorSpace returns the decoder's 0x80 fill byte for a CUPS
// color space: 0xFF for additive spaces, 0x00 otherwise (spec.md §4.6).
func FillByteForColorSpace(colorSpace uint32) byte {
	if additiveColorSpaces[int(colorSpace)] {
		return 0xFF
	}
	return 0x00
}

type BoundingBox struct{ Left, Bottom, Right, Top uint32 }
type FloatBoundingBox struct{ Left, Bottom, Right, Top float32 }

// PageHeader is the union of the CUPS V1/V2/V3 per-page header fields.
// V1-only streams leave the V2 extension fields at their zero value.
type PageHeader struct {
	MediaClass string
	MediaColor string
	MediaType  string
	OutputType string

	AdvanceDistance uint32
	AdvanceMedia    uint32
	Collate         bool
	CutMedia        uint32
	Duplex          bool
	ResolutionCross uint32
	ResolutionFeed  uint32
	ImagingBBox     BoundingBox
	InsertSheet     bool
	Jog             uint32
	LeadingEdge     uint32
	MarginLeft      uint32
	MarginBottom    uint32
	ManualFeed      bool
	MediaPosition   uint32
	MediaWeight     uint32
	MirrorPrint     bool
	NegativePrint   bool
	NumCopies       uint32
	Orientation     uint32
	OutputFaceUp    bool
	PageSizeWidth   uint32
	PageSizeHeight  uint32
	Separations     bool
	TraySwitch      bool
	Tumble          bool
	Width           uint32
	Height          uint32
	CUPSMediaType   uint32
	BitsPerColor    uint32
	BitsPerPixel    uint32
	BytesPerLine    uint32
	ColorOrder      uint32
	ColorSpace      uint32
	Compression     uint32
	RowCount        uint32
	RowFeed         uint32
	RowStep         uint32

	// V2/V3 extension.
	NumColors               uint32
	BorderlessScalingFactor float32
	PageSizeF32             [2]float32
	ImagingBBoxF32          FloatBoundingBox
	VendorInteger           [16]uint32
	VendorReal              [16]float32
	VendorString            [16]string
	MarkerType              string
	RenderingIntent         string
	PageSizeName            string
}

const (
	HeaderSizeV1 = 420
	HeaderSizeV2 = 1796
)

// cstringField reads a fixed-size NUL-terminated string field. A non-UTF8
// body is ErrInvalidString for required fields; vendorField variants
// silently substitute "" instead, per spec.md §7.
func cstringField(b []byte) (string, error) {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	if !utf8.Valid(b[:n]) {
		return "", ErrInvalidString
	}
	return string(b[:n]), nil
}

func vendorStringField(b []byte) string {
	s, err := cstringField(b)
	if err != nil {
		return ""
	}
	return s
}

func putCString(b []byte, field string, s string) error {
	if len(s) > len(b)-1 {
		return &StringTooLongError{Field: field, Max: len(b) - 1}
	}
	copy(b, s)
	for i := len(s); i < len(b); i++ {
		b[i] = 0
	}
	return nil
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func checkEnum(field string, value uint32, allowed ...uint32) error {
	for _, v := range allowed {
		if value == v {
			return nil
		}
	}
	return &UnknownEnumError{Field: field, Value: value}
}

func (h *PageHeader) validateEnums() error {
	if err := checkEnum("AdvanceMedia", h.AdvanceMedia, AdvanceNever, AdvanceAfterFile, AdvanceAfterJob, AdvanceAfterSet, AdvanceAfterPage); err != nil {
		return err
	}
	if err := checkEnum("CutMedia", h.CutMedia, CutNever, CutAfterFile, CutAfterJob, CutAfterSet, CutAfterPage); err != nil {
		return err
	}
	if err := checkEnum("Jog", h.Jog, JogNever, JogAfterFile, JogAfterJob, JogAfterSet); err != nil {
		return err
	}
	if err := checkEnum("LeadingEdge", h.LeadingEdge, EdgeTop, EdgeRight, EdgeBottom, EdgeLeft); err != nil {
		return err
	}
	if err := checkEnum("Orientation", h.Orientation, RotateNone, RotateCounterClockwise, RotateUpsideDown, RotateClockwise); err != nil {
		return err
	}
	if err := checkEnum("ColorOrder", h.ColorOrder, ChunkyPixels, BandedPixels, PlanarPixels); err != nil {
		return err
	}
	return checkColorSpace(h.ColorSpace)
}

func checkColorSpace(v uint32) error {
	if v <= ColorSpaceAdobeRGB || (v >= ColorSpaceICC1 && v <= ColorSpaceICCF) || (v >= ColorSpaceDevice1 && v <= ColorSpaceDeviceF) {
		return nil
	}
	return &UnknownEnumError{Field: "ColorSpace", Value: v}
}

// cupsV1Layout/cupsV2Layout mirror the fixed-offset numeric block that
// follows the four leading C-strings, shared between read and write so the
// offsets are defined exactly once.
type cupsV1Layout struct {
	AdvanceDistance  uint32
	AdvanceMedia     uint32
	Collate          uint32
	CutMedia         uint32
	Duplex           uint32
	ResolutionCross  uint32
	ResolutionFeed   uint32
	ImagingBBox      BoundingBox
	InsertSheet      uint32
	Jog              uint32
	LeadingEdge      uint32
	MarginLeft       uint32
	MarginBottom     uint32
	ManualFeed       uint32
	MediaPosition    uint32
	MediaWeight      uint32
	MirrorPrint      uint32
	NegativePrint    uint32
	NumCopies        uint32
	Orientation      uint32
	OutputFaceUp     uint32
	PageSizeWidth    uint32
	PageSizeHeight   uint32
	Separations      uint32
	TraySwitch       uint32
	Tumble           uint32
	Width            uint32
	Height           uint32
	CUPSMediaType    uint32
	BitsPerColor     uint32
	BitsPerPixel     uint32
	BytesPerLine     uint32
	ColorOrder       uint32
	ColorSpace       uint32
	Compression      uint32
	RowCount         uint32
	RowFeed          uint32
	RowStep          uint32
}

type cupsV2Layout struct {
	NumColors              uint32
	BorderlessScalingFator float32
	PageSizeF32            [2]float32
	ImagingBBoxF32         FloatBoundingBox
	VendorInteger          [16]uint32
	VendorReal             [16]float32
}

// ReadPageHeader reads one fixed-size CUPS page header (420 bytes for V1,
// 1796 for V2/V3) and decodes it according to version. A clean EOF before
// any byte is read signals "no more pages" via io.EOF; any other truncation
// is io.ErrUnexpectedEOF, courtesy of io.ReadFull.
func ReadPageHeader(r io.Reader, bo binary.ByteOrder, version int) (*PageHeader, error) {
	size := HeaderSizeV1
	if version >= 2 {
		size = HeaderSizeV2
	}
	raw := make([]byte, size)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, err
	}
	return decodePageHeader(raw, bo, version)
}

func decodePageHeader(raw []byte, bo binary.ByteOrder, version int) (*PageHeader, error) {
	h := &PageHeader{}
	var err error
	if h.MediaClass, err = cstringField(raw[0:64]); err != nil {
		return nil, err
	}
	if h.MediaColor, err = cstringField(raw[64:128]); err != nil {
		return nil, err
	}
	if h.MediaType, err = cstringField(raw[128:192]); err != nil {
		return nil, err
	}
	if h.OutputType, err = cstringField(raw[192:256]); err != nil {
		return nil, err
	}

	var v1 cupsV1Layout
	if err := binary.Read(bytes.NewReader(raw[256:420]), bo, &v1); err != nil {
		return nil, err
	}
	h.AdvanceDistance = v1.AdvanceDistance
	h.AdvanceMedia = v1.AdvanceMedia
	h.Collate = v1.Collate != 0
	h.CutMedia = v1.CutMedia
	h.Duplex = v1.Duplex != 0
	h.ResolutionCross = v1.ResolutionCross
	h.ResolutionFeed = v1.ResolutionFeed
	h.ImagingBBox = v1.ImagingBBox
	h.InsertSheet = v1.InsertSheet != 0
	h.Jog = v1.Jog
	h.LeadingEdge = v1.LeadingEdge
	h.MarginLeft = v1.MarginLeft
	h.MarginBottom = v1.MarginBottom
	h.ManualFeed = v1.ManualFeed != 0
	h.MediaPosition = v1.MediaPosition
	h.MediaWeight = v1.MediaWeight
	h.MirrorPrint = v1.MirrorPrint != 0
	h.NegativePrint = v1.NegativePrint != 0
	h.NumCopies = v1.NumCopies
	h.Orientation = v1.Orientation
	h.OutputFaceUp = v1.OutputFaceUp != 0
	h.PageSizeWidth = v1.PageSizeWidth
	h.PageSizeHeight = v1.PageSizeHeight
	h.Separations = v1.Separations != 0
	h.TraySwitch = v1.TraySwitch != 0
	h.Tumble = v1.Tumble != 0
	h.Width = v1.Width
	h.Height = v1.Height
	h.CUPSMediaType = v1.CUPSMediaType
	h.BitsPerColor = v1.BitsPerColor
	h.BitsPerPixel = v1.BitsPerPixel
	h.BytesPerLine = v1.BytesPerLine
	h.ColorOrder = v1.ColorOrder
	h.ColorSpace = v1.ColorSpace
	h.Compression = v1.Compression
	h.RowCount = v1.RowCount
	h.RowFeed = v1.RowFeed
	h.RowStep = v1.RowStep

	if version >= 2 {
		var v2 cupsV2Layout
		if err := binary.Read(bytes.NewReader(raw[420:580]), bo, &v2); err != nil {
			return nil, err
		}
		h.NumColors = v2.NumColors
		h.BorderlessScalingFactor = v2.BorderlessScalingFator
		h.PageSizeF32 = v2.PageSizeF32
		h.ImagingBBoxF32 = v2.ImagingBBoxF32
		h.VendorInteger = v2.VendorInteger
		h.VendorReal = v2.VendorReal

		off := 420 + 4 + 4 + 8 + 16 + 16*4 + 16*4
		for i := 0; i < 16; i++ {
			h.VendorString[i] = vendorStringField(raw[off+i*64 : off+i*64+64])
		}
		off += 16 * 64
		if h.MarkerType, err = cstringField(raw[off : off+64]); err != nil {
			return nil, err
		}
		off += 64
		if h.RenderingIntent, err = cstringField(raw[off : off+64]); err != nil {
			return nil, err
		}
		off += 64
		if h.PageSizeName, err = cstringField(raw[off : off+64]); err != nil {
			return nil, err
		}
	}

	if err := h.validateEnums(); err != nil {
		return nil, err
	}
	return h, nil
}

// WritePageHeader encodes and writes one fixed-size CUPS page header.
func WritePageHeader(w io.Writer, bo binary.ByteOrder, version int, h *PageHeader) error {
	if err := h.validateEnums(); err != nil {
		return err
	}
	size := HeaderSizeV1
	if version >= 2 {
		size = HeaderSizeV2
	}
	raw := make([]byte, size)
	if err := putCString(raw[0:64], "MediaClass", h.MediaClass); err != nil {
		return err
	}
	if err := putCString(raw[64:128], "MediaColor", h.MediaColor); err != nil {
		return err
	}
	if err := putCString(raw[128:192], "MediaType", h.MediaType); err != nil {
		return err
	}
	if err := putCString(raw[192:256], "OutputType", h.OutputType); err != nil {
		return err
	}

	v1 := cupsV1Layout{
		AdvanceDistance: h.AdvanceDistance,
		AdvanceMedia:    h.AdvanceMedia,
		Collate:         boolToU32(h.Collate),
		CutMedia:        h.CutMedia,
		Duplex:          boolToU32(h.Duplex),
		ResolutionCross: h.ResolutionCross,
		ResolutionFeed:  h.ResolutionFeed,
		ImagingBBox:     h.ImagingBBox,
		InsertSheet:     boolToU32(h.InsertSheet),
		Jog:             h.Jog,
		LeadingEdge:     h.LeadingEdge,
		MarginLeft:      h.MarginLeft,
		MarginBottom:    h.MarginBottom,
		ManualFeed:      boolToU32(h.ManualFeed),
		MediaPosition:   h.MediaPosition,
		MediaWeight:     h.MediaWeight,
		MirrorPrint:     boolToU32(h.MirrorPrint),
		NegativePrint:   boolToU32(h.NegativePrint),
		NumCopies:       h.NumCopies,
		Orientation:     h.Orientation,
		OutputFaceUp:    boolToU32(h.OutputFaceUp),
		PageSizeWidth:   h.PageSizeWidth,
		PageSizeHeight:  h.PageSizeHeight,
		Separations:     boolToU32(h.Separations),
		TraySwitch:      boolToU32(h.TraySwitch),
		Tumble:          boolToU32(h.Tumble),
		Width:           h.Width,
		Height:          h.Height,
		CUPSMediaType:   h.CUPSMediaType,
		BitsPerColor:    h.BitsPerColor,
		BitsPerPixel:    h.BitsPerPixel,
		BytesPerLine:    h.BytesPerLine,
		ColorOrder:      h.ColorOrder,
		ColorSpace:      h.ColorSpace,
		Compression:     h.Compression,
		RowCount:        h.RowCount,
		RowFeed:         h.RowFeed,
		RowStep:         h.RowStep,
	}
	var v1buf bytes.Buffer
	if err := binary.Write(&v1buf, bo, &v1); err != nil {
		return err
	}
	copy(raw[256:420], v1buf.Bytes())

	if version >= 2 {
		v2 := cupsV2Layout{
			NumColors:              h.NumColors,
			BorderlessScalingFator: h.BorderlessScalingFactor,
			PageSizeF32:            h.PageSizeF32,
			ImagingBBoxF32:         h.ImagingBBoxF32,
			VendorInteger:          h.VendorInteger,
			VendorReal:             h.VendorReal,
		}
		var v2buf bytes.Buffer
		if err := binary.Write(&v2buf, bo, &v2); err != nil {
			return err
		}
		copy(raw[420:580], v2buf.Bytes())
		off := 420 + 4 + 4 + 8 + 16 + 16*4 + 16*4
		for i := 0; i < 16; i++ {
			// Vendor strings never fail encoding: a too-long value is
			// silently truncated, mirroring the silent-empty behavior on
			// read (spec.md §7).
			s := h.VendorString[i]
			if len(s) > 63 {
				s = s[:63]
			}
			copy(raw[off+i*64:off+i*64+64], s)
		}
		off += 16 * 64
		if err := putCString(raw[off:off+64], "MarkerType", h.MarkerType); err != nil {
			return err
		}
		off += 64
		if err := putCString(raw[off:off+64], "RenderingIntent", h.RenderingIntent); err != nil {
			return err
		}
		off += 64
		if err := putCString(raw[off:off+64], "PageSizeName", h.PageSizeName); err != nil {
			return err
		}
	}

	return writeFull(w, raw)
}
