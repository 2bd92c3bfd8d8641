package raster

// CUPSVariant derives the wire-layout parameters for one CUPS page body from
// its parsed header, per spec.md §4.7. The three color orders share the same
// chunky/banded math; planar additionally multiplies the per-band byte count
// out across every color component, which is where an adversarial header can
// overflow and must report DataTooLarge instead of wrapping.
func CUPSVariant(h *PageHeader) (CodecParams, error) {
	ceilBytes := func(bits uint32) uint64 {
		return (uint64(bits) + 7) / 8
	}

	bytesPerLine := uint64(h.BytesPerLine)
	fillByte := FillByteForColorSpace(h.ColorSpace)

	switch h.ColorOrder {
	case ChunkyPixels:
		chunkSize := ceilBytes(h.BitsPerPixel)
		if chunkSize > 0xFF {
			return CodecParams{}, &DataTooLargeError{Reason: "chunky pixel exceeds 255 bytes"}
		}
		total := bytesPerLine * uint64(h.Height)
		return CodecParams{
			ChunkSize:    uint8(chunkSize),
			BytesPerLine: bytesPerLine,
			TotalBytes:   total,
			FillByte:     fillByte,
		}, nil

	case BandedPixels:
		chunkSize := ceilBytes(h.BitsPerColor)
		if chunkSize > 0xFF {
			return CodecParams{}, &DataTooLargeError{Reason: "banded component exceeds 255 bytes"}
		}
		total := bytesPerLine * uint64(h.Height)
		return CodecParams{
			ChunkSize:    uint8(chunkSize),
			BytesPerLine: bytesPerLine,
			TotalBytes:   total,
			FillByte:     fillByte,
		}, nil

	case PlanarPixels:
		chunkSize := ceilBytes(h.BitsPerColor)
		if chunkSize > 0xFF {
			return CodecParams{}, &DataTooLargeError{Reason: "planar component exceeds 255 bytes"}
		}
		numColors := uint64(h.NumColors)
		if numColors == 0 {
			numColors = colorSpaceColorCount(h.ColorSpace)
		}
		total := bytesPerLine * uint64(h.Height)
		newTotal := total * numColors
		if numColors != 0 && newTotal/numColors != total {
			return CodecParams{}, &DataTooLargeError{Reason: "planar page size overflow"}
		}
		return CodecParams{
			ChunkSize:    uint8(chunkSize),
			BytesPerLine: bytesPerLine,
			TotalBytes:   newTotal,
			FillByte:     fillByte,
		}, nil

	default:
		return CodecParams{}, &UnknownEnumError{Field: "ColorOrder", Value: h.ColorOrder}
	}
}

// colorSpaceColorCount gives the component count CUPS implies for a color
// space when a V1 header (no explicit NumColors field) is in play.
func colorSpaceColorCount(cs uint32) uint64 {
	switch cs {
	case ColorSpaceGray, ColorSpaceBlack, ColorSpaceWhite, ColorSpaceGold, ColorSpaceSilver, ColorSpaceSGray:
		return 1
	case ColorSpaceRGB, ColorSpaceCMY, ColorSpaceYMC, ColorSpaceCIEXYZ, ColorSpaceCIELab, ColorSpaceSRGB, ColorSpaceAdobeRGB:
		return 3
	case ColorSpaceRGBA, ColorSpaceCMYK, ColorSpaceYMCK, ColorSpaceKCMY, ColorSpaceRGBW:
		return 4
	case ColorSpaceKCMYcm:
		return 6
	default:
		return 1
	}
}

// IsCompressed reports whether a CUPS version uses packbits-compressed page
// bodies: only V2. V1 and V3 are uncompressed passthrough.
func IsCompressed(version int) bool {
	return version == 2
}
