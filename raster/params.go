package raster

// CodecParams fully determines the wire layout of one page's pixel stream,
// independent of which file format (CUPS or URF) produced it. Format
// variants (raster/variant_cups.go, urf's own variant derivation) compute
// these from a parsed page header.
type CodecParams struct {
	// ChunkSize is the atomic comparison/repeat unit: typically the
	// per-pixel byte count (chunky) or per-component byte count
	// (banded/planar).
	ChunkSize uint8
	// BytesPerLine must be a multiple of ChunkSize, unless both are zero.
	BytesPerLine uint64
	// TotalBytes must be a multiple of BytesPerLine, unless both are zero.
	TotalBytes uint64
	// FillByte is used by the decoder's 0x80 "fill to end of line" opcode.
	FillByte uint8
}

func (p CodecParams) validate(limits Limits) error {
	if err := limits.checkLine(p.BytesPerLine); err != nil {
		return err
	}
	if err := limits.checkPage(p.TotalBytes); err != nil {
		return err
	}
	if p.BytesPerLine != 0 && (p.ChunkSize == 0 || p.BytesPerLine%uint64(p.ChunkSize) != 0) {
		return &DataLayoutError{ChunkSize: p.ChunkSize, BytesPerLine: p.BytesPerLine}
	}
	if p.TotalBytes != 0 && (p.BytesPerLine == 0 || p.TotalBytes%p.BytesPerLine != 0) {
		return ErrInvalidData
	}
	return nil
}

// lineBufferSize returns the length of the line buffer a codec must
// allocate: min(BytesPerLine, TotalBytes), so an empty page (TotalBytes==0)
// never allocates a buffer even if BytesPerLine is nonzero.
func (p CodecParams) lineBufferSize() uint64 {
	if p.BytesPerLine < p.TotalBytes {
		return p.BytesPerLine
	}
	return p.TotalBytes
}
