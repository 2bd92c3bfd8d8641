package raster

import "math"

// Limits bounds the per-page sizes a decoder will accept, so that a
// maliciously crafted header cannot force an oversized allocation before a
// single byte of pixel data has been validated.
type Limits struct {
	BytesPerLineMax uint64
	BytesPerPageMax uint64
}

// NoLimits imposes no bound beyond the range of uint64. Callers decoding
// files from a trusted source (their own encoder, a local spooler) may use
// it; anything decoding attacker-controlled input should supply real bounds.
var NoLimits = Limits{
	BytesPerLineMax: math.MaxUint64,
	BytesPerPageMax: math.MaxUint64,
}

func (l Limits) checkLine(bytesPerLine uint64) error {
	if bytesPerLine > l.BytesPerLineMax {
		return &DataTooLargeError{Reason: "bytes_per_line exceeds configured limit"}
	}
	return nil
}

func (l Limits) checkPage(totalBytes uint64) error {
	if totalBytes > l.BytesPerPageMax {
		return &DataTooLargeError{Reason: "total page size exceeds configured limit"}
	}
	return nil
}
