// Package fuzzcorpus holds adversarial byte sequences for the raster
// package's unit tests. The sequences target the same
// adversarial shapes the original honggfuzz harnesses (fuzz_compress.rs,
// fuzz_cups_v2.rs, fuzz_urf.rs) exercised: truncated headers, opcodes whose
// declared extent runs past the line buffer, and zero-sized pages.
package fuzzcorpus

// PackbitsAdversarial are standalone packbits block streams, each paired
// with the chunk size and line size they should be decoded against. Most
// entries are malformed and expected to fail with raster.ErrInvalidData or
// io.ErrUnexpectedEOF; none should ever panic or loop forever. One entry
// (fill_to_end_of_line) is a valid stream included to exercise the 0x80
// opcode at the same boundary.
var PackbitsAdversarial = []struct {
	Name         string
	ChunkSize    uint8
	BytesPerLine uint64
	TotalBytes   uint64
	Data         []byte
}{
	{
		Name:         "repeat_run_overruns_line",
		ChunkSize:    3,
		BytesPerLine: 6,
		TotalBytes:   6,
		// line_repeat=0, opcode 0x7F claims 128 chunks of 3 bytes each,
		// far beyond the 2-chunk line.
		Data: []byte{0x00, 0x7F, 1, 2, 3},
	},
	{
		Name:         "literal_run_overruns_line",
		ChunkSize:    2,
		BytesPerLine: 4,
		TotalBytes:   4,
		// opcode 0xFE (count=255-254+2=... computed as ^0xFE+2=3) claims 3
		// chunks in a 2-chunk line.
		Data: []byte{0x00, 0xFE, 1, 2, 3, 4, 5, 6},
	},
	{
		Name:         "truncated_mid_opcode",
		ChunkSize:    1,
		BytesPerLine: 4,
		TotalBytes:   4,
		Data:         []byte{0x00},
	},
	{
		Name:         "truncated_mid_block_data",
		ChunkSize:    4,
		BytesPerLine: 4,
		TotalBytes:   4,
		Data:         []byte{0x00, 0x00, 1, 2},
	},
	{
		Name:         "fill_to_end_of_line",
		ChunkSize:    1,
		BytesPerLine: 4,
		TotalBytes:   4,
		Data:         []byte{0x00, 0x80},
	},
}

// EmptyPage is a zero-byte page: no line-repeat byte should ever be read.
var EmptyPage = []byte{}

// TruncatedCUPSHeader is shorter than any valid V1/V2/V3 header: reading it
// as a header fails with io.ErrUnexpectedEOF rather than io.EOF.
var TruncatedCUPSHeader = make([]byte, 100)

// TruncatedURFFileHeader is shorter than the 12-byte URF file header.
var TruncatedURFFileHeader = []byte{'U', 'N', 'I', 'R', 'A', 'S', 'T'}
