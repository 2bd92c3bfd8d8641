package raster

import (
	"fmt"
	"io"
)

// ErrInvalidSyncWord is returned when a file does not begin with one of the
// six recognized CUPS raster sync words.
var ErrInvalidSyncWord = fmt.Errorf("raster: invalid sync word")

// ErrInvalidString is returned when a required C-string header field is not
// valid UTF-8 up to its NUL terminator.
var ErrInvalidString = fmt.Errorf("raster: invalid string field")

// ErrInvalidData is returned by codec constructors on bad parameters, and by
// the decoder when a packbits opcode claims an extent beyond the line
// buffer.
var ErrInvalidData = fmt.Errorf("raster: invalid data")

// ErrWriteZero is returned by the encoder when the underlying writer accepts
// zero bytes while the encoder still has pending output.
var ErrWriteZero = fmt.Errorf("raster: writer accepted 0 bytes")

// ErrIncompletePage is returned by Writer.Finish (and by starting a new
// page) when the current page's declared byte count has not been fully
// written.
var ErrIncompletePage = fmt.Errorf("raster: page closed with bytes_remaining > 0")

// ErrUnexpectedEOF is an alias for io.ErrUnexpectedEOF, used for EOF
// encountered mid-structure (mid-header, mid-block). A clean EOF at the
// start of a page header is reported as io.EOF instead, signaling "no more
// pages".
var ErrUnexpectedEOF = io.ErrUnexpectedEOF

// UnknownEnumError reports that a numeric enum-typed header field carried a
// value outside its closed tag set.
type UnknownEnumError struct {
	Field string
	Value uint32
}

func (e *UnknownEnumError) Error() string {
	return fmt.Sprintf("raster: unknown value %d for enum field %s", e.Value, e.Field)
}

// DataLayoutError reports that bytes_per_line was not a multiple of
// chunk_size.
type DataLayoutError struct {
	ChunkSize    uint8
	BytesPerLine uint64
}

func (e *DataLayoutError) Error() string {
	return fmt.Sprintf("raster: bytes_per_line %d is not a multiple of chunk_size %d", e.BytesPerLine, e.ChunkSize)
}

// DataTooLargeError reports overflow in page-size computations, or a size
// exceeding the configured Limits.
type DataTooLargeError struct {
	Reason string
}

func (e *DataTooLargeError) Error() string {
	return fmt.Sprintf("raster: data too large: %s", e.Reason)
}

// StringTooLongError reports that the encoder was asked to serialize a
// string longer than its fixed-size field.
type StringTooLongError struct {
	Field string
	Max   int
}

func (e *StringTooLongError) Error() string {
	return fmt.Sprintf("raster: value for field %s exceeds maximum length %d", e.Field, e.Max)
}
