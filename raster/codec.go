package raster

import "io"

// PageDecoder streams the decoded pixel bytes of a single page. A PageDecoder
// is single-use: once BytesRemaining reaches 0, the page driver reclaims the
// underlying reader and constructs a fresh PageDecoder for the next page.
type PageDecoder interface {
	io.Reader

	// BytesRemaining returns the number of undelivered pixel bytes
	// declared for this page. It only decreases, by exactly the number of
	// bytes handed to a caller's buffer.
	BytesRemaining() uint64
}

// PageEncoder accepts the decoded pixel bytes of a single page and emits
// their encoded form. Close must be called exactly once, after exactly
// BytesRemaining (at construction) bytes have been written; Close does not
// close the underlying writer.
type PageEncoder interface {
	io.Writer

	// BytesRemaining returns the number of pixel bytes the caller still
	// owes this page.
	BytesRemaining() uint64

	// Close flushes any buffered, not-yet-emitted line so the page is
	// complete on the wire. It returns ErrIncompletePage if
	// BytesRemaining is still nonzero.
	Close() error
}
