package raster

import "io"

// PackbitsEncoder turns plain pixel bytes into a packbits-style compressed
// raster byte stream (CUPS V2 bodies, and all URF page bodies). See
// spec.md §4.2. Unlike the decoder, the encoder needs no tagged state across
// calls: Go's io.Writer contract already requires a conforming writer to
// either consume everything it is handed or report an error, so one Write
// call can run the whole line-buffering/flush pipeline to completion before
// returning.
type PackbitsEncoder struct {
	w         io.Writer
	chunkSize uint8

	bytesRemaining uint64
	lineBuffer     []byte
	posInLine      int

	hasPendingRepeat bool
	pendingRepeat    uint8
}

// NewPackbitsEncoder constructs an encoder for one page.
func NewPackbitsEncoder(w io.Writer, params CodecParams) (*PackbitsEncoder, error) {
	if err := params.validate(NoLimits); err != nil {
		return nil, err
	}
	return &PackbitsEncoder{
		w:              w,
		chunkSize:      params.ChunkSize,
		bytesRemaining: params.TotalBytes,
		lineBuffer:     make([]byte, params.lineBufferSize()),
	}, nil
}

// BytesRemaining implements PageEncoder.
func (e *PackbitsEncoder) BytesRemaining() uint64 { return e.bytesRemaining }

// Write implements io.Writer, and so PageEncoder.
func (e *PackbitsEncoder) Write(buf []byte) (int, error) {
	if uint64(len(buf)) > e.bytesRemaining {
		return 0, ErrInvalidData
	}

	total := 0
	for len(buf) > 0 {
		n := len(buf)
		if room := len(e.lineBuffer) - e.posInLine; n > room {
			n = room
		}

		if e.hasPendingRepeat {
			diff := -1
			for i := 0; i < n; i++ {
				if buf[i] != e.lineBuffer[e.posInLine+i] {
					diff = i
					break
				}
			}
			if diff >= 0 {
				e.hasPendingRepeat = false
				e.posInLine += diff
				buf = buf[diff:]
				total += diff
				if err := e.flushLine(e.pendingRepeat); err != nil {
					e.bytesRemaining -= uint64(total)
					return total, err
				}
				continue
			}
			buf = buf[n:]
			e.posInLine += n
			total += n
			if e.posInLine == len(e.lineBuffer) {
				e.posInLine = 0
				newRepeat := e.pendingRepeat + 1
				if newRepeat == 0xFF || uint64(total) >= e.bytesRemaining {
					e.hasPendingRepeat = false
					if err := e.flushLine(newRepeat); err != nil {
						e.bytesRemaining -= uint64(total)
						return total, err
					}
				} else {
					e.hasPendingRepeat = true
					e.pendingRepeat = newRepeat
				}
			}
			continue
		}

		copy(e.lineBuffer[e.posInLine:e.posInLine+n], buf[:n])
		buf = buf[n:]
		e.posInLine += n
		total += n
		if e.posInLine == len(e.lineBuffer) {
			e.posInLine = 0
			if uint64(total) >= e.bytesRemaining {
				if err := e.flushLine(0); err != nil {
					e.bytesRemaining -= uint64(total)
					return total, err
				}
			} else {
				e.hasPendingRepeat = true
				e.pendingRepeat = 0
			}
		}
	}

	e.bytesRemaining -= uint64(total)
	return total, nil
}

// Close flushes any line held pending repeat detection. By construction this
// is a no-op unless the caller mis-sequenced writes: every line that
// completes the page is flushed inline by Write.
func (e *PackbitsEncoder) Close() error {
	if e.bytesRemaining != 0 {
		return ErrIncompletePage
	}
	if e.hasPendingRepeat {
		e.hasPendingRepeat = false
		if err := e.flushLine(e.pendingRepeat); err != nil {
			return err
		}
	}
	if f, ok := e.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// flushLine emits the line-repeat byte followed by the greedy packbits
// encoding of the full line buffer.
func (e *PackbitsEncoder) flushLine(lineRepeat uint8) error {
	if err := writeFull(e.w, []byte{lineRepeat}); err != nil {
		return err
	}

	cs := int(e.chunkSize)
	n := len(e.lineBuffer)
	start := 0
	for start < n {
		avail := (n - start) / cs

		if avail == 1 {
			if err := writeFull(e.w, []byte{0}); err != nil {
				return err
			}
			if err := writeFull(e.w, e.lineBuffer[start:start+cs]); err != nil {
				return err
			}
			start += cs
			continue
		}

		first := e.lineBuffer[start : start+cs]
		second := e.lineBuffer[start+cs : start+2*cs]
		if bytesEqual(first, second) {
			tag := uint8(1)
			pos := 2
			for pos < avail {
				if !bytesEqual(e.lineBuffer[start+pos*cs:start+(pos+1)*cs], first) || tag >= 0x7f {
					break
				}
				tag++
				pos++
			}
			if err := writeFull(e.w, []byte{tag}); err != nil {
				return err
			}
			if err := writeFull(e.w, first); err != nil {
				return err
			}
			start += (int(tag) + 1) * cs
			continue
		}

		count := uint8(1)
		prev := second
		pos := 2
		for pos < avail {
			cur := e.lineBuffer[start+pos*cs : start+(pos+1)*cs]
			if bytesEqual(cur, prev) {
				break
			}
			count++
			prev = cur
			pos++
			if count >= 0x7f {
				break
			}
		}
		tag := ^count + 2
		if err := writeFull(e.w, []byte{tag}); err != nil {
			return err
		}
		if err := writeFull(e.w, e.lineBuffer[start:start+int(count)*cs]); err != nil {
			return err
		}
		start += int(count) * cs
	}
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// writeFull writes all of p to w, looping over short writes and treating a
// zero-byte, no-error write as a stuck transport rather than forward
// progress.
func writeFull(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if n == 0 && err == nil {
			return ErrWriteZero
		}
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}
