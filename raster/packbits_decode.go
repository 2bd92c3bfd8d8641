package raster

import "io"

// decoderState tags which sub-step of the packbits line-group grammar a
// PackbitsDecoder is suspended in. Every state transition happens at a byte
// boundary, so a decoder can be driven by a reader that only ever returns
// one byte at a time without losing or duplicating any byte.
type decoderState int

const (
	stateBegin decoderState = iota
	stateBeginBlock
	stateReadBlock
	stateUseBuffer
)

// PackbitsDecoder turns a packbits-style compressed raster byte stream (CUPS
// V2 bodies, and all URF page bodies) back into plain pixel bytes. See
// spec.md §4.1 for the wire grammar; this is a direct, synchronous-I/O
// transliteration of that state machine.
type PackbitsDecoder struct {
	r          io.Reader
	chunkSize  uint8
	fillByte   byte
	lineBuffer []byte

	bytesRemaining uint64
	lineRepeat     uint8

	state decoderState

	// cursor is "start" in spec.md: the line-buffer offset a BeginBlock /
	// ReadBlock step is working from.
	cursor int
	// blockRepeatLast/blockRemaining belong to ReadBlock.
	blockRepeatLast uint8
	blockRemaining  int
	// useStart/useRemaining belong to UseBuffer.
	useStart     int
	useRemaining int

	scratch [1]byte
}

// NewPackbitsDecoder constructs a decoder for one page, validating params
// against limits before any line buffer is allocated.
func NewPackbitsDecoder(r io.Reader, limits Limits, params CodecParams) (*PackbitsDecoder, error) {
	if err := params.validate(limits); err != nil {
		return nil, err
	}
	return &PackbitsDecoder{
		r:              r,
		chunkSize:      params.ChunkSize,
		fillByte:       params.FillByte,
		lineBuffer:     make([]byte, params.lineBufferSize()),
		bytesRemaining: params.TotalBytes,
		state:          stateBegin,
	}, nil
}

// BytesRemaining implements PageDecoder.
func (d *PackbitsDecoder) BytesRemaining() uint64 { return d.bytesRemaining }

// Read implements io.Reader, and so PageDecoder.
func (d *PackbitsDecoder) Read(buf []byte) (int, error) {
	if d.bytesRemaining == 0 {
		return 0, io.EOF
	}
	if uint64(len(buf)) > d.bytesRemaining {
		buf = buf[:d.bytesRemaining]
	}
	if len(buf) == 0 {
		return 0, nil
	}

	totalRead := 0
	for {
		switch d.state {
		case stateBegin:
			n, err := d.r.Read(d.scratch[:])
			if n == 0 {
				if err == io.EOF {
					return totalRead, io.EOF
				}
				if err != nil {
					return totalRead, err
				}
				continue
			}
			d.lineRepeat = d.scratch[0]
			d.cursor = 0
			d.state = stateBeginBlock

		case stateBeginBlock:
			n, err := d.r.Read(d.scratch[:])
			if n == 0 {
				if err == io.EOF {
					return totalRead, io.ErrUnexpectedEOF
				}
				if err != nil {
					return totalRead, err
				}
				continue
			}
			code := d.scratch[0]
			switch {
			case code <= 0x7F:
				extent := (int(code) + 1) * int(d.chunkSize)
				if len(d.lineBuffer)-d.cursor < extent {
					return totalRead, ErrInvalidData
				}
				d.blockRepeatLast = code
				d.blockRemaining = int(d.chunkSize)
				d.state = stateReadBlock
			case code == 0x80:
				for i := d.cursor; i < len(d.lineBuffer); i++ {
					d.lineBuffer[i] = d.fillByte
				}
				d.useStart = d.cursor
				d.useRemaining = len(d.lineBuffer) - d.cursor
				d.state = stateUseBuffer
			default:
				count := int(^code) + 2
				extent := count * int(d.chunkSize)
				if len(d.lineBuffer)-d.cursor < extent {
					return totalRead, ErrInvalidData
				}
				d.blockRepeatLast = 0
				d.blockRemaining = extent
				d.state = stateReadBlock
			}

		case stateReadBlock:
			startCur := d.cursor
			n := len(buf) - totalRead
			if n > d.blockRemaining {
				n = d.blockRemaining
			}
			readN, err := d.r.Read(d.lineBuffer[d.cursor : d.cursor+n])
			if readN == 0 {
				if err == io.EOF {
					return totalRead, io.ErrUnexpectedEOF
				}
				if err != nil {
					return totalRead, err
				}
				continue
			}
			d.cursor += readN
			d.blockRemaining -= readN

			if d.blockRemaining != 0 {
				copy(buf[totalRead:totalRead+readN], d.lineBuffer[startCur:startCur+readN])
				totalRead += readN
				d.bytesRemaining -= uint64(totalRead)
				return totalRead, nil
			}

			nAvailable := readN
			if d.blockRepeatLast != 0 {
				chunk := int(d.chunkSize)
				repeatCounter := d.blockRepeatLast
				nAvailable += int(repeatCounter) * chunk
				lastPixel := d.lineBuffer[d.cursor-chunk : d.cursor]
				for repeatCounter > 0 {
					copy(d.lineBuffer[d.cursor:d.cursor+chunk], lastPixel)
					d.cursor += chunk
					repeatCounter--
				}
			}
			readOut := len(buf) - totalRead
			if readOut > nAvailable {
				readOut = nAvailable
			}
			copy(buf[totalRead:totalRead+readOut], d.lineBuffer[startCur:startCur+readOut])
			totalRead += readOut
			d.useStart = startCur + readOut
			d.useRemaining = nAvailable - readOut
			d.state = stateUseBuffer

		case stateUseBuffer:
			read := len(buf) - totalRead
			if read > d.useRemaining {
				read = d.useRemaining
			}
			copy(buf[totalRead:totalRead+read], d.lineBuffer[d.useStart:d.useStart+read])
			d.useStart += read
			d.useRemaining -= read
			totalRead += read

			if d.useRemaining != 0 {
				d.bytesRemaining -= uint64(totalRead)
				return totalRead, nil
			}

			if d.useStart == len(d.lineBuffer) {
				if d.lineRepeat > 0 {
					d.lineRepeat--
					d.useStart = 0
					d.useRemaining = len(d.lineBuffer)
					continue
				}
				d.state = stateBegin
				if totalRead != 0 {
					d.bytesRemaining -= uint64(totalRead)
					return totalRead, nil
				}
			} else {
				d.cursor = d.useStart
				d.state = stateBeginBlock
				if totalRead != 0 {
					d.bytesRemaining -= uint64(totalRead)
					return totalRead, nil
				}
			}
		}
	}
}
