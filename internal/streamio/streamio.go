// Package streamio sniffs a raster file's format from its leading bytes and
// exposes a single page-iteration shape over either CUPS or URF, for the
// printraster CLI subcommands that don't care which wire format they're
// reading.
package streamio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/go-raster/printraster/raster"
	"github.com/go-raster/printraster/urf"
)

// Format identifies which wire format a stream was sniffed as.
type Format int

const (
	FormatUnknown Format = iota
	FormatCUPS
	FormatURF
)

func (f Format) String() string {
	switch f {
	case FormatCUPS:
		return "CUPS"
	case FormatURF:
		return "URF"
	default:
		return "unknown"
	}
}

// Page is one decoded page, carrying its header as either a
// *raster.PageHeader or a *urf.PageHeader depending on Format.
type Page struct {
	Header  any
	Decoder raster.PageDecoder
}

// Reader drives either a CUPS or URF stream page by page after sniffing the
// format from its first byte.
type Reader struct {
	format  Format
	version int
	cups    *raster.Reader
	urfRd   *urf.Reader
}

// Open sniffs r's format and constructs the matching Reader: a leading 'U'
// selects URF, anything else is handed to raster.NewReader, which validates
// the CUPS sync word.
func Open(r io.Reader, limits raster.Limits) (*Reader, error) {
	br := bufio.NewReader(r)
	peek, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(peek) >= 1 && peek[0] == 'U' {
		rd, err := urf.NewReader(br, limits)
		if err != nil {
			return nil, err
		}
		return &Reader{format: FormatURF, urfRd: rd}, nil
	}
	rd, err := raster.NewReader(br, limits)
	if err != nil {
		return nil, err
	}
	return &Reader{format: FormatCUPS, version: rd.Version(), cups: rd}, nil
}

// Format reports which wire format Open sniffed.
func (r *Reader) Format() Format { return r.format }

// Version reports the CUPS raster version (1, 2, or 3); meaningless for URF.
func (r *Reader) Version() int { return r.version }

// NextPage advances to the next page, or returns io.EOF at a clean stream
// end.
func (r *Reader) NextPage() (*Page, error) {
	switch r.format {
	case FormatCUPS:
		p, err := r.cups.NextPage()
		if err != nil {
			return nil, err
		}
		return &Page{Header: p.Header, Decoder: p.Decoder}, nil
	case FormatURF:
		p, err := r.urfRd.NextPage()
		if err != nil {
			return nil, err
		}
		return &Page{Header: p.Header, Decoder: p.Decoder}, nil
	default:
		return nil, fmt.Errorf("streamio: unrecognized format")
	}
}
