// Package raster implements the CUPS raster wire format: packbits-style
// line compression, the V1/V2/V3 page header layouts, and a page-at-a-time
// driver for reading and writing a full raster stream.
//
// For the Apple URF sibling format, see the urf package, which reuses this
// package's packbits codec.
package raster
