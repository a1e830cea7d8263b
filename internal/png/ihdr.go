package png

import (
	"encoding/binary"
	"fmt"
)

// ColorType holds the numeric color type code from the IHDR chunk.
type ColorType uint8

const (
	Gray      ColorType = 0
	RGB       ColorType = 2
	Palette   ColorType = 3
	GrayAlpha ColorType = 4
	RGBA      ColorType = 6
)

func (c ColorType) String() string {
	switch c {
	case Gray:
		return "grayscale"
	case RGB:
		return "rgb"
	case Palette:
		return "palette"
	case GrayAlpha:
		return "grayscale+alpha"
	case RGBA:
		return "rgba"
	}
	return fmt.Sprintf("ColorType(%d)", uint8(c))
}

// Channels returns the number of channels per pixel. A palette image
// carries a single channel of palette indices.
func (c ColorType) Channels() int {
	switch c {
	case GrayAlpha:
		return 2
	case RGB:
		return 3
	case RGBA:
		return 4
	}
	return 1
}

// IHDR is the decoded image header. It is parsed once per decode from
// the first chunk and read-only afterwards.
type IHDR struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         ColorType
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

const ihdrLength = 13

// ParseIHDR decodes the fixed 13-byte IHDR payload.
func ParseIHDR(data []byte) (IHDR, error) {
	if len(data) != ihdrLength {
		return IHDR{}, FormatError(fmt.Sprintf("bad IHDR length: %d", len(data)))
	}

	hdr := IHDR{
		Width:             binary.BigEndian.Uint32(data[0:4]),
		Height:            binary.BigEndian.Uint32(data[4:8]),
		BitDepth:          data[8],
		ColorType:         ColorType(data[9]),
		CompressionMethod: data[10],
		FilterMethod:      data[11],
		InterlaceMethod:   data[12],
	}

	switch hdr.ColorType {
	case Gray, RGB, Palette, GrayAlpha, RGBA:
	default:
		return IHDR{}, FormatError(fmt.Sprintf("color type %d is not valid", data[9]))
	}
	return hdr, nil
}

// BytesPerPixel returns the number of bytes of one complete pixel.
func (h IHDR) BytesPerPixel() int {
	return h.ColorType.Channels() * max(1, int(h.BitDepth)/8)
}

// ScanlineWidth returns the byte length of one scanline in the
// decompressed image data: a one-byte filter tag followed by the
// filtered pixel bytes.
func (h IHDR) ScanlineWidth() int {
	return 1 + int(h.Width)*h.BytesPerPixel()
}
