package png

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Ancillary chunk readers. Each one is a stateless fixed- or
// variable-length decoder, independent of the pixel pipeline: a
// failure here never aborts image decoding.

// SignificantBits is the decoded sBIT payload. Exactly one field is
// set, matching the color type the chunk was written for.
type SignificantBits struct {
	Gray      *uint8
	GrayAlpha *[2]uint8
	RGB       *[3]uint8
	RGBA      *[4]uint8
}

// Background is the decoded bKGD payload.
type Background struct {
	PaletteIndex *uint8
	Gray         *uint16
	RGB          *[3]uint16
}

// PhysicalDimensions is the decoded pHYs payload.
type PhysicalDimensions struct {
	X, Y uint32
	Unit DimensionUnit
}

type DimensionUnit uint8

const (
	UnitUnknown DimensionUnit = 0
	UnitMeter   DimensionUnit = 1
)

func (u DimensionUnit) String() string {
	if u == UnitMeter {
		return "meter"
	}
	return "unknown"
}

// LastModified is the decoded tIME payload.
type LastModified struct {
	Year                             uint16
	Month, Day, Hour, Minute, Second uint8
}

// TextData is the decoded tEXt payload.
type TextData struct {
	Keyword string
	Text    string
}

// CompressedText is the decoded zTXt payload, with the text already
// decompressed.
type CompressedText struct {
	Keyword string
	Method  uint8
	Text    string
}

// ParseSBIT decodes an sBIT payload; the color type is implied by the
// payload length (1 to 4 bytes).
func ParseSBIT(data []byte) (SignificantBits, error) {
	switch len(data) {
	case 1:
		gray := data[0]
		return SignificantBits{Gray: &gray}, nil
	case 2:
		return SignificantBits{GrayAlpha: &[2]uint8{data[0], data[1]}}, nil
	case 3:
		return SignificantBits{RGB: &[3]uint8{data[0], data[1], data[2]}}, nil
	case 4:
		return SignificantBits{RGBA: &[4]uint8{data[0], data[1], data[2], data[3]}}, nil
	}
	return SignificantBits{}, FormatError("there must be 1 to 4 bytes in the sBIT data")
}

// ParseBKGD decodes a bKGD payload; the color type is implied by the
// payload length (1, 2 or 6 bytes).
func ParseBKGD(data []byte) (Background, error) {
	switch len(data) {
	case 1:
		idx := data[0]
		return Background{PaletteIndex: &idx}, nil
	case 2:
		gray := binary.BigEndian.Uint16(data)
		return Background{Gray: &gray}, nil
	case 6:
		return Background{RGB: &[3]uint16{
			binary.BigEndian.Uint16(data[0:2]),
			binary.BigEndian.Uint16(data[2:4]),
			binary.BigEndian.Uint16(data[4:6]),
		}}, nil
	}
	return Background{}, FormatError("there must be 1, 2 or 6 bytes in the bKGD data")
}

// ParsePHYS decodes a pHYs payload: two big-endian pixels-per-unit
// counts and a unit specifier.
func ParsePHYS(data []byte) (PhysicalDimensions, error) {
	if len(data) != 9 {
		return PhysicalDimensions{}, FormatError("there must be 9 bytes in the pHYs data")
	}
	unit := DimensionUnit(data[8])
	if unit != UnitUnknown && unit != UnitMeter {
		return PhysicalDimensions{}, FormatError("pHYs unit specifier can only be 0 or 1")
	}
	return PhysicalDimensions{
		X:    binary.BigEndian.Uint32(data[0:4]),
		Y:    binary.BigEndian.Uint32(data[4:8]),
		Unit: unit,
	}, nil
}

// ParseTIME decodes the 7-byte tIME payload.
func ParseTIME(data []byte) (LastModified, error) {
	if len(data) != 7 {
		return LastModified{}, FormatError("there must be 7 bytes in the tIME data")
	}
	return LastModified{
		Year:   binary.BigEndian.Uint16(data[0:2]),
		Month:  data[2],
		Day:    data[3],
		Hour:   data[4],
		Minute: data[5],
		Second: data[6],
	}, nil
}

// ParseTEXT decodes a tEXt payload: a null-terminated keyword followed
// by the uncompressed text.
func ParseTEXT(data []byte) (TextData, error) {
	keyword, rest, err := splitKeyword(data)
	if err != nil {
		return TextData{}, err
	}
	return TextData{Keyword: keyword, Text: string(rest)}, nil
}

// ParseZTXT decodes a zTXt payload: a null-terminated keyword, a
// compression method byte and the zlib-compressed text.
func ParseZTXT(data []byte) (CompressedText, error) {
	keyword, rest, err := splitKeyword(data)
	if err != nil {
		return CompressedText{}, err
	}
	if len(rest) == 0 {
		return CompressedText{}, FormatError("zTXt data is missing the compression method")
	}

	text, err := inflateAll(rest[1:])
	if err != nil {
		return CompressedText{}, err
	}
	return CompressedText{Keyword: keyword, Method: rest[0], Text: string(text)}, nil
}

func splitKeyword(data []byte) (string, []byte, error) {
	i := bytes.IndexByte(data, 0)
	if i < 0 {
		return "", nil, FormatError("text keyword is not null-terminated")
	}
	return string(data[:i]), data[i+1:], nil
}

// ParseChunkData dispatches a framed chunk to its payload decoder.
// Chunk types without a decoder return (nil, nil).
func ParseChunkData(c Chunk) (any, error) {
	switch c.Type {
	case TypeIHDR:
		return ParseIHDR(c.Data)
	case TypeSBIT:
		return ParseSBIT(c.Data)
	case TypeBKGD:
		return ParseBKGD(c.Data)
	case TypePHYS:
		return ParsePHYS(c.Data)
	case TypeTIME:
		return ParseTIME(c.Data)
	case TypeTEXT:
		return ParseTEXT(c.Data)
	case TypeZTXT:
		return ParseZTXT(c.Data)
	}
	return nil, nil
}

func (t LastModified) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second)
}
