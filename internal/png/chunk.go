package png

import (
	"encoding/binary"
	"fmt"
)

const pngSignature = "\x89PNG\r\n\x1a\n"

// ChunkType identifies one of the chunk types defined by the PNG
// specification. Any tag outside the closed set maps to TypeUnknown;
// the raw tag is preserved on the Chunk itself.
type ChunkType uint8

const (
	TypeUnknown ChunkType = iota
	// Critical chunks
	TypeIHDR // image header
	TypePLTE // palette
	TypeIDAT // image data
	TypeIEND // image trailer
	// Ancillary chunks
	TypeTRNS // transparency
	TypeGAMA // image gamma
	TypeCHRM // primary chromaticities
	TypeSRGB // standard RGB color space
	TypeICCP // embedded ICC profile
	TypeTEXT // textual data
	TypeZTXT // compressed textual data
	TypeITXT // international textual data
	TypeBKGD // background color
	TypePHYS // physical pixel dimensions
	TypeSBIT // significant bits
	TypeSPLT // suggested palette
	TypeHIST // palette histogram
	TypeTIME // image last-modification time

	numChunkTypes
)

var chunkTypeNames = map[string]ChunkType{
	"IHDR": TypeIHDR,
	"PLTE": TypePLTE,
	"IDAT": TypeIDAT,
	"IEND": TypeIEND,
	"tRNS": TypeTRNS,
	"gAMA": TypeGAMA,
	"cHRM": TypeCHRM,
	"sRGB": TypeSRGB,
	"iCCP": TypeICCP,
	"tEXt": TypeTEXT,
	"zTXt": TypeZTXT,
	"iTXt": TypeITXT,
	"bKGD": TypeBKGD,
	"pHYs": TypePHYS,
	"sBIT": TypeSBIT,
	"sPLT": TypeSPLT,
	"hIST": TypeHIST,
	"tIME": TypeTIME,
}

var chunkTypeTags = func() [numChunkTypes]string {
	var tags [numChunkTypes]string
	tags[TypeUnknown] = "????"
	for name, typ := range chunkTypeNames {
		tags[typ] = name
	}
	return tags
}()

// ChunkTypeOf maps a 4-byte tag to its chunk type. Matching is
// case-sensitive on the literal names.
func ChunkTypeOf(tag []byte) ChunkType {
	return chunkTypeNames[string(tag)]
}

func (t ChunkType) String() string {
	if t < numChunkTypes {
		return chunkTypeTags[t]
	}
	return "????"
}

// A Chunk is a single framed record of the PNG byte stream. Data is a
// zero-copy view into the input buffer handed to ParseChunks; it is
// only valid as long as that buffer is.
type Chunk struct {
	Length uint32
	Type   ChunkType
	Tag    [4]byte
	Data   []byte
	CRC    [4]byte
}

func (c Chunk) String() string {
	return fmt.Sprintf("{length: %d, type: %s, crc: %v}", c.Length, c.Type, c.CRC)
}

// ParseChunks verifies the 8-byte PNG signature and frames the rest of
// the input into an ordered chunk sequence. Chunk payloads are not
// copied. Unrecognized 4-byte tags frame as TypeUnknown rather than
// failing here; rejecting them is the validator's job.
func ParseChunks(data []byte) ([]Chunk, error) {
	if len(data) < len(pngSignature) || string(data[:len(pngSignature)]) != pngSignature {
		return nil, FormatError("not a PNG file")
	}

	var chunks []Chunk

	rest := data[len(pngSignature):]
	for len(rest) > 0 {
		c, n, err := parseChunk(rest)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
		rest = rest[n:]
	}

	if len(chunks) == 0 {
		return nil, FormatError("no chunks after signature")
	}
	return chunks, nil
}

func parseChunk(b []byte) (Chunk, int, error) {
	if len(b) < 8 {
		return Chunk{}, 0, FormatError("truncated chunk header")
	}
	length := binary.BigEndian.Uint32(b[:4])

	// length + type + data + crc
	total := 12 + uint64(length)
	if uint64(len(b)) < total {
		return Chunk{}, 0, FormatError(fmt.Sprintf("chunk length %d exceeds remaining input", length))
	}

	c := Chunk{
		Length: length,
		Type:   ChunkTypeOf(b[4:8]),
		Data:   b[8 : 8+length : 8+length],
	}
	copy(c.Tag[:], b[4:8])
	copy(c.CRC[:], b[8+length:12+length])

	return c, int(total), nil
}
