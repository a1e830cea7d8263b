package png_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pngtools/pngr/internal/png"
)

func TestParseChunksSignature(t *testing.T) {
	for _, input := range [][]byte{
		nil,
		[]byte("\x89PNG"),
		[]byte("\x89PNG\r\n\x1a\x00 close but wrong"),
		[]byte("GIF89a.."),
	} {
		_, err := png.ParseChunks(input)
		var fe png.FormatError
		require.ErrorAs(t, err, &fe, "input %q", input)
	}
}

func TestParseChunksFraming(t *testing.T) {
	data := buildPNG(
		rawChunk{"IHDR", ihdrData(2, 2, 8, png.Gray, 0)},
		rawChunk{"abCD", []byte{1, 2, 3}},
		rawChunk{"IEND", nil},
	)

	chunks, err := png.ParseChunks(data)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	require.Equal(t, png.TypeIHDR, chunks[0].Type)
	require.Equal(t, uint32(13), chunks[0].Length)
	require.Equal(t, [4]byte{0xde, 0xad, 0xbe, 0xef}, chunks[0].CRC)

	// Unrecognized tags frame as Unknown with the raw tag preserved;
	// rejecting them is the validator's business.
	require.Equal(t, png.TypeUnknown, chunks[1].Type)
	require.Equal(t, [4]byte{'a', 'b', 'C', 'D'}, chunks[1].Tag)
	require.Equal(t, []byte{1, 2, 3}, chunks[1].Data)

	require.Equal(t, png.TypeIEND, chunks[2].Type)
	require.Empty(t, chunks[2].Data)
}

func TestParseChunksZeroCopy(t *testing.T) {
	data := buildPNG(rawChunk{"IDAT", []byte{10, 20, 30}})

	chunks, err := png.ParseChunks(data)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	// The payload is a view into the input buffer, not a copy.
	data[len(data)-4-3] = 99
	require.Equal(t, []byte{99, 20, 30}, chunks[0].Data)
}

func TestParseChunksTruncated(t *testing.T) {
	whole := buildPNG(rawChunk{"IHDR", ihdrData(2, 2, 8, png.Gray, 0)})

	// Every strict prefix of a single-chunk stream is invalid.
	for n := len("\x89PNG\r\n\x1a\n") + 1; n < len(whole); n++ {
		_, err := png.ParseChunks(whole[:n])
		var fe png.FormatError
		require.ErrorAs(t, err, &fe, "prefix of %d bytes", n)
	}
}

func TestParseChunksEmpty(t *testing.T) {
	_, err := png.ParseChunks([]byte("\x89PNG\r\n\x1a\n"))
	var fe png.FormatError
	require.ErrorAs(t, err, &fe)
}

func TestChunkString(t *testing.T) {
	data := buildPNG(rawChunk{"IHDR", ihdrData(2, 2, 8, png.Gray, 0)})

	chunks, err := png.ParseChunks(data)
	require.NoError(t, err)
	require.Equal(t, "{length: 13, type: IHDR, crc: [222 173 190 239]}", chunks[0].String())
}
