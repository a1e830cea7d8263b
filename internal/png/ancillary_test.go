package png_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pngtools/pngr/internal/png"
)

func TestParseSBIT(t *testing.T) {
	sb, err := png.ParseSBIT([]byte{5})
	require.NoError(t, err)
	require.NotNil(t, sb.Gray)
	require.Equal(t, uint8(5), *sb.Gray)

	sb, err = png.ParseSBIT([]byte{8, 8, 8, 4})
	require.NoError(t, err)
	require.NotNil(t, sb.RGBA)
	require.Equal(t, [4]uint8{8, 8, 8, 4}, *sb.RGBA)

	for _, n := range []int{0, 5, 13} {
		_, err := png.ParseSBIT(make([]byte, n))
		require.Error(t, err, "%d bytes", n)
	}
}

func TestParseBKGD(t *testing.T) {
	bg, err := png.ParseBKGD([]byte{3})
	require.NoError(t, err)
	require.NotNil(t, bg.PaletteIndex)
	require.Equal(t, uint8(3), *bg.PaletteIndex)

	bg, err = png.ParseBKGD([]byte{0x01, 0x02})
	require.NoError(t, err)
	require.NotNil(t, bg.Gray)
	require.Equal(t, uint16(0x0102), *bg.Gray)

	bg, err = png.ParseBKGD([]byte{0xff, 0xff, 0x80, 0x00, 0x00, 0x01})
	require.NoError(t, err)
	require.NotNil(t, bg.RGB)
	require.Equal(t, [3]uint16{0xffff, 0x8000, 0x0001}, *bg.RGB)

	_, err = png.ParseBKGD(make([]byte, 4))
	require.Error(t, err)
}

func TestParsePHYS(t *testing.T) {
	data := []byte{0, 0, 0x0b, 0x12, 0, 0, 0x0b, 0x12, 1}

	phys, err := png.ParsePHYS(data)
	require.NoError(t, err)
	require.Equal(t, uint32(2834), phys.X)
	require.Equal(t, uint32(2834), phys.Y)
	require.Equal(t, png.UnitMeter, phys.Unit)

	data[8] = 2
	_, err = png.ParsePHYS(data)
	require.Error(t, err)

	_, err = png.ParsePHYS(data[:8])
	require.Error(t, err)
}

func TestParseTIME(t *testing.T) {
	tm, err := png.ParseTIME([]byte{0x07, 0xd4, 12, 31, 23, 59, 60})
	require.NoError(t, err)
	require.Equal(t, uint16(2004), tm.Year)
	require.Equal(t, uint8(12), tm.Month)
	require.Equal(t, "2004-12-31 23:59:60", tm.String())

	_, err = png.ParseTIME(make([]byte, 6))
	require.Error(t, err)
}

func TestParseTEXT(t *testing.T) {
	txt, err := png.ParseTEXT(append([]byte("Comment\x00"), "made with pngr"...))
	require.NoError(t, err)
	require.Equal(t, "Comment", txt.Keyword)
	require.Equal(t, "made with pngr", txt.Text)

	_, err = png.ParseTEXT([]byte("no null terminator"))
	require.Error(t, err)
}

func TestParseZTXT(t *testing.T) {
	body := append([]byte("Description\x00\x00"), zlibCompress(t, []byte("compressed text body"))...)

	txt, err := png.ParseZTXT(body)
	require.NoError(t, err)
	require.Equal(t, "Description", txt.Keyword)
	require.Equal(t, uint8(0), txt.Method)
	require.Equal(t, "compressed text body", txt.Text)

	_, err = png.ParseZTXT([]byte("Description\x00"))
	require.Error(t, err)

	_, err = png.ParseZTXT(append([]byte("Description\x00\x00"), 0xff, 0xfe))
	require.Error(t, err)
}

// A broken metadata chunk decodes (and fails) on its own; it must not
// take the pixel pipeline down with it.
func TestParseChunkDataDispatch(t *testing.T) {
	chunks, err := png.ParseChunks(buildPNG(
		rawChunk{"IHDR", ihdrData(2, 2, 8, png.Gray, 0)},
		rawChunk{"pHYs", []byte{0, 0, 0, 1, 0, 0, 0, 1, 9}}, // bad unit
		rawChunk{"tEXt", append([]byte("Title\x00"), "ok"...)},
		rawChunk{"IDAT", zlibCompress(t, []byte{0, 10, 20, 2, 5, 5})},
		rawChunk{"IEND", nil},
	))
	require.NoError(t, err)

	var failed, parsed int
	for _, c := range chunks {
		v, err := png.ParseChunkData(c)
		if err != nil {
			failed++
			continue
		}
		if v != nil {
			parsed++
		}
	}
	require.Equal(t, 1, failed) // only the bad pHYs
	require.Equal(t, 2, parsed) // IHDR and tEXt

	// The image itself still decodes.
	raster, err := png.Decode(buildPNG(
		rawChunk{"IHDR", ihdrData(2, 2, 8, png.Gray, 0)},
		rawChunk{"pHYs", []byte{0, 0, 0, 1, 0, 0, 0, 1, 9}},
		rawChunk{"IDAT", zlibCompress(t, []byte{0, 10, 20, 2, 5, 5})},
		rawChunk{"IEND", nil},
	))
	require.NoError(t, err)
	require.Equal(t, []byte{10, 20, 15, 25}, raster.Pix)
}
