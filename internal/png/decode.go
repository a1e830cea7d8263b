// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package png decodes PNG images from scratch: chunk framing, ordering
// validation, streaming zlib inflation of the image data, and
// per-scanline filter reconstruction. It verifies structure, not
// checksums; chunk CRCs are framed but never checked.
package png

import "fmt"

// Raster is the fully reconstructed image: a row-major pixel buffer
// with no row padding and no filter bytes.
type Raster struct {
	Width         int
	Height        int
	ColorType     ColorType
	BytesPerPixel int
	Pix           []byte
}

// Pixel returns the bytes of the pixel at (x, y).
func (r *Raster) Pixel(x, y int) ([]byte, error) {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return nil, fmt.Errorf("png: pixel (%d, %d) out of bounds (%dx%d)", x, y, r.Width, r.Height)
	}
	off := (y*r.Width + x) * r.BytesPerPixel
	return r.Pix[off : off+r.BytesPerPixel], nil
}

// Decode reconstructs a PNG byte stream into a Raster. Any failure of
// framing, ordering validation, inflation or reconstruction aborts the
// whole decode; a partial image is never returned.
func Decode(data []byte) (*Raster, error) {
	chunks, err := ParseChunks(data)
	if err != nil {
		return nil, err
	}
	if err := ValidateChunks(chunks); err != nil {
		return nil, err
	}
	if chunks[len(chunks)-1].Type != TypeIEND {
		return nil, FormatError("stream does not end with an IEND chunk")
	}

	// The validator guarantees the first chunk is IHDR.
	hdr, err := ParseIHDR(chunks[0].Data)
	if err != nil {
		return nil, err
	}

	var idats [][]byte
	for _, c := range chunks {
		if c.Type == TypeIDAT {
			idats = append(idats, c.Data)
		}
	}

	inflated, err := InflateIDAT(idats)
	if err != nil {
		return nil, err
	}
	return Reconstruct(hdr, inflated)
}

// Reconstruct inverts the scanline filters over the inflated image
// data, producing the final raster. The data must be exactly height
// rows of ScanlineWidth bytes: one filter tag followed by the filtered
// pixel bytes of the row.
//
// Reconstruction is strictly sequential top to bottom: the Up, Average
// and Paeth filters are defined against the previous reconstructed
// row, which is read back from the output buffer. Row 0 dispatches to
// the degenerate routines instead of branching on missing neighbors
// inside the byte loops.
func Reconstruct(hdr IHDR, inflated []byte) (*Raster, error) {
	if hdr.ColorType == Palette {
		return nil, UnsupportedError("palette color type")
	}
	if hdr.InterlaceMethod != 0 {
		return nil, UnsupportedError("Adam7 interlacing")
	}

	width := int(hdr.Width)
	height := int(hdr.Height)
	bpp := hdr.BytesPerPixel()
	stride := hdr.ScanlineWidth()

	if len(inflated) != height*stride {
		return nil, FormatError(fmt.Sprintf(
			"image data is %d bytes, want %d (%d rows of %d)",
			len(inflated), height*stride, height, stride,
		))
	}

	rowLen := stride - 1
	pix := make([]byte, height*rowLen)

	for row := 0; row < height; row++ {
		tag := Filter(inflated[row*stride])
		line := inflated[row*stride+1 : (row+1)*stride]
		dst := pix[row*rowLen : (row+1)*rowLen]

		if row == 0 {
			switch tag {
			case FilterNone, FilterUp:
				reconNone(dst, line)
			case FilterSub, FilterPaeth:
				reconSub(dst, line, bpp)
			case FilterAverage:
				reconAverageFirst(dst, line, bpp)
			default:
				return nil, FormatError(fmt.Sprintf("filter type %d is not valid", tag))
			}
			continue
		}

		prev := pix[(row-1)*rowLen : row*rowLen]
		switch tag {
		case FilterNone:
			reconNone(dst, line)
		case FilterSub:
			reconSub(dst, line, bpp)
		case FilterUp:
			reconUp(dst, prev, line)
		case FilterAverage:
			reconAverage(dst, prev, line, bpp)
		case FilterPaeth:
			reconPaeth(dst, prev, line, bpp)
		default:
			return nil, FormatError(fmt.Sprintf("filter type %d is not valid", tag))
		}
	}

	return &Raster{
		Width:         width,
		Height:        height,
		ColorType:     hdr.ColorType,
		BytesPerPixel: bpp,
		Pix:           pix,
	}, nil
}
