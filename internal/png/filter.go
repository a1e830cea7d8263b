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
package png

// Filter is the per-scanline delta transform tag prefixing every row
// of the decompressed image data.
type Filter uint8

const (
	FilterNone Filter = iota
	FilterSub
	FilterUp
	FilterAverage
	FilterPaeth
)

func (f Filter) String() string {
	switch f {
	case FilterNone:
		return "None"
	case FilterSub:
		return "Sub"
	case FilterUp:
		return "Up"
	case FilterAverage:
		return "Average"
	case FilterPaeth:
		return "Paeth"
	}
	return "Invalid"
}

// The recon* routines invert one filtered scanline into dst. line and
// dst have equal length (bpp times the pixel width); prev is the fully
// reconstructed previous row. All additions wrap mod 256. Within a
// row, bytes left of the current one are already reconstructed, so
// left and up-left lookups read dst and prev directly.

func reconNone(dst, line []byte) {
	copy(dst, line)
}

func reconSub(dst, line []byte, bpp int) {
	// The first bpp bytes have no left neighbor.
	copy(dst, line[:min(bpp, len(line))])
	for i := bpp; i < len(line); i++ {
		dst[i] = line[i] + dst[i-bpp]
	}
}

func reconUp(dst, prev, line []byte) {
	for i, p := range line {
		dst[i] = p + prev[i]
	}
}

func reconAverage(dst, prev, line []byte, bpp int) {
	for i := 0; i < min(bpp, len(line)); i++ {
		dst[i] = line[i] + prev[i]/2
	}
	for i := bpp; i < len(line); i++ {
		dst[i] = line[i] + byte((uint16(prev[i])+uint16(dst[i-bpp]))/2)
	}
}

// reconAverageFirst handles row 0, where every up reference is zero
// and the predictor degenerates to half the left neighbor.
func reconAverageFirst(dst, line []byte, bpp int) {
	copy(dst, line[:min(bpp, len(line))])
	for i := bpp; i < len(line); i++ {
		dst[i] = line[i] + dst[i-bpp]/2
	}
}

func reconPaeth(dst, prev, line []byte, bpp int) {
	for i := 0; i < min(bpp, len(line)); i++ {
		// left and up-left are zero, so the predictor picks up.
		dst[i] = line[i] + prev[i]
	}
	for i := bpp; i < len(line); i++ {
		dst[i] = line[i] + paethPredictor(dst[i-bpp], prev[i], prev[i-bpp])
	}
}

// paethPredictor returns the neighbor value nearest to the initial
// estimate left+up-upLeft, breaking ties in the order left, up,
// up-left.
//
// http://www.libpng.org/pub/png/spec/1.2/png-1.2-pdg.html#Filters
func paethPredictor(left, up, upLeft byte) byte {
	a, b, c := int16(left), int16(up), int16(upLeft)
	p := a + b - c
	pa := abs16(p - a)
	pb := abs16(p - b)
	pc := abs16(p - c)
	if pa <= pb && pa <= pc {
		return left
	} else if pb <= pc {
		return up
	}
	return upLeft
}

func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}
