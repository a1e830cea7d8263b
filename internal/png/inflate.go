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

import (
	"bytes"
	"errors"
	"io"

	"github.com/klauspost/compress/zlib"
)

// idatReader walks the ordered IDAT payloads as one contiguous byte
// stream. The chunk boundaries are an artifact of PNG chunking, not of
// the compression format, so the decompressor reading from here never
// sees them: exhausting a non-final payload just moves on to the next.
type idatReader struct {
	payloads [][]byte
	cur      int
}

func (r *idatReader) Read(p []byte) (int, error) {
	for r.cur < len(r.payloads) && len(r.payloads[r.cur]) == 0 {
		r.cur++
	}
	if r.cur == len(r.payloads) {
		return 0, io.EOF
	}

	n := copy(p, r.payloads[r.cur])
	r.payloads[r.cur] = r.payloads[r.cur][n:]
	return n, nil
}

const minInflateBuffer = 512

// InflateIDAT decompresses the payloads of all IDAT chunks as a single
// logical zlib stream, using one decompressor instance for the whole
// call so that the DEFLATE window persists across chunk boundaries.
//
// The output buffer starts at twice the total compressed size, which
// amortizes reallocations for typical image content, and doubles
// whenever the decompressor runs out of room; growth resumes at the
// buffer tail without re-consuming input or discarding output. A
// stream that is still open once the final payload is exhausted is an
// InflateError, as is any corrupt-stream status.
func InflateIDAT(payloads [][]byte) ([]byte, error) {
	var compressed int
	for _, p := range payloads {
		compressed += len(p)
	}

	zr, err := zlib.NewReader(&idatReader{payloads: payloads})
	if err != nil {
		return nil, inflateError(err)
	}
	defer zr.Close()

	buf := make([]byte, max(2*compressed, minInflateBuffer))
	n := 0
	for {
		if n == len(buf) {
			buf = append(buf, make([]byte, len(buf))...)
		}

		m, err := zr.Read(buf[n:])
		n += m

		if err == io.EOF {
			return buf[:n], nil
		}
		if err != nil {
			return nil, inflateError(err)
		}
	}
}

func inflateError(err error) InflateError {
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return InflateError("compressed stream ended before the final IDAT chunk was exhausted")
	}
	return InflateError(err.Error())
}

// inflateAll decompresses a self-contained zlib buffer, such as the
// text body of a zTXt chunk.
func inflateAll(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, inflateError(err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, inflateError(err)
	}
	return out, nil
}
