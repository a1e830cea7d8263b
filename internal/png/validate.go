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

import "fmt"

// typeSet is a set of chunk types, one bit per ChunkType.
type typeSet uint32

func setOf(types ...ChunkType) typeSet {
	var s typeSet
	for _, t := range types {
		s = s.add(t)
	}
	return s
}

func (s typeSet) has(t ChunkType) bool    { return s&(1<<t) != 0 }
func (s typeSet) add(t ChunkType) typeSet { return s | 1<<t }
func (s typeSet) remove(types ...ChunkType) typeSet {
	for _, t := range types {
		s &^= 1 << t
	}
	return s
}

var (
	// Chunks that can only appear before PLTE.
	beforePLTE = setOf(TypePLTE, TypeGAMA, TypeCHRM, TypeSRGB, TypeICCP, TypeSBIT)

	// Chunks that can only appear before IDAT.
	beforeIDAT = setOf(
		TypePLTE, TypeTRNS, TypeGAMA, TypeCHRM, TypeSRGB, TypeICCP,
		TypeBKGD, TypePHYS, TypeSBIT, TypeSPLT, TypeHIST,
	)

	// Chunks authorized right after IHDR: everything except IHDR and IEND.
	afterIHDR = setOf(
		TypePLTE, TypeIDAT, TypeTRNS, TypeGAMA, TypeCHRM, TypeSRGB, TypeICCP,
		TypeTEXT, TypeZTXT, TypeITXT, TypeBKGD, TypePHYS, TypeSBIT, TypeSPLT,
		TypeHIST, TypeTIME,
	)
)

// ValidateChunks checks a framed chunk sequence against the ordering
// constraints of the PNG specification:
//
//	Name  Multiple OK?  Ordering constraints
//
//	IHDR    No          Must be first
//	PLTE    No          Before IDAT
//	IDAT    Yes         Multiple IDATs must be consecutive
//	IEND    No          Must be last
//	cHRM    No          Before PLTE and IDAT
//	gAMA    No          Before PLTE and IDAT
//	iCCP    No          Before PLTE and IDAT
//	sBIT    No          Before PLTE and IDAT
//	sRGB    No          Before PLTE and IDAT
//	bKGD    No          After PLTE; before IDAT
//	hIST    No          After PLTE; before IDAT
//	tRNS    No          After PLTE; before IDAT
//	pHYs    No          Before IDAT
//	sPLT    Yes         Before IDAT
//	tIME    No          None
//	iTXt    Yes         None
//	tEXt    Yes         None
//	zTXt    Yes         None
//
// The fold keeps a pair of sets: the types seen so far and the types
// still authorized at this point of the stream. A chunk outside the
// authorized set fails with an OrderingError naming it. IDAT
// contiguity is enforced indirectly: any text or tIME chunk seen after
// the first IDAT revokes further IDAT authorization. After IEND the
// authorized set is empty, so nothing may follow.
func ValidateChunks(chunks []Chunk) error {
	var present typeSet
	authorized := setOf(TypeIHDR)

	for _, c := range chunks {
		var err error
		present, authorized, err = validateChunk(present, authorized, c)
		if err != nil {
			return err
		}
	}
	return nil
}

func validateChunk(present, authorized typeSet, c Chunk) (typeSet, typeSet, error) {
	if c.Type == TypeUnknown {
		return present, authorized, UnsupportedError(fmt.Sprintf("unknown chunk type %q", c.Tag[:]))
	}
	if !authorized.has(c.Type) {
		return present, authorized, OrderingError{Type: c.Type}
	}

	switch c.Type {
	// --- Critical chunks ---
	case TypeIHDR:
		authorized = afterIHDR
	case TypePLTE:
		authorized &^= beforePLTE
	case TypeIDAT:
		if !present.has(TypeIDAT) {
			// First IDAT of the run.
			authorized &^= beforeIDAT
			authorized = authorized.add(TypeIEND)
		}
	case TypeIEND:
		authorized = 0

	// --- Ancillary chunks ---
	case TypeCHRM, TypeGAMA, TypeICCP, TypeSBIT, TypeSRGB:
		authorized = authorized.remove(c.Type)
	case TypeBKGD, TypeHIST, TypeTRNS:
		authorized = authorized.remove(TypePLTE, c.Type)
	case TypePHYS:
		authorized = authorized.remove(TypePHYS)
	case TypeSPLT:
		// Repeatable, no effect.
	case TypeTIME:
		authorized = authorized.remove(TypeTIME)
		if present.has(TypeIDAT) {
			// IDAT chunks must be consecutive.
			authorized = authorized.remove(TypeIDAT)
		}
	case TypeITXT, TypeTEXT, TypeZTXT:
		if present.has(TypeIDAT) {
			// IDAT chunks must be consecutive.
			authorized = authorized.remove(TypeIDAT)
		}
	}

	return present.add(c.Type), authorized, nil
}
