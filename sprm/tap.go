package sprm

import "encoding/binary"

// clampRange saturates a [first, limit) cell range to n cells. The second
// result is false when the range had to be clamped.
func clampRange(first, limit, n int) (int, int, bool) {
	ok := true
	if first > n {
		first, ok = n, false
	}
	if limit > n {
		limit, ok = n, false
	}
	if limit < first {
		limit, ok = first, false
	}
	return first, limit, ok
}

func rangeResult(ok bool) Result {
	if ok {
		return ResultOk
	}
	return ResultClamped
}

// ApplyTap applies one table-row opcode to t.
func ApplyTap(t *Tap, d Data) Result {
	b := d.Operand
	switch d.Op {
	case TJc, TJc90:
		t.Jc = d.U8()
	case TDxaLeft:
		if len(t.Centers) > 0 {
			delta := d.I16() - t.DxaGapHalf - t.Centers[0]
			for i := range t.Centers {
				t.Centers[i] += delta
			}
		}
	case TDxaGapHalf:
		v := d.I16()
		if len(t.Centers) > 0 {
			t.Centers[0] += t.DxaGapHalf - v
		}
		t.DxaGapHalf = v
	case TFCantSplit, TFCantSplit90:
		t.CantSplit = d.U8() != 0
	case TTableHeader:
		t.Header = d.U8() != 0
	case TDyaRowHeight:
		t.RowHeight = d.I16()
	case TFBiDi:
		t.BiDi = d.U16() != 0
	case TTableWidth:
		t.Width = decodeWidth(b)
	case TWidthBefore:
		t.WidthBefore = decodeWidth(b)
	case TWidthAfter:
		t.WidthAfter = decodeWidth(b)
	case TDefTable, TDefTable10:
		return defTable(t, b)
	case TTableBorders80:
		if len(b) < 24 {
			return ResultError
		}
		for i := range t.Borders {
			t.Borders[i] = DecodeBrc80(b[4*i:])
		}
	case TTableBorders:
		if len(b) < 48 {
			return ResultError
		}
		for i := range t.Borders {
			t.Borders[i] = DecodeBrc(b[8*i:])
		}
	case TDefTableShd80:
		for i := 0; i < len(t.Cells) && 2*i+2 <= len(b); i++ {
			t.Cells[i].Shd = DecodeShd80(b[2*i:])
		}
	case TDefTableShd:
		for i := 0; i < len(t.Cells) && 10*i+10 <= len(b); i++ {
			t.Cells[i].Shd = DecodeShd(b[10*i:])
		}
	case TSetBrc80:
		if len(b) < 7 {
			return ResultError
		}
		return setCellBorders(t, b, DecodeBrc80(b[3:]))
	case TSetBrc:
		if len(b) < 11 {
			return ResultError
		}
		return setCellBorders(t, b, DecodeBrc(b[3:]))
	case TSetShd80, TSetShdOdd80:
		if len(b) < 4 {
			return ResultError
		}
		shd := DecodeShd80(b[2:])
		return forCells(t, b, func(tc *Tc) { tc.Shd = shd })
	case TSetShd, TSetShdOdd:
		if len(b) < 12 {
			return ResultError
		}
		shd := DecodeShd(b[2:])
		return forCells(t, b, func(tc *Tc) { tc.Shd = shd })
	case TInsert:
		return insertCells(t, b)
	case TDelete:
		return deleteCells(t, b)
	case TDxaCol:
		if len(b) < 4 {
			return ResultError
		}
		return dxaCol(t, int(b[0]), int(b[1]), int16(binary.LittleEndian.Uint16(b[2:])))
	case TMerge:
		if len(b) < 2 {
			return ResultError
		}
		first, limit, ok := clampRange(int(b[0]), int(b[1]), len(t.Cells))
		for i := first; i < limit; i++ {
			t.Cells[i].FirstMerged = i == first
			t.Cells[i].Merged = i != first
		}
		return rangeResult(ok)
	case TSplit:
		return forCells(t, b, func(tc *Tc) { tc.FirstMerged, tc.Merged = false, false })
	case TVertMerge:
		if len(b) < 2 {
			return ResultError
		}
		if int(b[0]) >= len(t.Cells) {
			return ResultClamped
		}
		tc := &t.Cells[b[0]]
		tc.VertMerge = b[1] != 0
		tc.VertRestart = b[1] == 3
	case TVertAlign:
		if len(b) < 3 {
			return ResultError
		}
		return forCells(t, b, func(tc *Tc) { tc.VertAlign = b[2] })
	case TCellWidth:
		if len(b) < 5 {
			return ResultError
		}
		w := decodeWidth(b[2:])
		return forCells(t, b, func(tc *Tc) { tc.Width = w })
	case TFCellNoWrap:
		if len(b) < 3 {
			return ResultError
		}
		return forCells(t, b, func(tc *Tc) { tc.NoWrap = b[2] != 0 })
	case TCellPadding:
		if len(b) < 6 {
			return ResultError
		}
		grf, w := b[2], int16(binary.LittleEndian.Uint16(b[4:]))
		return forCells(t, b, func(tc *Tc) {
			for side := 0; side < 4; side++ {
				if grf&(1<<side) != 0 {
					tc.Padding[side] = w
					tc.PaddingSet |= 1 << side
				}
			}
		})
	case TCellPaddingDefault:
		if len(b) < 6 {
			return ResultError
		}
		grf, w := b[2], int16(binary.LittleEndian.Uint16(b[4:]))
		for side := 0; side < 4; side++ {
			if grf&(1<<side) != 0 {
				t.Padding[side] = w
			}
		}
	default:
		return ResultUnsupported
	}
	return ResultOk
}

func decodeWidth(b []byte) Width {
	if len(b) < 3 {
		return Width{}
	}
	return Width{Fts: b[0], W: int16(binary.LittleEndian.Uint16(b[1:]))}
}

// forCells runs fn on every cell of the range held in the first two operand
// bytes.
func forCells(t *Tap, b []byte, fn func(*Tc)) Result {
	if len(b) < 2 {
		return ResultError
	}
	first, limit, ok := clampRange(int(b[0]), int(b[1]), len(t.Cells))
	for i := first; i < limit; i++ {
		fn(&t.Cells[i])
	}
	return rangeResult(ok)
}

// setCellBorders handles TSetBrc and TSetBrc80: first, limit, side mask, border.
func setCellBorders(t *Tap, b []byte, brc Brc) Result {
	mask := b[2]
	return forCells(t, b, func(tc *Tc) {
		for side := 0; side < 4; side++ {
			if mask&(1<<side) != 0 {
				tc.Brc[side] = brc
			}
		}
	})
}

func defTable(t *Tap, b []byte) Result {
	if len(b) < 1 {
		return ResultError
	}
	n := int(b[0])
	if len(b) < 1+2*(n+1) {
		return ResultError
	}
	t.Centers = make([]int16, n+1)
	for i := range t.Centers {
		t.Centers[i] = int16(binary.LittleEndian.Uint16(b[1+2*i:]))
	}
	t.Cells = make([]Tc, n)
	tcs := b[1+2*(n+1):]
	for i := range t.Cells {
		if 20*i+20 <= len(tcs) {
			t.Cells[i] = DecodeTc80(tcs[20*i:])
		} else {
			t.Cells[i] = DecodeTc80(nil)
		}
	}
	return ResultOk
}

func insertCells(t *Tap, b []byte) Result {
	if len(b) < 4 {
		return ResultError
	}
	at, count := int(b[0]), int(b[1])
	dxa := int16(binary.LittleEndian.Uint16(b[2:]))
	ok := true
	if at > len(t.Cells) {
		at, ok = len(t.Cells), false
	}
	normalizeCenters(t)
	cells := make([]Tc, count)
	for i := range cells {
		cells[i] = DecodeTc80(nil)
	}
	t.Cells = append(t.Cells[:at], append(cells, t.Cells[at:]...)...)

	base := t.Centers[at]
	centers := make([]int16, count)
	for i := range centers {
		centers[i] = base + dxa*int16(i+1)
	}
	tail := append([]int16(nil), t.Centers[at+1:]...)
	for i := range tail {
		tail[i] += dxa * int16(count)
	}
	t.Centers = append(append(t.Centers[:at+1], centers...), tail...)
	return rangeResult(ok)
}

func deleteCells(t *Tap, b []byte) Result {
	if len(b) < 2 {
		return ResultError
	}
	first, limit, ok := clampRange(int(b[0]), int(b[1]), len(t.Cells))
	if first == limit {
		return rangeResult(ok)
	}
	normalizeCenters(t)
	t.Cells = append(t.Cells[:first], t.Cells[limit:]...)
	t.Centers = append(t.Centers[:first], t.Centers[limit:]...)
	return rangeResult(ok)
}

// normalizeCenters makes Centers hold exactly one boundary more than Cells.
func normalizeCenters(t *Tap) {
	want := len(t.Cells) + 1
	if len(t.Centers) > want {
		t.Centers = t.Centers[:want]
	}
	for len(t.Centers) < want {
		last := int16(0)
		if n := len(t.Centers); n > 0 {
			last = t.Centers[n-1]
		}
		t.Centers = append(t.Centers, last)
	}
}

// dxaCol sets the width of every cell in range, shifting later boundaries.
func dxaCol(t *Tap, first, limit int, dxa int16) Result {
	first, limit, ok := clampRange(first, limit, len(t.Cells))
	normalizeCenters(t)
	for i := first; i < limit; i++ {
		delta := dxa - (t.Centers[i+1] - t.Centers[i])
		for j := i + 1; j < len(t.Centers); j++ {
			t.Centers[j] += delta
		}
	}
	return rangeResult(ok)
}
