// Package sprm decodes and applies single property modifiers (SPRMs), the
// compact opcodes binary Word files use to describe paragraph, character,
// section and table-row formatting as deltas against inherited state.
package sprm

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Opcode is a 16-bit SPRM identifier. Bits 0-8 hold the modifier id, bit 9 the
// "special handling" flag, bits 10-12 the target category and bits 13-15 the
// operand size class.
type Opcode uint16

// Category is the property struct an opcode targets.
type Category uint8

const (
	CategoryPap Category = 1
	CategoryChp Category = 2
	CategoryPic Category = 3
	CategorySep Category = 4
	CategoryTap Category = 5
)

func (c Category) String() string {
	switch c {
	case CategoryPap:
		return "PAP"
	case CategoryChp:
		return "CHP"
	case CategoryPic:
		return "PIC"
	case CategorySep:
		return "SEP"
	case CategoryTap:
		return "TAP"
	default:
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
}

// ID returns the modifier id (ispmd).
func (o Opcode) ID() uint16 { return uint16(o) & 0x01FF }

// Special reports whether the opcode needs special handling beyond a plain
// field store (fSpec).
func (o Opcode) Special() bool { return o&0x0200 != 0 }

// Category returns the targeted property struct (sgc).
func (o Opcode) Category() Category { return Category((o >> 10) & 0x7) }

// SizeClass returns the operand size class (spra).
func (o Opcode) SizeClass() uint8 { return uint8(o >> 13) }

func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("sprm(0x%04X)", uint16(o))
}

// Data is an immutable view of one opcode and its operand bytes.
type Data struct {
	Op      Opcode
	Operand []byte
}

// U8 returns the first operand byte, or 0.
func (d Data) U8() uint8 {
	if len(d.Operand) < 1 {
		return 0
	}
	return d.Operand[0]
}

// U16 returns the operand as a 16-bit value, or 0.
func (d Data) U16() uint16 {
	if len(d.Operand) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(d.Operand)
}

// I16 returns the operand as a signed 16-bit value, or 0.
func (d Data) I16() int16 { return int16(d.U16()) }

// U32 returns the operand as a 32-bit value, or 0.
func (d Data) U32() uint32 {
	if len(d.Operand) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(d.Operand)
}

// ErrTruncatedStream is reported by an Iterator whose last opcode declares
// more operand bytes than remain.
var ErrTruncatedStream = errors.New("sprm stream truncated")

// fixedSizes maps the regular size classes to operand lengths; -1 marks the
// variable class whose first operand byte holds the length.
var fixedSizes = [8]int{1, 1, 2, 4, 2, 2, -1, 3}

// irregularLength computes the header size and operand size for opcodes that
// do not follow their size class. rest starts at the first operand byte.
type irregularLength func(rest []byte) (header, size int, ok bool)

var irregular = map[Opcode]irregularLength{
	TDefTable:   wordSizedOperand,
	TDefTable10: wordSizedOperand,
	PChgTabs:    chgTabsOperand,
}

// wordSizedOperand reads a 16-bit operand size that counts one byte more than
// the data that follows it.
func wordSizedOperand(rest []byte) (int, int, bool) {
	if len(rest) < 2 {
		return 0, 0, false
	}
	n := int(binary.LittleEndian.Uint16(rest))
	if n == 0 {
		return 2, 0, true
	}
	return 2, n - 1, true
}

// chgTabsOperand handles sprmPChgTabs, whose length byte is 255 when the
// operand is too long to count in one byte. In that case the size follows
// from the deletion and addition counts: 4 bytes per deleted tab and 3 bytes
// per added tab.
func chgTabsOperand(rest []byte) (int, int, bool) {
	if len(rest) < 1 {
		return 0, 0, false
	}
	if rest[0] != 255 {
		return 1, int(rest[0]), true
	}
	if len(rest) < 2 {
		return 0, 0, false
	}
	del := int(rest[1])
	if len(rest) < 2+4*del+1 {
		return 0, 0, false
	}
	add := int(rest[2+4*del])
	return 1, 1 + 4*del + 1 + 3*add, true
}

// OperandLength returns the number of header bytes (length prefix) and operand
// bytes that follow an opcode, given the bytes after the opcode.
func OperandLength(op Opcode, rest []byte) (header, size int, ok bool) {
	if fn, found := irregular[op]; found {
		return fn(rest)
	}
	n := fixedSizes[op.SizeClass()]
	if n >= 0 {
		return 0, n, true
	}
	if len(rest) < 1 {
		return 0, 0, false
	}
	return 1, int(rest[0]), true
}

// Iterator walks a grpprl (a concatenation of opcodes).
type Iterator struct {
	buf []byte
	pos int
	cur Data
	err error
}

// NewIterator returns an iterator over grpprl.
func NewIterator(grpprl []byte) *Iterator {
	return &Iterator{buf: grpprl}
}

// Next advances to the next opcode. It returns false at the end of the stream
// or when the remaining bytes cannot hold a complete opcode.
func (it *Iterator) Next() bool {
	if it.err != nil || it.pos+2 > len(it.buf) {
		if it.err == nil && it.pos < len(it.buf) && it.buf[it.pos] != 0 {
			it.err = ErrTruncatedStream
		}
		return false
	}
	op := Opcode(binary.LittleEndian.Uint16(it.buf[it.pos:]))
	rest := it.buf[it.pos+2:]
	header, size, ok := OperandLength(op, rest)
	if !ok || header+size > len(rest) {
		it.err = fmt.Errorf("%w: %s needs %d bytes, %d left", ErrTruncatedStream, op, header+size, len(rest))
		return false
	}
	it.cur = Data{Op: op, Operand: rest[header : header+size]}
	it.pos += 2 + header + size
	return true
}

// Sprm returns the current opcode.
func (it *Iterator) Sprm() Data { return it.cur }

// Err returns the error that stopped iteration, if any. A single trailing
// zero pad byte is not an error.
func (it *Iterator) Err() error { return it.err }
