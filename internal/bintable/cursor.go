package bintable

import "encoding/binary"

// Cursor reads little-endian values from a byte slice with bounds checks.
type Cursor struct {
	b   []byte
	off int
}

// NewCursor returns a cursor positioned at the start of b.
func NewCursor(b []byte) *Cursor {
	return &Cursor{b: b}
}

// Offset returns the current read offset.
func (c *Cursor) Offset() int { return c.off }

// Len returns the number of unread bytes.
func (c *Cursor) Len() int { return len(c.b) - c.off }

// Seek moves to an absolute offset, clamped to the buffer.
func (c *Cursor) Seek(off int) {
	switch {
	case off < 0:
		c.off = 0
	case off > len(c.b):
		c.off = len(c.b)
	default:
		c.off = off
	}
}

// Skip advances n bytes, clamped to the buffer end.
func (c *Cursor) Skip(n int) { c.Seek(c.off + n) }

// Bytes returns the next n bytes without copying.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if n < 0 || c.off+n > len(c.b) {
		return nil, ErrTruncated
	}
	b := c.b[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *Cursor) U8() (uint8, error) {
	b, err := c.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) U16() (uint16, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) I16() (int16, error) {
	v, err := c.U16()
	return int16(v), err
}

func (c *Cursor) U32() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *Cursor) I32() (int32, error) {
	v, err := c.U32()
	return int32(v), err
}

// U16At reads a value at an absolute offset, returning 0 when out of range.
func U16At(b []byte, off int) uint16 {
	if off < 0 || off+2 > len(b) {
		return 0
	}
	return binary.LittleEndian.Uint16(b[off:])
}

// U32At reads a value at an absolute offset, returning 0 when out of range.
func U32At(b []byte, off int) uint32 {
	if off < 0 || off+4 > len(b) {
		return 0
	}
	return binary.LittleEndian.Uint32(b[off:])
}
