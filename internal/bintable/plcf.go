// Package bintable decodes the two flat table encodings that recur throughout
// the binary Word format: PLCs (a sorted position array followed by parallel
// fixed-size structs) and string tables (length-prefixed strings with
// optional fixed-size side data).
package bintable

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

// ErrTruncated is returned when a table is shorter than its own header
// says it is.
var ErrTruncated = errors.New("table truncated")

// Plcf is a parsed PLC: n+1 monotonically increasing positions (CPs or FCs)
// followed by n structs of cbStruct bytes each.
type Plcf struct {
	Pos      []uint32
	data     []byte
	cbStruct int
}

// ParsePlcf parses a PLC whose structs are cbStruct bytes long. A table of
// just one position (no entries) is valid; an empty buffer yields an empty table.
func ParsePlcf(b []byte, cbStruct int) (*Plcf, error) {
	if cbStruct < 0 {
		return nil, fmt.Errorf("invalid struct size %d", cbStruct)
	}
	if len(b) == 0 {
		return &Plcf{cbStruct: cbStruct}, nil
	}
	if len(b) < 4 {
		return nil, ErrTruncated
	}
	n := (len(b) - 4) / (4 + cbStruct)
	if 4*(n+1)+n*cbStruct != len(b) {
		return nil, fmt.Errorf("plc of %d bytes does not hold whole %d-byte records", len(b), cbStruct)
	}

	p := &Plcf{
		Pos:      make([]uint32, n+1),
		cbStruct: cbStruct,
	}
	for i := range p.Pos {
		p.Pos[i] = binary.LittleEndian.Uint32(b[4*i:])
		if i > 0 && p.Pos[i] < p.Pos[i-1] {
			return nil, fmt.Errorf("plc position %d (%d) below its predecessor (%d)", i, p.Pos[i], p.Pos[i-1])
		}
	}
	p.data = b[4*(n+1):]
	return p, nil
}

// Len returns the number of entries (one less than the number of positions).
func (p *Plcf) Len() int {
	if len(p.Pos) == 0 {
		return 0
	}
	return len(p.Pos) - 1
}

// Entry returns the range and struct bytes of entry i.
func (p *Plcf) Entry(i int) (start, limit uint32, data []byte) {
	start, limit = p.Pos[i], p.Pos[i+1]
	if p.cbStruct > 0 {
		data = p.data[i*p.cbStruct : (i+1)*p.cbStruct]
	}
	return start, limit, data
}

// Data returns the struct bytes of entry i.
func (p *Plcf) Data(i int) []byte {
	if p.cbStruct == 0 {
		return nil
	}
	return p.data[i*p.cbStruct : (i+1)*p.cbStruct]
}

// Search returns the index of the entry whose half-open range contains pos,
// or -1 when pos lies outside the table.
func (p *Plcf) Search(pos uint32) int {
	n := p.Len()
	if n == 0 || pos < p.Pos[0] || pos >= p.Pos[n] {
		return -1
	}
	// first position strictly greater than pos, minus one
	i := sort.Search(len(p.Pos), func(i int) bool { return p.Pos[i] > pos }) - 1
	if i < 0 || i >= n {
		return -1
	}
	return i
}
