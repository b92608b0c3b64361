package bintable

import (
	"encoding/binary"
	"fmt"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// Stringtable is a parsed STTB: a counted list of strings, each optionally
// followed by cbExtra bytes of fixed-size side data.
type Stringtable struct {
	Strings []string
	Extra   [][]byte
	Wide    bool
}

// ParseStringtable decodes an STTB. Extended tables (leading 0xFFFF) hold
// UTF-16 strings with 16-bit lengths; others hold 8-bit Windows-1252 strings
// with 8-bit lengths.
func ParseStringtable(b []byte) (*Stringtable, error) {
	c := NewCursor(b)
	st := &Stringtable{}

	if c.Len() >= 2 && binary.LittleEndian.Uint16(b) == 0xFFFF {
		st.Wide = true
		c.Skip(2)
	}
	cData, err := c.U16()
	if err != nil {
		return nil, err
	}
	cbExtra, err := c.U16()
	if err != nil {
		return nil, err
	}

	dec := charmap.Windows1252.NewDecoder()
	for i := 0; i < int(cData); i++ {
		var s string
		if st.Wide {
			cch, err := c.U16()
			if err != nil {
				return nil, fmt.Errorf("string %d: %w", i, err)
			}
			raw, err := c.Bytes(int(cch) * 2)
			if err != nil {
				return nil, fmt.Errorf("string %d: %w", i, err)
			}
			s = DecodeUTF16(raw)
		} else {
			cch, err := c.U8()
			if err != nil {
				return nil, fmt.Errorf("string %d: %w", i, err)
			}
			raw, err := c.Bytes(int(cch))
			if err != nil {
				return nil, fmt.Errorf("string %d: %w", i, err)
			}
			if s, err = dec.String(string(raw)); err != nil {
				s = string(raw)
			}
		}
		st.Strings = append(st.Strings, s)

		if cbExtra > 0 {
			extra, err := c.Bytes(int(cbExtra))
			if err != nil {
				return nil, fmt.Errorf("extra data %d: %w", i, err)
			}
			st.Extra = append(st.Extra, extra)
		}
	}
	return st, nil
}

// DecodeUTF16 decodes little-endian UTF-16 bytes, stopping at the first NUL.
func DecodeUTF16(b []byte) string {
	u := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		v := binary.LittleEndian.Uint16(b[i:])
		if v == 0 {
			break
		}
		u = append(u, v)
	}
	return string(utf16.Decode(u))
}
