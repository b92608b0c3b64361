package bintable

import (
	"encoding/binary"
	"errors"
	"testing"
)

func plcBytes(pos []uint32, structs [][]byte) []byte {
	var b []byte
	for _, p := range pos {
		b = binary.LittleEndian.AppendUint32(b, p)
	}
	for _, s := range structs {
		b = append(b, s...)
	}
	return b
}

func TestParsePlcf(t *testing.T) {
	b := plcBytes([]uint32{0, 10, 25}, [][]byte{{1, 2}, {3, 4}})
	p, err := ParsePlcf(b, 2)
	if err != nil {
		t.Fatalf("ParsePlcf() error = %v", err)
	}
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	start, limit, data := p.Entry(1)
	if start != 10 || limit != 25 || data[0] != 3 || data[1] != 4 {
		t.Errorf("Entry(1) = %d, %d, %v", start, limit, data)
	}
}

func TestParsePlcf_Errors(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
		cb   int
	}{
		{"short", []byte{1, 2}, 0},
		{"partial record", plcBytes([]uint32{0, 10}, [][]byte{{1}}), 2},
		{"decreasing", plcBytes([]uint32{10, 5}, nil), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePlcf(tt.b, tt.cb); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPlcfSearch(t *testing.T) {
	p, err := ParsePlcf(plcBytes([]uint32{5, 10, 10, 20}, nil), 0)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		pos  uint32
		want int
	}{
		{4, -1},
		{5, 0},
		{9, 0},
		{10, 2},
		{19, 2},
		{20, -1},
	}
	for _, tt := range tests {
		if got := p.Search(tt.pos); got != tt.want {
			t.Errorf("Search(%d) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestParseStringtable_Wide(t *testing.T) {
	b := []byte{0xFF, 0xFF, 2, 0, 2, 0}
	b = append(b, 2, 0, 'H', 0, 'i', 0, 0xAA, 0xBB)
	b = append(b, 1, 0, 'x', 0, 0xCC, 0xDD)

	st, err := ParseStringtable(b)
	if err != nil {
		t.Fatalf("ParseStringtable() error = %v", err)
	}
	if !st.Wide || len(st.Strings) != 2 || st.Strings[0] != "Hi" || st.Strings[1] != "x" {
		t.Errorf("Strings = %q", st.Strings)
	}
	if st.Extra[1][0] != 0xCC {
		t.Errorf("Extra[1] = %v", st.Extra[1])
	}
}

func TestParseStringtable_Narrow(t *testing.T) {
	b := []byte{1, 0, 0, 0, 3, 'c', 'a', 0xE9}
	st, err := ParseStringtable(b)
	if err != nil {
		t.Fatalf("ParseStringtable() error = %v", err)
	}
	if st.Strings[0] != "caé" {
		t.Errorf("Strings[0] = %q, want %q", st.Strings[0], "caé")
	}
}

func TestParseStringtable_Truncated(t *testing.T) {
	b := []byte{0xFF, 0xFF, 1, 0, 0, 0, 5, 0, 'a', 0}
	if _, err := ParseStringtable(b); !errors.Is(err, ErrTruncated) {
		t.Errorf("error = %v, want ErrTruncated", err)
	}
}
