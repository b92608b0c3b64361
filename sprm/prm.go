package sprm

// prm0Opcodes maps the 7-bit isprm of a compact piece modifier (Prm0) to the
// full opcode it stands for. Zero entries are no-ops.
var prm0Opcodes = [128]Opcode{
	0x0000, 0x0000, 0x0000, 0x0000,
	0x2402, 0x2403, 0x2404, 0x2405,
	0x2406, 0x2407, 0x2408, 0x2409,
	0x260A, 0x0000, 0x240C, 0x0000,
	0x0000, 0x0000, 0x0000, 0x0000,
	0x0000, 0x0000, 0x2416, 0x2417,
	0x0000, 0x0000, 0x0000, 0x261B,
	0x0000, 0x0000, 0x0000, 0x0000,
	0x0000, 0x0000, 0x0000, 0x0000,
	0x0000, 0x2423, 0x0000, 0x0000,
	0x0000, 0x0000, 0x0000, 0x0000,
	0x242A, 0x0000, 0x0000, 0x0000,
	0x0000, 0x0000, 0x2430, 0x2431,
	0x0000, 0x2433, 0x2434, 0x2435,
	0x2436, 0x2437, 0x2438, 0x0000,
	0x0000, 0x243B, 0x0000, 0x0000,
	0x0000, 0x0800, 0x0801, 0x0802,
	0x0000, 0x0000, 0x0000, 0x0806,
	0x0000, 0x0000, 0x0000, 0x080A,
	0x0000, 0x2A0C, 0x0858, 0x2859,
	0x0000, 0x0000, 0x0000, 0x2A33,
	0x0000, 0x0835, 0x0836, 0x0837,
	0x0838, 0x0839, 0x083A, 0x083B,
	0x083C, 0x0000, 0x2A3E, 0x0000,
	0x0000, 0x0000, 0x2A42, 0x0000,
	0x2A44, 0x0000, 0x2A46, 0x0000,
	0x2A48, 0x0000, 0x0000, 0x0000,
	0x0000, 0x0000, 0x0000, 0x0000,
	0x0000, 0x0000, 0x0000, 0x2A53,
	0x0854, 0x0855, 0x0856, 0x2E00,
	0x2640, 0x2441, 0x0000, 0x0000,
	0x0000, 0x0000, 0x0000, 0x0000,
}

// Prm is the 16-bit property modifier stored with each piece descriptor.
type Prm uint16

// Complex reports whether the modifier indexes a grpprl in the Clx (Prm1)
// rather than encoding a single compact opcode (Prm0).
func (p Prm) Complex() bool { return p&1 != 0 }

// GrpprlIndex returns the Clx grpprl index of a complex modifier.
func (p Prm) GrpprlIndex() int { return int(p >> 1) }

// Expand returns the single opcode a compact modifier stands for. The second
// result is false for no-op entries, which callers skip silently.
func (p Prm) Expand() (Data, bool) {
	if p.Complex() {
		return Data{}, false
	}
	isprm := uint8(p>>1) & 0x7F
	op := prm0Opcodes[isprm]
	if op == 0 {
		return Data{}, false
	}
	return Data{Op: op, Operand: []byte{uint8(p >> 8)}}, true
}

// Grpprl encodes an expanded compact modifier as a one-opcode grpprl.
func (p Prm) Grpprl() []byte {
	d, ok := p.Expand()
	if !ok {
		return nil
	}
	return []byte{uint8(d.Op), uint8(d.Op >> 8), d.Operand[0]}
}
