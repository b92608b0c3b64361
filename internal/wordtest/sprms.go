package wordtest

import (
	"bytes"
	"encoding/binary"

	"github.com/tsawler/wordbin/sprm"
)

// Sprm encodes one opcode and its operand.
func Sprm(op sprm.Opcode, operand ...byte) []byte {
	return append(binary.LittleEndian.AppendUint16(nil, uint16(op)), operand...)
}

// Grpprl concatenates opcodes.
func Grpprl(parts ...[]byte) []byte { return bytes.Join(parts, nil) }

func u16(v uint16) []byte { return binary.LittleEndian.AppendUint16(nil, v) }

func u32(v uint32) []byte { return binary.LittleEndian.AppendUint32(nil, v) }

// Character modifiers.

func Bold() []byte     { return Sprm(sprm.CFBold, 1) }
func Italic() []byte   { return Sprm(sprm.CFItalic, 1) }
func Hidden() []byte   { return Sprm(sprm.CFVanish, 1) }
func Spec() []byte     { return Sprm(sprm.CFSpec, 1) }
func Deleted() []byte  { return Sprm(sprm.CFRMarkDel, 1) }
func Inserted() []byte { return Sprm(sprm.CFRMarkIns, 1) }

// FontSize sets the size in half points.
func FontSize(hps uint16) []byte { return Sprm(sprm.CHps, u16(hps)...) }

// FontRef selects the ASCII font by font table index.
func FontRef(ftc uint16) []byte { return Sprm(sprm.CRgFtc0, u16(ftc)...) }

// CharStyle applies a character style.
func CharStyle(istd uint16) []byte { return Sprm(sprm.CIstd, u16(istd)...) }

// Color sets an RGB text color.
func Color(rgb uint32) []byte {
	r, g, b := rgb>>16&0xFF, rgb>>8&0xFF, rgb&0xFF
	return Sprm(sprm.CCv, u32(r|g<<8|b<<16)...)
}

// PicLocation points a picture character at a Data stream offset.
func PicLocation(off uint32) []byte { return Sprm(sprm.CPicLocation, u32(off)...) }

// Paragraph modifiers.

func InTable() []byte     { return Sprm(sprm.PFInTable, 1) }
func TableRowEnd() []byte { return Sprm(sprm.PFTtp, 1) }
func InnerCell() []byte   { return Sprm(sprm.PFInnerTableCell, 1) }
func InnerRowEnd() []byte { return Sprm(sprm.PFInnerTtp, 1) }

// TableDepth sets the nesting depth of a table paragraph.
func TableDepth(itap uint32) []byte { return Sprm(sprm.PItap, u32(itap)...) }

func Justify(jc uint8) []byte       { return Sprm(sprm.PJc, jc) }
func OutlineLevel(l uint8) []byte   { return Sprm(sprm.POutLvl, l) }
func SpaceBefore(dya uint16) []byte { return Sprm(sprm.PDyaBefore, u16(dya)...) }
func SpaceAfter(dya uint16) []byte  { return Sprm(sprm.PDyaAfter, u16(dya)...) }

// ListItem numbers a paragraph through override ilfo at level ilvl.
func ListItem(ilfo int16, ilvl uint8) []byte {
	return Grpprl(Sprm(sprm.PIlfo, u16(uint16(ilfo))...), Sprm(sprm.PIlvl, ilvl))
}

// DefTable defines a row of cells with the given widths in twips.
func DefTable(widths ...int16) []byte {
	data := []byte{byte(len(widths))}
	var x int16
	data = append(data, u16(uint16(x))...)
	for _, w := range widths {
		x += w
		data = append(data, u16(uint16(x))...)
	}
	data = append(data, make([]byte, 20*len(widths))...)
	return Sprm(sprm.TDefTable, append(u16(uint16(len(data)+1)), data...)...)
}

// Paragraph helpers.

// P is a paragraph of one plain run.
func P(text string, papx ...[]byte) Paragraph {
	return Paragraph{Runs: []Run{{Text: text}}, Papx: Grpprl(papx...)}
}

// Styled is a paragraph of one run in style istd.
func Styled(istd uint16, text string, papx ...[]byte) Paragraph {
	p := P(text, papx...)
	p.Istd = istd
	return p
}

// Runs is a paragraph of several runs.
func Runs(runs ...Run) Paragraph { return Paragraph{Runs: runs} }

// R is a run with character modifiers.
func R(text string, chpx ...[]byte) Run { return Run{Text: text, Chpx: Grpprl(chpx...)} }

// Cell is a first-level table cell holding text.
func Cell(text string) Paragraph {
	p := P(text, InTable())
	p.Mark = "\a"
	return p
}

// Row returns the cells of one table row followed by its row mark.
func Row(widths []int16, cells ...string) []Paragraph {
	var out []Paragraph
	for _, c := range cells {
		out = append(out, Cell(c))
	}
	return append(out, Paragraph{Papx: Grpprl(InTable(), TableRowEnd(), DefTable(widths...)), Mark: "\a"})
}

// NestedRow returns a second-level row. Its cells end with paragraph marks
// and carry the inner cell flags.
func NestedRow(widths []int16, cells ...string) []Paragraph {
	var out []Paragraph
	for _, c := range cells {
		out = append(out, P(c, InTable(), TableDepth(2), InnerCell()))
	}
	return append(out, Paragraph{Papx: Grpprl(InTable(), TableDepth(2), InnerCell(), InnerRowEnd(), DefTable(widths...))})
}

// FootnoteRef is an auto-numbered footnote reference.
func FootnoteRef() Run { return Run{Text: "\x02", Chpx: Spec(), note: footnote} }

// EndnoteRef is an auto-numbered endnote reference.
func EndnoteRef() Run { return Run{Text: "\x02", Chpx: Spec(), note: endnote} }

// Field returns the text of a field with an instruction and a result.
func Field(code, result string) string {
	return "\x13" + code + "\x14" + result + "\x15"
}

// Picture is a picture character pointing at off in the Data stream.
func Picture(off uint32) Run { return R("\x01", Spec(), PicLocation(off)) }
