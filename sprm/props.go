package sprm

import (
	"encoding/binary"
	"fmt"
)

// Color is a 24-bit RGB value (0xRRGGBB). ColorAuto marks the automatic color,
// which the renderer resolves against the background.
type Color uint32

// ColorAuto is the automatic color.
const ColorAuto Color = 0xFF000000

// Auto reports whether c is the automatic color.
func (c Color) Auto() bool { return c == ColorAuto }

// Hex returns the color as "#rrggbb", or "auto".
func (c Color) Hex() string {
	if c.Auto() {
		return "auto"
	}
	return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF)
}

// icoPalette is the 16-color palette indexed by the legacy ico values (0 is auto).
var icoPalette = [17]Color{
	ColorAuto,
	0x000000, 0x0000FF, 0x00FFFF, 0x00FF00, 0xFF00FF, 0xFF0000, 0xFFFF00, 0xFFFFFF,
	0x000080, 0x008080, 0x008000, 0x800080, 0x800000, 0x808000, 0x808080, 0xC0C0C0,
}

// IcoColor maps a legacy ico palette index to a color. Unknown indexes are auto.
func IcoColor(ico uint8) Color {
	if int(ico) >= len(icoPalette) {
		return ColorAuto
	}
	return icoPalette[ico]
}

// ColorRef decodes a COLORREF (red, green, blue, flag bytes).
func ColorRef(v uint32) Color {
	if v>>24 == 0xFF {
		return ColorAuto
	}
	r, g, b := v&0xFF, (v>>8)&0xFF, (v>>16)&0xFF
	return Color(r<<16 | g<<8 | b)
}

// Brc describes one border line.
type Brc struct {
	Color  Color
	Width  uint8 // eighths of a point
	Type   uint8 // 0 none, 1 single, 3 double, ...
	Space  uint8 // points
	Shadow bool
	Frame  bool
}

// None reports whether the border is absent.
func (b Brc) None() bool { return b.Type == 0 || b.Type == 0xFF }

// DecodeBrc80 decodes the 4-byte legacy border record.
func DecodeBrc80(p []byte) Brc {
	if len(p) < 4 || binary.LittleEndian.Uint32(p) == 0xFFFFFFFF {
		return Brc{}
	}
	return Brc{
		Width:  p[0],
		Type:   p[1],
		Color:  IcoColor(p[2]),
		Space:  p[3] & 0x1F,
		Shadow: p[3]&0x20 != 0,
		Frame:  p[3]&0x40 != 0,
	}
}

// DecodeBrc decodes the 8-byte border record.
func DecodeBrc(p []byte) Brc {
	if len(p) < 8 || binary.LittleEndian.Uint32(p) == 0xFFFFFFFF && binary.LittleEndian.Uint32(p[4:]) == 0xFFFFFFFF {
		return Brc{}
	}
	return Brc{
		Color:  ColorRef(binary.LittleEndian.Uint32(p)),
		Width:  p[4],
		Type:   p[5],
		Space:  p[6] & 0x1F,
		Shadow: p[6]&0x20 != 0,
		Frame:  p[6]&0x40 != 0,
	}
}

// Shd is a shading pattern.
type Shd struct {
	Fore    Color
	Back    Color
	Pattern uint16 // 0 clear, 1 solid, 2..13 percentages, ...
}

// Clear reports whether the shading paints nothing.
func (s Shd) Clear() bool { return s.Pattern == 0 && s.Back.Auto() }

// DecodeShd80 decodes the 2-byte legacy shading record.
func DecodeShd80(p []byte) Shd {
	if len(p) < 2 {
		return Shd{Fore: ColorAuto, Back: ColorAuto}
	}
	v := binary.LittleEndian.Uint16(p)
	return Shd{
		Fore:    IcoColor(uint8(v & 0x1F)),
		Back:    IcoColor(uint8((v >> 5) & 0x1F)),
		Pattern: v >> 10,
	}
}

// DecodeShd decodes the 10-byte shading record.
func DecodeShd(p []byte) Shd {
	if len(p) < 10 {
		return Shd{Fore: ColorAuto, Back: ColorAuto}
	}
	return Shd{
		Fore:    ColorRef(binary.LittleEndian.Uint32(p)),
		Back:    ColorRef(binary.LittleEndian.Uint32(p[4:])),
		Pattern: binary.LittleEndian.Uint16(p[8:]),
	}
}

// TabStop is one custom tab position.
type TabStop struct {
	Pos    int16 // twips
	Jc     uint8
	Leader uint8
}

// Pap holds resolved paragraph properties.
type Pap struct {
	Istd              uint16
	Jc                uint8
	KeepLines         bool
	KeepNext          bool
	PageBreakBefore   bool
	WidowControl      bool
	NoLineNumbers     bool
	BiDi              bool
	ContextualSpacing bool

	Ilvl uint8
	Ilfo int16 // 1-based list override index, 0 for none

	DxaLeft  int32
	DxaRight int32
	DxaLeft1 int32

	DyaLine    int16
	MultLine   bool
	DyaBefore  uint16
	DyaAfter   uint16
	OutlineLvl uint8
	InTable    bool
	Ttp        bool
	InnerCell  bool
	InnerTtp   bool
	Itap       int32
	Tabs       []TabStop
	Shd        Shd
	BrcTop     Brc
	BrcLeft    Brc
	BrcBottom  Brc
	BrcRight   Brc
	BrcBetween Brc
}

// DefaultPap returns the document default paragraph properties.
func DefaultPap() Pap {
	return Pap{
		DyaLine:      240,
		MultLine:     true,
		WidowControl: true,
		OutlineLvl:   9,
		Shd:          Shd{Fore: ColorAuto, Back: ColorAuto},
	}
}

// TableLevel returns the table nesting depth of the paragraph.
func (p *Pap) TableLevel() int {
	if p.Itap > 0 {
		return int(p.Itap)
	}
	if p.InTable {
		return 1
	}
	return 0
}

// CellEnd reports whether the paragraph mark closes a cell at its own depth.
func (p *Pap) CellEnd() bool {
	if p.TableLevel() > 1 {
		return p.InnerCell
	}
	return false
}

// RowEnd reports whether the paragraph is a row-end marker at its own depth.
func (p *Pap) RowEnd() bool {
	if p.TableLevel() > 1 {
		return p.InnerTtp
	}
	return p.Ttp
}

// Clone returns a copy that shares no slices with p.
func (p Pap) Clone() Pap {
	if p.Tabs != nil {
		p.Tabs = append([]TabStop(nil), p.Tabs...)
	}
	return p
}

// Chp holds resolved character properties.
type Chp struct {
	Istd uint16

	Bold      bool
	Italic    bool
	Strike    bool
	DStrike   bool
	Outline   bool
	Shadow    bool
	Emboss    bool
	Imprint   bool
	SmallCaps bool
	Caps      bool
	Vanish    bool
	BoldBi    bool
	ItalicBi  bool

	RMarkDel   bool
	RMarkIns   bool
	FldVanish  bool
	SpecVanish bool
	WebHidden  bool
	Spec       bool
	Obj        bool
	Ole2       bool
	Data       bool
	Complex    bool

	Underline uint8
	Hps       uint16 // half-points
	HpsBi     uint16
	HpsPos    int16
	Iss       uint8 // 0 normal, 1 superscript, 2 subscript
	Ftc       [3]uint16
	FtcBi     uint16
	Lid       uint16
	LidFE     uint16
	LidBi     uint16
	Color     Color
	Highlight uint8
	DxaSpace  int16
	Kern      int16
	Sfx       uint8

	PicLocation uint32
	Shd         Shd
	Brc         Brc
}

// DefaultChp returns the document default character properties.
func DefaultChp() Chp {
	return Chp{
		Istd:  10,
		Hps:   20,
		HpsBi: 20,
		Lid:   0x0409,
		LidFE: 0x0409,
		LidBi: 0x0400,
		Color: ColorAuto,
		Shd:   Shd{Fore: ColorAuto, Back: ColorAuto},
	}
}

// Hidden reports whether the run is hidden text.
func (c *Chp) Hidden() bool { return c.Vanish || c.SpecVanish || c.WebHidden }

// Sep holds resolved section properties.
type Sep struct {
	Bkc          uint8
	TitlePage    bool
	Columns      int16 // columns - 1
	DxaColumns   int16
	NfcPgn       uint8
	PgnRestart   bool
	PgnStart     int32
	XaPage       uint16
	YaPage       uint16
	DxaLeft      uint16
	DxaRight     uint16
	DyaTop       int16
	DyaBottom    int16
	DyaHdrTop    uint16
	DyaHdrBottom uint16
	DzaGutter    uint16
	Landscape    bool
	BiDi         bool
	Vjc          uint8
}

// DefaultSep returns Letter-sized section defaults.
func DefaultSep() Sep {
	return Sep{
		Bkc:          2,
		DxaColumns:   720,
		PgnStart:     1,
		XaPage:       12240,
		YaPage:       15840,
		DxaLeft:      1800,
		DxaRight:     1800,
		DyaTop:       1440,
		DyaBottom:    1440,
		DyaHdrTop:    720,
		DyaHdrBottom: 720,
	}
}

// TextWidth returns the width between the page margins in twips.
func (s *Sep) TextWidth() int {
	w := int(s.XaPage) - int(s.DxaLeft) - int(s.DxaRight) - int(s.DzaGutter)
	if w < 0 {
		return 0
	}
	return w
}

// Border sides, in Tc.Brc and Tap.Borders order.
const (
	SideTop = iota
	SideLeft
	SideBottom
	SideRight
	SideInsideH
	SideInsideV
)

// Width units (FtsWWidth).
const (
	FtsNil  = 0
	FtsAuto = 1
	FtsPct  = 2 // fiftieths of a percent
	FtsDxa  = 3 // twips
)

// Width is a preferred width with its unit.
type Width struct {
	Fts uint8
	W   int16
}

// Tc holds the properties of one table cell.
type Tc struct {
	FirstMerged bool
	Merged      bool
	VertMerge   bool
	VertRestart bool
	VertAlign   uint8
	NoWrap      bool
	Width       Width
	Brc         [4]Brc
	Shd         Shd
	Padding     [4]int16
	PaddingSet  uint8 // bitmask of sides in Padding
}

// Tap holds resolved table row properties.
type Tap struct {
	Jc          uint8
	DxaGapHalf  int16
	CantSplit   bool
	Header      bool
	RowHeight   int16
	BiDi        bool
	Width       Width
	WidthBefore Width
	WidthAfter  Width

	// Centers holds len(Cells)+1 column boundaries in twips.
	Centers []int16
	Cells   []Tc
	Borders [6]Brc
	Padding [4]int16
}

// Clone returns a deep copy.
func (t *Tap) Clone() *Tap {
	c := *t
	c.Centers = append([]int16(nil), t.Centers...)
	c.Cells = append([]Tc(nil), t.Cells...)
	return &c
}

// DecodeTc80 decodes the 20-byte legacy cell descriptor.
func DecodeTc80(p []byte) Tc {
	tc := Tc{Shd: Shd{Fore: ColorAuto, Back: ColorAuto}}
	if len(p) < 20 {
		return tc
	}
	grf := binary.LittleEndian.Uint16(p)
	tc.FirstMerged = grf&0x0001 != 0
	tc.Merged = grf&0x0002 != 0
	tc.VertMerge = grf&0x0020 != 0
	tc.VertRestart = grf&0x0040 != 0
	tc.VertAlign = uint8((grf >> 7) & 0x3)
	if w := int16(binary.LittleEndian.Uint16(p[2:])); w != 0 {
		tc.Width = Width{Fts: FtsDxa, W: w}
	}
	for i := 0; i < 4; i++ {
		tc.Brc[i] = DecodeBrc80(p[4+4*i:])
	}
	return tc
}
