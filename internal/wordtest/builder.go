// Package wordtest builds small binary Word documents in memory. The streams
// it returns can be wrapped in a container and opened like a real file.
package wordtest

import (
	"encoding/binary"
	"sort"
	"unicode/utf16"
)

// Stream names of a built document.
const (
	WordDocument = "WordDocument"
	Table        = "1Table"
	Data         = "Data"
)

const (
	fcText   = 0x400
	pageSize = 512
	maxCrun  = 0x65

	fibIdent  = 0xA5EC
	fibNFib   = 0x00C1
	fibFlags  = 0x0200 // fWhichTblStm
	fibCsw    = 14
	fibCslw   = 22
	fibPairs  = 93
	istdNil   = 0x0FFF
	pcdFcBit  = 0x40000000
	picfLen   = 0x44
	blipPNG   = 0xF01E
	blipInst  = 0x6E0
	noSepx    = 0xFFFFFFFF
	lfoNoCP   = 0xFFFFFFFF
	lvlfLen   = 28
	lstfLen   = 28
	lfoLen    = 16
	maxLevels = 9
)

// FIB pair indexes.
const (
	pairStshf       = 1
	pairPlcffndRef  = 2
	pairPlcffndTxt  = 3
	pairPlcfSed     = 6
	pairPlcfBteChpx = 12
	pairPlcfBtePapx = 13
	pairSttbfFfn    = 15
	pairPlcfFldMom  = 16
	pairSttbfBkmk   = 21
	pairPlcfBkf     = 22
	pairPlcfBkl     = 23
	pairClx         = 33
	pairPlcfendRef  = 46
	pairPlcfendTxt  = 47
	pairPlfLst      = 73
	pairPlfLfo      = 74
)

type noteKind uint8

const (
	noNote noteKind = iota
	footnote
	endnote
)

// Run is text sharing one set of character modifiers.
type Run struct {
	Text string
	Chpx []byte
	note noteKind
}

// Paragraph is a run list ended by a mark. An empty Mark means "\r".
type Paragraph struct {
	Istd     uint16
	Papx     []byte
	Runs     []Run
	Mark     string
	MarkChpx []byte
}

// Style is a style sheet entry. An entry without a name is an empty slot.
type Style struct {
	Name string
	Sti  uint16
	Type uint8 // 1 paragraph, 2 character
	Base int   // -1 for none
	Papx []byte
	Chpx []byte
}

// Font is a font table entry.
type Font struct {
	Name    string
	Charset uint8
}

// Level is one list level. Code units below 9 in Text are number
// placeholders for that level.
type Level struct {
	StartAt      int32
	Nfc          uint8
	Text         string
	Follow       uint8
	Legal        bool
	NoRestart    bool
	RestartLimit uint8
}

// List is an abstract list definition.
type List struct {
	Lsid   int32
	Simple bool
	Levels []Level
}

// LevelOverride changes the start or the definition of one level.
type LevelOverride struct {
	Level    uint8
	StartAt  int32
	HasStart bool
	Lvl      *Level
}

// Override binds paragraphs (through their 1-based index) to a list.
type Override struct {
	Lsid   int32
	Levels []LevelOverride
}

// Bookmark spans [Start, Limit) of the main text.
type Bookmark struct {
	Name         string
	Start, Limit uint32
}

// Section ends at Limit and carries the section modifiers Sepx.
type Section struct {
	Limit uint32
	Sepx  []byte
}

// Document describes the content of a file to build.
type Document struct {
	Paragraphs []Paragraph
	Footnotes  [][]Paragraph
	Endnotes   [][]Paragraph

	// Styles and Fonts default to DefaultStyles and DefaultFonts.
	Styles    []Style
	Fonts     []Font
	Lists     []List
	Overrides []Override
	Bookmarks []Bookmark
	Sections  []Section

	Lid uint16
	// Unicode stores the text as 16-bit code units. Text with characters
	// outside Latin-1 is always stored that way.
	Unicode bool
	// PieceBreaks splits the piece table at these CPs.
	PieceBreaks []uint32
	// NoPieceTable omits the Clx.
	NoPieceTable bool
	// NoFieldTable omits the field PLCF so fields are found by scanning.
	NoFieldTable bool
	// NoParagraphRuns omits the PAPX bin table.
	NoParagraphRuns bool

	data []byte
}

// DefaultStyles returns Normal (0), heading 1 (1), heading 2 (2) and the
// character style Strong (3).
func DefaultStyles() []Style {
	return []Style{
		{Name: "Normal", Sti: 0, Type: 1, Base: -1},
		{Name: "heading 1", Sti: 1, Type: 1, Base: 0, Papx: OutlineLevel(0), Chpx: Grpprl(Bold(), FontSize(32))},
		{Name: "heading 2", Sti: 2, Type: 1, Base: 0, Papx: OutlineLevel(1), Chpx: Bold()},
		{Name: "Strong", Sti: 87, Type: 2, Base: -1, Chpx: Bold()},
	}
}

// DefaultFonts returns Times New Roman, Symbol and Arial.
func DefaultFonts() []Font {
	return []Font{{Name: "Times New Roman"}, {Name: "Symbol", Charset: 2}, {Name: "Arial"}}
}

// AddPicture stores png in the Data stream and returns the offset a
// PicLocation modifier points at. Goal sizes are in twips.
func (d *Document) AddPicture(png []byte, goalW, goalH int16) uint32 {
	off := uint32(len(d.data))
	blip := make([]byte, 8, 8+17+len(png))
	binary.LittleEndian.PutUint16(blip, blipInst<<4)
	binary.LittleEndian.PutUint16(blip[2:], blipPNG)
	binary.LittleEndian.PutUint32(blip[4:], uint32(17+len(png)))
	blip = append(blip, make([]byte, 16)...)
	blip = append(blip, 0xFF)
	blip = append(blip, png...)

	picf := make([]byte, picfLen)
	binary.LittleEndian.PutUint32(picf, uint32(picfLen+len(blip)))
	binary.LittleEndian.PutUint16(picf[4:], picfLen)
	binary.LittleEndian.PutUint16(picf[6:], 0x64)
	binary.LittleEndian.PutUint16(picf[28:], uint16(goalW))
	binary.LittleEndian.PutUint16(picf[30:], uint16(goalH))
	binary.LittleEndian.PutUint16(picf[32:], 1000)
	binary.LittleEndian.PutUint16(picf[34:], 1000)
	d.data = append(d.data, picf...)
	d.data = append(d.data, blip...)
	return off
}

// span is a CP range with the modifiers that apply to it.
type span struct {
	start, limit uint32
	istd         uint16
	grpprl       []byte
}

// layout is the flattened text of all stories.
type layout struct {
	units    []uint16
	chars    []span
	paras    []span
	ccpText  uint32
	ccpFtn   uint32
	ccpEdn   uint32
	ftnRefs  []uint32
	ednRefs  []uint32
	ftnStart []uint32
	ednStart []uint32
}

func (l *layout) cp() uint32 { return uint32(len(l.units)) }

func (l *layout) add(p Paragraph) {
	start := l.cp()
	for _, r := range p.Runs {
		if r.Text == "" {
			continue
		}
		at := l.cp()
		switch r.note {
		case footnote:
			l.ftnRefs = append(l.ftnRefs, at)
		case endnote:
			l.ednRefs = append(l.ednRefs, at)
		}
		l.units = append(l.units, utf16.Encode([]rune(r.Text))...)
		l.chars = append(l.chars, span{start: at, limit: l.cp(), grpprl: r.Chpx})
	}
	mark := p.Mark
	if mark == "" {
		mark = "\r"
	}
	at := l.cp()
	l.units = append(l.units, utf16.Encode([]rune(mark))...)
	l.chars = append(l.chars, span{start: at, limit: l.cp(), grpprl: p.MarkChpx})
	l.paras = append(l.paras, span{start: start, limit: l.cp(), istd: p.Istd, grpprl: p.Papx})
}

// notes lays out one note story followed by its guard paragraph and returns
// the story length.
func (l *layout) notes(notes [][]Paragraph, starts *[]uint32) uint32 {
	if len(notes) == 0 {
		return 0
	}
	base := l.cp()
	for _, n := range notes {
		*starts = append(*starts, l.cp()-base)
		for _, p := range n {
			l.add(p)
		}
	}
	*starts = append(*starts, l.cp()-base)
	l.add(Paragraph{})
	*starts = append(*starts, l.cp()-base)
	return l.cp() - base
}

func (d *Document) layout() *layout {
	l := &layout{}
	for _, p := range d.Paragraphs {
		l.add(p)
	}
	l.ccpText = l.cp()
	l.ccpFtn = l.notes(d.Footnotes, &l.ftnStart)
	l.ccpEdn = l.notes(d.Endnotes, &l.ednStart)
	if l.ccpFtn+l.ccpEdn > 0 {
		l.add(Paragraph{})
	}
	return l
}

// Streams builds the document and returns its streams by name.
func (d *Document) Streams() map[string][]byte {
	l := d.layout()
	width := uint32(1)
	if d.Unicode {
		width = 2
	}
	for _, u := range l.units {
		if u > 0xFF {
			width = 2
		}
	}
	fc := func(cp uint32) uint32 { return fcText + width*cp }

	word := make([]byte, fcText)
	for _, u := range l.units {
		if width == 1 {
			word = append(word, byte(u))
		} else {
			word = binary.LittleEndian.AppendUint16(word, u)
		}
	}

	var t tableStream
	pairs := make([][2]uint32, fibPairs)
	set := func(i int, b []byte) {
		if len(b) > 0 {
			pairs[i] = [2]uint32{t.add(b), uint32(len(b))}
		}
	}

	set(pairStshf, d.stylesheet())
	if !d.NoPieceTable {
		set(pairClx, d.clx(l, width))
	}

	var bte []byte
	word, bte = chpxPages(word, l.chars, fc)
	set(pairPlcfBteChpx, bte)
	if !d.NoParagraphRuns {
		word, bte = papxPages(word, l.paras, fc)
		set(pairPlcfBtePapx, bte)
	}

	set(pairSttbfFfn, d.fontTable())
	if !d.NoFieldTable {
		set(pairPlcfFldMom, fieldTable(l.units[:l.ccpText]))
	}
	if len(d.Bookmarks) > 0 {
		names, starts, limits := d.bookmarkTables(l.ccpText)
		set(pairSttbfBkmk, names)
		set(pairPlcfBkf, starts)
		set(pairPlcfBkl, limits)
	}
	if len(l.ftnRefs) > 0 {
		set(pairPlcffndRef, noteRefs(l.ftnRefs, l.ccpText))
		set(pairPlcffndTxt, plc(l.ftnStart, 0, nil))
	}
	if len(l.ednRefs) > 0 {
		set(pairPlcfendRef, noteRefs(l.ednRefs, l.ccpText))
		set(pairPlcfendTxt, plc(l.ednStart, 0, nil))
	}
	if len(d.Sections) > 0 {
		var sed []byte
		word, sed = d.sectionTable(word)
		set(pairPlcfSed, sed)
	}
	if len(d.Lists) > 0 {
		lst, lvls := d.listTable()
		pairs[pairPlfLst] = [2]uint32{t.add(lst), uint32(len(lst))}
		t.add(lvls)
		set(pairPlfLfo, d.overrideTable())
	}

	copy(word, d.fib(l, pairs))
	streams := map[string][]byte{WordDocument: word, Table: t.b}
	if len(d.data) > 0 {
		streams[Data] = d.data
	}
	return streams
}

type tableStream struct{ b []byte }

func (t *tableStream) add(b []byte) uint32 {
	off := uint32(len(t.b))
	t.b = append(t.b, b...)
	return off
}

func (d *Document) fib(l *layout, pairs [][2]uint32) []byte {
	b := make([]byte, 32, fcText)
	binary.LittleEndian.PutUint16(b, fibIdent)
	binary.LittleEndian.PutUint16(b[2:], fibNFib)
	binary.LittleEndian.PutUint16(b[6:], d.Lid)
	binary.LittleEndian.PutUint16(b[0x0A:], fibFlags)
	binary.LittleEndian.PutUint32(b[0x18:], fcText)

	b = binary.LittleEndian.AppendUint16(b, fibCsw)
	b = append(b, make([]byte, 2*fibCsw)...)
	b = binary.LittleEndian.AppendUint16(b, fibCslw)
	lw := make([]uint32, fibCslw)
	lw[3], lw[4], lw[8] = l.ccpText, l.ccpFtn, l.ccpEdn
	for _, v := range lw {
		b = binary.LittleEndian.AppendUint32(b, v)
	}
	b = binary.LittleEndian.AppendUint16(b, fibPairs)
	for _, p := range pairs {
		b = binary.LittleEndian.AppendUint32(b, p[0])
		b = binary.LittleEndian.AppendUint32(b, p[1])
	}
	return binary.LittleEndian.AppendUint16(b, 0) // cswNew
}

// plc encodes a PLC: len(pos) positions followed by fixed-size data.
func plc(pos []uint32, cb int, data [][]byte) []byte {
	var b []byte
	for _, p := range pos {
		b = binary.LittleEndian.AppendUint32(b, p)
	}
	for _, d := range data {
		entry := make([]byte, cb)
		copy(entry, d)
		b = append(b, entry...)
	}
	return b
}

func (d *Document) clx(l *layout, width uint32) []byte {
	bounds := []uint32{0}
	for _, cp := range d.PieceBreaks {
		if cp > bounds[len(bounds)-1] && cp < l.cp() {
			bounds = append(bounds, cp)
		}
	}
	bounds = append(bounds, l.cp())

	var pcds [][]byte
	for _, cp := range bounds[:len(bounds)-1] {
		pcd := make([]byte, 8)
		fc := fcText + width*cp
		if width == 1 {
			fc = fc*2 | pcdFcBit
		}
		binary.LittleEndian.PutUint32(pcd[2:], fc)
		pcds = append(pcds, pcd)
	}
	body := plc(bounds, 8, pcds)
	b := []byte{0x02}
	b = binary.LittleEndian.AppendUint32(b, uint32(len(body)))
	return append(b, body...)
}

// pad extends word to the next page boundary.
func pad(word []byte) []byte {
	if n := len(word) % pageSize; n != 0 {
		word = append(word, make([]byte, pageSize-n)...)
	}
	return word
}

// fkpPage is one page under construction. Properties are allocated from
// the end of the page downwards.
type fkpPage struct {
	b     [pageSize]byte
	fcs   []uint32
	props []int // offset of each entry's property, 0 for none
	top   int
}

func newPage() *fkpPage { return &fkpPage{top: pageSize - 1} }

// fits reports whether a property of n bytes fits below the allocations
// with header bytes of entry tables in front of it.
func (p *fkpPage) fits(n, header int) bool {
	if n == 0 {
		return header <= p.top
	}
	return header <= (p.top-n)&^1
}

func (p *fkpPage) alloc(prop []byte) int {
	if len(prop) == 0 {
		return 0
	}
	p.top = (p.top - len(prop)) &^ 1
	copy(p.b[p.top:], prop)
	return p.top
}

// entry records an FC range whose property sits at off.
func (p *fkpPage) entry(start, limit uint32, off int) {
	p.fcs = append(p.fcs[:len(p.props)], start, limit)
	p.props = append(p.props, off)
}

// fkpWriter packs entries into pages.
type fkpWriter struct {
	pages []*fkpPage
	cur   *fkpPage
	bx    int // size of one entry's index data
}

func (w *fkpWriter) add(start, limit uint32, prop []byte) {
	if w.cur == nil {
		w.cur = newPage()
	}
	k := len(w.cur.props)
	if k == maxCrun || !w.cur.fits(len(prop), 4*(k+2)+w.bx*(k+1)) {
		w.pages = append(w.pages, w.cur)
		w.cur = newPage()
	}
	w.cur.entry(start, limit, w.cur.alloc(prop))
}

// write finishes the pages, appends them to word at page boundaries and
// returns the grown stream with the bin table pointing at the pages.
func (w *fkpWriter) write(word []byte) ([]byte, []byte) {
	if w.cur != nil {
		w.pages = append(w.pages, w.cur)
	}
	var pos []uint32
	var pns [][]byte
	var limit uint32
	for _, p := range w.pages {
		n := len(p.props)
		for i, f := range p.fcs {
			binary.LittleEndian.PutUint32(p.b[4*i:], f)
		}
		for i, off := range p.props {
			p.b[4*(n+1)+w.bx*i] = byte(off / 2)
		}
		p.b[pageSize-1] = byte(n)

		word = pad(word)
		pns = append(pns, binary.LittleEndian.AppendUint32(nil, uint32(len(word)/pageSize)))
		word = append(word, p.b[:]...)
		pos = append(pos, p.fcs[0])
		limit = p.fcs[n]
	}
	if len(pns) == 0 {
		return word, nil
	}
	return word, plc(append(pos, limit), 4, pns)
}

// chpxPages writes CHPX FKPs for runs.
func chpxPages(word []byte, runs []span, fc func(uint32) uint32) ([]byte, []byte) {
	w := &fkpWriter{bx: 1}
	for _, r := range runs {
		var prop []byte
		if len(r.grpprl) > 0 {
			prop = append([]byte{byte(len(r.grpprl))}, r.grpprl...)
		}
		w.add(fc(r.start), fc(r.limit), prop)
	}
	return w.write(word)
}

// papxPages writes PAPX FKPs for paragraphs.
func papxPages(word []byte, paras []span, fc func(uint32) uint32) ([]byte, []byte) {
	w := &fkpWriter{bx: 13}
	for _, r := range paras {
		papx := binary.LittleEndian.AppendUint16(nil, r.istd)
		papx = append(papx, r.grpprl...)
		var prop []byte
		if len(papx)%2 == 1 {
			prop = append([]byte{byte((len(papx) + 1) / 2)}, papx...)
		} else {
			prop = append([]byte{0, byte(len(papx) / 2)}, papx...)
		}
		w.add(fc(r.start), fc(r.limit), prop)
	}
	return w.write(word)
}

func utf16le(s string) []byte {
	var b []byte
	for _, u := range utf16.Encode([]rune(s)) {
		b = binary.LittleEndian.AppendUint16(b, u)
	}
	return b
}

func (d *Document) stylesheet() []byte {
	styles := d.Styles
	if styles == nil {
		styles = DefaultStyles()
	}
	stshi := make([]byte, 18)
	binary.LittleEndian.PutUint16(stshi, uint16(len(styles)))
	binary.LittleEndian.PutUint16(stshi[2:], 10)
	binary.LittleEndian.PutUint16(stshi[6:], 0x5B)
	binary.LittleEndian.PutUint16(stshi[8:], 15)

	b := binary.LittleEndian.AppendUint16(nil, uint16(len(stshi)))
	b = append(b, stshi...)
	for i, s := range styles {
		std := s.std(uint16(i))
		b = binary.LittleEndian.AppendUint16(b, uint16(len(std)))
		b = append(b, std...)
	}
	return b
}

func (s Style) std(istd uint16) []byte {
	if s.Name == "" {
		return nil
	}
	typ := s.Type
	if typ == 0 {
		typ = 1
	}
	base := uint16(istdNil)
	if s.Base >= 0 {
		base = uint16(s.Base)
	}
	var upx [][]byte
	if typ == 2 {
		upx = [][]byte{s.Chpx}
	} else {
		papx := binary.LittleEndian.AppendUint16(nil, istd)
		upx = [][]byte{append(papx, s.Papx...), s.Chpx}
	}

	b := make([]byte, 10)
	binary.LittleEndian.PutUint16(b, s.Sti&0x0FFF)
	binary.LittleEndian.PutUint16(b[2:], uint16(typ)&0x0F|base<<4)
	binary.LittleEndian.PutUint16(b[4:], uint16(len(upx))|istd<<4)
	name := utf16le(s.Name)
	b = binary.LittleEndian.AppendUint16(b, uint16(len(name)/2))
	b = append(b, name...)
	b = append(b, 0, 0)
	for _, u := range upx {
		if len(b)%2 != 0 {
			b = append(b, 0)
		}
		b = binary.LittleEndian.AppendUint16(b, uint16(len(u)))
		b = append(b, u...)
	}
	return b
}

func (d *Document) fontTable() []byte {
	fonts := d.Fonts
	if fonts == nil {
		fonts = DefaultFonts()
	}
	b := binary.LittleEndian.AppendUint16(nil, uint16(len(fonts)))
	b = append(b, 0, 0)
	for _, f := range fonts {
		ffn := make([]byte, 39)
		ffn[3] = f.Charset
		ffn = append(ffn, utf16le(f.Name)...)
		ffn = append(ffn, 0, 0)
		b = append(b, byte(len(ffn)))
		b = append(b, ffn...)
	}
	return b
}

// fieldTable indexes the field characters of the main text.
func fieldTable(units []uint16) []byte {
	var pos []uint32
	var data [][]byte
	for i, u := range units {
		if u == 0x13 || u == 0x14 || u == 0x15 {
			pos = append(pos, uint32(i))
			data = append(data, []byte{byte(u), 0})
		}
	}
	if len(pos) == 0 {
		return nil
	}
	pos = append(pos, uint32(len(units)))
	return plc(pos, 2, data)
}

// bookmarkTables returns the names and starts in start order and the limits
// in limit order.
func (d *Document) bookmarkTables(ccpText uint32) ([]byte, []byte, []byte) {
	marks := append([]Bookmark(nil), d.Bookmarks...)
	sort.SliceStable(marks, func(i, j int) bool { return marks[i].Start < marks[j].Start })
	byLimit := make([]int, len(marks))
	for i := range byLimit {
		byLimit[i] = i
	}
	sort.SliceStable(byLimit, func(i, j int) bool { return marks[byLimit[i]].Limit < marks[byLimit[j]].Limit })
	ibkl := make([]int, len(marks))
	var limits []uint32
	for pos, i := range byLimit {
		ibkl[i] = pos
		limits = append(limits, marks[i].Limit)
	}

	names := []byte{0xFF, 0xFF}
	names = binary.LittleEndian.AppendUint16(names, uint16(len(marks)))
	names = append(names, 0, 0)
	var starts []uint32
	var bkf [][]byte
	for i, bk := range marks {
		name := utf16le(bk.Name)
		names = binary.LittleEndian.AppendUint16(names, uint16(len(name)/2))
		names = append(names, name...)
		starts = append(starts, bk.Start)
		bkf = append(bkf, binary.LittleEndian.AppendUint16(nil, uint16(ibkl[i])))
	}
	starts = append(starts, ccpText+1)
	limits = append(limits, ccpText+1)
	return names, plc(starts, 4, bkf), plc(limits, 0, nil)
}

func noteRefs(refs []uint32, ccpText uint32) []byte {
	data := make([][]byte, len(refs))
	for i := range data {
		data[i] = []byte{1, 0}
	}
	return plc(append(append([]uint32(nil), refs...), ccpText), 2, data)
}

// sectionTable writes each SEPX into word and returns the PlcfSed.
func (d *Document) sectionTable(word []byte) ([]byte, []byte) {
	pos := []uint32{0}
	var sed [][]byte
	for _, s := range d.Sections {
		e := make([]byte, 12)
		fcSepx := uint32(noSepx)
		if len(s.Sepx) > 0 {
			word = pad(word)
			fcSepx = uint32(len(word))
			word = binary.LittleEndian.AppendUint16(word, uint16(len(s.Sepx)))
			word = append(word, s.Sepx...)
		}
		binary.LittleEndian.PutUint32(e[2:], fcSepx)
		binary.LittleEndian.PutUint32(e[8:], noSepx)
		pos = append(pos, s.Limit)
		sed = append(sed, e)
	}
	return word, plc(pos, 12, sed)
}

// listTable returns the PlfLst and the LVLs that follow it.
func (d *Document) listTable() ([]byte, []byte) {
	b := binary.LittleEndian.AppendUint16(nil, uint16(len(d.Lists)))
	var lvls []byte
	for _, l := range d.Lists {
		lstf := make([]byte, lstfLen)
		binary.LittleEndian.PutUint32(lstf, uint32(l.Lsid))
		for i := 0; i < maxLevels; i++ {
			binary.LittleEndian.PutUint16(lstf[8+2*i:], istdNil)
		}
		n := maxLevels
		if l.Simple {
			lstf[26] = 0x01
			n = 1
		}
		b = append(b, lstf...)
		for i := 0; i < n; i++ {
			lvl := DefaultLevel(i)
			if i < len(l.Levels) {
				lvl = l.Levels[i]
			}
			lvls = append(lvls, lvl.encode()...)
		}
	}
	return b, lvls
}

// DefaultLevel returns a decimal level "N." with no follow character.
func DefaultLevel(i int) Level {
	return Level{StartAt: 1, Text: string(rune(i)) + ".", Follow: 2}
}

func (l Level) encode() []byte {
	f := make([]byte, lvlfLen)
	binary.LittleEndian.PutUint32(f, uint32(l.StartAt))
	f[4] = l.Nfc
	if l.Legal {
		f[5] |= 0x04
	}
	if l.NoRestart {
		f[5] |= 0x08
	}
	text := utf16.Encode([]rune(l.Text))
	n := 0
	for i, u := range text {
		if u < maxLevels && n < maxLevels {
			f[6+n] = byte(i + 1)
			n++
		}
	}
	f[15] = l.Follow
	f[26] = l.RestartLimit
	f = binary.LittleEndian.AppendUint16(f, uint16(len(text)))
	for _, u := range text {
		f = binary.LittleEndian.AppendUint16(f, u)
	}
	return f
}

func (d *Document) overrideTable() []byte {
	b := binary.LittleEndian.AppendUint32(nil, uint32(len(d.Overrides)))
	for _, o := range d.Overrides {
		lfo := make([]byte, lfoLen)
		binary.LittleEndian.PutUint32(lfo, uint32(o.Lsid))
		lfo[12] = byte(len(o.Levels))
		b = append(b, lfo...)
	}
	for _, o := range d.Overrides {
		b = binary.LittleEndian.AppendUint32(b, lfoNoCP)
		for _, lo := range o.Levels {
			flags := uint32(lo.Level & 0x0F)
			if lo.HasStart {
				flags |= 0x10
			}
			if lo.Lvl != nil {
				flags |= 0x20
			}
			b = binary.LittleEndian.AppendUint32(b, uint32(lo.StartAt))
			b = binary.LittleEndian.AppendUint32(b, flags)
			if lo.Lvl != nil {
				b = append(b, lo.Lvl.encode()...)
			}
		}
	}
	return b
}
