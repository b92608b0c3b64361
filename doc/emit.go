package doc

import (
	"strconv"

	"github.com/tsawler/wordbin/sprm"
)

// registerOutputObjects numbers every surviving part through cb, then gives
// each eliminated part the output id of the part it was folded into.
func (d *Document) registerOutputObjects(cb Callbacks) {
	for _, s := range d.stories {
		d.registerChain(cb, s.First)
	}
	for _, p := range d.parts.All() {
		if !p.Survivor() {
			p.OutputID = d.parts.Get(d.parts.Find(p.ID)).OutputID
		}
	}
}

func (d *Document) registerChain(cb Callbacks, first PartID) {
	for _, p := range d.parts.Chain(first) {
		if p.Survivor() {
			toc, split := 0, false
			if p.Table == nil {
				style := d.styles.Style(p.Istd)
				toc, split = style.TOCLevel(), style.Settings.Split
				info := d.GetParagraphCollapseInfo(p)
				p.AllHidden = info.Collapsible && info.AllHidden
			}
			p.OutputID = cb.RegisterOutputObject(p.ID, p.Parent == 0, toc, split, p.AllHidden)
		}
		if p.Table == nil {
			continue
		}
		for _, r := range p.Table.Rows {
			for _, c := range r.Cells {
				d.registerChain(cb, c.First)
			}
		}
	}
}

// prepare registers output objects and assigns list text once per document.
func (d *Document) prepare(cb Callbacks) {
	if d.registered {
		return
	}
	d.registerOutputObjects(cb)
	d.ProcessLists()
	d.registered = true
}

// Emit walks the main text in order and drives out. Styles are predefined
// first. A nil cb numbers output objects sequentially.
func (d *Document) Emit(out FormattedOutput, cb Callbacks) error {
	if d.closed {
		return ErrClosed
	}
	if cb == nil {
		cb = &SequentialCallbacks{}
	}
	d.prepare(cb)
	for _, s := range d.styles.Styles() {
		out.PredefineStyle(s.Info(d.fonts))
	}
	return d.emitStory(StoryMain, out, cb)
}

// EmitStory drives out with the text of one story. Footnote and endnote
// stories are emitted as a whole, in note order.
func (d *Document) EmitStory(kind StoryKind, out FormattedOutput, cb Callbacks) error {
	if d.closed {
		return ErrClosed
	}
	if cb == nil {
		cb = &SequentialCallbacks{}
	}
	d.prepare(cb)
	return d.emitStory(kind, out, cb)
}

// EmitNote drives out with the text of one footnote or endnote.
func (d *Document) EmitNote(n Note, out FormattedOutput, cb Callbacks) error {
	if d.closed {
		return ErrClosed
	}
	if cb == nil {
		cb = &SequentialCallbacks{}
	}
	d.prepare(cb)
	kind := StoryFootnote
	if n.Kind == Endnote {
		kind = StoryEndnote
	}
	for _, s := range d.stories {
		if s.Kind == kind {
			e := newEmitter(d, out, cb)
			e.start, e.limit = n.TextStart, n.TextLimit
			e.chain(s.First)
		}
	}
	return nil
}

func (d *Document) emitStory(kind StoryKind, out FormattedOutput, cb Callbacks) error {
	for _, s := range d.stories {
		if s.Kind == kind {
			newEmitter(d, out, cb).chain(s.First)
		}
	}
	return nil
}

// emitter carries the state of one emit walk.
type emitter struct {
	d   *Document
	out FormattedOutput
	cb  Callbacks

	cur     CharFormat
	haveCur bool
	links   []uint32 // end CPs of open hyperlinks
	bg      []sprm.Color

	raw   []byte
	width uint32
	ftc   uint16

	// top-level parts starting outside [start, limit) are not emitted
	start, limit uint32
	depth        int
}

func newEmitter(d *Document, out FormattedOutput, cb Callbacks) *emitter {
	return &emitter{d: d, out: out, cb: cb, bg: []sprm.Color{out.BackgroundColor()}, limit: ^uint32(0)}
}

func (e *emitter) chain(first PartID) {
	for _, p := range e.d.parts.Chain(first) {
		if e.depth == 0 && (p.StartCP < e.start || p.StartCP >= e.limit) {
			continue
		}
		for _, a := range p.Anchors {
			e.out.SetAnchor(a)
		}
		switch {
		case p.Table != nil:
			e.table(p.Table)
		case p.Survivor():
			e.paragraph(p)
		}
	}
}

func (e *emitter) table(t *Table) {
	if len(t.Rows) == 0 {
		return
	}
	tf := TableFormat{Level: t.Level, Rows: len(t.Rows), Columns: t.Columns(), Widths: t.Widths()}
	for _, w := range tf.Widths {
		tf.Width += w
	}
	if tap := t.Rows[0].Tap; tap != nil {
		tf.Jc = tap.Jc
	}
	e.out.StartTable(tf)
	for ri, r := range t.Rows {
		first := true
		for ci, c := range r.Cells {
			if c.Continued {
				continue
			}
			cf := CellFormat{
				Row:        ri,
				Col:        ci,
				FirstInRow: first,
				GridStart:  c.GridStart,
				ColSpan:    c.ColSpan,
				RowSpan:    c.RowSpan,
				Width:      c.Right - c.Left,
				Header:     c.Header,
				VertAlign:  c.Tc.VertAlign,
				Borders:    c.Brc,
				Shading:    c.Tc.Shd,
			}
			if r.Tap != nil {
				cf.RowHeight = r.Tap.RowHeight
			}
			first = false
			e.out.NextCell(cf)
			e.pushBackground(c.Tc.Shd.Back)
			e.depth++
			e.chain(c.First)
			e.depth--
			e.bg = e.bg[:len(e.bg)-1]
		}
	}
	e.out.EndTable()
}

func (e *emitter) pushBackground(c sprm.Color) {
	if c.Auto() {
		c = e.bg[len(e.bg)-1]
	}
	e.bg = append(e.bg, c)
}

func (e *emitter) paragraph(p *DocPart) {
	d := e.d
	pap := d.partProps(p)
	style := d.styles.Style(pap.Istd)
	if style.Settings.Hide {
		return
	}
	f := paragraphFormat(&pap)
	f.StyleID = style.ID
	f.SpaceBefore += p.PadTop
	f.SpaceAfter += p.PadBottom
	f.TOCLevel = style.TOCLevel()
	f.Split = style.Settings.Split
	if o, ok := d.lists.Override(p.Ilfo); ok {
		f.ListText = p.ListText
		f.ListID = int(p.Ilfo)
		f.ListLevel = int(p.ListLevel)
		if l := o.GetLevel(int(p.ListLevel)); l != nil {
			f.Ordered = l.Ordered()
		}
	}

	e.out.StartParagraph(f)
	e.haveCur = false
	e.pushBackground(pap.Shd.Back)
	e.runs(&pap, style.Settings.ShowHidden, p.StartCP, p.LimitCP-1)
	e.flush()
	for range e.links {
		e.out.EndHyperlink()
	}
	e.links = e.links[:0]
	e.bg = e.bg[:len(e.bg)-1]
	e.out.EndParagraph()
}

// runs emits [start, limit) run by run. Field handling may move past the end
// of a run, so each run is resolved from the position reached.
func (e *emitter) runs(pap *sprm.Pap, showHidden bool, start, limit uint32) {
	d := e.d
	for cp := start; cp < limit; {
		chp, runEnd, ok := d.charRun(pap, cp)
		if !ok {
			return
		}
		runEnd = min(runEnd, limit)
		if !showHidden && d.skipRun(&chp) {
			cp = runEnd
			continue
		}
		cp = e.run(&chp, cp, runEnd, limit)
	}
}

// run emits the characters of one run and returns the next CP to emit.
func (e *emitter) run(chp *sprm.Chp, cp, runEnd, limit uint32) uint32 {
	d := e.d
	for ; cp < runEnd; cp++ {
		piece, ok := d.pieces.ResolvePiece(cp)
		if !ok {
			return limit
		}
		u, ok := d.rawAt(piece, cp)
		if !ok {
			return limit
		}
		switch u {
		case 0, chFieldSep, chParagraph, chCellMark, chDrawn:
			continue
		case chFieldBegin:
			e.flush()
			return e.field(chp, cp, limit)
		case chFieldEnd:
			e.flush()
			if n := len(e.links); n > 0 && e.links[n-1] == cp {
				e.out.EndHyperlink()
				e.links = e.links[:n-1]
			}
			continue
		case chNoteRef:
			if chp.Spec {
				e.note(chp, cp)
				continue
			}
		case chPicture:
			if chp.Spec {
				e.flush()
				if img, ok := d.pictureAt(cp, chp.PicLocation); ok {
					e.format(chp)
					e.out.InsertImage(img)
				}
				continue
			}
		case chPageBreak, chColumnBreak:
			u = chLineBreak
		}
		if s, ok := mapSpecial(u); ok {
			e.text(chp, s)
			continue
		}
		if u < 0x20 {
			continue
		}
		e.char(chp, piece.Width, u)
	}
	return cp
}

// field handles the field beginning at cp and returns where emission
// resumes: inside the result, or past the field.
func (e *emitter) field(chp *sprm.Chp, cp, limit uint32) uint32 {
	d := e.d
	f := d.fieldAt(cp, limit+1)
	if f == nil || f.End <= cp {
		return cp + 1
	}
	code := d.fieldCode(f)
	if target, ok := hyperlinkTarget(code); ok && f.HasResult() {
		e.format(chp)
		e.out.StartHyperlink(target)
		e.links = append(e.links, f.End)
		return f.Sep + 1
	}
	if e.cb.PrivateFieldCallback(code, e.out) {
		e.haveCur = false
		return f.End + 1
	}
	if f.HasResult() {
		return f.Sep + 1
	}
	return f.End + 1
}

func (e *emitter) note(chp *sprm.Chp, cp uint32) {
	n, ok := e.d.noteAt(cp)
	if !ok {
		return
	}
	e.cb.FoundFootEndNote(n)
	if n.AutoNumbered {
		e.text(chp, strconv.Itoa(n.Index))
	}
}

// char buffers one code unit of text. 8-bit text is decoded with the code
// page of the run's font when the buffer is flushed.
func (e *emitter) char(chp *sprm.Chp, width uint32, u uint16) {
	e.format(chp)
	if len(e.raw) > 0 && (e.width != width || e.ftc != chp.Ftc[0]) {
		e.flush()
	}
	e.width, e.ftc = width, chp.Ftc[0]
	if width == 1 {
		e.raw = append(e.raw, byte(u))
		return
	}
	e.raw = append(e.raw, byte(u), byte(u>>8))
}

func (e *emitter) text(chp *sprm.Chp, s string) {
	e.format(chp)
	e.flush()
	e.out.WriteString(s)
}

func (e *emitter) flush() {
	if len(e.raw) == 0 {
		return
	}
	var s string
	if e.width == 2 {
		s = decodeChars(e.raw, 2, nil)
	} else {
		s = decodeChars(e.raw, 1, e.d.fonts.Decoder(e.ftc))
	}
	e.raw = e.raw[:0]
	e.out.WriteString(s)
}

// format announces the formatting of chp when it differs from the last one.
func (e *emitter) format(chp *sprm.Chp) {
	cf := characterFormat(chp, e.d.fonts)
	cf.StyleID = e.d.styles.Style(chp.Istd).ID
	if cf.Color.Auto() {
		bg := chp.Shd.Back
		if bg.Auto() {
			bg = e.bg[len(e.bg)-1]
		}
		cf.Color = contrastColor(bg)
	}
	if e.haveCur && cf == e.cur {
		return
	}
	e.flush()
	e.cur, e.haveCur = cf, true
	e.out.ChangeFormatting(cf)
}

// contrastColor returns black on light or unknown backgrounds and white on
// dark ones.
func contrastColor(bg sprm.Color) sprm.Color {
	if bg.Auto() {
		return 0x000000
	}
	r, g, b := float64(bg>>16&0xFF), float64(bg>>8&0xFF), float64(bg&0xFF)
	if 0.299*r+0.587*g+0.114*b < 128 {
		return 0xFFFFFF
	}
	return 0x000000
}
