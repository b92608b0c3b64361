package doc

import (
	"go.uber.org/zap"

	"github.com/tsawler/wordbin/sprm"
)

// StoryKind names a sub-document of the CP space.
type StoryKind uint8

const (
	StoryMain StoryKind = iota
	StoryFootnote
	StoryEndnote
)

func (k StoryKind) String() string {
	switch k {
	case StoryFootnote:
		return "footnotes"
	case StoryEndnote:
		return "endnotes"
	}
	return "main"
}

// Story is the part chain of one sub-document.
type Story struct {
	Kind    StoryKind
	StartCP uint32
	LimitCP uint32
	First   PartID
}

// maxTableDepth bounds table nesting. Deeper paragraphs are placed at this
// depth.
const maxTableDepth = 64

// level is the analyzer state for one table nesting depth. Level 0 is the
// flat text of the story.
type level struct {
	holder  *DocPart
	table   *Table
	row     *Row
	cell    *Cell
	first   PartID
	last    PartID
	anchors []string
}

// analyzer rebuilds the paragraph and table tree of one story from the
// paragraph runs and the piece table.
type analyzer struct {
	d       *Document
	levels  []*level
	pending *DocPart // paragraph whose deleted mark waits for its successor
	lastEnd uint32
}

// analyzeStory builds the part chain of [start, limit) and associates its
// numbered paragraphs with their list overrides.
func (d *Document) analyzeStory(kind StoryKind, start, limit uint32) (Story, error) {
	story := Story{Kind: kind, StartCP: start, LimitCP: limit}
	if start >= limit {
		return story, nil
	}
	a := &analyzer{d: d, levels: []*level{{}}}
	mark := d.parts.Len()

	cp := start
	for cp < limit {
		end, run, prm, ok, err := a.nextParagraph(cp, limit)
		if err != nil {
			return story, err
		}
		if !ok {
			if err := a.synthesize(cp, limit); err != nil {
				return story, err
			}
			break
		}
		a.paragraph(cp, end, run, prm)
		cp = end
	}
	for len(a.levels) > 1 {
		a.closeLevel()
	}
	top := a.levels[0]
	if len(top.anchors) > 0 {
		if last := d.parts.Get(top.last); last != nil {
			last.Anchors = append(last.Anchors, top.anchors...)
		}
	}
	story.First = top.first

	for _, p := range d.parts.All()[mark:] {
		if p.Table != nil || p.Ilfo <= 0 {
			continue
		}
		if p.ListLevel >= maxListLevels {
			return story, corrupt(CodeListLevel, "paragraph at CP %d uses list level %d", p.StartCP, p.ListLevel)
		}
		if o, ok := d.lists.Override(p.Ilfo); ok {
			o.Paragraphs = append(o.Paragraphs, p.ID)
		}
	}
	return story, nil
}

// nextParagraph finds the end of the paragraph starting at cp. A paragraph
// may span pieces; its properties come from the run holding its mark. The
// fourth result is false when the paragraph runs are exhausted.
func (a *analyzer) nextParagraph(cp, limit uint32) (uint32, ParaRun, sprm.Prm, bool, error) {
	pt := a.d.pieces
	piece, ok := pt.ResolvePiece(cp)
	if !ok {
		return 0, ParaRun{}, 0, false, corrupt(CodeMissingPiece, "no piece for CP %d", cp)
	}
	for {
		fc := piece.CpToFc(cp)
		run, found := a.d.papx.Find(fc)
		if !found {
			return 0, ParaRun{}, 0, false, nil
		}
		if run.LimitFC <= piece.LimitFC() {
			end := piece.FcToCp(run.LimitFC)
			if end <= cp {
				end = cp + 1
			}
			return min(end, limit), run, piece.Prm, true, nil
		}
		cp = piece.LimitCP
		if cp >= limit {
			return limit, run, piece.Prm, true, nil
		}
		if piece, ok = pt.ResolvePiece(cp); !ok {
			return 0, ParaRun{}, 0, false, corrupt(CodeMissingPiece, "no piece for CP %d", cp)
		}
	}
}

// synthesize splits [cp, limit) at paragraph and cell marks when the
// paragraph runs end before the text does.
func (a *analyzer) synthesize(cp, limit uint32) error {
	d := a.d
	d.log.Debug("Paragraph runs end before the text", zap.Uint32("cp", cp), zap.Uint32("limit", limit))
	start := cp
	for i := cp; i < limit; i++ {
		p, ok := d.pieces.ResolvePiece(i)
		if !ok {
			return corrupt(CodeMissingPiece, "no piece for CP %d", i)
		}
		u, ok := d.rawAt(p, i)
		if !ok {
			return corrupt(CodeShortRead, "text at CP %d is past the stream end", i)
		}
		if u == chParagraph || u == chCellMark {
			d.diag.SynthesizedParagraphs++
			a.paragraph(start, i+1, ParaRun{}, p.Prm)
			start = i + 1
		}
	}
	if start < limit {
		d.diag.SynthesizedParagraphs++
		a.paragraph(start, limit, ParaRun{}, 0)
	}
	return nil
}

func (a *analyzer) top() *level { return a.levels[len(a.levels)-1] }

func (a *analyzer) depth() int { return len(a.levels) - 1 }

// paragraph places the paragraph [start, end) in the tree.
func (a *analyzer) paragraph(start, end uint32, run ParaRun, prm sprm.Prm) {
	d := a.d
	pap, tap := d.paragraphProps(run.Istd, run.Grpprl, prm)
	depth := pap.TableLevel()
	if depth > maxTableDepth {
		d.diag.ClampedTableDepths++
		d.log.Debug("Table depth clamped", zap.Int("depth", depth), zap.Uint32("cp", start))
		depth = maxTableDepth
	}
	markChar, _ := d.rawChar(end - 1)
	defer func() { a.lastEnd = end }()

	a.top().anchors = append(a.top().anchors, d.bookmarks.startingIn(start, end)...)

	if p := a.pending; p != nil {
		a.pending = nil
		if p.Level == depth && !(depth > 0 && pap.RowEnd()) {
			p.LimitCP = end
			a.setProps(p, run, prm, &pap)
			p.Anchors = append(p.Anchors, a.flush()...)
			a.finishParagraph(p, &pap, markChar)
			return
		}
	}

	for a.depth() > depth {
		a.closeLevel()
	}
	for a.depth() < depth {
		a.openLevel(start)
	}

	if depth > 0 && pap.RowEnd() {
		lv := a.top()
		if lv.row != nil {
			d.StoreRowProperties(lv.row, tap)
		}
		lv.row, lv.cell = nil, nil
		return
	}

	p := d.parts.New()
	p.StartCP, p.LimitCP, p.Level = start, end, depth
	a.setProps(p, run, prm, &pap)
	a.append(a.top(), p)
	p.Anchors = append(p.Anchors, a.flush()...)
	a.finishParagraph(p, &pap, markChar)
}

func (a *analyzer) setProps(p *DocPart, run ParaRun, prm sprm.Prm, pap *sprm.Pap) {
	p.Istd = run.Istd
	p.Grpprl = run.Grpprl
	p.MarkPrm = prm
	p.Ilfo = pap.Ilfo
	p.ListLevel = pap.Ilvl
	p.Hide = a.d.styles.Style(pap.Istd).Settings.Hide
}

// finishParagraph closes the cell on a cell mark, or holds the paragraph for
// merging when its mark is a tracked deletion.
func (a *analyzer) finishParagraph(p *DocPart, pap *sprm.Pap, markChar uint16) {
	lv := a.top()
	if p.Level > 0 && (pap.CellEnd() || markChar == chCellMark) {
		lv.cell, lv.last = nil, 0
		return
	}
	if a.d.opts.track != TrackFinal {
		return
	}
	if chp, ok := a.d.charProps(pap, p.LimitCP-1); ok && chp.RMarkDel {
		a.pending = p
	}
}

// append links p at the end of the current chain of lv, opening a row and a
// cell when the level has none.
func (a *analyzer) append(lv *level, p *DocPart) {
	if lv.table != nil {
		if lv.row == nil {
			lv.row = &Row{}
			lv.table.Rows = append(lv.table.Rows, lv.row)
		}
		if lv.cell == nil {
			lv.cell = &Cell{ColSpan: 1, RowSpan: 1}
			lv.row.Cells = append(lv.row.Cells, lv.cell)
			lv.last = 0
		}
		p.Parent = lv.holder.ID
	}
	if prev := a.d.parts.Get(lv.last); prev != nil {
		prev.Next, p.Prev = p.ID, prev.ID
	} else if lv.cell != nil {
		lv.cell.First = p.ID
	} else if lv.first == 0 {
		lv.first = p.ID
	}
	lv.last = p.ID
}

// flush hands the pending anchors of the current level to the caller.
func (a *analyzer) flush() []string {
	lv := a.top()
	out := lv.anchors
	lv.anchors = nil
	return out
}

// openLevel adds one table nesting level whose holder joins the current chain.
func (a *analyzer) openLevel(start uint32) {
	parent := a.top()
	holder := a.d.parts.New()
	holder.StartCP, holder.LimitCP = start, start
	holder.Level = a.depth()
	holder.Table = &Table{Holder: holder.ID, Level: a.depth() + 1}
	a.append(parent, holder)
	holder.Anchors = a.flush()
	a.levels = append(a.levels, &level{holder: holder, table: holder.Table})
}

// closeLevel ends the innermost table, post-processes it and moves its
// unclaimed anchors to the enclosing level.
func (a *analyzer) closeLevel() {
	lv := a.top()
	a.levels = a.levels[:len(a.levels)-1]
	if lv.row != nil && lv.row.Tap == nil {
		a.d.log.Debug("Table row without an end mark", zap.Uint32("cp", lv.holder.StartCP))
	}
	lv.holder.LimitCP = a.lastEnd
	a.d.postProcessTable(lv.table)
	parent := a.top()
	parent.anchors = append(parent.anchors, lv.anchors...)
}

// paragraphProps resolves the paragraph properties of a mark: the style's
// cached properties, then the PAPX, then the piece modifier. Table opcodes
// land in the returned Tap.
func (d *Document) paragraphProps(istd uint16, g GrpprlPointer, prm sprm.Prm) (sprm.Pap, *sprm.Tap) {
	pap := d.styles.ParagraphStyle(istd)
	pap.Istd = istd
	tap := &sprm.Tap{}
	t := sprm.Targets{Pap: &pap, Tap: tap}
	d.interp.Apply(d.grpprls.Get(g), t)
	d.interp.ApplyPrm(prm, d.pieces.Grpprls, t)
	if f := d.styles.Style(pap.Istd).Settings.Fixup; f != nil {
		f.FixParagraph(&pap)
	}
	return pap, tap
}

// partProps re-derives the paragraph properties of a part.
func (d *Document) partProps(p *DocPart) sprm.Pap {
	pap, _ := d.paragraphProps(p.Istd, p.Grpprl, p.MarkPrm)
	return pap
}

// charProps resolves the character properties at cp inside a paragraph with
// properties pap.
func (d *Document) charProps(pap *sprm.Pap, cp uint32) (sprm.Chp, bool) {
	chp, _, ok := d.charRun(pap, cp)
	return chp, ok
}

// charRun resolves the character properties at cp and returns the CP just
// past the run sharing them.
func (d *Document) charRun(pap *sprm.Pap, cp uint32) (sprm.Chp, uint32, bool) {
	piece, ok := d.pieces.ResolvePiece(cp)
	if !ok {
		return sprm.Chp{}, cp, false
	}
	fc := piece.CpToFc(cp)
	run := d.chpx.ResolveCharRun(fc)

	style := d.styles.CharacterStyle(pap.Istd)
	chp := style
	d.interp.ApplyChp(d.grpprls.Get(run.Grpprl), &style, &style, &chp)
	d.interp.ApplyChpPrm(piece.Prm, d.pieces.Grpprls, &style, &style, &chp)
	if f := d.styles.Style(pap.Istd).Settings.Fixup; f != nil {
		f.FixCharacter(&chp)
	}

	limit := piece.LimitCP
	if run.LimitFC > fc && run.LimitFC < piece.LimitFC() {
		limit = piece.FcToCp(run.LimitFC)
	}
	if limit <= cp {
		limit = cp + 1
	}
	return chp, limit, true
}
