package doc

import (
	"github.com/tsawler/wordbin/sprm"
)

// emptyLineFactor converts a half-point font size to the twips height of an
// empty line.
const emptyLineFactor = 12

// CollapseInfo tells whether a paragraph shows nothing and how much vertical
// space it would have taken.
type CollapseInfo struct {
	Collapsible bool
	Height      int // twips
	AllHidden   bool
}

// skipRun reports whether text with properties chp is invisible in the
// current track-changes mode.
func (d *Document) skipRun(chp *sprm.Chp) bool {
	if chp.Hidden() {
		return true
	}
	switch d.opts.track {
	case TrackFinal:
		return chp.RMarkDel
	case TrackOriginal:
		return chp.RMarkIns
	}
	return false
}

// GetParagraphCollapseInfo replays the characters of p, its mark excluded,
// and reports it collapsible when none of them is visible. Field
// instructions, NULs and skipped runs do not count; a special object or a
// page break does.
func (d *Document) GetParagraphCollapseInfo(p *DocPart) CollapseInfo {
	if info, ok := d.collapsed[p.ID]; ok {
		return info
	}
	info := d.collapseInfo(p)
	d.collapsed[p.ID] = info
	return info
}

func (d *Document) collapseInfo(p *DocPart) CollapseInfo {
	if p.Table != nil || p.LimitCP <= p.StartCP {
		return CollapseInfo{}
	}
	if _, ok := d.lists.Override(p.Ilfo); ok {
		return CollapseInfo{}
	}
	pap := d.partProps(p)
	showHidden := d.styles.Style(pap.Istd).Settings.ShowHidden
	mark := p.LimitCP - 1

	// one entry per open field, true while its instruction is being read
	var fields []bool
	instr, sawHidden := 0, false
	for cp := p.StartCP; cp < mark; {
		chp, runEnd, ok := d.charRun(&pap, cp)
		if !ok {
			break
		}
		runEnd = min(runEnd, mark)
		skip := !showHidden && d.skipRun(&chp)
		for ; cp < runEnd; cp++ {
			u, ok := d.rawChar(cp)
			if !ok || u == 0 {
				continue
			}
			switch u {
			case chFieldBegin:
				fields = append(fields, true)
				instr++
				continue
			case chFieldSep:
				if n := len(fields); n > 0 && fields[n-1] {
					fields[n-1] = false
					instr--
				}
				continue
			case chFieldEnd:
				if n := len(fields); n > 0 {
					if fields[n-1] {
						instr--
					}
					fields = fields[:n-1]
				}
				continue
			}
			if instr > 0 {
				continue
			}
			if skip {
				sawHidden = true
				continue
			}
			if u == chPageBreak || u == chColumnBreak {
				return CollapseInfo{}
			}
			if chp.Spec && (u == chPicture || u == chDrawn || u == chNoteRef) {
				return CollapseInfo{}
			}
			if u > 32 && u != chNoBreakSpace {
				return CollapseInfo{}
			}
		}
	}

	markChp, _ := d.charProps(&pap, mark)
	return CollapseInfo{
		Collapsible: true,
		Height:      int(markChp.Hps)*emptyLineFactor + int(pap.DyaBefore) + int(pap.DyaAfter),
		AllHidden:   sawHidden || markChp.Hidden(),
	}
}

// EliminateEmptyDocParts folds collapsible paragraphs into neighbours in
// every chain. A collapsible paragraph after a survivor folds backward and
// raises the survivor's bottom padding; leading ones fold forward into the
// first survivor's top padding. The last part of a chain always survives, as
// do parts with anchors, table holders and parts whose hide setting differs
// from the target's.
func (d *Document) EliminateEmptyDocParts() {
	for _, s := range d.stories {
		d.eliminateChain(s.First)
	}
}

func (d *Document) eliminateChain(first PartID) {
	chain := d.parts.Chain(first)
	for _, p := range chain {
		if p.Table == nil {
			continue
		}
		for _, r := range p.Table.Rows {
			for _, c := range r.Cells {
				d.eliminateChain(c.First)
			}
		}
	}

	var survivor *DocPart
	var group []*DocPart
	groupHeight := 0
	for i, p := range chain {
		info := d.GetParagraphCollapseInfo(p)
		eligible := info.Collapsible && i < len(chain)-1 && len(p.Anchors) == 0 && p.Table == nil
		if eligible && survivor != nil && survivor.Hide == p.Hide {
			d.parts.Union(p.ID, survivor.ID)
			survivor.PadBottom = max(survivor.PadBottom, info.Height)
			continue
		}
		if eligible && survivor == nil && (len(group) == 0 || group[0].Hide == p.Hide) {
			group = append(group, p)
			groupHeight = max(groupHeight, info.Height)
			continue
		}
		if len(group) > 0 && group[0].Hide == p.Hide {
			for _, g := range group {
				d.parts.Union(g.ID, p.ID)
			}
			p.PadTop = max(p.PadTop, groupHeight)
		}
		group, groupHeight = nil, 0
		survivor = p
	}
}
