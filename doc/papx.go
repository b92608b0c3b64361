package doc

import (
	"sort"

	"go.uber.org/zap"

	"github.com/tsawler/wordbin/internal/bintable"
)

// ParaRun is a PAPX run: the paragraph whose mark ends at LimitFC uses style
// Istd modified by Grpprl.
type ParaRun struct {
	StartFC uint32
	LimitFC uint32
	Istd    uint16
	Grpprl  GrpprlPointer
}

// paraRunTable holds the PAPX runs ordered by LimitFC.
type paraRunTable struct {
	runs []ParaRun
}

// parseParaRuns decodes all PAPX FKPs. An entry with a zero limit or a PAPX
// offset outside its page is skipped; its bytes merge into the next run.
func parseParaRuns(word, plcBte []byte, arena *grpprlCache, diag *Diagnostics, log *zap.Logger) *paraRunTable {
	t := &paraRunTable{}
	for _, page := range fkpPages(word, plcBte, diag, log) {
		cpara := int(page[fkpSize-1])
		if 4*(cpara+1)+bxPapSize*cpara > fkpSize-1 {
			diag.SkippedPapx++
			log.Debug("PAPX page overflows", zap.Int("cpara", cpara))
			continue
		}
		rgbx := 4 * (cpara + 1)
		for i := 0; i < cpara; i++ {
			r := ParaRun{
				StartFC: bintable.U32At(page, 4*i),
				LimitFC: bintable.U32At(page, 4*(i+1)),
			}
			if r.LimitFC == 0 {
				diag.SkippedPapx++
				log.Debug("PAPX entry with zero limit skipped", zap.Int("index", i))
				continue
			}
			off := 2 * int(page[rgbx+bxPapSize*i])
			if off != 0 {
				istd, grpprl, ok := papxInFkp(page, off)
				if !ok {
					diag.SkippedPapx++
					log.Debug("PAPX outside its page", zap.Int("offset", off))
					continue
				}
				r.Istd = istd
				r.Grpprl = arena.Add(grpprl)
			}
			t.runs = append(t.runs, r)
		}
	}
	sort.SliceStable(t.runs, func(i, j int) bool { return t.runs[i].LimitFC < t.runs[j].LimitFC })
	return t
}

// papxInFkp decodes the PapxInFkp at off: a count byte (or a zero byte and a
// second count) then the style index and grpprl.
func papxInFkp(page []byte, off int) (uint16, []byte, bool) {
	if off >= fkpSize-1 {
		return 0, nil, false
	}
	start, n := off+1, 2*int(page[off])-1
	if page[off] == 0 {
		start, n = off+2, 2*int(page[off+1])
	}
	if n < 2 || start+n > fkpSize-1 {
		return 0, nil, false
	}
	b := page[start : start+n]
	return bintable.U16At(b, 0), b[2:], true
}

// Find returns the run whose paragraph contains fc: the first run with a
// limit past fc.
func (t *paraRunTable) Find(fc uint32) (ParaRun, bool) {
	i := sort.Search(len(t.runs), func(i int) bool { return t.runs[i].LimitFC > fc })
	if i == len(t.runs) {
		return ParaRun{}, false
	}
	return t.runs[i], true
}

// Runs returns the decoded runs.
func (t *paraRunTable) Runs() []ParaRun { return t.runs }
