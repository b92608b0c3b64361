package doc

import (
	"sort"

	"go.uber.org/zap"

	"github.com/tsawler/wordbin/internal/bintable"
)

const (
	fkpSize   = 512
	bteSize   = 4
	bxPapSize = 13
	pnMask    = 0x003FFFFF
)

// CharRun is a byte range of the WordDocument stream sharing one CHPX.
type CharRun struct {
	StartFC uint32
	LimitFC uint32
	Grpprl  GrpprlPointer
}

// charRunTable holds every CHPX run sorted by StartFC.
type charRunTable struct {
	runs []CharRun
	log  *zap.Logger
	diag *Diagnostics
}

// fkpPages reads the FKP pages a PlcBte points at.
func fkpPages(word []byte, plcBte []byte, diag *Diagnostics, log *zap.Logger) [][]byte {
	bte, err := bintable.ParsePlcf(plcBte, bteSize)
	if err != nil {
		diag.BadTables++
		log.Warn("Bin table unreadable", zap.Error(err))
		return nil
	}
	var pages [][]byte
	for i := 0; i < bte.Len(); i++ {
		pn := bintable.U32At(bte.Data(i), 0) & pnMask
		off := uint64(pn) * fkpSize
		if off+fkpSize > uint64(len(word)) {
			diag.BadTables++
			log.Debug("FKP page outside stream", zap.Uint32("pn", pn))
			continue
		}
		pages = append(pages, word[off:off+fkpSize])
	}
	return pages
}

// parseCharRuns decodes all CHPX FKPs.
func parseCharRuns(word, plcBte []byte, arena *grpprlCache, diag *Diagnostics, log *zap.Logger) *charRunTable {
	t := &charRunTable{log: log, diag: diag}
	for _, page := range fkpPages(word, plcBte, diag, log) {
		crun := int(page[fkpSize-1])
		if 4*(crun+1)+crun > fkpSize-1 {
			diag.SkippedChpx++
			continue
		}
		for i := 0; i < crun; i++ {
			r := CharRun{
				StartFC: bintable.U32At(page, 4*i),
				LimitFC: bintable.U32At(page, 4*(i+1)),
			}
			if r.LimitFC <= r.StartFC {
				diag.SkippedChpx++
				log.Debug("Empty CHPX run skipped", zap.Uint32("fc", r.StartFC))
				continue
			}
			if off := 2 * int(page[4*(crun+1)+i]); off != 0 {
				if off >= fkpSize-1 || off+1+int(page[off]) > fkpSize-1 {
					diag.SkippedChpx++
					log.Debug("CHPX outside its page", zap.Int("offset", off))
				} else {
					r.Grpprl = arena.Add(page[off+1 : off+1+int(page[off])])
				}
			}
			t.runs = append(t.runs, r)
		}
	}
	sort.SliceStable(t.runs, func(i, j int) bool { return t.runs[i].StartFC < t.runs[j].StartFC })
	return t
}

// ResolveCharRun returns the run containing fc. Past the last run, the last
// run is returned; a gap between runs yields an unformatted run covering it.
func (t *charRunTable) ResolveCharRun(fc uint32) CharRun {
	n := len(t.runs)
	if n == 0 {
		return CharRun{StartFC: fc, LimitFC: ^uint32(0)}
	}
	i := sort.Search(n, func(i int) bool { return t.runs[i].LimitFC > fc })
	if i == n {
		t.diag.CharRunOverruns++
		t.log.Debug("FC past the last character run", zap.Uint32("fc", fc))
		return t.runs[n-1]
	}
	r := t.runs[i]
	if fc < r.StartFC {
		gap := CharRun{StartFC: fc, LimitFC: r.StartFC}
		if i > 0 && t.runs[i-1].LimitFC <= fc {
			gap.StartFC = t.runs[i-1].LimitFC
		}
		return gap
	}
	return r
}

// Runs returns the decoded runs.
func (t *charRunTable) Runs() []CharRun { return t.runs }
