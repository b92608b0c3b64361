package doc

import (
	"go.uber.org/zap"

	"github.com/tsawler/wordbin/internal/bintable"
	"github.com/tsawler/wordbin/sprm"
)

const sedSize = 12

// Section is a CP range sharing one set of section properties.
type Section struct {
	StartCP uint32
	LimitCP uint32
	Sep     sprm.Sep
}

// parseSections reads the PlcfSed and applies each section's SEPX, stored
// in the WordDocument stream, over the default properties.
func (d *Document) parseSections(plc []byte) []Section {
	if len(plc) == 0 {
		return []Section{{LimitCP: d.fib.CcpText, Sep: sprm.DefaultSep()}}
	}
	sed, err := bintable.ParsePlcf(plc, sedSize)
	if err != nil {
		d.diag.BadTables++
		d.log.Debug("Section table unreadable", zap.Error(err))
		return []Section{{LimitCP: d.fib.CcpText, Sep: sprm.DefaultSep()}}
	}
	out := make([]Section, 0, sed.Len())
	for i := 0; i < sed.Len(); i++ {
		start, limit, data := sed.Entry(i)
		s := Section{StartCP: start, LimitCP: limit, Sep: sprm.DefaultSep()}
		if fc := bintable.U32At(data, 2); fc != 0xFFFFFFFF {
			cb := int(int16(bintable.U16At(d.word, int(fc))))
			if cb > 0 && int(fc)+2+cb <= len(d.word) {
				d.interp.Apply(d.word[fc+2:int(fc)+2+cb], sprm.Targets{Sep: &s.Sep})
			} else {
				d.log.Debug("SEPX outside the stream", zap.Uint32("fc", fc))
			}
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		out = append(out, Section{LimitCP: d.fib.CcpText, Sep: sprm.DefaultSep()})
	}
	return out
}

// SectionAt returns the section containing cp, or the last section.
func (d *Document) SectionAt(cp uint32) Section {
	for _, s := range d.sections {
		if cp >= s.StartCP && cp < s.LimitCP {
			return s
		}
	}
	return d.sections[len(d.sections)-1]
}

// Sections returns the document's sections in CP order.
func (d *Document) Sections() []Section { return d.sections }
