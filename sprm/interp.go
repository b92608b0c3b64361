package sprm

import (
	"encoding/binary"
	"io"

	"go.uber.org/zap"
)

// Result is the outcome of applying one opcode.
type Result uint8

const (
	// ResultOk means the opcode was applied.
	ResultOk Result = iota
	// ResultError means the operand was malformed; the opcode was skipped.
	ResultError
	// ResultUnsupported means the opcode is known to the format but not
	// interpreted here.
	ResultUnsupported
	// ResultClamped means a cell range was out of bounds and was saturated
	// before the opcode was applied.
	ResultClamped
)

func (r Result) String() string {
	switch r {
	case ResultOk:
		return "ok"
	case ResultError:
		return "error"
	case ResultUnsupported:
		return "unsupported"
	case ResultClamped:
		return "clamped"
	}
	return "unknown"
}

// Targets groups the property structs a paragraph-side grpprl may touch. Nil
// members swallow their opcodes.
type Targets struct {
	Pap *Pap
	Sep *Sep
	Tap *Tap
}

// dispatch maps an opcode category to the function applying it. Character
// opcodes go through ApplyChp since they need base and style structs.
var dispatch = [8]func(t Targets, d Data) Result{
	CategoryPap: func(t Targets, d Data) Result {
		if t.Pap == nil {
			return ResultUnsupported
		}
		return ApplyPap(t.Pap, d)
	},
	CategorySep: func(t Targets, d Data) Result {
		if t.Sep == nil {
			return ResultUnsupported
		}
		return ApplySep(t.Sep, d)
	},
	CategoryTap: func(t Targets, d Data) Result {
		if t.Tap == nil {
			return ResultUnsupported
		}
		return ApplyTap(t.Tap, d)
	},
}

// Stats counts the opcodes that were not applied cleanly.
type Stats struct {
	Applied     int
	Errors      int
	Unsupported int
	Clamped     int
	Truncated   int
	HugeMisses  int
}

// Interpreter applies grpprls to property structs. It owns the cache of huge
// PAPX grpprls read from the data stream; one Interpreter serves one document
// and is not safe for concurrent use.
type Interpreter struct {
	log  *zap.Logger
	data io.ReaderAt
	huge map[uint32][]byte

	// CharStyle, when set, resolves a character style index to its cached
	// properties for sprmCIstd.
	CharStyle func(istd uint16) (*Chp, bool)

	stats  Stats
	inHuge bool
}

// NewInterpreter returns an interpreter that reads huge PAPX grpprls from
// data, which may be nil when the document has no data stream.
func NewInterpreter(log *zap.Logger, data io.ReaderAt) *Interpreter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interpreter{
		log:  log.Named("sprm"),
		data: data,
		huge: make(map[uint32][]byte),
	}
}

// Stats returns the counters accumulated so far.
func (in *Interpreter) Stats() Stats { return in.stats }

func (in *Interpreter) record(d Data, r Result) {
	switch r {
	case ResultOk:
		in.stats.Applied++
	case ResultError:
		in.stats.Errors++
		in.log.Debug("Malformed operand", zap.Stringer("sprm", d.Op), zap.Int("len", len(d.Operand)))
	case ResultUnsupported:
		in.stats.Unsupported++
		in.log.Debug("Unsupported opcode", zap.Stringer("sprm", d.Op), zap.Stringer("category", d.Op.Category()))
	case ResultClamped:
		in.stats.Clamped++
		in.log.Debug("Cell range clamped", zap.Stringer("sprm", d.Op))
	}
}

func (in *Interpreter) checkStream(it *Iterator) {
	if err := it.Err(); err != nil {
		in.stats.Truncated++
		in.log.Debug("Opcode stream truncated", zap.Error(err))
	}
}

// Apply runs every opcode of grpprl against targets. Character opcodes are
// skipped without being counted; huge PAPX references are followed into the
// data stream.
func (in *Interpreter) Apply(grpprl []byte, t Targets) {
	it := NewIterator(grpprl)
	for it.Next() {
		d := it.Sprm()
		if d.Op.Category() == CategoryChp {
			continue
		}
		if d.Op == PHugePapx || d.Op == PHugePapx2 {
			in.applyHuge(d, t)
			continue
		}
		fn := dispatch[d.Op.Category()]
		if fn == nil {
			in.record(d, ResultUnsupported)
			continue
		}
		in.record(d, fn(t, d))
	}
	in.checkStream(it)
}

// ApplyPrm applies a piece modifier. Complex modifiers are resolved through
// grpprls, which holds the Clx grpprl list.
func (in *Interpreter) ApplyPrm(prm Prm, grpprls [][]byte, t Targets) {
	if prm.Complex() {
		if i := prm.GrpprlIndex(); i < len(grpprls) {
			in.Apply(grpprls[i], t)
		}
		return
	}
	if d, ok := prm.Expand(); ok {
		if fn := dispatch[d.Op.Category()]; fn != nil {
			in.record(d, fn(t, d))
		}
	}
}

// ApplyChp runs every character opcode of grpprl against target. base feeds
// toggle operands and style is the owning style's resolved properties.
func (in *Interpreter) ApplyChp(grpprl []byte, base, style, target *Chp) {
	it := NewIterator(grpprl)
	for it.Next() {
		d := it.Sprm()
		if d.Op.Category() != CategoryChp {
			continue
		}
		if d.Op == CIstd && in.CharStyle != nil {
			if cs, ok := in.CharStyle(d.U16()); ok {
				spec := target.Spec
				*target = *cs
				target.Spec = spec
				base, style = cs, cs
				in.stats.Applied++
				continue
			}
		}
		in.record(d, ApplyChp(target, base, style, d))
	}
	in.checkStream(it)
}

// ApplyChpPrm applies the character part of a piece modifier.
func (in *Interpreter) ApplyChpPrm(prm Prm, grpprls [][]byte, base, style, target *Chp) {
	if prm.Complex() {
		if i := prm.GrpprlIndex(); i < len(grpprls) {
			in.ApplyChp(grpprls[i], base, style, target)
		}
		return
	}
	if g := prm.Grpprl(); g != nil {
		in.ApplyChp(g, base, style, target)
	}
}

// applyHuge follows a sprmPHugePapx reference. The data stream holds a
// 16-bit length followed by the grpprl; reads are cached by offset.
func (in *Interpreter) applyHuge(d Data, t Targets) {
	if in.inHuge {
		in.record(d, ResultError)
		return
	}
	grpprl, ok := in.HugeGrpprl(d.U32())
	if !ok {
		in.stats.HugeMisses++
		in.log.Debug("Huge PAPX unreadable", zap.Uint32("offset", d.U32()))
		return
	}
	in.stats.Applied++
	in.inHuge = true
	in.Apply(grpprl, t)
	in.inHuge = false
}

// HugeGrpprl returns the grpprl stored at offset in the data stream.
func (in *Interpreter) HugeGrpprl(offset uint32) ([]byte, bool) {
	if b, ok := in.huge[offset]; ok {
		return b, true
	}
	if in.data == nil {
		return nil, false
	}
	var hdr [2]byte
	if n, err := in.data.ReadAt(hdr[:], int64(offset)); n < len(hdr) {
		in.log.Debug("Huge PAPX header short", zap.Error(err))
		return nil, false
	}
	b := make([]byte, binary.LittleEndian.Uint16(hdr[:]))
	if n, err := in.data.ReadAt(b, int64(offset)+2); n < len(b) {
		in.log.Debug("Huge PAPX short", zap.Error(err))
		return nil, false
	}
	in.huge[offset] = b
	return b, true
}
