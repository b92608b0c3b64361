package doc

import (
	"github.com/tsawler/wordbin/internal/bintable"
)

const (
	fibIdent   = 0xA5EC
	minNFib97  = 0x00C1
	fibBaseLen = 32
)

// FibRgFcLcb97 pair indexes.
const (
	fcStshf       = 1
	fcPlcffndRef  = 2
	fcPlcffndTxt  = 3
	fcPlcfSed     = 6
	fcPlcfBteChpx = 12
	fcPlcfBtePapx = 13
	fcSttbfFfn    = 15
	fcPlcfFldMom  = 16
	fcSttbfBkmk   = 21
	fcPlcfBkf     = 22
	fcPlcfBkl     = 23
	fcClx         = 33
	fcPlcfendRef  = 46
	fcPlcfendTxt  = 47
	fcPlfLst      = 73
	fcPlfLfo      = 74
)

// FcLcb locates a structure in the table stream.
type FcLcb struct {
	Fc  uint32
	Lcb uint32
}

// Fib is the file information block at the start of the WordDocument stream.
type Fib struct {
	NFib      uint16
	Lid       uint16
	Complex   bool
	Encrypted bool
	Table1    bool // table stream is "1Table"
	FcMin     uint32

	CcpText    uint32
	CcpFtn     uint32
	CcpHdd     uint32
	CcpAtn     uint32
	CcpEdn     uint32
	CcpTxbx    uint32
	CcpHdrTxbx uint32

	pairs []FcLcb
}

// ParseFib decodes a Word 97 or later FIB.
func ParseFib(b []byte) (*Fib, error) {
	if len(b) < fibBaseLen+2 {
		return nil, corrupt(CodeBadFib, "WordDocument stream too short (%d bytes)", len(b))
	}
	if id := bintable.U16At(b, 0); id != fibIdent {
		return nil, corrupt(CodeBadFib, "bad FIB identifier 0x%04X", id)
	}
	f := &Fib{
		NFib:  bintable.U16At(b, 2),
		Lid:   bintable.U16At(b, 6),
		FcMin: bintable.U32At(b, 0x18),
	}
	flags := bintable.U16At(b, 0x0A)
	f.Complex = flags&0x0004 != 0
	f.Encrypted = flags&0x0100 != 0
	f.Table1 = flags&0x0200 != 0
	if f.NFib < minNFib97 {
		return nil, corrupt(CodeBadFib, "nFib 0x%04X predates Word 97", f.NFib)
	}
	if f.Encrypted {
		return nil, corrupt(CodeEncrypted, "document is encrypted")
	}

	c := bintable.NewCursor(b)
	c.Seek(fibBaseLen)
	csw, err := c.U16()
	if err != nil {
		return nil, wrapCorrupt(CodeBadFib, err, "fibRgW")
	}
	c.Skip(2 * int(csw))
	cslw, err := c.U16()
	if err != nil {
		return nil, wrapCorrupt(CodeBadFib, err, "fibRgLw")
	}
	lw, err := c.Bytes(4 * int(cslw))
	if err != nil {
		return nil, wrapCorrupt(CodeBadFib, err, "fibRgLw")
	}
	long := func(i int) uint32 { return bintable.U32At(lw, 4*i) }
	f.CcpText = long(3)
	f.CcpFtn = long(4)
	f.CcpHdd = long(5)
	f.CcpAtn = long(7)
	f.CcpEdn = long(8)
	f.CcpTxbx = long(9)
	f.CcpHdrTxbx = long(10)

	n, err := c.U16()
	if err != nil {
		return nil, wrapCorrupt(CodeBadFib, err, "fibRgFcLcb")
	}
	raw, err := c.Bytes(8 * int(n))
	if err != nil {
		return nil, wrapCorrupt(CodeBadFib, err, "fibRgFcLcb")
	}
	f.pairs = make([]FcLcb, n)
	for i := range f.pairs {
		f.pairs[i] = FcLcb{Fc: bintable.U32At(raw, 8*i), Lcb: bintable.U32At(raw, 8*i+4)}
	}
	return f, nil
}

// Pair returns the FcLcb at index i, or a zero pair if the FIB is shorter.
func (f *Fib) Pair(i int) FcLcb {
	if i < 0 || i >= len(f.pairs) {
		return FcLcb{}
	}
	return f.pairs[i]
}

// TableStream returns the name of the table stream.
func (f *Fib) TableStream() string {
	if f.Table1 {
		return Stream1Table
	}
	return Stream0Table
}

// FootnoteStart returns the CP where footnote text begins.
func (f *Fib) FootnoteStart() uint32 { return f.CcpText }

// EndnoteStart returns the CP where endnote text begins.
func (f *Fib) EndnoteStart() uint32 {
	return f.CcpText + f.CcpFtn + f.CcpHdd + f.CcpAtn
}

// slice returns the bytes of pair i inside stream, or nil when the pair is
// empty or points outside the stream.
func (f *Fib) slice(stream []byte, i int) []byte {
	p := f.Pair(i)
	if p.Lcb == 0 {
		return nil
	}
	end := uint64(p.Fc) + uint64(p.Lcb)
	if end > uint64(len(stream)) {
		return nil
	}
	return stream[p.Fc:end]
}

// tail returns stream from the offset of pair i to its end, for structures
// followed by data the pair's length does not cover.
func (f *Fib) tail(stream []byte, i int) []byte {
	if f.slice(stream, i) == nil {
		return nil
	}
	return stream[f.Pair(i).Fc:]
}
