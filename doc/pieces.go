package doc

import (
	"sort"

	"go.uber.org/zap"

	"github.com/tsawler/wordbin/internal/bintable"
	"github.com/tsawler/wordbin/sprm"
)

const (
	clxPrc  = 0x01
	clxPcdt = 0x02

	pcdSize        = 8
	fcCompressed   = 0x40000000
	pieceRecordLen = 4 + pcdSize
)

// Piece maps the character positions [StartCP, LimitCP) onto the bytes
// starting at StartFC in the WordDocument stream.
type Piece struct {
	StartCP uint32
	LimitCP uint32
	StartFC uint32
	Width   uint32 // bytes per character, 1 or 2
	Flags   uint16
	Prm     sprm.Prm
}

// LimitFC returns the byte offset just past the piece's text.
func (p Piece) LimitFC() uint32 {
	return p.StartFC + (p.LimitCP-p.StartCP)*p.Width
}

// CpToFc converts a character position inside the piece to a byte offset.
func (p Piece) CpToFc(cp uint32) uint32 {
	return p.StartFC + (cp-p.StartCP)*p.Width
}

// FcToCp converts a byte offset inside the piece to a character position.
func (p Piece) FcToCp(fc uint32) uint32 {
	return p.StartCP + (fc-p.StartFC)/p.Width
}

// ContainsFC reports whether fc lies inside the piece's bytes.
func (p Piece) ContainsFC(fc uint32) bool {
	return fc >= p.StartFC && fc < p.LimitFC()
}

// PieceTable is the decoded Clx: the pieces in CP order plus the grpprls that
// complex piece modifiers index.
type PieceTable struct {
	Pieces  []Piece
	Grpprls [][]byte
}

// Len returns the number of character positions the table covers.
func (t *PieceTable) Len() uint32 {
	if len(t.Pieces) == 0 {
		return 0
	}
	return t.Pieces[len(t.Pieces)-1].LimitCP
}

// ResolvePiece returns the piece containing cp. The second result is false
// once cp is at or past the end of the text.
func (t *PieceTable) ResolvePiece(cp uint32) (Piece, bool) {
	i, ok := t.index(cp)
	if !ok {
		return Piece{}, false
	}
	return t.Pieces[i], true
}

func (t *PieceTable) index(cp uint32) (int, bool) {
	if cp >= t.Len() {
		return 0, false
	}
	i := sort.Search(len(t.Pieces), func(i int) bool { return t.Pieces[i].LimitCP > cp })
	if i == len(t.Pieces) {
		return 0, false
	}
	return i, true
}

// CpToFc resolves cp through its piece.
func (t *PieceTable) CpToFc(cp uint32) (uint32, bool) {
	p, ok := t.ResolvePiece(cp)
	if !ok {
		return 0, false
	}
	return p.CpToFc(cp), true
}

// synthesizePieceTable returns a single 8-bit piece spanning the main text,
// used for files without a Clx.
func synthesizePieceTable(fcMin, ccp uint32) *PieceTable {
	return &PieceTable{Pieces: []Piece{{StartCP: 0, LimitCP: ccp, StartFC: fcMin, Width: 1}}}
}

// parseClx decodes the Clx: a run of Prc records (grpprls) followed by the
// Pcdt holding the PlcPcd.
func parseClx(b []byte, diag *Diagnostics, log *zap.Logger) (*PieceTable, error) {
	t := &PieceTable{}
	var plc []byte
	c := bintable.NewCursor(b)
	for c.Len() > 0 {
		kind, _ := c.U8()
		switch kind {
		case clxPrc:
			cb, err := c.I16()
			if err != nil || cb < 0 {
				return nil, corrupt(CodePieceTable, "truncated Prc at offset %d", c.Offset())
			}
			g, err := c.Bytes(int(cb))
			if err != nil {
				return nil, wrapCorrupt(CodePieceTable, err, "Prc of %d bytes", cb)
			}
			t.Grpprls = append(t.Grpprls, g)
		case clxPcdt:
			lcb, err := c.U32()
			if err != nil {
				return nil, wrapCorrupt(CodePieceTable, err, "Pcdt header")
			}
			body, err := c.Bytes(int(lcb))
			if err != nil {
				return nil, wrapCorrupt(CodePieceTable, err, "Pcdt of %d bytes", lcb)
			}
			if plc != nil {
				diag.DuplicatePieceTables++
				log.Debug("Duplicate piece table ignored", zap.Uint32("lcb", lcb))
				continue
			}
			if lcb < 4 || (lcb-4)%pieceRecordLen != 0 {
				return nil, corrupt(CodePieceTable, "PlcPcd length %d is not 4+12n", lcb)
			}
			plc = body
		default:
			if plc != nil {
				// trailing padding after the piece table
				c.Skip(c.Len())
				continue
			}
			return nil, corrupt(CodePieceTable, "unknown Clx record 0x%02X at offset %d", kind, c.Offset()-1)
		}
	}
	if plc == nil {
		return nil, corrupt(CodePieceTable, "Clx without a piece table")
	}

	pcd, err := bintable.ParsePlcf(plc, pcdSize)
	if err != nil {
		return nil, wrapCorrupt(CodePieceTable, err, "PlcPcd")
	}
	if pcd.Len() > 0 && pcd.Pos[0] != 0 {
		diag.ClampedPieces++
		log.Debug("First piece does not start at CP 0", zap.Uint32("cp", pcd.Pos[0]))
		pcd.Pos[0] = 0
	}
	for i := 0; i < pcd.Len(); i++ {
		start, limit, d := pcd.Entry(i)
		if limit == start {
			continue
		}
		p := Piece{
			StartCP: start,
			LimitCP: limit,
			Flags:   bintable.U16At(d, 0),
			Prm:     sprm.Prm(bintable.U16At(d, 6)),
			Width:   2,
		}
		fc := bintable.U32At(d, 2)
		if fc&fcCompressed != 0 {
			p.Width = 1
			p.StartFC = (fc &^ fcCompressed) / 2
		} else {
			p.StartFC = fc
		}
		t.Pieces = append(t.Pieces, p)
	}
	return t, nil
}
