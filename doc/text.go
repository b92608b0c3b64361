package doc

import (
	"encoding/binary"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Special characters of the text stream.
const (
	chPicture      = 0x01
	chNoteRef      = 0x02
	chDrawn        = 0x08
	chTab          = 0x09
	chLineBreak    = 0x0B
	chPageBreak    = 0x0C
	chParagraph    = 0x0D
	chColumnBreak  = 0x0E
	chCellMark     = 0x07
	chFieldBegin   = 0x13
	chFieldSep     = 0x14
	chFieldEnd     = 0x15
	chNBHyphen     = 0x1E
	chSoftHyphen   = 0x1F
	chNoBreakSpace = 0xA0
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// rawChar returns the code unit at cp: the byte of an 8-bit piece or the
// UTF-16 unit of a 16-bit piece.
func (d *Document) rawChar(cp uint32) (uint16, bool) {
	p, ok := d.pieces.ResolvePiece(cp)
	if !ok {
		return 0, false
	}
	return d.rawAt(p, cp)
}

func (d *Document) rawAt(p Piece, cp uint32) (uint16, bool) {
	fc := p.CpToFc(cp)
	if uint64(fc)+uint64(p.Width) > uint64(len(d.word)) {
		return 0, false
	}
	if p.Width == 1 {
		return uint16(d.word[fc]), true
	}
	return binary.LittleEndian.Uint16(d.word[fc:]), true
}

// rawBytes returns the stored bytes of [start, limit), which must lie in p.
func (d *Document) rawBytes(p Piece, start, limit uint32) []byte {
	from, to := uint64(p.CpToFc(start)), uint64(p.CpToFc(limit))
	if to > uint64(len(d.word)) {
		to = uint64(len(d.word))
	}
	if from >= to {
		return nil
	}
	return d.word[from:to]
}

// decodeChars decodes piece bytes. dec applies to 8-bit text and may be nil
// for Windows-1252.
func decodeChars(raw []byte, width uint32, dec *encoding.Decoder) string {
	if width == 2 {
		s, err := utf16le.NewDecoder().Bytes(raw)
		if err != nil {
			return ""
		}
		return string(s)
	}
	if dec == nil {
		dec = charmap.Windows1252.NewDecoder()
	}
	s, err := dec.Bytes(raw)
	if err != nil {
		// fall back to the Latin-1 reading of the bytes
		var sb strings.Builder
		for _, b := range raw {
			sb.WriteRune(rune(b))
		}
		return sb.String()
	}
	return string(s)
}

// Text returns the unformatted text of [start, limit), piece by piece.
func (d *Document) Text(start, limit uint32) string {
	var sb strings.Builder
	for cp := start; cp < limit; {
		p, ok := d.pieces.ResolvePiece(cp)
		if !ok {
			break
		}
		end := min(p.LimitCP, limit)
		sb.WriteString(decodeChars(d.rawBytes(p, cp, end), p.Width, nil))
		cp = end
	}
	return sb.String()
}

// mapSpecial returns the text a control character stands for in output, and
// false for characters that produce no text.
func mapSpecial(u uint16) (string, bool) {
	switch u {
	case chTab:
		return "\t", true
	case chLineBreak:
		return "\n", true
	case chNBHyphen:
		return "\u2011", true
	case chSoftHyphen:
		return "\u00ad", true
	}
	return "", false
}
