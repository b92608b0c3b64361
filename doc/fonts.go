package doc

import (
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/tsawler/wordbin/internal/bintable"
)

const (
	ffnNameOffset = 39
	charsetANSI   = 0
	charsetSymbol = 2
)

// charsetCodePages maps a font charset to the label of its Windows code page.
var charsetCodePages = map[uint8]string{
	128: "shift_jis",
	129: "euc-kr",
	134: "gbk",
	136: "big5",
	161: "windows-1253",
	162: "windows-1254",
	163: "windows-1258",
	177: "windows-1255",
	178: "windows-1256",
	186: "windows-1257",
	204: "windows-1251",
	222: "windows-874",
	238: "windows-1250",
}

// Font is one entry of the font table.
type Font struct {
	Name    string
	AltName string
	Charset uint8
	Family  uint8 // ff: 0 dontcare, 1 roman, 2 swiss, 3 modern, 4 script, 5 decorative
	Pitch   uint8

	decoder *encoding.Decoder
}

// Symbol reports whether the font uses the symbol character set.
func (f *Font) Symbol() bool { return f.Charset == charsetSymbol }

// FontTable is the decoded SttbfFfn.
type FontTable struct {
	fonts []*Font
}

// parseFonts decodes the font table. Entries are a length byte followed by an
// FFN whose name starts at byte 39.
func parseFonts(b []byte, log *zap.Logger) *FontTable {
	ft := &FontTable{}
	c := bintable.NewCursor(b)
	count, err := c.U16()
	if err != nil {
		return ft
	}
	c.Skip(2) // cbExtra
	for i := 0; i < int(count); i++ {
		cb, err := c.U8()
		if err != nil {
			break
		}
		ffn, err := c.Bytes(int(cb))
		if err != nil {
			log.Debug("Font entry truncated", zap.Int("index", i))
			break
		}
		ft.fonts = append(ft.fonts, parseFfn(ffn))
	}
	return ft
}

func parseFfn(ffn []byte) *Font {
	f := &Font{}
	if len(ffn) < ffnNameOffset {
		return f
	}
	f.Pitch = ffn[0] & 0x03
	f.Family = (ffn[0] >> 4) & 0x07
	f.Charset = ffn[3]
	f.Name = bintable.DecodeUTF16(ffn[ffnNameOffset:])
	if alt := ffnNameOffset + 2*int(ffn[4]); ffn[4] > 0 && alt < len(ffn) {
		f.AltName = bintable.DecodeUTF16(ffn[alt:])
	}
	if f.Charset != charsetANSI && f.Charset != charsetSymbol {
		if label, ok := charsetCodePages[f.Charset]; ok {
			if enc, _ := charset.Lookup(label); enc != nil {
				f.decoder = enc.NewDecoder()
			}
		}
	}
	return f
}

// Len returns the number of fonts.
func (ft *FontTable) Len() int { return len(ft.fonts) }

// Font returns font ftc, falling back to font 0. The result is nil only for
// an empty table.
func (ft *FontTable) Font(ftc uint16) *Font {
	if int(ftc) < len(ft.fonts) {
		return ft.fonts[ftc]
	}
	if len(ft.fonts) > 0 {
		return ft.fonts[0]
	}
	return nil
}

// Name returns the name of font ftc, or "" when the table is empty.
func (ft *FontTable) Name(ftc uint16) string {
	if f := ft.Font(ftc); f != nil {
		return f.Name
	}
	return ""
}

// Decoder returns the decoder for 8-bit text in font ftc. Fonts without a
// special charset decode as Windows-1252.
func (ft *FontTable) Decoder(ftc uint16) *encoding.Decoder {
	if f := ft.Font(ftc); f != nil && f.decoder != nil {
		return f.decoder
	}
	return charmap.Windows1252.NewDecoder()
}
