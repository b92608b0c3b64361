package doc

import (
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/tsawler/wordbin/internal/bintable"
)

const fldSize = 2

// Field is a field located by its begin, separator and end characters.
// Sep is zero when the field has no result.
type Field struct {
	Begin uint32
	Sep   uint32
	End   uint32
	Type  uint8 // flt of the begin character
}

// HasResult reports whether the field has a separator and a stored result.
func (f *Field) HasResult() bool { return f.Sep > f.Begin }

// CodeLimit returns the CP just past the field code.
func (f *Field) CodeLimit() uint32 {
	if f.HasResult() {
		return f.Sep
	}
	return f.End
}

// fieldTable indexes fields of one story by their begin CP.
type fieldTable struct {
	byBegin map[uint32]*Field
}

// parseFields pairs the field characters of a PlcfFld, allowing nesting.
func parseFields(b []byte, base uint32, diag *Diagnostics, log *zap.Logger) *fieldTable {
	ft := &fieldTable{byBegin: make(map[uint32]*Field)}
	if len(b) == 0 {
		return ft
	}
	plc, err := bintable.ParsePlcf(b, fldSize)
	if err != nil {
		diag.BadTables++
		log.Debug("Field table unreadable", zap.Error(err))
		return ft
	}
	var stack []*Field
	for i := 0; i < plc.Len(); i++ {
		cp := base + plc.Pos[i]
		d := plc.Data(i)
		switch d[0] & 0x1F {
		case chFieldBegin:
			f := &Field{Begin: cp, Type: d[1]}
			stack = append(stack, f)
		case chFieldSep:
			if len(stack) > 0 {
				stack[len(stack)-1].Sep = cp
			}
		case chFieldEnd:
			if len(stack) == 0 {
				continue
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			f.End = cp
			ft.byBegin[f.Begin] = f
		}
	}
	if len(stack) > 0 {
		log.Debug("Unterminated fields", zap.Int("count", len(stack)))
	}
	return ft
}

// fieldAt returns the field beginning at cp. Without a table entry the raw
// text is scanned for the matching separator and end.
func (d *Document) fieldAt(cp, limit uint32) *Field {
	if f, ok := d.fields.byBegin[cp]; ok {
		return f
	}
	f := &Field{Begin: cp}
	depth := 0
	for i := cp + 1; i < limit; i++ {
		u, ok := d.rawChar(i)
		if !ok {
			break
		}
		switch u {
		case chFieldBegin:
			depth++
		case chFieldSep:
			if depth == 0 && f.Sep == 0 {
				f.Sep = i
			}
		case chFieldEnd:
			if depth == 0 {
				f.End = i
				return f
			}
			depth--
		}
	}
	return nil
}

// fieldCode returns the instruction text of f without nested results.
func (d *Document) fieldCode(f *Field) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r < 0x20 {
			return -1
		}
		return r
	}, d.Text(f.Begin+1, f.CodeLimit())))
}

// fieldTokens splits a field instruction into words, honoring quotes.
func fieldTokens(code string) []string {
	var out []string
	var cur strings.Builder
	quoted, have := false, false
	for _, r := range code {
		switch {
		case r == '"':
			quoted = !quoted
			have = true
		case !quoted && (r == ' ' || r == '\t'):
			if have {
				out = append(out, cur.String())
				cur.Reset()
				have = false
			}
		default:
			cur.WriteRune(r)
			have = true
		}
	}
	if have {
		out = append(out, cur.String())
	}
	return out
}

// fieldName returns the upper-cased first word of a field instruction.
func fieldName(code string) string {
	t := fieldTokens(code)
	if len(t) == 0 {
		return ""
	}
	return strings.ToUpper(t[0])
}

// hyperlinkTarget parses a HYPERLINK instruction. A \l switch names a local
// bookmark, which becomes a fragment with the same sanitizing as anchors.
func hyperlinkTarget(code string) (string, bool) {
	t := fieldTokens(code)
	if len(t) == 0 || !strings.EqualFold(t[0], "HYPERLINK") {
		return "", false
	}
	var url, local string
	for i := 1; i < len(t); i++ {
		switch {
		case t[i] == `\l` && i+1 < len(t):
			local = t[i+1]
			i++
		case (t[i] == `\o` || t[i] == `\t`) && i+1 < len(t):
			i++
		case strings.HasPrefix(t[i], `\`):
		case url == "":
			url = t[i]
		}
	}
	if local != "" {
		anchor := slug.Make(local)
		if anchor == "" {
			anchor = "bookmark"
		}
		return url + "#" + anchor, true
	}
	if url == "" {
		return "", false
	}
	return url, true
}
