package doc

import (
	"strings"

	"github.com/tsawler/wordbin/sprm"
)

// TextOutput renders plain text. Paragraphs end with a newline; table cells
// are separated by tabs and rows by newlines, with the paragraphs of one
// cell joined by spaces.
type TextOutput struct {
	sb     strings.Builder
	tables []textTable
	Images []Image
}

type textTable struct {
	row   int
	paras int
}

// NewTextOutput returns an empty text sink.
func NewTextOutput() *TextOutput { return &TextOutput{} }

// String returns the text written so far.
func (t *TextOutput) String() string { return t.sb.String() }

func (t *TextOutput) PredefineStyle(StyleInfo) {}

func (t *TextOutput) StartParagraph(p ParagraphFormat) {
	if n := len(t.tables); n > 0 && t.tables[n-1].paras > 0 {
		t.sb.WriteByte(' ')
	}
	if p.ListText != "" {
		t.sb.WriteString(p.ListText)
		t.sb.WriteByte(' ')
	}
}

func (t *TextOutput) EndParagraph() {
	if n := len(t.tables); n > 0 {
		t.tables[n-1].paras++
		return
	}
	t.sb.WriteByte('\n')
}

func (t *TextOutput) ChangeFormatting(CharFormat) {}

func (t *TextOutput) WriteString(s string) {
	if len(t.tables) > 0 {
		s = strings.NewReplacer("\n", " ", "\t", " ").Replace(s)
	}
	t.sb.WriteString(s)
}

func (t *TextOutput) StartTable(TableFormat) {
	if n := len(t.tables); n > 0 && t.tables[n-1].paras > 0 {
		t.sb.WriteByte(' ')
	}
	t.tables = append(t.tables, textTable{row: -1})
}

func (t *TextOutput) NextCell(c CellFormat) {
	tt := &t.tables[len(t.tables)-1]
	switch {
	case tt.row < 0:
	case c.Row != tt.row:
		t.sb.WriteString(t.rowSeparator())
	default:
		t.sb.WriteByte('\t')
	}
	tt.row, tt.paras = c.Row, 0
}

func (t *TextOutput) rowSeparator() string {
	if len(t.tables) > 1 {
		return " "
	}
	return "\n"
}

func (t *TextOutput) EndTable() {
	sep := t.rowSeparator()
	t.tables = t.tables[:len(t.tables)-1]
	if n := len(t.tables); n > 0 {
		t.tables[n-1].paras++
		return
	}
	t.sb.WriteString(sep)
}

func (t *TextOutput) StartHyperlink(string) {}

func (t *TextOutput) EndHyperlink() {}

func (t *TextOutput) SetAnchor(string) {}

func (t *TextOutput) InsertImage(img Image) { t.Images = append(t.Images, img) }

func (t *TextOutput) BackgroundColor() sprm.Color { return 0xFFFFFF }
