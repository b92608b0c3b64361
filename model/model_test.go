package model

import (
	"strings"
	"testing"
	"time"
)

// ============================================================================
// Document Tests
// ============================================================================

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	if doc.Metadata.Custom == nil {
		t.Error("NewDocument() should initialize custom metadata")
	}
	if doc.Elements == nil || len(doc.Elements) != 0 {
		t.Error("NewDocument() should start with no elements")
	}
}

// grid builds a table of single-span cells, one row per argument.
func grid(rows ...[]string) *Table {
	t := &Table{}
	for _, texts := range rows {
		row := make([]Cell, len(texts))
		for i, text := range texts {
			row[i] = Cell{Text: text, RowSpan: 1, ColSpan: 1}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func sampleDocument() *Document {
	doc := NewDocument()
	doc.AddElement(&Heading{Text: "Intro", Level: 1, Anchors: []string{"intro"}})
	doc.AddElement(&Paragraph{Text: "First paragraph"})
	doc.AddElement(&List{Ordered: true, Items: []ListItem{
		{Text: "one", Bullet: "1."},
		{Text: "nested", Bullet: "a.", Level: 1},
	}})
	inner := grid([]string{"inner"})
	outer := grid([]string{"cell", ""})
	outer.Rows[0][0].Elements = []Element{&Paragraph{Text: "cell"}, &Heading{Text: "Cell heading", Level: 2}, inner}
	doc.AddElement(outer)
	doc.AddElement(&Image{Format: ImageFormatPNG})
	return doc
}

func TestDocumentExtractText(t *testing.T) {
	text := sampleDocument().ExtractText()
	for _, want := range []string{"Intro\n", "First paragraph\n", "1. one\n", "  a. nested\n", "cell\t"} {
		if !strings.Contains(text, want) {
			t.Errorf("ExtractText() missing %q in %q", want, text)
		}
	}
}

func TestDocumentWalk(t *testing.T) {
	doc := sampleDocument()

	t.Run("tables include nested", func(t *testing.T) {
		if got := len(doc.ExtractTables()); got != 2 {
			t.Errorf("ExtractTables() = %d tables, want 2", got)
		}
	})

	t.Run("headings in reading order", func(t *testing.T) {
		hs := doc.Headings()
		if len(hs) != 2 || hs[0].Text != "Intro" || hs[1].Text != "Cell heading" {
			t.Errorf("Headings() = %+v", hs)
		}
	})

	t.Run("stop early", func(t *testing.T) {
		n := 0
		doc.Walk(func(Element) bool {
			n++
			return n < 2
		})
		if n != 2 {
			t.Errorf("Walk visited %d elements after stop, want 2", n)
		}
	})
}

func TestDocumentStats(t *testing.T) {
	doc := sampleDocument()
	doc.Notes = append(doc.Notes, &Note{Kind: "footnote", Index: 1})
	s := doc.Stats()
	want := Stats{ParagraphCount: 2, HeadingCount: 2, ListCount: 1, TableCount: 2, ImageCount: 1, NoteCount: 1}
	if s != want {
		t.Errorf("Stats() = %+v, want %+v", s, want)
	}
	if got := len(doc.Paragraphs()); got != 2 {
		t.Errorf("Paragraphs() = %d, want 2", got)
	}
	if got := len(doc.Lists()); got != 1 {
		t.Errorf("Lists() = %d, want 1", got)
	}
	if got := len(doc.Images()); got != 1 {
		t.Errorf("Images() = %d, want 1", got)
	}
}

func TestDocumentTableOfContents(t *testing.T) {
	toc := sampleDocument().TableOfContents()
	if len(toc) != 2 {
		t.Fatalf("TableOfContents() = %d entries, want 2", len(toc))
	}
	if toc[0].Level != 1 || toc[0].Anchor != "intro" {
		t.Errorf("toc[0] = %+v", toc[0])
	}
	if toc[1].Anchor != "" {
		t.Errorf("toc[1].Anchor = %q, want empty", toc[1].Anchor)
	}
}

func TestNoteGetText(t *testing.T) {
	n := &Note{Elements: []Element{&Paragraph{Text: "a"}, &Paragraph{Text: "b"}}}
	if got := n.GetText(); got != "a\nb\n" {
		t.Errorf("GetText() = %q", got)
	}
}

// ============================================================================
// Element Tests
// ============================================================================

func TestElementTypeString(t *testing.T) {
	tests := []struct {
		et       ElementType
		expected string
	}{
		{ElementTypeUnknown, "Unknown"},
		{ElementTypeParagraph, "Paragraph"},
		{ElementTypeHeading, "Heading"},
		{ElementTypeList, "List"},
		{ElementTypeTable, "Table"},
		{ElementTypeImage, "Image"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if tt.et.String() != tt.expected {
				t.Errorf("String() = %v, want %v", tt.et.String(), tt.expected)
			}
		})
	}
}

func TestElementInterfaces(t *testing.T) {
	tests := []struct {
		elem Element
		want ElementType
	}{
		{&Paragraph{}, ElementTypeParagraph},
		{&Heading{}, ElementTypeHeading},
		{&List{}, ElementTypeList},
		{&Image{}, ElementTypeImage},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			if tt.elem.Type() != tt.want {
				t.Errorf("Type() = %v, want %v", tt.elem.Type(), tt.want)
			}
		})
	}
}

func TestImageFormatFromMIME(t *testing.T) {
	tests := []struct {
		mime string
		want ImageFormat
	}{
		{"image/jpeg", ImageFormatJPEG},
		{"IMAGE/PNG", ImageFormatPNG},
		{"image/x-emf", ImageFormatEMF},
		{"image/wmf", ImageFormatWMF},
		{"application/octet-stream", ImageFormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			if got := ImageFormatFromMIME(tt.mime); got != tt.want {
				t.Errorf("ImageFormatFromMIME(%q) = %v, want %v", tt.mime, got, tt.want)
			}
		})
	}
}

func TestAlignment(t *testing.T) {
	tests := []struct {
		name string
		want TextAlignment
	}{
		{"left", AlignLeft},
		{"center", AlignCenter},
		{"right", AlignRight},
		{"justify", AlignJustify},
		{"distribute", AlignJustify},
		{"bogus", AlignLeft},
	}
	for _, tt := range tests {
		if got := ParseAlignment(tt.name); got != tt.want {
			t.Errorf("ParseAlignment(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if AlignJustify.String() != "justify" {
		t.Errorf("AlignJustify.String() = %q", AlignJustify.String())
	}
}

func TestColor(t *testing.T) {
	c := RGB(0x12AB34)
	if c != (Color{0x12, 0xAB, 0x34}) {
		t.Errorf("RGB() = %+v", c)
	}
	if c.Hex() != "#12ab34" {
		t.Errorf("Hex() = %q", c.Hex())
	}
}

// ============================================================================
// Table Tests
// ============================================================================

func TestTableInterface(t *testing.T) {
	table := grid([]string{"a", "b"})
	if table.Type() != ElementTypeTable {
		t.Error("Type() should return ElementTypeTable")
	}
	var _ TextElement = table
}

func TestTableColCountUsesGrid(t *testing.T) {
	table := &Table{
		Rows:   [][]Cell{{{Text: "wide", ColSpan: 2, RowSpan: 1}}},
		Widths: []float64{72, 72},
	}
	if got := table.ColCount(); got != 2 {
		t.Errorf("ColCount() = %d, want 2", got)
	}
}

func TestTableGetText(t *testing.T) {
	table := grid([]string{"A1", "B1"}, []string{"A2", "B2"})

	text := table.GetText()
	if !strings.Contains(text, "A1") || !strings.Contains(text, "B2") {
		t.Error("GetText() should contain all cell text")
	}
}

func TestTableRowColCount(t *testing.T) {
	t.Run("normal table", func(t *testing.T) {
		table := grid(make([]string, 4), make([]string, 4), make([]string, 4))
		if table.RowCount() != 3 {
			t.Errorf("RowCount() = %d, want 3", table.RowCount())
		}
		if table.ColCount() != 4 {
			t.Errorf("ColCount() = %d, want 4", table.ColCount())
		}
	})

	t.Run("empty table", func(t *testing.T) {
		table := &Table{}
		if table.RowCount() != 0 {
			t.Errorf("empty table RowCount() = %d, want 0", table.RowCount())
		}
		if table.ColCount() != 0 {
			t.Errorf("empty table ColCount() = %d, want 0", table.ColCount())
		}
	})
}

func TestTableToMarkdown(t *testing.T) {
	table := grid(
		[]string{"Header1", "Header2"},
		[]string{"Data1", "Data2"},
		[]string{"Data3", "Data4"},
	)

	md := table.ToMarkdown()

	if !strings.Contains(md, "| Header1 |") {
		t.Error("markdown should contain header row")
	}
	if !strings.Contains(md, "|---|") {
		t.Error("markdown should contain separator")
	}
	if !strings.Contains(md, "| Data1 |") {
		t.Error("markdown should contain data rows")
	}
}

func TestTableToMarkdown_Empty(t *testing.T) {
	table := &Table{}
	md := table.ToMarkdown()
	if md != "" {
		t.Error("empty table should produce empty markdown")
	}
}

func TestTableToCSV(t *testing.T) {
	table := grid([]string{"A1", "B1"}, []string{"A2", "B2"})

	csv := table.ToCSV()

	if !strings.Contains(csv, "A1,B1") {
		t.Error("CSV should contain first row")
	}
	if !strings.Contains(csv, "A2,B2") {
		t.Error("CSV should contain second row")
	}
}

func TestTableToCSV_SpecialChars(t *testing.T) {
	table := grid([]string{"Hello, World", `Say "Hi"`})

	csv := table.ToCSV()

	if !strings.Contains(csv, `"Hello, World"`) {
		t.Error("CSV should quote cells with commas")
	}
	if !strings.Contains(csv, `"Say ""Hi"""`) {
		t.Error("CSV should escape quotes")
	}
}

// ============================================================================
// Metadata Tests
// ============================================================================

func TestMetadata(t *testing.T) {
	now := time.Now()
	meta := Metadata{
		Title:        "Test Document",
		Author:       "Test Author",
		Subject:      "Testing",
		Keywords:     []string{"test", "go"},
		Creator:      "Test Creator",
		Language:     "en-US",
		CreationDate: now,
		ModDate:      now,
		Custom:       map[string]string{"key": "value"},
	}

	if meta.Title != "Test Document" {
		t.Error("Title not set correctly")
	}
	if len(meta.Keywords) != 2 {
		t.Error("Keywords not set correctly")
	}
	if meta.Custom["key"] != "value" {
		t.Error("Custom metadata not set correctly")
	}
}
