package model

import (
	"strings"
	"time"
)

// Document represents a complete decoded document
type Document struct {
	Metadata Metadata
	Elements []Element
	Notes    []*Note
}

// Metadata contains document-level information
type Metadata struct {
	Title        string
	Author       string
	Subject      string
	Keywords     []string
	Creator      string
	Language     string
	CreationDate time.Time
	ModDate      time.Time
	// Custom metadata
	Custom map[string]string
}

// Note is a footnote or endnote with its content
type Note struct {
	Kind     string // "footnote" or "endnote"
	Index    int    // 1-based, in reference order
	Elements []Element
}

// GetText returns the text of the note's elements
func (n *Note) GetText() string {
	return joinText(n.Elements)
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Metadata: Metadata{
			Custom: make(map[string]string),
		},
		Elements: make([]Element, 0),
	}
}

// AddElement appends an element to the body
func (d *Document) AddElement(e Element) {
	d.Elements = append(d.Elements, e)
}

// ExtractText returns all body text, one element per line
func (d *Document) ExtractText() string {
	return joinText(d.Elements)
}

func joinText(elems []Element) string {
	var sb strings.Builder
	for _, e := range elems {
		if te, ok := e.(TextElement); ok {
			sb.WriteString(strings.TrimRight(te.GetText(), "\n"))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Walk calls fn for every element of the body, descending into table cells.
// Returning false from fn stops the walk.
func (d *Document) Walk(fn func(Element) bool) {
	walk(d.Elements, fn)
}

func walk(elems []Element, fn func(Element) bool) bool {
	for _, e := range elems {
		if !fn(e) {
			return false
		}
		if t, ok := e.(*Table); ok {
			for _, row := range t.Rows {
				for _, c := range row {
					if !walk(c.Elements, fn) {
						return false
					}
				}
			}
		}
	}
	return true
}

// ExtractTables returns all tables, nested tables included
func (d *Document) ExtractTables() []*Table {
	var tables []*Table
	d.Walk(func(e Element) bool {
		if t, ok := e.(*Table); ok {
			tables = append(tables, t)
		}
		return true
	})
	return tables
}

// Headings returns all headings in reading order
func (d *Document) Headings() []*Heading {
	var out []*Heading
	d.Walk(func(e Element) bool {
		if h, ok := e.(*Heading); ok {
			out = append(out, h)
		}
		return true
	})
	return out
}

// Lists returns all lists in reading order
func (d *Document) Lists() []*List {
	var out []*List
	d.Walk(func(e Element) bool {
		if l, ok := e.(*List); ok {
			out = append(out, l)
		}
		return true
	})
	return out
}

// Paragraphs returns all plain paragraphs in reading order
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	d.Walk(func(e Element) bool {
		if p, ok := e.(*Paragraph); ok {
			out = append(out, p)
		}
		return true
	})
	return out
}

// Images returns all images in reading order
func (d *Document) Images() []*Image {
	var out []*Image
	d.Walk(func(e Element) bool {
		if img, ok := e.(*Image); ok {
			out = append(out, img)
		}
		return true
	})
	return out
}

// Stats counts the elements of the body
func (d *Document) Stats() Stats {
	var s Stats
	d.Walk(func(e Element) bool {
		switch e.Type() {
		case ElementTypeParagraph:
			s.ParagraphCount++
		case ElementTypeHeading:
			s.HeadingCount++
		case ElementTypeList:
			s.ListCount++
		case ElementTypeTable:
			s.TableCount++
		case ElementTypeImage:
			s.ImageCount++
		}
		return true
	})
	s.NoteCount = len(d.Notes)
	return s
}

// Stats holds element counts
type Stats struct {
	ParagraphCount int
	HeadingCount   int
	ListCount      int
	TableCount     int
	ImageCount     int
	NoteCount      int
}

// TableOfContents returns headings organized as a document outline
func (d *Document) TableOfContents() []TOCEntry {
	var toc []TOCEntry
	for _, h := range d.Headings() {
		entry := TOCEntry{Level: h.Level, Text: h.Text, FontSize: h.FontSize}
		if len(h.Anchors) > 0 {
			entry.Anchor = h.Anchors[0]
		}
		toc = append(toc, entry)
	}
	return toc
}

// TOCEntry represents an entry in the table of contents
type TOCEntry struct {
	Level    int     // Heading level (1-9)
	Text     string  // Heading text
	Anchor   string  // First bookmark anchor on the heading, if any
	FontSize float64 // Font size of heading
}
