package doc

import (
	"strings"

	"github.com/tsawler/wordbin/model"
	"github.com/tsawler/wordbin/sprm"
)

// ModelOutput builds a model.Document. Paragraphs with a TOC level become
// headings, numbered paragraphs are grouped into one list per run of items
// sharing a list override, and table cells hold their own elements.
type ModelOutput struct {
	doc     *model.Document
	targets []*[]model.Element
	tables  []*modelTable

	para    *modelPara
	cur     CharFormat
	link    string
	anchors []string
	styles  map[string]StyleInfo
}

type modelTable struct {
	table *model.Table
	row   int
	cell  *model.Cell
}

type modelPara struct {
	format  ParagraphFormat
	text    strings.Builder
	runs    []model.Run
	links   []model.Link
	linkAt  int
	anchors []string
	images  []*model.Image
	first   *CharFormat
}

// NewModelOutput returns an empty model sink.
func NewModelOutput() *ModelOutput {
	m := &ModelOutput{doc: model.NewDocument(), styles: make(map[string]StyleInfo)}
	m.targets = []*[]model.Element{&m.doc.Elements}
	return m
}

// Document returns the document built so far.
func (m *ModelOutput) Document() *model.Document { return m.doc }

// Style returns a style announced by PredefineStyle.
func (m *ModelOutput) Style(id string) (StyleInfo, bool) {
	s, ok := m.styles[id]
	return s, ok
}

func (m *ModelOutput) add(e model.Element) {
	t := m.targets[len(m.targets)-1]
	*t = append(*t, e)
}

func (m *ModelOutput) PredefineStyle(s StyleInfo) { m.styles[s.ID] = s }

func (m *ModelOutput) StartParagraph(p ParagraphFormat) {
	m.para = &modelPara{format: p, anchors: m.anchors}
	m.anchors = nil
}

func (m *ModelOutput) ChangeFormatting(c CharFormat) { m.cur = c }

func (m *ModelOutput) WriteString(s string) {
	p := m.para
	if p == nil || s == "" {
		return
	}
	if p.first == nil {
		c := m.cur
		p.first = &c
	}
	p.text.WriteString(s)
	style := textStyle(&m.cur)
	if n := len(p.runs); n > 0 && p.runs[n-1].Style == style && p.runs[n-1].Link == m.link {
		p.runs[n-1].Text += s
		return
	}
	p.runs = append(p.runs, model.Run{Text: s, Style: style, Link: m.link})
}

func (m *ModelOutput) StartHyperlink(target string) {
	m.link = target
	if m.para != nil {
		m.para.linkAt = m.para.text.Len()
	}
}

func (m *ModelOutput) EndHyperlink() {
	if p := m.para; p != nil && m.link != "" {
		p.links = append(p.links, model.Link{Target: m.link, Text: p.text.String()[p.linkAt:]})
	}
	m.link = ""
}

func (m *ModelOutput) SetAnchor(name string) {
	if m.para != nil {
		m.para.anchors = append(m.para.anchors, name)
		return
	}
	m.anchors = append(m.anchors, name)
}

func (m *ModelOutput) InsertImage(img Image) {
	mi := &model.Image{
		Data:          img.Data,
		Format:        model.ImageFormatFromMIME(img.MIME),
		MIME:          img.MIME,
		Name:          img.Name,
		Width:         img.Width,
		Height:        img.Height,
		DisplayWidth:  float64(img.GoalWidth) / 20,
		DisplayHeight: float64(img.GoalHeight) / 20,
	}
	if m.para != nil {
		m.para.images = append(m.para.images, mi)
		return
	}
	m.add(mi)
}

func (m *ModelOutput) EndParagraph() {
	p := m.para
	m.para = nil
	if p == nil {
		return
	}
	text := p.text.String()
	f := &p.format
	var size float64
	var font string
	var style model.TextStyle
	if p.first != nil {
		size, font, style = p.first.Size, p.first.FontName, textStyle(p.first)
	}

	switch {
	case f.ListText != "" || f.ListID > 0:
		m.addListItem(f, model.ListItem{
			Text:    text,
			Bullet:  f.ListText,
			Level:   f.ListLevel,
			Runs:    p.runs,
			Anchors: p.anchors,
		})
	case f.TOCLevel > 0 && text != "":
		m.add(&model.Heading{
			Text:     text,
			Level:    f.TOCLevel,
			StyleID:  f.StyleID,
			FontSize: size,
			FontName: font,
			Style:    style,
			Runs:     p.runs,
			Anchors:  p.anchors,
		})
	case text != "" || len(p.anchors) > 0 || len(p.images) == 0:
		m.add(&model.Paragraph{
			Text:        text,
			StyleID:     f.StyleID,
			FontSize:    size,
			FontName:    font,
			Style:       style,
			Alignment:   model.ParseAlignment(f.Alignment),
			SpaceBefore: float64(f.SpaceBefore) / 20,
			SpaceAfter:  float64(f.SpaceAfter) / 20,
			Runs:        p.runs,
			Links:       p.links,
			Anchors:     p.anchors,
		})
	}
	for _, img := range p.images {
		m.add(img)
	}
}

// addListItem appends to the list just before it when that list has the same
// override, else starts a new list.
func (m *ModelOutput) addListItem(f *ParagraphFormat, item model.ListItem) {
	t := m.targets[len(m.targets)-1]
	if n := len(*t); n > 0 {
		if l, ok := (*t)[n-1].(*model.List); ok && l.ID == f.ListID {
			l.Items = append(l.Items, item)
			return
		}
	}
	m.add(&model.List{ID: f.ListID, Ordered: f.Ordered, Items: []model.ListItem{item}})
}

func (m *ModelOutput) StartTable(t TableFormat) {
	mt := &model.Table{Level: t.Level}
	for _, w := range t.Widths {
		mt.Widths = append(mt.Widths, float64(w)/20)
	}
	m.tables = append(m.tables, &modelTable{table: mt, row: -1})
}

func (m *ModelOutput) NextCell(c CellFormat) {
	st := m.tables[len(m.tables)-1]
	m.flushCell(st)
	if c.Row != st.row || len(st.table.Rows) == 0 {
		st.table.Rows = append(st.table.Rows, nil)
		st.row = c.Row
	}
	cell := &model.Cell{
		Column:   c.GridStart,
		RowSpan:  max(1, c.RowSpan),
		ColSpan:  max(1, c.ColSpan),
		IsHeader: c.Header,
		Style: model.CellStyle{
			Width:         float64(c.Width) / 20,
			VerticalAlign: model.VerticalAlignment(min(c.VertAlign, 2)),
		},
	}
	if !c.Shading.Back.Auto() {
		bg := model.RGB(uint32(c.Shading.Back))
		cell.Style.BackgroundColor = &bg
	}
	for _, b := range c.Borders {
		if b.None() {
			continue
		}
		st.table.HasGrid = true
		if cell.Style.BorderWidth == 0 {
			cell.Style.BorderWidth = float64(b.Width) / 8
			if !b.Color.Auto() {
				cell.Style.BorderColor = model.RGB(uint32(b.Color))
			}
		}
	}
	st.cell = cell
	m.targets = append(m.targets, &cell.Elements)
}

// flushCell stores the open cell of st in its row.
func (m *ModelOutput) flushCell(st *modelTable) {
	if st.cell == nil {
		return
	}
	m.targets = m.targets[:len(m.targets)-1]
	c := st.cell
	var parts []string
	for _, e := range c.Elements {
		if te, ok := e.(model.TextElement); ok {
			if s := strings.TrimSpace(te.GetText()); s != "" {
				parts = append(parts, s)
			}
		}
	}
	c.Text = strings.Join(parts, "\n")
	last := len(st.table.Rows) - 1
	st.table.Rows[last] = append(st.table.Rows[last], *c)
	st.cell = nil
}

func (m *ModelOutput) EndTable() {
	st := m.tables[len(m.tables)-1]
	m.flushCell(st)
	m.tables = m.tables[:len(m.tables)-1]
	m.add(st.table)
}

// BackgroundColor is white.
func (m *ModelOutput) BackgroundColor() sprm.Color { return 0xFFFFFF }

func textStyle(c *CharFormat) model.TextStyle {
	return model.TextStyle{
		Bold:          c.Bold,
		Italic:        c.Italic,
		Underline:     c.Underline,
		Strikethrough: c.Strike || c.DoubleStrike,
		Superscript:   c.Superscript,
		Subscript:     c.Subscript,
		Color:         model.RGB(uint32(c.Color) & 0xFFFFFF),
	}
}

// BuildModel emits d into a model.Document, with footnotes and endnotes in
// reference order.
func BuildModel(d *Document) (*model.Document, error) {
	out := NewModelOutput()
	cb := &SequentialCallbacks{}
	if err := d.Emit(out, cb); err != nil {
		return nil, err
	}
	doc := out.Document()
	for _, n := range cb.Notes {
		no := NewModelOutput()
		if err := d.EmitNote(n, no, &SequentialCallbacks{}); err != nil {
			return nil, err
		}
		doc.Notes = append(doc.Notes, &model.Note{
			Kind:     n.Kind.String(),
			Index:    n.Index,
			Elements: no.Document().Elements,
		})
	}
	return doc, nil
}
