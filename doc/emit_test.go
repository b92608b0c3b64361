package doc

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/tsawler/wordbin/internal/wordtest"
	"github.com/tsawler/wordbin/model"
)

func firstParagraph(t *testing.T, doc *model.Document) *model.Paragraph {
	t.Helper()
	for _, e := range doc.Elements {
		if p, ok := e.(*model.Paragraph); ok {
			return p
		}
	}
	t.Fatalf("no paragraph in %d elements", len(doc.Elements))
	return nil
}

func paras(texts ...string) []wordtest.Paragraph {
	out := make([]wordtest.Paragraph, len(texts))
	for i, s := range texts {
		out[i] = wordtest.P(s)
	}
	return out
}

func TestEliminateEmptyDocParts(t *testing.T) {
	tests := []struct {
		name      string
		paras     []wordtest.Paragraph
		want      string
		survivors int
	}{
		{"empty between", paras("Hello", "", "World"), "Hello\nWorld\n", 2},
		{"several empty", paras("Hello", "", " ", "", "World"), "Hello\nWorld\n", 2},
		{"leading empty", paras("", "", "Hello"), "Hello\n", 1},
		{"trailing empty survives", paras("Hello", ""), "Hello\n\n", 2},
		{"only empty", paras(""), "\n", 1},
		{"field code only", paras(wordtest.Field(" TOC ", ""), "Next"), "Next\n", 1},
		{"field without result", paras("A", "\x13 XE foo \x15Hello", "B"), "A\nHello\nB\n", 3},
		{"nested field code", paras("A", "\x13 IF \x13 PAGE \x14 1\x15 = 1 \x15Tail", "B"), "A\nTail\nB\n", 3},
		{"nested field only", paras("A", "\x13 IF \x13 PAGE \x14 1\x15 = 1 \x15", "B"), "A\nB\n", 2},
		{"non-breaking space", paras("A", " ", "B"), "A\nB\n", 2},
		{"page break kept", paras("A", "\f", "B"), "A\n\n\nB\n", 3},
		{
			"hidden paragraph",
			[]wordtest.Paragraph{
				wordtest.P("A"),
				{Runs: []wordtest.Run{wordtest.R("secret", wordtest.Hidden())}, MarkChpx: wordtest.Hidden()},
				wordtest.P("B"),
			},
			"A\nB\n",
			2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := build(t, &wordtest.Document{Paragraphs: tt.paras})
			if got := plainText(t, d); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
			n := 0
			for _, p := range d.Chain(d.Stories()[0].First) {
				if p.Survivor() {
					n++
				}
			}
			if n != tt.survivors {
				t.Errorf("survivors = %d, want %d", n, tt.survivors)
			}
		})
	}
}

func TestEliminateEmptyDocParts_Anchors(t *testing.T) {
	d := build(t, &wordtest.Document{
		Paragraphs: paras("Hello", "", "World"),
		Bookmarks:  []wordtest.Bookmark{{Name: "gap", Start: 6, Limit: 6}},
	})
	chain := d.Chain(d.Stories()[0].First)
	if len(chain) != 3 {
		t.Fatalf("len(chain) = %d, want 3", len(chain))
	}
	if !chain[1].Survivor() {
		t.Error("empty paragraph with an anchor was eliminated")
	}
}

func TestEliminateEmptyDocParts_Padding(t *testing.T) {
	d := build(t, &wordtest.Document{Paragraphs: paras("", "Hello", "", "World")})
	chain := d.Chain(d.Stories()[0].First)
	if len(chain) != 4 {
		t.Fatalf("len(chain) = %d, want 4", len(chain))
	}
	hello, world := chain[1], chain[3]
	if hello.PadTop != 240 || hello.PadBottom != 240 {
		t.Errorf("Hello padding = %d/%d, want 240/240", hello.PadTop, hello.PadBottom)
	}
	if d.Find(chain[0].ID) != hello.ID || d.Find(chain[2].ID) != hello.ID {
		t.Error("empty paragraphs not folded into Hello")
	}
	if world.PadTop != 0 {
		t.Errorf("World PadTop = %d, want 0", world.PadTop)
	}

	info := d.GetParagraphCollapseInfo(chain[2])
	if !info.Collapsible || info.Height != 240 || info.AllHidden {
		t.Errorf("GetParagraphCollapseInfo() = %+v", info)
	}

	doc, err := BuildModel(d)
	if err != nil {
		t.Fatalf("BuildModel() error = %v", err)
	}
	p := firstParagraph(t, doc)
	if p.Text != "Hello" || p.SpaceBefore != 12 || p.SpaceAfter != 12 {
		t.Errorf("paragraph = %q before %v after %v", p.Text, p.SpaceBefore, p.SpaceAfter)
	}
}

func TestEmit_OutputIDs(t *testing.T) {
	d := build(t, &wordtest.Document{Paragraphs: paras("One", "", "Two")})
	cb := &recorder{}
	if err := d.Emit(NewTextOutput(), cb); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	chain := d.Chain(d.Stories()[0].First)
	if chain[0].OutputID != 1 || chain[2].OutputID != 2 {
		t.Errorf("OutputIDs = %d, %d", chain[0].OutputID, chain[2].OutputID)
	}
	if chain[1].OutputID != chain[0].OutputID {
		t.Errorf("eliminated part OutputID = %d, want its master's %d", chain[1].OutputID, chain[0].OutputID)
	}
	if len(cb.registered) != 2 || !cb.registered[0].top {
		t.Errorf("registered = %+v", cb.registered)
	}
}

// recorder records callbacks and renders PAGE fields itself.
type recorder struct {
	SequentialCallbacks
	registered []registration
	fields     []string
}

type registration struct {
	top   bool
	toc   int
	split bool
}

func (r *recorder) RegisterOutputObject(id PartID, top bool, toc int, split, hidden bool) int {
	r.registered = append(r.registered, registration{top: top, toc: toc, split: split})
	return r.SequentialCallbacks.RegisterOutputObject(id, top, toc, split, hidden)
}

func (r *recorder) PrivateFieldCallback(code string, out FormattedOutput) bool {
	r.fields = append(r.fields, code)
	if fieldName(code) == "PAGE" {
		out.WriteString("#")
		return true
	}
	return false
}

type styleFilter map[string]StyleSettings

func (f styleFilter) StyleSettings(id string) StyleSettings { return f[id] }

func TestEmit_Headings(t *testing.T) {
	wd := &wordtest.Document{Paragraphs: []wordtest.Paragraph{
		wordtest.Styled(1, "Title"),
		wordtest.P("Body"),
		wordtest.Styled(2, "Part"),
	}}
	d := build(t, wd)
	doc, err := BuildModel(d)
	if err != nil {
		t.Fatalf("BuildModel() error = %v", err)
	}
	if len(doc.Elements) != 3 {
		t.Fatalf("len(Elements) = %d, want 3", len(doc.Elements))
	}
	h, ok := doc.Elements[0].(*model.Heading)
	if !ok {
		t.Fatalf("Elements[0] = %T, want *model.Heading", doc.Elements[0])
	}
	if h.Text != "Title" || h.Level != 1 || h.StyleID != "heading-1" || !h.Style.Bold || h.FontSize != 16 {
		t.Errorf("heading = %+v", h)
	}
	if h2, ok := doc.Elements[2].(*model.Heading); !ok || h2.Level != 2 {
		t.Errorf("Elements[2] = %+v, want level 2 heading", doc.Elements[2])
	}

	cb := &recorder{}
	d = build(t, wd, WithStyleFilter(styleFilter{"heading-2": {TOCLevel: 5, Split: true}}))
	if err := d.Emit(NewTextOutput(), cb); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	want := []registration{{true, 1, false}, {true, 0, false}, {true, 5, true}}
	if len(cb.registered) != len(want) {
		t.Fatalf("registered = %+v", cb.registered)
	}
	for i := range want {
		if cb.registered[i] != want[i] {
			t.Errorf("registered[%d] = %+v, want %+v", i, cb.registered[i], want[i])
		}
	}
}

func TestEmit_StyleFilter(t *testing.T) {
	wd := &wordtest.Document{Paragraphs: []wordtest.Paragraph{
		wordtest.Styled(1, "Title"),
		wordtest.Runs(wordtest.R("Shown "), wordtest.R("hidden", wordtest.Hidden())),
	}}
	tests := []struct {
		name   string
		filter styleFilter
		want   string
	}{
		{"none", nil, "Title\nShown \n"},
		{"hide headings", styleFilter{"heading-1": {Hide: true}}, "Shown \n"},
		{"show hidden", styleFilter{"normal": {ShowHidden: true}}, "Title\nShown hidden\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.filter != nil {
				opts = append(opts, WithStyleFilter(tt.filter))
			}
			d := build(t, wd, opts...)
			if got := plainText(t, d); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmit_Formatting(t *testing.T) {
	d := build(t, &wordtest.Document{Paragraphs: []wordtest.Paragraph{
		wordtest.Runs(
			wordtest.R("plain "),
			wordtest.R("bold", wordtest.Bold()),
			wordtest.R(" and "),
			wordtest.R("italic", wordtest.Italic()),
			wordtest.R(" strong", wordtest.CharStyle(3)),
			wordtest.R(" red", wordtest.Color(0xFF0000)),
		),
		wordtest.P("centered", wordtest.Justify(1), wordtest.SpaceBefore(120)),
	}})
	doc, err := BuildModel(d)
	if err != nil {
		t.Fatalf("BuildModel() error = %v", err)
	}
	p := firstParagraph(t, doc)
	if p.Text != "plain bold and italic strong red" {
		t.Fatalf("Text = %q", p.Text)
	}
	want := []struct {
		text   string
		bold   bool
		italic bool
		color  model.Color
	}{
		{"plain ", false, false, model.RGB(0)},
		{"bold", true, false, model.RGB(0)},
		{" and ", false, false, model.RGB(0)},
		{"italic", false, true, model.RGB(0)},
		{" strong", true, false, model.RGB(0)},
		{" red", false, false, model.RGB(0xFF0000)},
	}
	if len(p.Runs) != len(want) {
		t.Fatalf("Runs = %+v", p.Runs)
	}
	for i, w := range want {
		r := p.Runs[i]
		if r.Text != w.text || r.Style.Bold != w.bold || r.Style.Italic != w.italic || r.Style.Color != w.color {
			t.Errorf("Runs[%d] = %+v, want %+v", i, r, w)
		}
	}

	c, ok := doc.Elements[1].(*model.Paragraph)
	if !ok {
		t.Fatalf("Elements[1] = %T", doc.Elements[1])
	}
	if c.Alignment != model.ParseAlignment("center") || c.SpaceBefore != 6 {
		t.Errorf("centered paragraph = %+v", c)
	}
}

// formatLog records formatting changes.
type formatLog struct {
	TextOutput
	formats []CharFormat
	styles  []StyleInfo
}

func (f *formatLog) ChangeFormatting(c CharFormat) { f.formats = append(f.formats, c) }

func (f *formatLog) PredefineStyle(s StyleInfo) { f.styles = append(f.styles, s) }

func TestEmit_ContrastColor(t *testing.T) {
	d := build(t, &wordtest.Document{Paragraphs: paras("auto")})
	out := &formatLog{}
	if err := d.Emit(out, nil); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if len(out.styles) != 4 {
		t.Errorf("predefined %d styles, want 4", len(out.styles))
	}
	if len(out.formats) == 0 {
		t.Fatal("no formatting announced")
	}
	if c := out.formats[0].Color; c != 0x000000 {
		t.Errorf("auto color on white = %06X, want black", uint32(c))
	}
	if got := contrastColor(0x101010); got != 0xFFFFFF {
		t.Errorf("contrastColor(dark) = %06X", uint32(got))
	}
}

func TestTrackChanges(t *testing.T) {
	wd := &wordtest.Document{Paragraphs: []wordtest.Paragraph{
		wordtest.Runs(
			wordtest.R("kept "),
			wordtest.R("added ", wordtest.Inserted()),
			wordtest.R("removed ", wordtest.Deleted()),
			wordtest.R("end"),
		),
		{Runs: []wordtest.Run{wordtest.R("joined")}, MarkChpx: wordtest.Deleted()},
		wordtest.P("paragraph"),
	}}
	tests := []struct {
		mode TrackChanges
		want string
	}{
		{TrackFinal, "kept added end\njoinedparagraph\n"},
		{TrackOriginal, "kept removed end\njoined\nparagraph\n"},
		{TrackMarkup, "kept added removed end\njoined\nparagraph\n"},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			d := build(t, wd, WithTrackChanges(tt.mode))
			if got := plainText(t, d); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFields(t *testing.T) {
	link := wordtest.Field(` HYPERLINK "http://example.com/" `, "site")
	tests := []struct {
		name    string
		text    string
		noTable bool
		cb      Callbacks
		want    string
	}{
		{"result shown", "Page " + wordtest.Field(" PAGE ", "3"), false, nil, "Page 3\n"},
		{"private field", "Page " + wordtest.Field(" PAGE ", "3"), false, &recorder{}, "Page #\n"},
		{"no result", "A" + wordtest.Field(" XE \"entry\" ", "") + "B", false, nil, "AB\n"},
		{"hyperlink", "Visit " + link + ".", false, nil, "Visit site.\n"},
		{"scanned without table", "Visit " + link + ".", true, nil, "Visit site.\n"},
		{
			"nested",
			wordtest.Field(" IF "+wordtest.Field(" PAGE ", "1")+" = 1 ", "first") + "!",
			false, nil, "first!\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := build(t, &wordtest.Document{Paragraphs: paras(tt.text), NoFieldTable: tt.noTable})
			out := NewTextOutput()
			if err := d.Emit(out, tt.cb); err != nil {
				t.Fatalf("Emit() error = %v", err)
			}
			if got := out.String(); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFields_HyperlinkModel(t *testing.T) {
	d := build(t, &wordtest.Document{
		Paragraphs: paras(
			"Visit "+wordtest.Field(` HYPERLINK "http://example.com/" `, "site")+".",
			"See "+wordtest.Field(` HYPERLINK \l "Intro Section" `, "intro"),
		),
	})
	doc, err := BuildModel(d)
	if err != nil {
		t.Fatalf("BuildModel() error = %v", err)
	}
	p := doc.Elements[0].(*model.Paragraph)
	if len(p.Links) != 1 || p.Links[0].Target != "http://example.com/" || p.Links[0].Text != "site" {
		t.Errorf("Links = %+v", p.Links)
	}
	if len(p.Runs) != 3 || p.Runs[1].Link != "http://example.com/" || p.Runs[2].Link != "" {
		t.Errorf("Runs = %+v", p.Runs)
	}
	p = doc.Elements[1].(*model.Paragraph)
	if len(p.Links) != 1 || p.Links[0].Target != "#intro-section" {
		t.Errorf("local Links = %+v", p.Links)
	}
}

func TestHyperlinkTarget(t *testing.T) {
	tests := []struct {
		code string
		want string
		ok   bool
	}{
		{`HYPERLINK "http://a.example/"`, "http://a.example/", true},
		{`hyperlink http://a.example/ \o "tip"`, "http://a.example/", true},
		{`HYPERLINK \l "My Mark"`, "#my-mark", true},
		{`HYPERLINK "doc.htm" \l "Part 2"`, "doc.htm#part-2", true},
		{`HYPERLINK`, "", false},
		{`PAGE`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, ok := hyperlinkTarget(tt.code)
			if got != tt.want || ok != tt.ok {
				t.Errorf("hyperlinkTarget(%q) = %q, %v, want %q, %v", tt.code, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFieldTokens(t *testing.T) {
	got := fieldTokens(`HYPERLINK  "a b" \l x`)
	want := []string{"HYPERLINK", "a b", `\l`, "x"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("fieldTokens() = %q, want %q", got, want)
	}
}

func TestNotes(t *testing.T) {
	wd := &wordtest.Document{
		Paragraphs: []wordtest.Paragraph{
			wordtest.Runs(wordtest.R("Text"), wordtest.FootnoteRef(), wordtest.R(" more"), wordtest.EndnoteRef()),
			wordtest.Runs(wordtest.R("Again"), wordtest.FootnoteRef()),
		},
		Footnotes: [][]wordtest.Paragraph{paras("First note"), paras("Second note")},
		Endnotes:  [][]wordtest.Paragraph{paras("The end")},
	}
	d := build(t, wd)
	notes := d.Notes()
	if len(notes) != 3 {
		t.Fatalf("len(Notes()) = %d, want 3", len(notes))
	}
	if notes[0].Kind != Footnote || notes[0].Index != 1 || notes[0].RefCP != 4 || !notes[0].AutoNumbered {
		t.Errorf("Notes()[0] = %+v", notes[0])
	}
	if notes[2].Kind != Endnote || notes[2].Index != 1 {
		t.Errorf("Notes()[2] = %+v", notes[2])
	}

	cb := &SequentialCallbacks{}
	out := NewTextOutput()
	if err := d.Emit(out, cb); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if got := out.String(); got != "Text1 more1\nAgain2\n" {
		t.Errorf("text = %q", got)
	}
	if len(cb.Notes) != 3 {
		t.Fatalf("found %d notes, want 3", len(cb.Notes))
	}

	no := NewTextOutput()
	if err := d.EmitNote(cb.Notes[2], no, nil); err != nil {
		t.Fatalf("EmitNote() error = %v", err)
	}
	if got := no.String(); got != "Second note\n" {
		t.Errorf("EmitNote() = %q", got)
	}

	story := NewTextOutput()
	if err := d.EmitStory(StoryEndnote, story, nil); err != nil {
		t.Fatalf("EmitStory() error = %v", err)
	}
	if !strings.HasPrefix(story.String(), "The end\n") {
		t.Errorf("EmitStory(endnotes) = %q", story.String())
	}

	doc, err := BuildModel(d)
	if err != nil {
		t.Fatalf("BuildModel() error = %v", err)
	}
	if len(doc.Notes) != 3 {
		t.Fatalf("len(doc.Notes) = %d, want 3", len(doc.Notes))
	}
	if n := doc.Notes[1]; n.Kind != "endnote" || n.GetText() != "The end\n" {
		t.Errorf("doc.Notes[1] = %s %q", n.Kind, n.GetText())
	}
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestPictures(t *testing.T) {
	wd := &wordtest.Document{}
	off := wd.AddPicture(testPNG(t), 1440, 720)
	wd.Paragraphs = []wordtest.Paragraph{
		wordtest.Runs(wordtest.R("See "), wordtest.Picture(off)),
		wordtest.Runs(wordtest.Picture(off + 9999)),
		wordtest.P("end"),
	}
	d := build(t, wd)
	out := NewTextOutput()
	if err := d.Emit(out, nil); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if len(out.Images) != 1 {
		t.Fatalf("len(Images) = %d, want 1", len(out.Images))
	}
	img := out.Images[0]
	if img.MIME != "image/png" || img.Ext != "png" || img.Width != 2 || img.Height != 1 {
		t.Errorf("image = %s %s %dx%d", img.MIME, img.Ext, img.Width, img.Height)
	}
	if img.GoalWidth != 1440 || img.GoalHeight != 720 || img.CP != 4 {
		t.Errorf("goal = %dx%d at %d", img.GoalWidth, img.GoalHeight, img.CP)
	}
	if d.Diagnostics().UnreadablePictures != 1 {
		t.Errorf("UnreadablePictures = %d, want 1", d.Diagnostics().UnreadablePictures)
	}

	doc, err := BuildModel(d)
	if err != nil {
		t.Fatalf("BuildModel() error = %v", err)
	}
	if len(doc.Elements) < 2 {
		t.Fatalf("len(Elements) = %d", len(doc.Elements))
	}
	mi, ok := doc.Elements[1].(*model.Image)
	if !ok {
		t.Fatalf("Elements[1] = %T, want *model.Image", doc.Elements[1])
	}
	if mi.DisplayWidth != 72 || mi.DisplayHeight != 36 {
		t.Errorf("display size = %vx%v, want 72x36", mi.DisplayWidth, mi.DisplayHeight)
	}
}

func TestDibToBMP(t *testing.T) {
	dib := make([]byte, 40+4)
	dib[0] = 40
	dib[14] = 24
	bmp := dibToBMP(dib)
	if string(bmp[:2]) != "BM" || len(bmp) != 14+len(dib) {
		t.Fatalf("dibToBMP() header = %q, len %d", bmp[:2], len(bmp))
	}
	if off := uint32(bmp[10]) | uint32(bmp[11])<<8; off != 54 {
		t.Errorf("pixel offset = %d, want 54", off)
	}
}
