package wordbin

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/tsawler/wordbin/doc"
	"github.com/tsawler/wordbin/internal/wordtest"
	"github.com/tsawler/wordbin/model"
)

func sampleDoc() *wordtest.Document {
	return &wordtest.Document{
		Paragraphs: []wordtest.Paragraph{
			wordtest.Styled(1, "Report"),
			wordtest.Runs(wordtest.R("Plain and "), wordtest.R("bold", wordtest.Bold()), wordtest.R("."), wordtest.FootnoteRef()),
			wordtest.Runs(wordtest.R("kept "), wordtest.R("new", wordtest.Inserted()), wordtest.R("old", wordtest.Deleted())),
		},
		Footnotes: [][]wordtest.Paragraph{{wordtest.P("A note")}},
		Lid:       0x0409,
	}
}

func extractor(t *testing.T, wd *wordtest.Document) *Extractor {
	t.Helper()
	return FromContainer(doc.NewMemContainer(wd.Streams())).WithLogger(zaptest.NewLogger(t))
}

func TestExtractor_Text(t *testing.T) {
	tests := []struct {
		name string
		ext  func(*Extractor) *Extractor
		want string
	}{
		{"default", func(e *Extractor) *Extractor { return e }, "Report\nPlain and bold.1\nkept new\n\n[1] A note\n"},
		{"exclude notes", (*Extractor).ExcludeNotes, "Report\nPlain and bold.1\nkept new\n"},
		{
			"original",
			func(e *Extractor) *Extractor { return e.TrackChanges(doc.TrackOriginal).ExcludeNotes() },
			"Report\nPlain and bold.1\nkept old\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, warnings, err := tt.ext(extractor(t, sampleDoc())).Text()
			if err != nil {
				t.Fatalf("Text() error = %v", err)
			}
			if text != tt.want {
				t.Errorf("Text() = %q, want %q", text, tt.want)
			}
			if len(warnings) != 0 {
				t.Errorf("warnings = %v", warnings)
			}
		})
	}
}

func TestExtractor_Immutable(t *testing.T) {
	base := extractor(t, sampleDoc())
	_ = base.ExcludeNotes().TrackChanges(doc.TrackMarkup)
	if base.options.excludeNotes || base.options.track != nil {
		t.Error("configuration methods modified the receiver")
	}
}

func TestExtractor_Document(t *testing.T) {
	md, _, err := extractor(t, sampleDoc()).Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if md.Metadata.Language != "en-US" {
		t.Errorf("Language = %q, want en-US", md.Metadata.Language)
	}
	if hs := md.Headings(); len(hs) != 1 || hs[0].Text != "Report" {
		t.Errorf("Headings() = %+v", hs)
	}
	if len(md.Notes) != 1 || md.Notes[0].Index != 1 {
		t.Errorf("Notes = %+v", md.Notes)
	}

	md, _, err = extractor(t, sampleDoc()).ExcludeNotes().Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if md.Notes != nil {
		t.Errorf("Notes = %+v, want none", md.Notes)
	}
}

func TestExtractor_ToMarkdown(t *testing.T) {
	got, _, err := extractor(t, sampleDoc()).ToMarkdown()
	if err != nil {
		t.Fatalf("ToMarkdown() error = %v", err)
	}
	for _, want := range []string{"# Report\n", "Plain and **bold**.1", "[^1]: A note\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("ToMarkdown() = %q, missing %q", got, want)
		}
	}
}

func TestExtractor_Info(t *testing.T) {
	e := extractor(t, sampleDoc())
	info, err := e.Info()
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if info.Language != "en-US" || info.Footnotes != 1 || info.Endnotes != 0 || info.Styles != 4 || info.Fonts != 3 {
		t.Errorf("Info() = %+v", info)
	}
	if info.Characters == 0 || info.Pieces != 1 || info.Version != 0xC1 {
		t.Errorf("Info() = %+v", info)
	}

	diag, err := e.Diagnostics()
	if err != nil {
		t.Fatalf("Diagnostics() error = %v", err)
	}
	if len(diag.Warnings()) != 0 {
		t.Errorf("Diagnostics() warnings = %v", diag.Warnings())
	}
	if err := e.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestExtractor_Images(t *testing.T) {
	wd := &wordtest.Document{}
	off := wd.AddPicture([]byte("\x89PNG\r\n\x1a\n not really"), 720, 720)
	wd.Paragraphs = []wordtest.Paragraph{wordtest.Runs(wordtest.R("pic "), wordtest.Picture(off))}
	images, _, err := extractor(t, wd).Images()
	if err != nil {
		t.Fatalf("Images() error = %v", err)
	}
	if len(images) != 1 || images[0].MIME != "image/png" || images[0].Width != 0 {
		t.Errorf("Images() = %+v", images)
	}
}

func TestFromDocument(t *testing.T) {
	d, err := doc.Open(doc.NewMemContainer(sampleDoc().Streams()), doc.WithLogger(zaptest.NewLogger(t)))
	if err != nil {
		t.Fatalf("doc.Open() error = %v", err)
	}
	defer d.Close()
	text, _, err := FromDocument(d).ExcludeNotes().Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if !strings.HasPrefix(text, "Report\n") {
		t.Errorf("Text() = %q", text)
	}
	if err := d.Emit(doc.NewTextOutput(), nil); err != nil {
		t.Errorf("Emit() after Text() error = %v, want the document left open", err)
	}
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()
	notDoc := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notDoc, []byte("just some text, not a compound file"), 0o644); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.doc")},
		{"not a word file", notDoc},
		{"no filename", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Open(tt.path).Text(); err == nil {
				t.Error("Text() error = nil, want error")
			}
		})
	}
}

func TestLanguageTag(t *testing.T) {
	tests := []struct {
		lid  uint16
		want string
	}{
		{0x0409, "en-US"},
		{0x0809, "en-GB"},
		{0x0407, "de-DE"},
		{0x0413, "nl"},
		{0x0419, "ru"},
		{0x0000, ""},
		{0x03FF, ""},
	}
	for _, tt := range tests {
		if got := languageTag(tt.lid); got != tt.want {
			t.Errorf("languageTag(%#04x) = %q, want %q", tt.lid, got, tt.want)
		}
	}
}

func TestFormatWarnings(t *testing.T) {
	got := FormatWarnings(warningsFrom([]string{"first", "second"}))
	if got != "first; second" {
		t.Errorf("FormatWarnings() = %q", got)
	}
	if warningsFrom(nil) != nil {
		t.Error("warningsFrom(nil) should be nil")
	}
}

func TestMarkdown(t *testing.T) {
	d := model.NewDocument()
	d.AddElement(&model.Heading{Text: "Title", Level: 8})
	d.AddElement(&model.Paragraph{Text: "x", Runs: []model.Run{
		{Text: "see "},
		{Text: "here", Style: model.TextStyle{Bold: true, Italic: true}, Link: "http://a.example/"},
	}})
	d.AddElement(&model.List{Ordered: true, Items: []model.ListItem{{Text: "one"}, {Text: "sub", Level: 1}}})
	d.AddElement(&model.List{Items: []model.ListItem{{Text: "dot"}}})
	d.AddElement(&model.Image{Name: "pic.png"})
	d.Notes = []*model.Note{{Kind: "endnote", Index: 2, Elements: []model.Element{&model.Paragraph{Text: "tail"}}}}

	want := "###### Title\n\n" +
		"see [***here***](http://a.example/)\n\n" +
		"1. one\n  2. sub\n\n" +
		"- dot\n\n" +
		"![](pic.png)\n\n" +
		"[^e2]: tail\n"
	if got := Markdown(d); got != want {
		t.Errorf("Markdown() =\n%q\nwant\n%q", got, want)
	}
}
