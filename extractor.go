package wordbin

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tsawler/wordbin/config"
	"github.com/tsawler/wordbin/doc"
	"github.com/tsawler/wordbin/format"
	"github.com/tsawler/wordbin/model"
	"github.com/tsawler/wordbin/ole"
)

// Extractor provides a fluent interface for extracting content from binary
// Word documents. Each configuration method returns a new Extractor
// instance, allowing method chaining without shared state.
type Extractor struct {
	// Source, only one is set
	filename  string
	container doc.Container

	// Lifecycle
	document  *doc.Document
	ownsDoc   bool // true if we decoded the document and should close it
	docOpened bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:  e.filename,
		container: e.container,
		document:  e.document,
		ownsDoc:   e.ownsDoc,
		docOpened: e.docOpened,
		options:   e.options.clone(),
		err:       e.err,
		warnings:  append([]Warning(nil), e.warnings...),
	}
}

// ensureDocument decodes the document if not already done.
func (e *Extractor) ensureDocument() error {
	if e.docOpened {
		return nil
	}
	c := e.container
	if c == nil {
		if e.filename == "" {
			return fmt.Errorf("no filename specified")
		}
		f, err := e.openFile()
		if err != nil {
			return err
		}
		// streams are copied out during decoding
		defer f.Close()
		c = f
	}
	d, err := doc.Open(c, e.options.docOptions()...)
	if err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	e.document = d
	e.ownsDoc = true
	e.docOpened = true
	e.warnings = append(e.warnings, warningsFrom(d.Warnings())...)
	return nil
}

// openFile checks that filename holds a binary Word document and opens its
// compound file.
func (e *Extractor) openFile() (*ole.File, error) {
	f, err := os.Open(e.filename)
	if err != nil {
		return nil, err
	}
	if !e.options.skipCheck {
		st, err := f.Stat()
		if err != nil {
			return nil, multierr.Append(err, f.Close())
		}
		if err := format.Check(f, st.Size()); err != nil {
			return nil, multierr.Append(fmt.Errorf("%s: %w", e.filename, err), f.Close())
		}
	}
	cf, err := ole.New(f, f, e.options.log)
	if err != nil {
		return nil, multierr.Append(err, f.Close())
	}
	return cf, nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsDoc && e.document != nil {
		err := e.document.Close()
		e.document = nil
		e.ownsDoc = false
		e.docOpened = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// WithLogger sets the logger decoding diagnostics are written to.
func (e *Extractor) WithLogger(log *zap.Logger) *Extractor {
	newExt := e.clone()
	if log != nil {
		newExt.options.log = log
	}
	return newExt
}

// WithProfile applies a decoding profile: track changes mode and per-style
// settings.
//
// Example:
//
//	p, err := config.LoadProfile("profile.yaml")
//	text, _, err := wordbin.Open("document.doc").WithProfile(p).Text()
func (e *Extractor) WithProfile(p *config.Profile) *Extractor {
	newExt := e.clone()
	newExt.options.profile = p
	return newExt
}

// TrackChanges selects how revision marks are rendered, overriding the
// profile.
func (e *Extractor) TrackChanges(t doc.TrackChanges) *Extractor {
	newExt := e.clone()
	newExt.options.track = &t
	return newExt
}

// Styles sets the per-style settings source, overriding the profile.
func (e *Extractor) Styles(f doc.StyleFilter) *Extractor {
	newExt := e.clone()
	newExt.options.styles = f
	return newExt
}

// ExcludeNotes leaves footnotes and endnotes out of the output.
func (e *Extractor) ExcludeNotes() *Extractor {
	newExt := e.clone()
	newExt.options.excludeNotes = true
	return newExt
}

// SkipFormatCheck opens files without sniffing their content first.
func (e *Extractor) SkipFormatCheck() *Extractor {
	newExt := e.clone()
	newExt.options.skipCheck = true
	return newExt
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// Text extracts and returns the text of the document. Paragraphs end with a
// newline, table cells are separated by tabs. Notes follow the main text,
// each prefixed with its number in brackets.
// This is a terminal operation that closes the decoded document.
//
// Example:
//
//	text, warnings, err := wordbin.Open("document.doc").Text()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", wordbin.FormatWarnings(warnings))
//	}
func (e *Extractor) Text() (string, []Warning, error) {
	if e.err != nil {
		return "", nil, e.err
	}
	if err := e.ensureDocument(); err != nil {
		return "", nil, err
	}
	defer e.Close()

	out := doc.NewTextOutput()
	cb := &doc.SequentialCallbacks{}
	if err := e.document.Emit(out, cb); err != nil {
		return "", e.warnings, err
	}
	var sb strings.Builder
	sb.WriteString(out.String())
	if e.options.excludeNotes {
		return sb.String(), e.warnings, nil
	}
	for _, n := range cb.Notes {
		no := doc.NewTextOutput()
		if err := e.document.EmitNote(n, no, nil); err != nil {
			return "", e.warnings, err
		}
		sb.WriteString("\n[" + strconv.Itoa(n.Index) + "] ")
		sb.WriteString(strings.TrimSpace(no.String()))
	}
	if len(cb.Notes) > 0 {
		sb.WriteByte('\n')
	}
	return sb.String(), e.warnings, nil
}

// Document extracts the content as a model.Document: headings, paragraphs,
// lists, tables and pictures in reading order, plus notes.
// This is a terminal operation that closes the decoded document.
//
// Example:
//
//	d, warnings, err := wordbin.Open("document.doc").Document()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, h := range d.Headings() {
//	    fmt.Println(h.Level, h.Text)
//	}
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureDocument(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	md, err := doc.BuildModel(e.document)
	if err != nil {
		return nil, e.warnings, err
	}
	if e.options.excludeNotes {
		md.Notes = nil
	}
	md.Metadata.Language = languageTag(e.document.Fib().Lid)
	return md, e.warnings, nil
}

// ToMarkdown extracts the content and renders it as markdown.
// This is a terminal operation that closes the decoded document.
func (e *Extractor) ToMarkdown() (string, []Warning, error) {
	md, warnings, err := e.Document()
	if err != nil {
		return "", warnings, err
	}
	return Markdown(md), warnings, nil
}

// Images returns the pictures of the main text in document order.
// This is a terminal operation that closes the decoded document.
func (e *Extractor) Images() ([]doc.Image, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureDocument(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	out := doc.NewTextOutput()
	if err := e.document.Emit(out, nil); err != nil {
		return nil, e.warnings, err
	}
	return out.Images, e.warnings, nil
}

// Info describes a decoded document.
type Info struct {
	Version    uint16 // nFib
	Language   string
	Characters uint32 // main text length in characters
	Pieces     int
	Styles     int
	Fonts      int
	Lists      int
	Bookmarks  int
	Footnotes  int
	Endnotes   int
	Sections   int
	Complex    bool // saved with fast save
}

// Info returns summary information about the document. It does not close
// the decoded document, allowing further operations.
func (e *Extractor) Info() (Info, error) {
	if e.err != nil {
		return Info{}, e.err
	}
	if err := e.ensureDocument(); err != nil {
		return Info{}, err
	}
	d := e.document
	f := d.Fib()
	info := Info{
		Version:    f.NFib,
		Language:   languageTag(f.Lid),
		Characters: f.CcpText,
		Pieces:     len(d.Pieces().Pieces),
		Styles:     d.Styles().Len(),
		Fonts:      d.Fonts().Len(),
		Lists:      len(d.Lists().Overrides),
		Bookmarks:  len(d.Bookmarks().Bookmarks()),
		Sections:   len(d.Sections()),
		Complex:    f.Complex,
	}
	for _, n := range d.Notes() {
		if n.Kind == doc.Endnote {
			info.Endnotes++
		} else {
			info.Footnotes++
		}
	}
	return info, nil
}

// Diagnostics returns the counters of local corruptions recovered from
// while decoding. It does not close the decoded document.
func (e *Extractor) Diagnostics() (doc.Diagnostics, error) {
	if e.err != nil {
		return doc.Diagnostics{}, e.err
	}
	if err := e.ensureDocument(); err != nil {
		return doc.Diagnostics{}, err
	}
	return e.document.Diagnostics(), nil
}
