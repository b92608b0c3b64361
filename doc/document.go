// Package doc decodes legacy binary Word documents (Word 97 and later) from
// a compound-file container and replays them, in document order, into a
// FormattedOutput sink.
//
// Decoding happens entirely in Open: the piece table, formatting runs,
// styles, lists and tables are resolved and the paragraph tree is built
// before any sink is called. A structural corruption fails Open; local
// corruptions are counted in Diagnostics and decoding goes on.
package doc

import (
	"bytes"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/tsawler/wordbin/sprm"
)

// ErrClosed is returned by operations on a closed document.
var ErrClosed = errors.New("doc: document is closed")

type options struct {
	log    *zap.Logger
	track  TrackChanges
	filter StyleFilter
}

// Option configures Open.
type Option func(*options)

// WithLogger sets the logger for diagnostics. The default discards them.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithTrackChanges selects how revision marks are rendered.
func WithTrackChanges(t TrackChanges) Option {
	return func(o *options) { o.track = t }
}

// WithStyleFilter sets the per-style settings source.
func WithStyleFilter(f StyleFilter) Option {
	return func(o *options) { o.filter = f }
}

// Document is a decoded binary Word document. It is not safe for concurrent
// use; independent documents may be used from different goroutines.
type Document struct {
	log  *zap.Logger
	opts options

	fib   *Fib
	word  []byte
	table []byte
	data  []byte

	interp  *sprm.Interpreter
	grpprls grpprlCache
	pieces  *PieceTable
	chpx    *charRunTable
	papx    *paraRunTable

	styles    *StyleSheet
	fonts     *FontTable
	lists     *ListTable
	bookmarks *BookmarkTable
	fields    *fieldTable
	notes     []Note
	noteRefs  map[uint32]Note
	sections  []Section

	parts     partArena
	stories   []Story
	collapsed map[PartID]CollapseInfo

	diag       Diagnostics
	registered bool
	closed     bool
}

// Open decodes the document held by c. The container's streams are read
// completely and closed before Open returns.
func Open(c Container, opts ...Option) (*Document, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	d := &Document{
		log:       o.log,
		opts:      o,
		noteRefs:  make(map[uint32]Note),
		collapsed: make(map[PartID]CollapseInfo),
	}
	if err := d.load(c); err != nil {
		return nil, err
	}
	if err := d.decode(); err != nil {
		return nil, err
	}
	d.log.Debug("Document decoded",
		zap.Int("pieces", len(d.pieces.Pieces)),
		zap.Int("styles", d.styles.Len()),
		zap.Int("parts", d.parts.Len()),
		zap.Int("warnings", len(d.Warnings())))
	return d, nil
}

// load reads the streams and the FIB.
func (d *Document) load(c Container) error {
	var err error
	if d.word, err = readStream(c, StreamWordDocument, true); err != nil {
		return err
	}
	if d.fib, err = ParseFib(d.word); err != nil {
		return err
	}
	if d.table, err = readStream(c, d.fib.TableStream(), true); err != nil {
		return err
	}
	if d.data, err = readStream(c, StreamData, false); err != nil {
		return err
	}
	var data io.ReaderAt
	if len(d.data) > 0 {
		data = bytes.NewReader(d.data)
	}
	d.interp = sprm.NewInterpreter(d.log, data)
	return nil
}

// decode runs the parse and analysis pipeline.
func (d *Document) decode() error {
	f, tbl := d.fib, d.table

	var err error
	if clx := f.slice(tbl, fcClx); len(clx) > 0 {
		if d.pieces, err = parseClx(clx, &d.diag, d.log); err != nil {
			return err
		}
	}
	if d.pieces == nil || len(d.pieces.Pieces) == 0 {
		d.log.Debug("No piece table, assuming one 8-bit piece", zap.Uint32("fcMin", f.FcMin))
		d.pieces = synthesizePieceTable(f.FcMin, d.textLength())
	}
	d.chpx = parseCharRuns(d.word, f.slice(tbl, fcPlcfBteChpx), &d.grpprls, &d.diag, d.log)
	d.papx = parseParaRuns(d.word, f.slice(tbl, fcPlcfBtePapx), &d.grpprls, &d.diag, d.log)

	if d.styles, err = parseStyleSheet(f.slice(tbl, fcStshf), d.log); err != nil {
		return err
	}
	if err := d.styles.LinkStyleHistories(); err != nil {
		return err
	}
	d.interp.CharStyle = d.styles.characterStyle
	d.styles.CacheParagraphStyles(d.interp)
	d.styles.MapStyles(d.opts.filter)

	d.fonts = parseFonts(f.slice(tbl, fcSttbfFfn), d.log)
	d.lists = parseLists(f.tail(tbl, fcPlfLst), f.slice(tbl, fcPlfLfo), &d.diag, d.log)
	d.bookmarks = parseBookmarks(f.slice(tbl, fcSttbfBkmk), f.slice(tbl, fcPlcfBkf), f.slice(tbl, fcPlcfBkl), &d.diag, d.log)
	d.fields = parseFields(f.slice(tbl, fcPlcfFldMom), 0, &d.diag, d.log)
	d.notes = append(
		parseNotes(Footnote, f.slice(tbl, fcPlcffndRef), f.slice(tbl, fcPlcffndTxt), f.FootnoteStart(), &d.diag, d.log),
		parseNotes(Endnote, f.slice(tbl, fcPlcfendRef), f.slice(tbl, fcPlcfendTxt), f.EndnoteStart(), &d.diag, d.log)...)
	for _, n := range d.notes {
		d.noteRefs[n.RefCP] = n
	}
	d.sections = d.parseSections(f.slice(tbl, fcPlcfSed))

	type storyRange struct {
		kind         StoryKind
		start, limit uint32
	}
	ranges := []storyRange{
		{StoryMain, 0, f.CcpText},
		{StoryFootnote, f.FootnoteStart(), f.FootnoteStart() + f.CcpFtn},
		{StoryEndnote, f.EndnoteStart(), f.EndnoteStart() + f.CcpEdn},
	}
	for _, r := range ranges {
		if r.limit <= r.start {
			continue
		}
		r.limit = min(r.limit, d.pieces.Len())
		s, err := d.analyzeStory(r.kind, r.start, r.limit)
		if err != nil {
			return err
		}
		d.stories = append(d.stories, s)
	}
	d.EliminateEmptyDocParts()
	return nil
}

// textLength returns the CP count of all stories, including the final
// paragraph mark that follows the sub-documents when there are any.
func (d *Document) textLength() uint32 {
	f := d.fib
	sub := f.CcpFtn + f.CcpHdd + f.CcpAtn + f.CcpEdn + f.CcpTxbx + f.CcpHdrTxbx
	if sub > 0 {
		return f.CcpText + sub + 1
	}
	return f.CcpText
}

// Fib returns the file information block.
func (d *Document) Fib() *Fib { return d.fib }

// Pieces returns the piece table.
func (d *Document) Pieces() *PieceTable { return d.pieces }

// Styles returns the style sheet.
func (d *Document) Styles() *StyleSheet { return d.styles }

// Fonts returns the font table.
func (d *Document) Fonts() *FontTable { return d.fonts }

// Lists returns the list definitions and overrides.
func (d *Document) Lists() *ListTable { return d.lists }

// Bookmarks returns the bookmark table.
func (d *Document) Bookmarks() *BookmarkTable { return d.bookmarks }

// Stories returns the analyzed stories, main text first.
func (d *Document) Stories() []Story { return d.stories }

// Part returns the part behind id, or nil.
func (d *Document) Part(id PartID) *DocPart { return d.parts.Get(id) }

// Find returns the part that id was folded into, or id itself.
func (d *Document) Find(id PartID) PartID { return d.parts.Find(id) }

// Chain returns the parts of the chain starting at first.
func (d *Document) Chain(first PartID) []*DocPart { return d.parts.Chain(first) }

// Diagnostics returns the local corruption counters, including those of the
// property interpreter.
func (d *Document) Diagnostics() Diagnostics {
	diag := d.diag
	st := d.interp.Stats()
	diag.OpcodeErrors += st.Errors
	diag.UnsupportedOpcodes += st.Unsupported
	diag.ClampedCellRanges += st.Clamped
	diag.TruncatedGrpprls += st.Truncated
	diag.HugePapxMisses += st.HugeMisses
	return diag
}

// Warnings describes the local corruptions recovered from.
func (d *Document) Warnings() []string { return d.Diagnostics().Warnings() }

// Close releases the document's buffers. The part arena and caches go with
// it; parts obtained earlier must not be used afterwards.
func (d *Document) Close() error {
	if d.closed {
		return ErrClosed
	}
	d.closed = true
	d.word, d.table, d.data = nil, nil, nil
	d.parts = partArena{}
	d.grpprls = grpprlCache{}
	d.collapsed = nil
	return nil
}
