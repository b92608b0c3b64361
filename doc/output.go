package doc

import (
	"fmt"

	"github.com/tsawler/wordbin/sprm"
)

// TrackChanges selects how revision marks are rendered.
type TrackChanges uint8

const (
	// TrackFinal shows the document with all revisions accepted.
	TrackFinal TrackChanges = iota
	// TrackOriginal shows the document with all revisions rejected.
	TrackOriginal
	// TrackMarkup shows insertions and deletions as formatted text.
	TrackMarkup
)

func (t TrackChanges) String() string {
	switch t {
	case TrackFinal:
		return "final"
	case TrackOriginal:
		return "original"
	case TrackMarkup:
		return "markup"
	}
	return fmt.Sprintf("TrackChanges(%d)", t)
}

// ParseTrackChanges parses a mode name.
func ParseTrackChanges(s string) (TrackChanges, error) {
	switch s {
	case "", "final":
		return TrackFinal, nil
	case "original":
		return TrackOriginal, nil
	case "markup":
		return TrackMarkup, nil
	}
	return 0, fmt.Errorf("unknown track changes mode %q", s)
}

// Fixup adjusts resolved properties of paragraphs and runs in a style.
type Fixup interface {
	FixParagraph(p *sprm.Pap)
	FixCharacter(c *sprm.Chp)
}

// StyleSettings is the host's disposition for one style.
type StyleSettings struct {
	ShowHidden bool // render hidden text in this style
	Hide       bool // drop paragraphs in this style
	TOCLevel   int  // 1-9, 0 for the built-in outline level
	Split      bool // start a new output object at paragraphs in this style
	Fixup      Fixup
}

// StyleFilter maps style identifiers to settings.
type StyleFilter interface {
	StyleSettings(styleID string) StyleSettings
}

// StyleInfo describes a style to the output sink.
type StyleInfo struct {
	ID        string
	Name      string
	Type      StyleType
	Base      int // istd of the base style, -1 for none
	TOCLevel  int
	Paragraph ParagraphFormat
	Character CharFormat
}

// ParagraphFormat is the resolved layout of a paragraph.
type ParagraphFormat struct {
	StyleID string
	// Alignment is one of left, center, right, justify, distribute.
	Alignment   string
	IndentLeft  int32 // twips
	IndentRight int32
	IndentFirst int32
	SpaceBefore int // twips, including collapsed empty paragraphs above
	SpaceAfter  int
	LineSpacing int16
	LineRule    bool // LineSpacing is a multiple of 240ths of a line

	KeepNext        bool
	KeepLines       bool
	PageBreakBefore bool
	BiDi            bool

	TOCLevel int
	Split    bool

	// ListText is the rendered number or bullet, "" for plain paragraphs.
	ListText  string
	ListID    int
	ListLevel int
	Ordered   bool

	Shading sprm.Shd
	Borders [4]sprm.Brc
	Tabs    []sprm.TabStop
}

// CharFormat is the resolved formatting of a text run.
type CharFormat struct {
	StyleID  string
	FontName string
	Size     float64 // points

	Bold         bool
	Italic       bool
	Underline    bool
	Strike       bool
	DoubleStrike bool
	SmallCaps    bool
	Caps         bool
	Hidden       bool
	Superscript  bool
	Subscript    bool
	Inserted     bool
	Deleted      bool

	Color      sprm.Color // never ColorAuto once emitted
	Highlight  sprm.Color
	Background sprm.Color
	Lang       uint16
}

// TableFormat describes a table when it starts.
type TableFormat struct {
	Level   int
	Rows    int
	Columns int
	// Widths holds the width of each grid column in twips.
	Widths []int32
	Width  int32
	Jc     uint8
}

// CellFormat describes the cell that output continues in.
type CellFormat struct {
	Row        int
	Col        int
	FirstInRow bool
	GridStart  int
	ColSpan    int
	RowSpan    int
	Width      int32
	Header     bool
	VertAlign  uint8
	RowHeight  int16
	Borders    [4]sprm.Brc
	Shading    sprm.Shd
}

// Image is a picture found in the text.
type Image struct {
	CP   uint32
	Name string
	MIME string
	Ext  string
	Data []byte
	// Width and Height are in pixels when the payload could be probed.
	Width  int
	Height int
	// GoalWidth and GoalHeight are the displayed size in twips.
	GoalWidth  int
	GoalHeight int
}

// NoteKind tells footnotes from endnotes.
type NoteKind uint8

const (
	Footnote NoteKind = iota
	Endnote
)

func (k NoteKind) String() string {
	if k == Endnote {
		return "endnote"
	}
	return "footnote"
}

// Note is a footnote or endnote reference with the CP range of its text.
type Note struct {
	Kind         NoteKind
	Index        int
	RefCP        uint32
	TextStart    uint32
	TextLimit    uint32
	AutoNumbered bool
}

// FormattedOutput receives the decoded document in order.
type FormattedOutput interface {
	PredefineStyle(s StyleInfo)
	StartParagraph(p ParagraphFormat)
	EndParagraph()
	ChangeFormatting(c CharFormat)
	WriteString(s string)
	StartTable(t TableFormat)
	NextCell(c CellFormat)
	EndTable()
	StartHyperlink(target string)
	EndHyperlink()
	SetAnchor(name string)
	InsertImage(img Image)
	BackgroundColor() sprm.Color
}

// Callbacks lets the host number output objects and handle notes and fields.
type Callbacks interface {
	// RegisterOutputObject returns the output id of a surviving paragraph or
	// table holder.
	RegisterOutputObject(part PartID, isTopLevel bool, tocLevel int, split, allHidden bool) int
	FoundFootEndNote(n Note)
	// PrivateFieldCallback renders a field the decoder does not handle. It
	// returns true when it wrote the field, in which case the stored field
	// result is skipped.
	PrivateFieldCallback(code string, out FormattedOutput) bool
}

// SequentialCallbacks numbers output objects from 1 and ignores notes and
// unknown fields.
type SequentialCallbacks struct {
	next  int
	Notes []Note
}

func (c *SequentialCallbacks) RegisterOutputObject(PartID, bool, int, bool, bool) int {
	c.next++
	return c.next
}

func (c *SequentialCallbacks) FoundFootEndNote(n Note) { c.Notes = append(c.Notes, n) }

func (c *SequentialCallbacks) PrivateFieldCallback(string, FormattedOutput) bool { return false }

var alignments = [...]string{"left", "center", "right", "justify", "distribute"}

// paragraphFormat converts resolved paragraph properties.
func paragraphFormat(p *sprm.Pap) ParagraphFormat {
	f := ParagraphFormat{
		Alignment:       "left",
		IndentLeft:      p.DxaLeft,
		IndentRight:     p.DxaRight,
		IndentFirst:     p.DxaLeft1,
		SpaceBefore:     int(p.DyaBefore),
		SpaceAfter:      int(p.DyaAfter),
		LineSpacing:     p.DyaLine,
		LineRule:        p.MultLine,
		KeepNext:        p.KeepNext,
		KeepLines:       p.KeepLines,
		PageBreakBefore: p.PageBreakBefore,
		BiDi:            p.BiDi,
		Shading:         p.Shd,
		Borders:         [4]sprm.Brc{p.BrcTop, p.BrcLeft, p.BrcBottom, p.BrcRight},
		Tabs:            p.Tabs,
	}
	if int(p.Jc) < len(alignments) {
		f.Alignment = alignments[p.Jc]
	}
	return f
}

// characterFormat converts resolved character properties. Auto colors are
// left for the emitter to resolve.
func characterFormat(c *sprm.Chp, fonts *FontTable) CharFormat {
	f := CharFormat{
		Size:         float64(c.Hps) / 2,
		Bold:         c.Bold,
		Italic:       c.Italic,
		Underline:    c.Underline != 0,
		Strike:       c.Strike,
		DoubleStrike: c.DStrike,
		SmallCaps:    c.SmallCaps,
		Caps:         c.Caps,
		Hidden:       c.Hidden(),
		Superscript:  c.Iss == 1,
		Subscript:    c.Iss == 2,
		Inserted:     c.RMarkIns,
		Deleted:      c.RMarkDel,
		Color:        c.Color,
		Highlight:    sprm.ColorAuto,
		Background:   c.Shd.Back,
		Lang:         c.Lid,
	}
	if c.Highlight != 0 {
		f.Highlight = sprm.IcoColor(c.Highlight)
	}
	if fonts != nil {
		f.FontName = fonts.Name(c.Ftc[0])
	}
	return f
}
