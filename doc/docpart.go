package doc

import (
	"github.com/tsawler/wordbin/sprm"
)

// PartID is a handle to a DocPart in a document's part arena. Zero is none.
type PartID int32

// DocPart is a node of the structural tree: a paragraph, or the holder of a
// table at one nesting level.
type DocPart struct {
	ID     PartID
	Parent PartID // table holder owning the cell chain, 0 at the top level
	Prev   PartID
	Next   PartID
	// Master is the part this one was folded into; a surviving part is its
	// own master.
	Master PartID

	StartCP uint32
	LimitCP uint32
	Level   int // table nesting depth

	Istd    uint16
	Grpprl  GrpprlPointer // PAPX of the paragraph mark
	MarkPrm sprm.Prm      // modifier of the piece holding the mark

	Table   *Table
	Anchors []string

	Ilfo         int16
	ListLevel    uint8
	ListCounters [maxListLevels]int32
	ListText     string

	PadTop    int
	PadBottom int
	OutputID  int
	Hide      bool
	AllHidden bool
}

// Survivor reports whether the part was not folded into another one.
func (p *DocPart) Survivor() bool { return p.Master == p.ID }

// Table is a table at one nesting level. Its holder part sits in the chain of
// the enclosing level.
type Table struct {
	Holder PartID
	Level  int
	Rows   []*Row

	// Grid holds the unified column boundaries in twips after post-processing.
	Grid      []int32
	TextWidth int
}

// Row is one table row.
type Row struct {
	Tap   *sprm.Tap
	Cells []*Cell
}

// Cell is one cell of a row.
type Cell struct {
	First PartID // first part of the cell's chain
	Tc    sprm.Tc

	Left, Right int32 // boundaries in twips
	GridStart   int
	ColSpan     int
	RowSpan     int
	// Continued marks a cell covered by a vertical merge from above.
	Continued bool
	Header    bool
	Brc       [4]sprm.Brc
}

// partArena owns every DocPart of a document.
type partArena struct {
	parts []*DocPart
}

// New allocates a part that is its own master.
func (a *partArena) New() *DocPart {
	p := &DocPart{ID: PartID(len(a.parts) + 1)}
	p.Master = p.ID
	a.parts = append(a.parts, p)
	return p
}

// Get returns the part behind id, or nil.
func (a *partArena) Get(id PartID) *DocPart {
	if id <= 0 || int(id) > len(a.parts) {
		return nil
	}
	return a.parts[id-1]
}

// Len returns the number of parts.
func (a *partArena) Len() int { return len(a.parts) }

// All returns the parts in creation order, which is CP order within a story.
func (a *partArena) All() []*DocPart { return a.parts }

// Find follows Master links to the representative part. There is no path
// compression; chains stay short.
func (a *partArena) Find(id PartID) PartID {
	for {
		p := a.Get(id)
		if p == nil || p.Master == id {
			return id
		}
		id = p.Master
	}
}

// Union folds part id into master.
func (a *partArena) Union(id, master PartID) {
	if p := a.Get(id); p != nil {
		p.Master = a.Find(master)
	}
}

// Chain returns the parts linked from first through Next.
func (a *partArena) Chain(first PartID) []*DocPart {
	var out []*DocPart
	for p := a.Get(first); p != nil; p = a.Get(p.Next) {
		out = append(out, p)
	}
	return out
}
