package doc

import (
	"go.uber.org/zap"

	"github.com/tsawler/wordbin/internal/bintable"
)

const frdSize = 2

// parseNotes pairs note references in the main text with the CP ranges of
// their text in the note story starting at storyStart.
func parseNotes(kind NoteKind, refs, txt []byte, storyStart uint32, diag *Diagnostics, log *zap.Logger) []Note {
	if len(refs) == 0 {
		return nil
	}
	ref, err := bintable.ParsePlcf(refs, frdSize)
	if err != nil {
		diag.BadTables++
		log.Debug("Note references unreadable", zap.Stringer("kind", kind), zap.Error(err))
		return nil
	}
	text, err := bintable.ParsePlcf(txt, 0)
	if err != nil {
		diag.BadTables++
		log.Debug("Note text table unreadable", zap.Stringer("kind", kind), zap.Error(err))
		return nil
	}
	notes := make([]Note, 0, ref.Len())
	for i := 0; i < ref.Len(); i++ {
		n := Note{
			Kind:         kind,
			Index:        i + 1,
			RefCP:        ref.Pos[i],
			AutoNumbered: bintable.U16At(ref.Data(i), 0) != 0,
		}
		if i+1 < len(text.Pos) {
			n.TextStart = storyStart + text.Pos[i]
			n.TextLimit = storyStart + text.Pos[i+1]
		}
		notes = append(notes, n)
	}
	return notes
}

// noteAt returns the note whose reference character is at cp.
func (d *Document) noteAt(cp uint32) (Note, bool) {
	n, ok := d.noteRefs[cp]
	return n, ok
}

// Notes returns the footnotes followed by the endnotes.
func (d *Document) Notes() []Note { return d.notes }
