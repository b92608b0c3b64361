package doc

import (
	"errors"
	"fmt"
	"strconv"
)

// Code identifies a structural corruption that aborts decoding of a document.
type Code int

const (
	// CodeMissingStream indicates a mandatory container stream is absent.
	CodeMissingStream Code = 1 + iota
	// CodeBadFib indicates the file information block is not a Word 97+ FIB.
	CodeBadFib
	// CodeEncrypted indicates the document is encrypted or obfuscated.
	CodeEncrypted
	// CodeStyleCycle indicates a style appears in its own base-style chain.
	CodeStyleCycle
	// CodePieceTable indicates a piece table with an inconsistent layout.
	CodePieceTable
	// CodeListLevel indicates a list level outside the nine supported levels.
	CodeListLevel
	// CodeShortRead indicates a mandatory read returned fewer bytes than needed.
	CodeShortRead
	// CodeMissingPiece indicates a character position required for structure
	// is not covered by the piece table.
	CodeMissingPiece
	// CodeUnsupportedFormat indicates the input is not a binary Word document.
	CodeUnsupportedFormat
)

var codeNames = map[Code]string{
	CodeMissingStream:     "missing-stream",
	CodeBadFib:            "bad-fib",
	CodeEncrypted:         "encrypted",
	CodeStyleCycle:        "style-cycle",
	CodePieceTable:        "piece-table",
	CodeListLevel:         "list-level",
	CodeShortRead:         "short-read",
	CodeMissingPiece:      "missing-piece",
	CodeUnsupportedFormat: "unsupported-format",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "code-" + strconv.Itoa(int(c))
}

// ErrCorrupt matches every structural corruption error with errors.Is.
var ErrCorrupt = errors.New("structural corruption")

// Error is a structural corruption: the document cannot be decoded and no
// output has been produced for it.
type Error struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("doc: %s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("doc: %s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports ErrCorrupt and errors carrying the same code.
func (e *Error) Is(target error) bool {
	if target == ErrCorrupt {
		return true
	}
	var other *Error
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

func corrupt(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func wrapCorrupt(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf returns the code of a structural corruption, or 0.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// Diagnostics counts local corruptions that were recovered from.
type Diagnostics struct {
	OpcodeErrors          int
	UnsupportedOpcodes    int
	ClampedCellRanges     int
	ClampedTableDepths    int
	TruncatedGrpprls      int
	HugePapxMisses        int
	SkippedPapx           int
	SkippedChpx           int
	SynthesizedParagraphs int
	CharRunOverruns       int
	DuplicatePieceTables  int
	ClampedPieces         int
	BadTables             int
	UnreadablePictures    int
}

// Warnings renders the non-zero counters as human readable messages.
func (d Diagnostics) Warnings() []string {
	var w []string
	add := func(n int, what string) {
		if n > 0 {
			w = append(w, fmt.Sprintf("%d %s", n, what))
		}
	}
	add(d.OpcodeErrors, "property opcodes with malformed operands skipped")
	add(d.ClampedCellRanges, "table cell ranges clamped")
	add(d.ClampedTableDepths, "table nesting depths clamped")
	add(d.TruncatedGrpprls, "truncated property streams")
	add(d.HugePapxMisses, "unreadable huge paragraph properties")
	add(d.SkippedPapx, "paragraph property entries skipped")
	add(d.SkippedChpx, "character property entries skipped")
	add(d.SynthesizedParagraphs, "paragraphs synthesized past the paragraph table")
	add(d.CharRunOverruns, "character positions past the last character run")
	add(d.DuplicatePieceTables, "duplicate piece tables ignored")
	add(d.ClampedPieces, "piece table entries clamped")
	add(d.BadTables, "auxiliary tables ignored as corrupt")
	add(d.UnreadablePictures, "pictures could not be read")
	return w
}
