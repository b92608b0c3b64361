// Package wordbin provides a fluent API for extracting text, structure and
// pictures from legacy binary Word documents (.doc, Word 97 and later).
//
// Basic usage:
//
//	text, warnings, err := wordbin.Open("document.doc").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", wordbin.FormatWarnings(warnings))
//	}
//
// With options:
//
//	doc, _, err := wordbin.Open("report.doc").
//	    TrackChanges(doc.TrackOriginal).
//	    ExcludeNotes().
//	    Document()
//
// For advanced use cases, the lower-level doc and ole packages are also
// available.
package wordbin

import (
	"github.com/tsawler/wordbin/doc"
)

// Open returns an Extractor for the Word document at filename. The file is
// read on the first terminal operation; terminal operations like Text()
// close the decoded document when they are done.
//
// Example:
//
//	text, warnings, err := wordbin.Open("document.doc").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromContainer returns an Extractor reading from an already opened
// container, such as an ole.File or a doc.MemContainer. The container is
// not closed by the Extractor.
func FromContainer(c doc.Container) *Extractor {
	return &Extractor{
		container: c,
		options:   defaultOptions(),
	}
}

// FromDocument returns an Extractor for an already decoded document.
// Note: The caller is responsible for closing the document.
//
// Example:
//
//	d, err := doc.Open(container)
//	if err != nil {
//	    // handle error
//	}
//	defer d.Close()
//	text, warnings, err := wordbin.FromDocument(d).Text()
func FromDocument(d *doc.Document) *Extractor {
	return &Extractor{
		document:  d,
		ownsDoc:   false,
		docOpened: true,
		options:   defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	info := wordbin.Must(wordbin.Open("document.doc").Info())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to Text() or Document() and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	text := wordbin.MustText(wordbin.Open("document.doc").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
