// Package model provides the intermediate representation (IR) for decoded
// document content.
//
// Word documents are flowing text without fixed positions, so the model is an
// ordered list of elements rather than a set of positioned page objects.
//
// # Document Structure
//
// The [Document] type holds metadata, the body elements in reading order, and
// the footnotes and endnotes:
//
//	doc := model.NewDocument()
//	doc.Metadata.Title = "My Document"
//	doc.AddElement(&model.Paragraph{Text: "Hello"})
//
// # Elements
//
// All content implements the [Element] interface. The concrete types are:
//
//   - [Paragraph] - text paragraphs with runs, links and anchors
//   - [Heading] - headings (levels 1-9)
//   - [List] - ordered or unordered lists, one per list override
//   - [Table] - tables with cells, row/column spans and nested content
//   - [Image] - embedded pictures
//
// # Tables
//
// The [Table] type provides a complete table representation with:
//
//   - Rows of [Cell] values, each holding its own elements
//   - Row and column spanning
//   - Export methods: ToMarkdown() and ToCSV()
package model
