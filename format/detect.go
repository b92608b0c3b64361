// Package format sniffs input files so that only binary Word documents reach
// the decoder, and everything else is rejected with a useful message.
package format

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// Format represents a document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOC indicates a binary Word document in a compound file.
	DOC
	// OLE indicates a compound file that is not a Word document.
	OLE
	// RTF indicates a Rich Text Format document, often saved as .doc.
	RTF
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// ODT indicates an OpenDocument Text (.odt) document.
	ODT
	// PDF indicates a PDF document.
	PDF
	// HTML indicates an HTML document, which Word also saves as .doc.
	HTML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOC:
		return "DOC"
	case OLE:
		return "OLE"
	case RTF:
		return "RTF"
	case DOCX:
		return "DOCX"
	case ODT:
		return "ODT"
	case PDF:
		return "PDF"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOC:
		return ".doc"
	case RTF:
		return ".rtf"
	case DOCX:
		return ".docx"
	case ODT:
		return ".odt"
	case PDF:
		return ".pdf"
	case HTML:
		return ".html"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".doc", ".dot":
		return DOC
	case ".rtf":
		return RTF
	case ".docx", ".dotx", ".docm":
		return DOCX
	case ".odt":
		return ODT
	case ".pdf":
		return PDF
	case ".html", ".htm":
		return HTML
	default:
		return Unknown
	}
}

var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// DetectFromMagic checks file magic bytes to determine format. A compound
// file is reported as OLE: telling a Word document from other compound
// files needs the directory, see DetectFromReader.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}
	if bytes.HasPrefix(data, oleMagic) {
		return OLE
	}
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		switch kind.Extension {
		case "pdf":
			return PDF
		case "rtf":
			return RTF
		case "zip", "docx", "odt":
			// needs the archive directory
			return Unknown
		}
	}
	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return PDF
	case bytes.HasPrefix(data, []byte(`{\rtf`)):
		return RTF
	case detectHTMLMagic(data):
		return HTML
	}
	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return false
	}
	upper := strings.ToUpper(string(data[:min(len(data), 512)]))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") || strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// Word's "Web Page" format starts with an XML declaration
	return strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML")
}

// DetectFromReader inspects the content to determine format. Compound files
// holding a WordDocument stream are DOC; ZIP archives are looked into to
// tell DOCX from ODT.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if f := DetectFromMagic(magic); f != Unknown {
		if f == OLE && hasWordDocument(r, size) {
			return DOC, nil
		}
		return f, nil
	}
	if len(magic) >= 4 && magic[0] == 'P' && magic[1] == 'K' && magic[2] == 0x03 && magic[3] == 0x04 {
		return detectZIPFormat(r, size)
	}
	return Unknown, nil
}

// hasWordDocument scans the compound file directory for the WordDocument
// stream name. The directory is small enough for a linear scan of the file
// to be cheaper than parsing the FAT.
func hasWordDocument(r io.ReaderAt, size int64) bool {
	name := utf16Name("WordDocument")
	buf := make([]byte, 64*1024)
	for off := int64(0); off < size; off += int64(len(buf)) - int64(len(name)) {
		n, err := r.ReadAt(buf, off)
		if n > 0 && bytes.Contains(buf[:n], name) {
			return true
		}
		if err != nil {
			return false
		}
	}
	return false
}

func utf16Name(s string) []byte {
	b := make([]byte, 0, 2*len(s))
	for _, c := range []byte(s) {
		b = append(b, c, 0)
	}
	return b
}

// detectZIPFormat inspects a ZIP archive to determine if it's DOCX or ODT.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	// OpenDocument has a mimetype file at the start
	for _, f := range zr.File {
		if f.Name == "mimetype" {
			rc, err := f.Open()
			if err == nil {
				data := make([]byte, 256)
				n, _ := rc.Read(data)
				rc.Close()
				if strings.Contains(string(data[:n]), "application/vnd.oasis.opendocument.text") {
					return ODT, nil
				}
			}
		}
	}

	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/") {
			return DOCX, nil
		}
	}
	return Unknown, nil
}

// Check returns nil when the content is a binary Word document and an
// error naming what it is otherwise.
func Check(r io.ReaderAt, size int64) error {
	f, err := DetectFromReader(r, size)
	if err != nil {
		return fmt.Errorf("unable to detect file format: %w", err)
	}
	switch f {
	case DOC:
		return nil
	case OLE:
		return fmt.Errorf("compound file has no WordDocument stream")
	case Unknown:
		return fmt.Errorf("not a binary Word document")
	}
	return fmt.Errorf("file is %s, not a binary Word document", f)
}
