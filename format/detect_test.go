package format

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{DOC, "DOC"},
		{OLE, "OLE"},
		{RTF, "RTF"},
		{DOCX, "DOCX"},
		{ODT, "ODT"},
		{PDF, "PDF"},
		{HTML, "HTML"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{DOC, ".doc"},
		{RTF, ".rtf"},
		{DOCX, ".docx"},
		{ODT, ".odt"},
		{PDF, ".pdf"},
		{HTML, ".html"},
		{OLE, ""},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"document.doc", DOC},
		{"document.DOC", DOC},
		{"template.dot", DOC},
		{"document.rtf", RTF},
		{"document.docx", DOCX},
		{"document.Docm", DOCX},
		{"document.odt", ODT},
		{"document.pdf", PDF},
		{"document.htm", HTML},
		{"document.txt", Unknown},
		{"document", Unknown},
		{"", Unknown},
		{"/path/to/file.doc", DOC},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"PDF magic bytes", []byte("%PDF-1.4\n"), PDF},
		{"RTF", []byte(`{\rtf1\ansi\deff0 Hello}`), RTF},
		{"compound file", append(append([]byte{}, oleMagic...), make([]byte, 504)...), OLE},
		{"ZIP needs inspection", []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00}, Unknown},
		{"HTML with DOCTYPE", []byte("<!DOCTYPE html>\n<html>"), HTML},
		{"HTML with whitespace", []byte("  \n  <html><head>"), HTML},
		{"Word web page", []byte(`<?xml version="1.0"?><html xmlns:w="urn:schemas-microsoft-com:office:word">`), HTML},
		{"empty data", []byte{}, Unknown},
		{"short data", []byte{0xD0, 0xCF}, Unknown},
		{"text file", []byte("Hello, World!"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func compoundFile(streams ...string) []byte {
	b := append([]byte{}, oleMagic...)
	b = append(b, make([]byte, 1024)...)
	for _, s := range streams {
		b = append(b, utf16Name(s)...)
		b = append(b, make([]byte, 64)...)
	}
	return b
}

func zipFile(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Write(%q) error = %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return buf.Bytes()
}

func TestDetectFromReader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"word document", compoundFile("Root Entry", "WordDocument", "1Table"), DOC},
		{"workbook", compoundFile("Root Entry", "Workbook"), OLE},
		{"pdf", []byte("%PDF-1.4\n%%EOF"), PDF},
		{"rtf", []byte(`{\rtf1 renamed}`), RTF},
		{"html", []byte("<!DOCTYPE html>\n<html><body></body></html>"), HTML},
		{"docx", zipFile(t, map[string]string{"[Content_Types].xml": "<Types/>", "word/document.xml": "<w:document/>"}), DOCX},
		{"odt", zipFile(t, map[string]string{"mimetype": "application/vnd.oasis.opendocument.text"}), ODT},
		{"plain zip", zipFile(t, map[string]string{"readme.txt": "hello"}), Unknown},
		{"text", []byte("Hello, World! This is plain text."), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFromReader(bytes.NewReader(tt.data), int64(len(tt.data)))
			if err != nil {
				t.Fatalf("DetectFromReader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFromReader() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	doc := compoundFile("WordDocument")
	if err := Check(bytes.NewReader(doc), int64(len(doc))); err != nil {
		t.Errorf("Check(doc) error = %v", err)
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr string
	}{
		{"rtf", []byte(`{\rtf1 renamed}`), "RTF"},
		{"pdf", []byte("%PDF-1.7\n"), "PDF"},
		{"workbook", compoundFile("Workbook"), "WordDocument"},
		{"text", []byte("plain text"), "not a binary Word document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(bytes.NewReader(tt.data), int64(len(tt.data)))
			if err == nil {
				t.Fatal("Check() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Check() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}
