package model

import (
	"fmt"
	"strings"
)

// ElementType represents the type of a content element
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeParagraph
	ElementTypeHeading
	ElementTypeList
	ElementTypeTable
	ElementTypeImage
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeParagraph:
		return "Paragraph"
	case ElementTypeHeading:
		return "Heading"
	case ElementTypeList:
		return "List"
	case ElementTypeTable:
		return "Table"
	case ElementTypeImage:
		return "Image"
	default:
		return "Unknown"
	}
}

// Element is the interface for all content elements
type Element interface {
	Type() ElementType
}

// TextElement is an interface for elements containing text
type TextElement interface {
	Element
	GetText() string
}

// Run is a stretch of text sharing one style
type Run struct {
	Text  string
	Style TextStyle
	Link  string // hyperlink target, "" outside links
}

// Link is a hyperlink with the text it covers
type Link struct {
	Target string
	Text   string
}

// Paragraph represents a paragraph of text
type Paragraph struct {
	Text        string
	StyleID     string
	FontSize    float64
	FontName    string
	Style       TextStyle
	Alignment   TextAlignment
	SpaceBefore float64 // points
	SpaceAfter  float64
	Runs        []Run
	Links       []Link
	Anchors     []string
}

func (p *Paragraph) Type() ElementType { return ElementTypeParagraph }
func (p *Paragraph) GetText() string   { return p.Text }

// Heading represents a heading
type Heading struct {
	Text     string
	Level    int // 1-9
	StyleID  string
	FontSize float64
	FontName string
	Style    TextStyle
	Runs     []Run
	Anchors  []string
}

func (h *Heading) Type() ElementType { return ElementTypeHeading }
func (h *Heading) GetText() string   { return h.Text }

// List represents a list (ordered or unordered)
type List struct {
	ID      int // list override the items belong to
	Items   []ListItem
	Ordered bool
}

func (l *List) Type() ElementType { return ElementTypeList }
func (l *List) GetText() string {
	var sb strings.Builder
	for _, item := range l.Items {
		sb.WriteString(strings.Repeat("  ", item.Level))
		if item.Bullet != "" {
			sb.WriteString(item.Bullet)
			sb.WriteString(" ")
		}
		sb.WriteString(item.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// ListItem represents a single list item
type ListItem struct {
	Text    string
	Bullet  string // rendered number or bullet
	Level   int    // 0-8
	Runs    []Run
	Anchors []string
}

// Image represents an embedded image
type Image struct {
	Data   []byte
	Format ImageFormat
	MIME   string
	Name   string
	// Width and Height are the pixel size, 0 when unknown.
	Width  int
	Height int
	// DisplayWidth and DisplayHeight are the rendered size in points.
	DisplayWidth  float64
	DisplayHeight float64
	// Alt text if available
	AltText string
}

func (i *Image) Type() ElementType { return ElementTypeImage }

// ImageFormat represents image format
type ImageFormat int

const (
	ImageFormatUnknown ImageFormat = iota
	ImageFormatJPEG
	ImageFormatPNG
	ImageFormatTIFF
	ImageFormatGIF
	ImageFormatBMP
	ImageFormatEMF
	ImageFormatWMF
)

func (f ImageFormat) String() string {
	switch f {
	case ImageFormatJPEG:
		return "jpeg"
	case ImageFormatPNG:
		return "png"
	case ImageFormatTIFF:
		return "tiff"
	case ImageFormatGIF:
		return "gif"
	case ImageFormatBMP:
		return "bmp"
	case ImageFormatEMF:
		return "emf"
	case ImageFormatWMF:
		return "wmf"
	default:
		return "unknown"
	}
}

// ImageFormatFromMIME maps a MIME type to an image format
func ImageFormatFromMIME(mime string) ImageFormat {
	switch strings.ToLower(mime) {
	case "image/jpeg":
		return ImageFormatJPEG
	case "image/png":
		return ImageFormatPNG
	case "image/tiff":
		return ImageFormatTIFF
	case "image/gif":
		return ImageFormatGIF
	case "image/bmp", "image/x-ms-bmp":
		return ImageFormatBMP
	case "image/emf", "image/x-emf":
		return ImageFormatEMF
	case "image/wmf", "image/x-wmf":
		return ImageFormatWMF
	default:
		return ImageFormatUnknown
	}
}

// TextStyle represents text styling
type TextStyle struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Superscript   bool
	Subscript     bool
	Color         Color
}

// TextAlignment represents text alignment
type TextAlignment int

const (
	AlignLeft TextAlignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

func (a TextAlignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// ParseAlignment maps an alignment name to a TextAlignment. Unknown names
// are left aligned.
func ParseAlignment(s string) TextAlignment {
	switch s {
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	case "justify", "distribute":
		return AlignJustify
	default:
		return AlignLeft
	}
}

// Color represents an RGB color
type Color struct {
	R, G, B uint8
}

// RGB builds a color from a 0xRRGGBB value
func RGB(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Hex returns the color as "#rrggbb"
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
