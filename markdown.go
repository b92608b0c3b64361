package wordbin

import (
	"fmt"
	"strings"

	"github.com/tsawler/wordbin/model"
)

// Markdown renders a model document as markdown. Notes are written as
// footnote definitions at the end.
func Markdown(d *model.Document) string {
	var sb strings.Builder
	writeElements(&sb, d.Elements)
	for _, n := range d.Notes {
		fmt.Fprintf(&sb, "[^%s%d]: %s\n", notePrefix(n.Kind), n.Index, strings.TrimSpace(n.GetText()))
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func notePrefix(kind string) string {
	if kind == "endnote" {
		return "e"
	}
	return ""
}

func writeElements(sb *strings.Builder, elements []model.Element) {
	for _, e := range elements {
		switch el := e.(type) {
		case *model.Heading:
			level := min(max(el.Level, 1), 6)
			sb.WriteString(strings.Repeat("#", level) + " " + strings.TrimSpace(el.Text) + "\n\n")
		case *model.Paragraph:
			if s := paragraphMarkdown(el); s != "" {
				sb.WriteString(s + "\n\n")
			}
		case *model.List:
			for i, it := range el.Items {
				indent := strings.Repeat("  ", it.Level)
				marker := "-"
				if el.Ordered {
					marker = fmt.Sprintf("%d.", i+1)
				}
				sb.WriteString(indent + marker + " " + strings.TrimSpace(it.Text) + "\n")
			}
			sb.WriteString("\n")
		case *model.Table:
			sb.WriteString(el.ToMarkdown() + "\n")
		case *model.Image:
			name := el.Name
			if name == "" {
				name = "image"
			}
			fmt.Fprintf(sb, "![%s](%s)\n\n", el.AltText, name)
		}
	}
}

// paragraphMarkdown renders runs with emphasis and links.
func paragraphMarkdown(p *model.Paragraph) string {
	if len(p.Runs) == 0 {
		return strings.TrimSpace(p.Text)
	}
	var sb strings.Builder
	for _, r := range p.Runs {
		text := r.Text
		if strings.TrimSpace(text) == "" {
			sb.WriteString(text)
			continue
		}
		switch {
		case r.Style.Bold && r.Style.Italic:
			text = "***" + text + "***"
		case r.Style.Bold:
			text = "**" + text + "**"
		case r.Style.Italic:
			text = "*" + text + "*"
		}
		if r.Link != "" {
			text = "[" + text + "](" + r.Link + ")"
		}
		sb.WriteString(text)
	}
	return strings.TrimSpace(sb.String())
}
