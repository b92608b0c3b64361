package wordbin

import (
	"strings"

	"golang.org/x/text/language"
)

// Warning describes a problem the decoder recovered from. The content was
// extracted, but parts of it may be missing or misformatted.
type Warning struct {
	Message string
}

func (w Warning) String() string { return w.Message }

func warningsFrom(msgs []string) []Warning {
	if len(msgs) == 0 {
		return nil
	}
	w := make([]Warning, len(msgs))
	for i, m := range msgs {
		w[i] = Warning{Message: m}
	}
	return w
}

// FormatWarnings joins warnings into one line.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.Message
	}
	return strings.Join(parts, "; ")
}

// Primary language identifiers (low 10 bits of a Windows LCID). Sublanguages
// are ignored.
var primaryLanguages = map[uint16]string{
	0x01: "ar", 0x02: "bg", 0x03: "ca", 0x04: "zh", 0x05: "cs", 0x06: "da",
	0x07: "de", 0x08: "el", 0x09: "en", 0x0A: "es", 0x0B: "fi", 0x0C: "fr",
	0x0D: "he", 0x0E: "hu", 0x0F: "is", 0x10: "it", 0x11: "ja", 0x12: "ko",
	0x13: "nl", 0x14: "no", 0x15: "pl", 0x16: "pt", 0x18: "ro", 0x19: "ru",
	0x1A: "hr", 0x1B: "sk", 0x1D: "sv", 0x1E: "th", 0x1F: "tr", 0x21: "id",
	0x22: "uk", 0x23: "be", 0x24: "sl", 0x25: "et", 0x26: "lv", 0x27: "lt",
	0x2A: "vi", 0x39: "hi",
}

// Full LCIDs whose region matters.
var regionalLanguages = map[uint16]string{
	0x0409: "en-US", 0x0809: "en-GB", 0x0C09: "en-AU", 0x1009: "en-CA",
	0x0407: "de-DE", 0x0807: "de-CH", 0x0C07: "de-AT",
	0x040C: "fr-FR", 0x0C0C: "fr-CA", 0x080C: "fr-BE",
	0x0416: "pt-BR", 0x0816: "pt-PT",
	0x0804: "zh-CN", 0x0404: "zh-TW",
	0x0C0A: "es-ES", 0x080A: "es-MX",
}

// languageTag maps a Windows language identifier to a BCP 47 tag, or ""
// when it is unknown.
func languageTag(lid uint16) string {
	s, ok := regionalLanguages[lid]
	if !ok {
		s, ok = primaryLanguages[lid&0x3FF]
	}
	if !ok {
		return ""
	}
	return language.Make(s).String()
}
