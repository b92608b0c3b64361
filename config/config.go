// Package config loads the decoding profile: how revisions are shown, what
// each paragraph style means to the host and how diagnostics are logged.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/tsawler/wordbin/doc"
	"github.com/tsawler/wordbin/sprm"
)

//go:embed default.yaml
var DefaultProfile []byte

type (
	// StyleConfig is the disposition of one paragraph or character style.
	StyleConfig struct {
		ShowHidden bool   `yaml:"show_hidden"`
		Hide       bool   `yaml:"hide"`
		TOCLevel   int    `yaml:"toc_level"`
		Split      bool   `yaml:"split"`
		Alignment  string `yaml:"alignment,omitempty"`
		FontSize   int    `yaml:"font_size,omitempty"` // points
	}

	Profile struct {
		Version      int                    `yaml:"version"`
		TrackChanges string                 `yaml:"track_changes"`
		Styles       map[string]StyleConfig `yaml:"styles"`
		DefaultStyle StyleConfig            `yaml:"default_style"`
		Logging      LoggingConfig          `yaml:"logging"`
	}
)

var alignments = map[string]uint8{"left": 0, "center": 1, "right": 2, "justify": 3, "distribute": 4}

func unmarshalProfile(data []byte, p *Profile) (*Profile, error) {
	// unknown keys are configuration mistakes, not extensions
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseProfile decodes a profile on top of the defaults.
func ParseProfile(data []byte) (*Profile, error) {
	p, err := unmarshalProfile(DefaultProfile, &Profile{})
	if err != nil {
		return nil, fmt.Errorf("default profile: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return p, nil
	}
	return unmarshalProfile(data, p)
}

// LoadProfile reads the profile at path. An empty path yields the defaults.
func LoadProfile(path string) (*Profile, error) {
	if len(path) == 0 {
		return ParseProfile(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return ParseProfile(data)
}

// Validate checks values the decoder cannot.
func (p *Profile) Validate() error {
	if p.Version != 1 {
		return fmt.Errorf("unsupported profile version %d", p.Version)
	}
	if _, err := doc.ParseTrackChanges(p.TrackChanges); err != nil {
		return err
	}
	check := func(name string, s StyleConfig) error {
		if s.TOCLevel < 0 || s.TOCLevel > 9 {
			return fmt.Errorf("style %q: toc_level %d out of range 0..9", name, s.TOCLevel)
		}
		if _, ok := alignments[s.Alignment]; s.Alignment != "" && !ok {
			return fmt.Errorf("style %q: unknown alignment %q", name, s.Alignment)
		}
		if s.FontSize < 0 || s.FontSize > 1638 {
			return fmt.Errorf("style %q: font_size %d out of range", name, s.FontSize)
		}
		return nil
	}
	if err := check("default_style", p.DefaultStyle); err != nil {
		return err
	}
	for name, s := range p.Styles {
		if err := check(name, s); err != nil {
			return err
		}
	}
	switch p.Logging.ConsoleLogger.Level {
	case "", "none", "normal", "debug":
	default:
		return fmt.Errorf("unknown console log level %q", p.Logging.ConsoleLogger.Level)
	}
	switch p.Logging.FileLogger.Level {
	case "", "none", "normal", "debug":
	default:
		return fmt.Errorf("unknown file log level %q", p.Logging.FileLogger.Level)
	}
	return nil
}

// Track returns the revision mode. Validate has already accepted it.
func (p *Profile) Track() doc.TrackChanges {
	t, _ := doc.ParseTrackChanges(p.TrackChanges)
	return t
}

// StyleSettings implements doc.StyleFilter. Style ids are matched case
// insensitively; unknown styles get the default settings.
func (p *Profile) StyleSettings(styleID string) doc.StyleSettings {
	s, ok := p.Styles[styleID]
	if !ok {
		s, ok = p.Styles[strings.ToLower(styleID)]
	}
	if !ok {
		s = p.DefaultStyle
	}
	out := doc.StyleSettings{
		ShowHidden: s.ShowHidden,
		Hide:       s.Hide,
		TOCLevel:   s.TOCLevel,
		Split:      s.Split,
	}
	if s.Alignment != "" || s.FontSize > 0 {
		out.Fixup = &styleFixup{jc: alignments[s.Alignment], setJc: s.Alignment != "", hps: uint16(s.FontSize * 2)}
	}
	return out
}

// Options returns the decoder options the profile selects.
func (p *Profile) Options() []doc.Option {
	return []doc.Option{doc.WithTrackChanges(p.Track()), doc.WithStyleFilter(p)}
}

// styleFixup forces alignment and font size on a style.
type styleFixup struct {
	jc    uint8
	setJc bool
	hps   uint16
}

func (f *styleFixup) FixParagraph(p *sprm.Pap) {
	if f.setJc {
		p.Jc = f.jc
	}
}

func (f *styleFixup) FixCharacter(c *sprm.Chp) {
	if f.hps > 0 {
		c.Hps = f.hps
	}
}
