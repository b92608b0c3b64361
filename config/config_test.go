package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/tsawler/wordbin/doc"
	"github.com/tsawler/wordbin/sprm"
)

func TestLoadProfile_NoFile(t *testing.T) {
	p, err := LoadProfile("")
	if err != nil {
		t.Fatalf("LoadProfile() with empty path error = %v", err)
	}
	if p.Version != 1 {
		t.Errorf("Default profile version = %d, want 1", p.Version)
	}
	if p.Track() != doc.TrackFinal {
		t.Errorf("Default track mode = %v, want final", p.Track())
	}
	if got := p.StyleSettings("heading-1"); got.TOCLevel != 1 || !got.Split {
		t.Errorf("heading-1 settings = %+v", got)
	}
}

func TestLoadProfile_WithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `version: 1
track_changes: markup
styles:
  heading-1: { toc_level: 2 }
  hidden-notes: { show_hidden: true }
  boilerplate: { hide: true }
  quote: { alignment: center, font_size: 14 }
default_style: { show_hidden: false }
logging:
  console: { level: debug }
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write profile: %v", err)
	}
	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if p.Track() != doc.TrackMarkup {
		t.Errorf("Track() = %v, want markup", p.Track())
	}
	if got := p.StyleSettings("heading-1"); got.TOCLevel != 2 {
		t.Errorf("heading-1 TOCLevel = %d, want 2", got.TOCLevel)
	}
	// defaults merge with the file
	if got := p.StyleSettings("heading-2"); got.TOCLevel != 2 {
		t.Errorf("heading-2 TOCLevel = %d, want 2 from defaults", got.TOCLevel)
	}
	if !p.StyleSettings("Hidden-Notes").ShowHidden {
		t.Error("style lookup should ignore case")
	}
	if !p.StyleSettings("boilerplate").Hide {
		t.Error("boilerplate should be hidden")
	}
	if got := p.StyleSettings("normal"); got.Hide || got.ShowHidden || got.Fixup != nil {
		t.Errorf("unknown style settings = %+v, want defaults", got)
	}

	fix := p.StyleSettings("quote").Fixup
	if fix == nil {
		t.Fatal("quote should have a fixup")
	}
	var pap sprm.Pap
	var chp sprm.Chp
	chp.Hps = 20
	fix.FixParagraph(&pap)
	fix.FixCharacter(&chp)
	if pap.Jc != 1 {
		t.Errorf("Jc = %d, want 1", pap.Jc)
	}
	if chp.Hps != 28 {
		t.Errorf("Hps = %d, want 28", chp.Hps)
	}
	if len(p.Options()) != 2 {
		t.Errorf("Options() returned %d options, want 2", len(p.Options()))
	}
}

func TestParseProfile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad version", "version: 2\n", "version"},
		{"bad mode", "version: 1\ntrack_changes: accepted\n", "track changes"},
		{"toc level", "version: 1\nstyles:\n  h: { toc_level: 10 }\n", "toc_level"},
		{"negative toc level", "version: 1\ndefault_style: { toc_level: -1 }\n", "toc_level"},
		{"alignment", "version: 1\nstyles:\n  h: { alignment: middle }\n", "alignment"},
		{"unknown key", "version: 1\ncolour: red\n", "decode"},
		{"log level", "version: 1\nlogging:\n  console: { level: verbose }\n", "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProfile([]byte(tt.content))
			if err == nil {
				t.Fatal("ParseProfile() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadProfile_Missing(t *testing.T) {
	if _, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadProfile() should fail for a missing file")
	}
}

func TestLoggingConfig_Prepare(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "wordbin.log")
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "debug", Destination: logPath, Mode: "overwrite"},
	}
	log, err := conf.Prepare("test")
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("decoded", zap.String("file", "a.doc"))
	_ = log.Sync()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "decoded") {
		t.Errorf("log file = %q, want the debug entry", data)
	}

	conf.FileLogger.Destination = ""
	if _, err := conf.Prepare("test"); err == nil {
		t.Error("Prepare() should fail without a file destination")
	}
}
