package wordbin

import (
	"go.uber.org/zap"

	"github.com/tsawler/wordbin/config"
	"github.com/tsawler/wordbin/doc"
)

// ExtractOptions holds configuration for extraction.
type ExtractOptions struct {
	log     *zap.Logger
	profile *config.Profile

	// Decoding, both override the profile when set
	track  *doc.TrackChanges
	styles doc.StyleFilter

	// Output
	excludeNotes bool
	skipCheck    bool
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		log: zap.NewNop(),
	}
}

// clone creates a copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	if o.track != nil {
		t := *o.track
		newOpts.track = &t
	}
	return newOpts
}

// docOptions translates the options into decoder options.
func (o ExtractOptions) docOptions() []doc.Option {
	opts := []doc.Option{doc.WithLogger(o.log)}
	if o.profile != nil {
		opts = append(opts, o.profile.Options()...)
	}
	if o.track != nil {
		opts = append(opts, doc.WithTrackChanges(*o.track))
	}
	if o.styles != nil {
		opts = append(opts, doc.WithStyleFilter(o.styles))
	}
	return opts
}
