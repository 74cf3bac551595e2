package xlsx

import "log/slog"

// Options holds configuration for decoding a workbook.
type Options struct {
	// UseRelationships resolves each sheet's part through
	// xl/_rels/workbook.xml.rels instead of assuming sheet<N>.xml for the
	// N-th declared sheet. The positional name is still used when the
	// relationship is missing.
	UseRelationships bool

	// InferSpans keeps rows written without a spans attribute, deriving the
	// span from the row's cell references. Rows with a malformed spans
	// attribute are dropped either way.
	InferSpans bool

	// Logger receives a Debug record for every Warning. Nil disables logging.
	Logger *slog.Logger
}

// DefaultOptions returns the default decoding options.
func DefaultOptions() Options {
	return Options{
		UseRelationships: false,
		InferSpans:       false,
		Logger:           nil,
	}
}
