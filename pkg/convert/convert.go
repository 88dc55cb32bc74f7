// Package convert provides the core figure-to-TikZ pipeline.
//
// This package implements the complete partition → layout → emit pipeline
// shared by the CLI and library users. A conversion runs in three stages:
//
//  1. Partition: split the figure's traces into panels and derive the
//     panel grid geometry
//  2. Layout: run every trace, shape and annotation converter, mutating
//     the per-panel option stores, then infer panel titles
//  3. Emit: assemble color definitions, environments and plot commands
//     into the final markup
//
// Warnings collected along the way are part of the result, not side
// output: a conversion either fails on malformed geometry or succeeds
// with an explicit warning list.
package convert

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tikzbridge/pkg/diag"
	"github.com/matzehuels/tikzbridge/pkg/figure"
)

// DefaultDocumentClass is the document class used for standalone output.
const DefaultDocumentClass = "article"

// Options contains all configuration for a conversion.
type Options struct {
	// TikzOptions is placed on the tikzpicture environment verbatim.
	TikzOptions string `json:"tikz_options,omitempty"`

	// ExtraAxisOptions are appended to every panel's option block.
	ExtraAxisOptions []string `json:"extra_axis_options,omitempty"`

	// Standalone wraps the picture in a compilable document.
	Standalone bool `json:"standalone,omitempty"`

	// DocumentClass selects the standalone document class.
	DocumentClass string `json:"document_class,omitempty"`

	// NoDisclaimer suppresses the generated-file header comment.
	NoDisclaimer bool `json:"no_disclaimer,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults. This method
// is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.DocumentClass == "" {
		o.DocumentClass = DefaultDocumentClass
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a conversion.
type Result struct {
	// Code is the generated markup.
	Code string

	// Warnings lists every recoverable defect hit during conversion.
	Warnings []diag.Warning

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether the result came from the cache (set by
	// Runner, always false for direct Convert calls).
	CacheHit bool
}

// Stats contains conversion statistics.
type Stats struct {
	TraceCount  int
	PanelCount  int
	ConvertTime time.Duration
}

// Convert renders a figure into TikZ markup.
func Convert(fig *figure.Figure, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	code, warnings, panelCount, err := render(fig, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Code:     code,
		Warnings: warnings,
		Stats: Stats{
			TraceCount:  len(fig.Data),
			PanelCount:  panelCount,
			ConvertTime: time.Since(start),
		},
	}

	opts.Logger.Info("converted figure",
		"traces", result.Stats.TraceCount,
		"panels", result.Stats.PanelCount,
		"warnings", len(result.Warnings),
		"duration", result.Stats.ConvertTime)
	return result, nil
}
