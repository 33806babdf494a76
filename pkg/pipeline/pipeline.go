// Package pipeline provides the load → sort → render pipeline for treepage.
//
// The CLI commands all run through a [Runner], so every entry point applies
// the same validation, caching and repair handling.
//
// # Architecture
//
// One run consists of these stages:
//
//  1. Load: read every record from a [source.Source] in stored order
//  2. Filter: narrow the records with an optional search query
//  3. Sort: build the parent/child tree and flatten the requested page
//  4. Persist: write self-parent repairs back to the source (optional)
//  5. Render: encode the page as text, JSON, choices, DOT, SVG, PNG or PDF
//
// Rendered pages are cached under a key derived from the loaded records and
// the options, so an unchanged store serves repeat requests from the cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, src, pipeline.Options{
//	    Page:    2,
//	    PerPage: 25,
//	    Format:  "text",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifact)
//
// Callers that already hold records, such as the interactive pager, sort
// without a source:
//
//	page, err := pipeline.SortRecords(records, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treepage/pkg/cache"
	"github.com/matzehuels/treepage/pkg/hierarchy"
	"github.com/matzehuels/treepage/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultPerPage is used by callers that page without an explicit size,
	// such as the interactive pager.
	DefaultPerPage = 20

	// DefaultFormat is the output format when none is given.
	DefaultFormat = render.FormatText

	// DefaultPNGScale is the scale factor for PNG output.
	DefaultPNGScale = 2.0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Window options. Zero for either means the whole set on one page.
	Page    int `json:"page"`
	PerPage int `json:"per_page"`

	// Match narrows the records to those whose id or title contains it.
	Match string `json:"match,omitempty"`

	// Render options
	Format   string `json:"format,omitempty"`
	Color    bool   `json:"color,omitempty"`    // lipgloss styling for text output
	Footer   bool   `json:"footer,omitempty"`   // pagination summary for text output
	Detailed bool   `json:"detailed,omitempty"` // metadata in diagram labels

	// Persist writes self-parent repairs back to the source.
	Persist bool `json:"persist,omitempty"`

	// Refresh skips the cache lookup but still stores the result.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	format render.Format
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Page is the sorted page. It is empty when the artifact came from
	// the cache.
	Page hierarchy.Page

	// Artifact is the rendered page in the requested format.
	Artifact []byte

	// Format is the format of Artifact.
	Format render.Format

	// RecordsHash is the content hash of the loaded records.
	RecordsHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether Artifact was served from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records    int // records loaded from the source
	Matched    int // records left after the search filter
	Emitted    int // nodes on the page, context included
	Repaired   int
	LoadTime   time.Duration
	SortTime   time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// Validate checks the window and format and applies defaults. It re-checks
// the current field values on every call.
func (o *Options) Validate() error {
	if _, err := hierarchy.NewWindow(o.Page, o.PerPage); err != nil {
		return err
	}
	f, err := render.ParseFormat(o.Format)
	if err != nil {
		return err
	}
	o.format = f
	o.Format = string(f)
	o.SetDefaults()
	return nil
}

// SetDefaults fills in runtime defaults.
func (o *Options) SetDefaults() {
	if o.Format == "" {
		o.Format = string(DefaultFormat)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Window returns the pagination window of the current Page and PerPage.
func (o *Options) Window() hierarchy.Window {
	return hierarchy.Window{Page: o.Page, PerPage: o.PerPage}
}

// PageKeyOpts returns cache key options for the rendered page.
func (o *Options) PageKeyOpts() cache.PageKeyOpts {
	return cache.PageKeyOpts{
		Page:    o.Page,
		PerPage: o.PerPage,
		Match:   o.Match,
		Format:  o.Format,
		Variant: o.variant(),
	}
}

func (o *Options) variant() string {
	var v string
	if o.Color {
		v += "c"
	}
	if o.Footer {
		v += "f"
	}
	if o.Detailed {
		v += "d"
	}
	return v
}
