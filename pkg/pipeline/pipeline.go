// Package pipeline provides the core visualization pipeline for hierview.
//
// This package implements the complete load → build → layout → render
// pipeline shared by the CLI and the HTTP API. By centralizing this logic,
// both entry points apply view state, cache layouts and name artifacts the
// same way.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read a document from a file or take it inline, applying overrides
//  2. Build: Construct the tree from the document's node specs
//  3. Layout: Replay the view state (drill root, isolate stack, disclosure)
//     through a view controller and export the placed nodes
//  4. Render: Generate output in various formats (SVG, JSON, DOT, PNG, PDF)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Path:    "tree.yaml",
//	    VizType: "treemap",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Compute the animation between two states:
//
//	steps, err := runner.Transition(ctx, before, after)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hierview/pkg/cache"
	errs "github.com/matzehuels/hierview/pkg/errors"
	"github.com/matzehuels/hierview/pkg/graph"
	"github.com/matzehuels/hierview/pkg/layout/treemap"
	"github.com/matzehuels/hierview/pkg/session"
	"github.com/matzehuels/hierview/pkg/tree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0

	// DefaultPNGScale is the default rasterization scale.
	DefaultPNGScale = 2.0
)

// DefaultVizType is the default visualization type.
const DefaultVizType = graph.VizTypeSunburst

// Format constants for output formats.
const (
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
	FormatJSON    = "json"
	FormatDOT     = "dot"
	FormatOutline = "outline"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:     true,
	FormatPNG:     true,
	FormatPDF:     true,
	FormatJSON:    true,
	FormatDOT:     true,
	FormatOutline: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	graph.VizTypeSunburst: true,
	graph.VizTypeTreemap:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options
	Path     string          `json:"path,omitempty"`
	Document *graph.Document `json:"document,omitempty"`
	MaxDepth int             `json:"max_depth,omitempty"` // overrides the document when > 0
	Hidden   []string        `json:"hidden,omitempty"`    // added to the document's hidden categories
	Expanded []string        `json:"expanded,omitempty"`  // replaces the document's disclosure when set
	Refresh  bool            `json:"refresh,omitempty"`

	// View state
	Session  string   `json:"session,omitempty"`
	RootID   string   `json:"root_id,omitempty"`
	Isolated []string `json:"isolated,omitempty"`

	// Layout options
	VizType  string  `json:"viz_type,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Strategy string  `json:"strategy,omitempty"` // treemap: squarify or slice-and-dice
	Gap      string  `json:"gap,omitempty"`      // treemap: none, outer or all
	GapSize  float64 `json:"gap_size,omitempty"`
	Sort     bool    `json:"sort,omitempty"`
	Mirror   bool    `json:"mirror,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Labels     bool     `json:"labels,omitempty"`
	Background string   `json:"background,omitempty"`
	PNGScale   float64  `json:"png_scale,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"` // dot/outline: show size and depth

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the loaded document with overrides applied.
	Document graph.Document

	// DocumentHash is the content hash of the document.
	DocumentHash string

	// Tree is the built tree. Its geometry is not set when the layout came
	// from the cache.
	Tree *tree.Tree

	// Layout contains the placed nodes.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Session is the view state the run was resolved against, if any.
	Session *session.ViewState

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	PlacedCount int
	BuildTime   time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool `json:"layout_hit"` // Whether layout result came from cache
	RenderHit bool `json:"render_hit"` // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot, outline)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errs.New(errs.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: sunburst, treemap)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks that a document source is given.
func (o *Options) ValidateForBuild() error {
	if o.Document == nil && o.Path == "" {
		return errs.New(errs.ErrCodeInvalidInput, "path or document is required")
	}
	if o.Document == nil {
		if err := errs.ValidatePath(o.Path); err != nil {
			return err
		}
	}
	if o.MaxDepth < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max_depth must not be negative")
	}
	if o.RootID != "" {
		if err := errs.ValidateNodeID(o.RootID); err != nil {
			return err
		}
	}
	for _, id := range o.Isolated {
		if err := errs.ValidateNodeID(id); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.IsTreemap() && o.Gap == "" {
		o.Gap = treemap.GapAll.String()
	}
	if o.IsTreemap() && o.GapSize == 0 {
		o.GapSize = treemap.DefaultGapSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := errs.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if o.GapSize < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "gap_size must not be negative")
	}
	if _, err := treemap.ParseStrategy(o.Strategy); err != nil {
		return err
	}
	if _, err := treemap.ParseGapMode(o.Gap); err != nil {
		return err
	}
	if o.IsSunburst() && len(o.Isolated) > 0 {
		return errs.New(errs.ErrCodeInvalidInput, "isolate is only supported by the treemap")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if o.PNGScale < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "png_scale must be positive")
	}
	return ValidateFormats(o.Formats)
}

// IsSunburst returns true if this is a sunburst visualization.
func (o *Options) IsSunburst() bool {
	return o.VizType == "" || o.VizType == graph.VizTypeSunburst
}

// IsTreemap returns true if this is a treemap visualization.
func (o *Options) IsTreemap() bool {
	return o.VizType == graph.VizTypeTreemap
}

// ApplySession fills view state the options leave unset from st.
func (o *Options) ApplySession(st *session.ViewState) {
	if st == nil {
		return
	}
	if o.VizType == "" {
		o.VizType = st.VizType
	}
	if o.RootID == "" {
		o.RootID = st.RootID
	}
	if o.Isolated == nil && o.VizType == st.VizType {
		o.Isolated = st.Isolated
	}
	if o.Expanded == nil {
		o.Expanded = st.Expanded
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		VizType:  o.VizType,
		Width:    o.Width,
		Height:   o.Height,
		Strategy: o.Strategy,
		Gap:      o.Gap,
		GapSize:  o.GapSize,
		Sort:     o.Sort,
		Mirror:   o.Mirror,
		MaxDepth: o.MaxDepth,
		RootID:   o.RootID,
		Isolated: o.Isolated,
		Expanded: o.Expanded,
		Hidden:   o.Hidden,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Labels: o.Labels}
	switch format {
	case FormatSVG, FormatPNG, FormatPDF:
		k.Background = o.Background
	}
	if format == FormatPNG {
		k.Scale = o.PNGScale
	}
	if format == FormatDOT || format == FormatOutline {
		k.Detailed = o.Detailed
	}
	return k
}

// describe names the document source for logs and hooks.
func (o *Options) describe() string {
	if o.Path != "" {
		return o.Path
	}
	return "inline"
}
