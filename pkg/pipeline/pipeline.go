// Package pipeline provides the load → build → render pipeline shared by
// the CLI and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read tabular rows from a file, an http(s) URL or inline data
//  2. Build: configure a chart through a named recipe and render its scene
//  3. Render: export the scene in the requested formats (SVG, PNG, PDF,
//     JSON, DOT)
//
// The [Runner] caches remote data and rendered artifacts. When every
// requested artifact is cached the build stage is skipped altogether.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "sales.csv",
//	    Recipe:  "column",
//	    Fields:  recipe.Fields{X: "genre", Y: "sold"},
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	rows, err := runner.Load(ctx, opts)
//	c, err := pipeline.Build(rows, opts)
//	artifacts, err := pipeline.Render(ctx, c, opts)
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/chart/view"
	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/recipe"
)

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 640.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 480.0

	// DefaultScale is the default PNG pixel density.
	DefaultScale = 2.0

	// DefaultTheme is the built-in theme used when none is given.
	DefaultTheme = "light"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidDataFormats is the set of supported input encodings.
var ValidDataFormats = map[string]bool{
	string(data.FormatCSV):  true,
	string(data.FormatJSON): true,
	string(data.FormatYAML): true,
}

// contentTypes maps output formats to MIME types.
var contentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
}

// ContentType returns the MIME type of an output format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source     string       `json:"source,omitempty"`      // file path or http(s) URL
	Rows       []data.Datum `json:"rows,omitempty"`        // inline rows; take precedence over Source
	DataFormat string       `json:"data_format,omitempty"` // csv, json or yaml; inferred from Source when empty
	Refresh    bool         `json:"refresh,omitempty"`     // bypass cached data and artifacts

	// Build options
	Recipe  string        `json:"recipe"`
	Fields  recipe.Fields `json:"fields"`
	Title   string        `json:"title,omitempty"`
	Width   float64       `json:"width,omitempty"`
	Height  float64       `json:"height,omitempty"`
	Theme   string        `json:"theme,omitempty"` // built-in name or YAML theme file
	Animate bool          `json:"animate,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"` // PNG only

	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Rows are the loaded data rows.
	Rows []data.Datum

	// DataHash is the content hash of the loaded data.
	DataHash string

	// ChartHash identifies the chart independent of output settings.
	ChartHash string

	// Chart is the built chart, or nil when every artifact came from the
	// cache.
	Chart *view.Chart

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows       int
	Views      int
	Elements   int
	Shapes     int
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // remote data came from the cache
	RenderHit bool // every artifact came from the cache
}

// ValidateFormat checks that an output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
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

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
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

// ValidateForLoad checks the data source.
func (o *Options) ValidateForLoad() error {
	if o.Rows == nil && o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source or rows is required")
	}
	if o.DataFormat != "" && !ValidDataFormats[o.DataFormat] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid data_format: %q (must be one of: csv, json, yaml)", o.DataFormat)
	}
	o.setLogger()
	return nil
}

// SetBuildDefaults sets default values for chart building.
func (o *Options) SetBuildDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	o.setLogger()
}

// ValidateForBuild validates and sets defaults for chart building.
func (o *Options) ValidateForBuild() error {
	o.SetBuildDefaults()
	if o.Recipe == "" {
		return errors.New(errors.ErrCodeInvalidRecipe, "recipe is required")
	}
	if _, err := recipe.Get(o.Recipe); err != nil {
		return err
	}
	return errors.ValidateDimensions(o.Width, o.Height)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 || o.Scale > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, 8] (got %g)", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ChartHash returns the identity of the chart built from data with the
// given content hash. Output settings are not part of it.
func (o *Options) ChartHash(dataHash string) string {
	b, _ := json.Marshal(struct {
		Data   string        `json:"data"`
		Recipe string        `json:"recipe"`
		Fields recipe.Fields `json:"fields"`
		Title  string        `json:"title,omitempty"`
	}{dataHash, o.Recipe, o.Fields, o.Title})
	return cache.Hash(b)
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:  format,
		Width:   o.Width,
		Height:  o.Height,
		Theme:   o.Theme,
		Animate: o.Animate,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// SourceLabel names the data source in logs and hooks.
func (o *Options) SourceLabel() string {
	if o.Rows != nil {
		return fmt.Sprintf("inline (%d rows)", len(o.Rows))
	}
	return o.Source
}
