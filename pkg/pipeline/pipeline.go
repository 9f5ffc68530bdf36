// Package pipeline turns timetable documents into a rendered artifact.
//
// This package implements the parse → compose → render pipeline shared by
// the CLI and the HTTP server, so both behave the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: read each document into a timetable and its own settings
//  2. Compose: draw one landscape page per document on a drawing surface
//  3. Render: encode the surface (PDF, SVG, PNG or the JSON op log)
//
// Each page uses the defaults, overridden by the document's config block,
// overridden by the caller's settings.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, docs, pipeline.Options{Format: "pdf"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("week.pdf", result.Artifact, 0o644)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/timetable/pkg/cache"
	"github.com/matzehuels/timetable/pkg/errors"
	"github.com/matzehuels/timetable/pkg/parser"
	"github.com/matzehuels/timetable/pkg/timetable"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// Format constants for output formats.
const (
	FormatPDF  = "pdf"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// PDF engines.
const (
	// EngineGofpdf draws the PDF directly. Text is limited to cp1252
	// unless a font directory is given.
	EngineGofpdf = "gofpdf"
	// EngineRsvg draws SVG pages and converts them with rsvg-convert.
	EngineRsvg = "rsvg"
)

const (
	// DefaultFormat is the output format when none is given.
	DefaultFormat = FormatPDF
	// DefaultEngine is the PDF engine when none is given.
	DefaultEngine = EngineGofpdf
	// DefaultFontFamily is the file prefix looked up in FontDir.
	DefaultFontFamily = "DejaVuSans"
	// PNGScale is the rsvg-convert zoom for PNG output.
	PNGScale = 2.0
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatPDF:  "application/pdf",
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatJSON: "application/json",
}

// =============================================================================
// Inputs and Options
// =============================================================================

// Document is one input file. Name is used in warnings, the output file
// name and the cache key.
type Document struct {
	Name string
	Data []byte
}

// Options configures a pipeline run.
type Options struct {
	// Format is one of pdf, svg, png or json.
	Format string `json:"format"`
	// Settings are the caller's overrides, applied over every page.
	Settings timetable.Settings `json:"settings"`
	// Lint collects style warnings while parsing.
	Lint bool `json:"lint"`
	// RemovedMarker overrides the cancelled-lesson token unless a document
	// sets its own.
	RemovedMarker string `json:"removed_marker,omitempty"`
	// PDFEngine is gofpdf or rsvg.
	PDFEngine string `json:"pdf_engine,omitempty"`
	// FontDir holds TTF files for gofpdf, enabling full UTF-8 text.
	FontDir    string `json:"-"`
	FontFamily string `json:"-"`

	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Page is one parsed document ready to be drawn.
type Page struct {
	Name      string
	Timetable *timetable.Timetable
	// Settings is the merged result of document and caller settings.
	Settings timetable.Settings
	Warnings []parser.Warning
}

// Warning is a lint warning tagged with its document.
type Warning struct {
	Document string `json:"document"`
	parser.Warning
}

// String formats the warning as "document: line N: message".
func (w Warning) String() string {
	return w.Document + ": " + w.Warning.String()
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Artifact is the encoded output.
	Artifact []byte
	// Format is the artifact's format.
	Format string
	// Pages are the parsed documents, in input order.
	Pages    []*Page
	Warnings []Warning

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Pages      int
	Lessons    int
	ParseTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks which stages hit the cache.
type CacheInfo struct {
	RenderHit bool
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: pdf, svg, png, json)", format)
	}
	return nil
}

// ValidateEngine checks that a PDF engine is valid.
func ValidateEngine(engine string) error {
	switch engine {
	case EngineGofpdf, EngineRsvg:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid pdf engine: %q (must be one of: gofpdf, rsvg)", engine)
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.PDFEngine == "" {
		o.PDFEngine = DefaultEngine
	}
	if err := ValidateEngine(o.PDFEngine); err != nil {
		return err
	}
	if o.FontDir != "" && o.FontFamily == "" {
		o.FontFamily = DefaultFontFamily
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// needsRsvg reports whether rendering shells out to rsvg-convert.
func (o *Options) needsRsvg() bool {
	return o.Format == FormatPNG || (o.Format == FormatPDF && o.PDFEngine == EngineRsvg)
}

// ArtifactKeyOpts returns cache key options for the artifact.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:        o.Format,
		SettingsHash:  cache.HashJSON(o.Settings),
		RemovedMarker: o.RemovedMarker,
	}
	if o.Format == FormatPDF {
		k.Engine = o.PDFEngine
		if o.PDFEngine == EngineGofpdf {
			k.FontDir = o.FontDir + "/" + o.FontFamily
		}
	}
	return k
}
