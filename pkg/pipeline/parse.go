package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/timetable/pkg/errors"
	"github.com/matzehuels/timetable/pkg/observability"
	"github.com/matzehuels/timetable/pkg/parser"
	"github.com/matzehuels/timetable/pkg/timetable"
)

// Parse reads one document into a page. Parse failures carry
// errors.ErrCodeParse and wrap the *parser.ParseError with its line.
func Parse(ctx context.Context, doc Document, opts Options) (*Page, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := errors.ValidateDocumentName(doc.Name); err != nil {
		return nil, err
	}
	if err := errors.ValidateDocumentSize(len(doc.Data)); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, doc.Name)
	start := time.Now()

	res, err := parser.Parse(string(doc.Data),
		parser.WithLint(opts.Lint),
		parser.WithRemovedMarker(opts.RemovedMarker),
	)
	if err != nil {
		hooks.OnParseComplete(ctx, doc.Name, 0, 0, time.Since(start), err)
		return nil, errors.Wrap(errors.ErrCodeParse, err, "%s", doc.Name)
	}

	page := &Page{
		Name:      doc.Name,
		Timetable: res.Timetable,
		Settings:  timetable.Merge(res.Settings, opts.Settings),
		Warnings:  res.Warnings,
	}
	hooks.OnParseComplete(ctx, doc.Name, res.Timetable.LessonCount(), len(res.Warnings), time.Since(start), nil)

	opts.Logger.Debug("parsed document",
		"document", doc.Name,
		"title", res.Timetable.Title,
		"days", len(res.Timetable.Days),
		"lessons", res.Timetable.LessonCount(),
		"warnings", len(res.Warnings))
	return page, nil
}
