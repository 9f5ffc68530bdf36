package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/timetable/pkg/errors"
	"github.com/matzehuels/timetable/pkg/layout"
	"github.com/matzehuels/timetable/pkg/observability"
	"github.com/matzehuels/timetable/pkg/surface"
)

// Compose draws every page on s in order, one landscape page each. It
// stops at the first page the surface fails on.
func Compose(ctx context.Context, s surface.Surface, pages []*Page, logger *log.Logger) error {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(pages))
	start := time.Now()

	err := compose(s, pages, logger)
	hooks.OnLayoutComplete(ctx, len(pages), time.Since(start), err)
	return err
}

func compose(s surface.Surface, pages []*Page, logger *log.Logger) error {
	for i, p := range pages {
		r, err := layout.New(p.Timetable, p.Settings.Resolve(), layout.WithLogger(logger))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSettings, err, "%s", p.Name)
		}
		if err := r.Render(s); err != nil {
			return errors.Wrap(errors.ErrCodeRender, err, "page %d (%s)", i+1, p.Name)
		}
	}
	return nil
}
