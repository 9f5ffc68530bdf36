package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/timetable/pkg/buildinfo"
	"github.com/matzehuels/timetable/pkg/errors"
	"github.com/matzehuels/timetable/pkg/observability"
	"github.com/matzehuels/timetable/pkg/render"
	"github.com/matzehuels/timetable/pkg/surface/pdf"
	"github.com/matzehuels/timetable/pkg/surface/record"
	"github.com/matzehuels/timetable/pkg/surface/svg"
)

// Render composes pages and encodes them in opts.Format.
func Render(ctx context.Context, pages []*Page, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no timetables to render")
	}
	if opts.needsRsvg() && !render.Available() {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s output needs rsvg-convert on PATH", opts.Format)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()

	data, err := renderFormat(ctx, pages, opts)
	hooks.OnRenderComplete(ctx, opts.Format, len(data), time.Since(start), err)
	return data, err
}

func renderFormat(ctx context.Context, pages []*Page, opts Options) ([]byte, error) {
	switch opts.Format {
	case FormatJSON:
		return renderJSON(ctx, pages, opts)
	case FormatSVG:
		c, err := renderSVG(ctx, pages, opts)
		if err != nil {
			return nil, err
		}
		return c.Document(), nil
	case FormatPNG:
		c, err := renderSVG(ctx, pages, opts)
		if err != nil {
			return nil, err
		}
		return wrapConvert(render.ToPNG(ctx, c.Document(), PNGScale))
	case FormatPDF:
		if opts.PDFEngine == EngineRsvg {
			c, err := renderSVG(ctx, pages, opts)
			if err != nil {
				return nil, err
			}
			return wrapConvert(render.ToPDF(ctx, c.Pages()))
		}
		return renderPDF(ctx, pages, opts)
	}
	return nil, ValidateFormat(opts.Format)
}

func renderJSON(ctx context.Context, pages []*Page, opts Options) ([]byte, error) {
	r := record.New()
	if err := Compose(ctx, r, pages, opts.Logger); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.WriteJSON(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return buf.Bytes(), nil
}

func renderSVG(ctx context.Context, pages []*Page, opts Options) (*svg.Canvas, error) {
	c := svg.New()
	if err := Compose(ctx, c, pages, opts.Logger); err != nil {
		return nil, err
	}
	return c, nil
}

func renderPDF(ctx context.Context, pages []*Page, opts Options) ([]byte, error) {
	pdfOpts := []pdf.Option{pdf.WithCreator(buildinfo.UserAgent())}
	if opts.FontDir != "" {
		pdfOpts = append(pdfOpts, pdf.WithFontDir(opts.FontDir, opts.FontFamily))
	}
	doc, err := pdf.New(pdfOpts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "pdf")
	}
	if len(pages) == 1 {
		doc.SetTitle(pages[0].Timetable.Title)
	}
	if err := Compose(ctx, doc, pages, opts.Logger); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "write pdf")
	}
	return buf.Bytes(), nil
}

func wrapConvert(data []byte, err error) ([]byte, error) {
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "rsvg-convert")
	}
	return data, nil
}
