// Package render converts SVG pages to PDF and PNG with rsvg-convert.
//
// The gofpdf backend only knows the cp1252 core fonts; going through SVG
// and librsvg renders any UTF-8 text with the system fonts instead.
package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Binary is the converter executable looked up on PATH.
const Binary = "rsvg-convert"

// Available reports whether rsvg-convert is installed.
func Available() bool {
	_, err := exec.LookPath(Binary)
	return err == nil
}

// ToPDF converts SVG pages into one PDF with a page per SVG document.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, pages [][]byte) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdf export: no pages")
	}
	if len(pages) == 1 {
		return rsvgConvert(ctx, pages[0], "pdf")
	}

	// rsvg-convert reads a single document from stdin, so multi-page
	// output goes through files.
	dir, err := os.MkdirTemp("", "timetable-pages-")
	if err != nil {
		return nil, fmt.Errorf("pdf export: %w", err)
	}
	defer os.RemoveAll(dir)

	args := []string{"-f", "pdf"}
	for i, p := range pages {
		path := filepath.Join(dir, fmt.Sprintf("page-%03d.svg", i+1))
		if err := os.WriteFile(path, p, 0o600); err != nil {
			return nil, fmt.Errorf("pdf export: %w", err)
		}
		args = append(args, path)
	}
	return run(ctx, nil, "pdf", args)
}

// ToPNG converts an SVG document to PNG with the given scale factor.
// Scale of 2.0 produces a 2x resolution image.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(ctx, svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	args := append([]string{"-f", format}, extraArgs...)
	return run(ctx, svg, format, args)
}

func run(ctx context.Context, stdin []byte, format string, args []string) ([]byte, error) {
	if !Available() {
		return nil, fmt.Errorf("%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	cmd := exec.CommandContext(ctx, Binary, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v: %s", Binary, err, errBuf.String())
	}
	return out.Bytes(), nil
}
