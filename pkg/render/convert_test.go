package render

import (
	"bytes"
	"context"
	"testing"
)

const page = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" width="10mm" height="10mm"><rect width="10" height="10" fill="#ffffff"/></svg>`

func TestToPDFNoPages(t *testing.T) {
	if _, err := ToPDF(context.Background(), nil); err == nil {
		t.Error("expected an error without pages")
	}
}

func TestConvert(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	ctx := context.Background()

	pdf, err := ToPDF(ctx, [][]byte{[]byte(page), []byte(page)})
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("not a PDF: %q", pdf[:min(8, len(pdf))])
	}

	png, err := ToPNG(ctx, []byte(page), 2)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("not a PNG: %q", png[:min(8, len(png))])
	}
}
