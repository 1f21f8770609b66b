package pdf

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/chrisi5700/mtgproxy/internal/layout"
)

func testPages(t *testing.T, n int) []*layout.Page {
	t.Helper()
	geo := layout.Geometry{
		CardW:      20,
		CardH:      28,
		PageW:      100,
		PageH:      140,
		TopMargin:  2,
		SideMargin: 2,
		Background: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
	e := layout.NewEngine(geo)
	card := image.NewNRGBA(image.Rect(0, 0, 10, 14))
	for len(e.Pages()) < n {
		e.Add(card, 1)
	}
	return e.Pages()
}

func TestWriteProducesPDF(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "cards.pdf")

	w := &Writer{PageWidthMM: 210, PageHeightMM: 297}
	if err := w.Write(testPages(t, 2), out); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Output not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("Output does not start with a PDF header: %q", data[:8])
	}
}

func TestWriteUnwritableDestination(t *testing.T) {
	w := &Writer{PageWidthMM: 210, PageHeightMM: 297}
	err := w.Write(testPages(t, 1), filepath.Join(t.TempDir(), "missing", "dir", "cards.pdf"))
	if err == nil {
		t.Fatal("Expected error for unwritable destination, got nil")
	}
}
