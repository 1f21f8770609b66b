// Package pdf serializes laid-out pages into a multi-page PDF. Each
// page canvas is embedded as one full-page raster image at the physical
// page size, so the configured DPI is carried by the pixel-to-mm ratio.
package pdf

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/go-pdf/fpdf"

	"github.com/chrisi5700/mtgproxy/internal/layout"
)

// Writer writes page canvases into a PDF document of the given physical
// page size.
type Writer struct {
	PageWidthMM  float64
	PageHeightMM float64
}

// Write serializes pages in order to a PDF file at path. The file is
// only produced when every page encodes cleanly; an unwritable
// destination is the caller's error to handle.
func (w *Writer) Write(pages []*layout.Page, path string) error {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: w.PageWidthMM, Ht: w.PageHeightMM},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, page := range pages {
		var buf bytes.Buffer
		if err := png.Encode(&buf, page.Canvas()); err != nil {
			return fmt.Errorf("error encoding page %d: %w", i+1, err)
		}

		name := fmt.Sprintf("page-%d", i+1)
		doc.AddPage()
		doc.RegisterImageOptionsReader(name, opts, &buf)
		doc.ImageOptions(name, 0, 0, w.PageWidthMM, w.PageHeightMM, false, opts, 0, "")
	}

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}
