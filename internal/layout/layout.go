// Package layout places fixed-size card images onto fixed-size pages.
// Every card shares one footprint, so a greedy row-major grid fill is
// optimal here; there is no general bin-packing involved.
package layout

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Geometry is the pixel-space page layout configuration, derived once
// from the physical-units config.
type Geometry struct {
	CardW      int
	CardH      int
	PageW      int
	PageH      int
	Gap        int
	TopMargin  int
	SideMargin int
	Background color.NRGBA
}

// Validate rejects geometries that could never place a card. Without
// this check an oversized card would allocate pages forever.
func (g Geometry) Validate() error {
	if g.CardW <= 0 || g.CardH <= 0 || g.PageW <= 0 || g.PageH <= 0 {
		return fmt.Errorf("layout geometry has non-positive dimensions: card %dx%d, page %dx%d",
			g.CardW, g.CardH, g.PageW, g.PageH)
	}
	if g.CardW > g.PageW-2*g.SideMargin {
		return fmt.Errorf("card width %dpx does not fit page width %dpx with side margin %dpx",
			g.CardW, g.PageW, g.SideMargin)
	}
	if g.CardH+g.TopMargin > g.PageH {
		return fmt.Errorf("card height %dpx does not fit page height %dpx with top margin %dpx",
			g.CardH, g.PageH, g.TopMargin)
	}
	return nil
}

// Placement records where one card landed on a page
type Placement struct {
	X int
	Y int
}

// Page is one output page: its raster canvas and the placements made on
// it, in order.
type Page struct {
	canvas     *image.NRGBA
	Placements []Placement
}

// Canvas returns the page raster
func (p *Page) Canvas() *image.NRGBA {
	return p.canvas
}

// Engine lays out card images page by page. It always holds at least
// one page, so even an empty input produces a non-empty document.
type Engine struct {
	geo   Geometry
	pages []*Page
	x, y  int
}

// NewEngine creates an engine with one blank page and the cursor at the
// top-left content position. The geometry must already be validated.
func NewEngine(geo Geometry) *Engine {
	e := &Engine{geo: geo}
	e.pages = append(e.pages, e.newPage())
	e.x = geo.SideMargin
	e.y = geo.TopMargin
	return e
}

func (e *Engine) newPage() *Page {
	return &Page{canvas: imaging.New(e.geo.PageW, e.geo.PageH, e.geo.Background)}
}

// Add resizes img to the card footprint and places it copies times.
// Resizing happens once per distinct image, so every copy shares the
// identical resampled footprint.
func (e *Engine) Add(img image.Image, copies int) {
	resized := resize.Resize(uint(e.geo.CardW), uint(e.geo.CardH), img, resize.Lanczos3)
	for i := 0; i < copies; i++ {
		e.place(resized)
	}
}

// place advances the cursor row-major: wrap the row when the card would
// cross the right content edge, allocate a new page when it would cross
// the bottom edge. The horizontal check runs strictly before the
// vertical one.
func (e *Engine) place(img image.Image) {
	if e.x+e.geo.CardW > e.geo.PageW-e.geo.SideMargin {
		e.x = e.geo.SideMargin
		e.y += e.geo.CardH + e.geo.Gap
	}
	if e.y+e.geo.CardH > e.geo.PageH {
		e.pages = append(e.pages, e.newPage())
		e.x = e.geo.SideMargin
		e.y = e.geo.TopMargin
	}

	page := e.pages[len(e.pages)-1]
	page.canvas = imaging.Paste(page.canvas, img, image.Pt(e.x, e.y))
	page.Placements = append(page.Placements, Placement{X: e.x, Y: e.y})

	e.x += e.geo.CardW + e.geo.Gap
}

// Pages returns the laid-out pages in order
func (e *Engine) Pages() []*Page {
	return e.pages
}
