package layout

import (
	"image"
	"image/color"
	"testing"
)

// testGeometry fits exactly 2 cards per row and 2 rows per page.
func testGeometry() Geometry {
	return Geometry{
		CardW:      100,
		CardH:      140,
		PageW:      320,
		PageH:      300,
		Gap:        10,
		TopMargin:  10,
		SideMargin: 5,
		Background: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

func testImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(4 * x), G: uint8(4 * y), B: 0x40, A: 0xff})
		}
	}
	return img
}

func TestGeometryValidate(t *testing.T) {
	if err := testGeometry().Validate(); err != nil {
		t.Fatalf("Expected valid geometry, got: %v", err)
	}

	tooWide := testGeometry()
	tooWide.CardW = 311 // 320 - 2*5 = 310 available
	if err := tooWide.Validate(); err == nil {
		t.Error("Expected error for card wider than printable area")
	}

	tooTall := testGeometry()
	tooTall.CardH = 291 // 300 - 10 top margin
	if err := tooTall.Validate(); err == nil {
		t.Error("Expected error for card taller than printable area")
	}

	zero := Geometry{}
	if err := zero.Validate(); err == nil {
		t.Error("Expected error for zero geometry")
	}
}

func TestEmptyInputKeepsOnePage(t *testing.T) {
	e := NewEngine(testGeometry())
	pages := e.Pages()
	if len(pages) != 1 {
		t.Fatalf("Expected 1 page for empty input, got %d", len(pages))
	}
	if len(pages[0].Placements) != 0 {
		t.Errorf("Expected no placements, got %d", len(pages[0].Placements))
	}
}

func TestSingleCardPlacement(t *testing.T) {
	geo := testGeometry()
	e := NewEngine(geo)
	e.Add(testImage(), 1)

	pages := e.Pages()
	if len(pages) != 1 {
		t.Fatalf("Expected 1 page, got %d", len(pages))
	}
	if len(pages[0].Placements) != 1 {
		t.Fatalf("Expected 1 placement, got %d", len(pages[0].Placements))
	}
	got := pages[0].Placements[0]
	if got.X != geo.SideMargin || got.Y != geo.TopMargin {
		t.Errorf("Expected placement at (%d,%d), got (%d,%d)",
			geo.SideMargin, geo.TopMargin, got.X, got.Y)
	}
}

func TestRowWrapAtCapacity(t *testing.T) {
	geo := testGeometry()
	e := NewEngine(geo)
	// Two cards fit per row; the third wraps to a new row on the same
	// page, not to a new page.
	e.Add(testImage(), 3)

	pages := e.Pages()
	if len(pages) != 1 {
		t.Fatalf("Expected 1 page, got %d", len(pages))
	}
	placements := pages[0].Placements
	if len(placements) != 3 {
		t.Fatalf("Expected 3 placements, got %d", len(placements))
	}

	wantY := geo.TopMargin + geo.CardH + geo.Gap
	want := []Placement{
		{X: 5, Y: 10},
		{X: 115, Y: 10},
		{X: 5, Y: wantY},
	}
	for i, w := range want {
		if placements[i] != w {
			t.Errorf("Placement %d: expected %+v, got %+v", i, w, placements[i])
		}
	}
}

func TestPageOverflowAllocatesPage(t *testing.T) {
	geo := testGeometry()
	e := NewEngine(geo)
	// Four cards fill the page; the fifth starts page two at the
	// top-left content position.
	e.Add(testImage(), 5)

	pages := e.Pages()
	if len(pages) != 2 {
		t.Fatalf("Expected 2 pages, got %d", len(pages))
	}
	if len(pages[0].Placements) != 4 {
		t.Errorf("Expected 4 placements on page 1, got %d", len(pages[0].Placements))
	}
	if len(pages[1].Placements) != 1 {
		t.Fatalf("Expected 1 placement on page 2, got %d", len(pages[1].Placements))
	}
	got := pages[1].Placements[0]
	if got.X != geo.SideMargin || got.Y != geo.TopMargin {
		t.Errorf("Expected page 2 placement at (%d,%d), got (%d,%d)",
			geo.SideMargin, geo.TopMargin, got.X, got.Y)
	}
}

func TestPageAllocationMonotonic(t *testing.T) {
	e := NewEngine(testGeometry())
	prev := len(e.Pages())
	for i := 0; i < 13; i++ {
		e.Add(testImage(), 1)
		cur := len(e.Pages())
		if cur < prev {
			t.Fatalf("Page count decreased from %d to %d", prev, cur)
		}
		if cur > prev+1 {
			t.Fatalf("Page count jumped from %d to %d on one placement", prev, cur)
		}
		prev = cur
	}
	// 13 cards at 4 per page -> 4 pages.
	if prev != 4 {
		t.Errorf("Expected 4 pages for 13 cards, got %d", prev)
	}
}

func TestCopiesShareIdenticalFootprint(t *testing.T) {
	geo := testGeometry()
	e := NewEngine(geo)
	e.Add(testImage(), 2)

	page := e.Pages()[0]
	canvas := page.Canvas()
	a, b := page.Placements[0], page.Placements[1]
	for dy := 0; dy < geo.CardH; dy += 7 {
		for dx := 0; dx < geo.CardW; dx += 7 {
			ca := canvas.NRGBAAt(a.X+dx, a.Y+dy)
			cb := canvas.NRGBAAt(b.X+dx, b.Y+dy)
			if ca != cb {
				t.Fatalf("Pixel (%d,%d) differs between copies: %v vs %v", dx, dy, ca, cb)
			}
		}
	}
}

func TestPageBackground(t *testing.T) {
	geo := testGeometry()
	geo.Background = color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}
	e := NewEngine(geo)

	canvas := e.Pages()[0].Canvas()
	if got := canvas.NRGBAAt(0, 0); got != geo.Background {
		t.Errorf("Expected background %v, got %v", geo.Background, got)
	}
}
