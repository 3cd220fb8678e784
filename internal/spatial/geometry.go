package spatial

import (
	"github.com/golang/geo/r2"

	"github.com/jengzang/slotting-backend-go/internal/models"
)

// ElementRect returns the canvas rectangle covered by an element.
// Negative sizes are normalized so Lo is always the top-left corner.
func ElementRect(e models.WarehouseElement) r2.Rect {
	return r2.RectFromPoints(
		r2.Point{X: e.X, Y: e.Y},
		r2.Point{X: e.X + e.Width, Y: e.Y + e.Height},
	)
}

// ElementCenter returns the center point of an element (position + half size)
func ElementCenter(e models.WarehouseElement) r2.Point {
	return ElementRect(e).Center()
}

// MarkerPoint returns the canvas point of a route marker
func MarkerPoint(m models.RouteMarker) r2.Point {
	return r2.Point{X: m.X, Y: m.Y}
}

// LayoutBounds returns the smallest rectangle containing every element and
// marker. The second result is false when the layout is empty.
func LayoutBounds(elements []models.WarehouseElement, markers []models.RouteMarker) (r2.Rect, bool) {
	bounds := r2.EmptyRect()
	for _, e := range elements {
		bounds = bounds.Union(ElementRect(e))
	}
	for _, m := range markers {
		bounds = bounds.AddPoint(MarkerPoint(m))
	}
	if bounds.IsEmpty() {
		return bounds, false
	}
	return bounds, true
}
