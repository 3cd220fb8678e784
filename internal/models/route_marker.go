package models

// Route marker types
const (
	MarkerTypeStart       = "start_point"
	MarkerTypeStop        = "stop_point"
	MarkerTypeCartParking = "cart_parking"
)

// IsValidMarkerType reports whether t is a known marker type
func IsValidMarkerType(t string) bool {
	switch t {
	case MarkerTypeStart, MarkerTypeStop, MarkerTypeCartParking:
		return true
	}
	return false
}

// RouteMarker is a point on the canvas marking where pick routes start, stop,
// or where pickers park their carts
type RouteMarker struct {
	ID            int64   `json:"id" db:"id"`
	LayoutID      int64   `json:"layout_id" db:"layout_id"`
	Label         string  `json:"label" db:"label"`
	MarkerType    string  `json:"marker_type" db:"marker_type"`
	X             float64 `json:"x_coordinate" db:"x_coordinate"`
	Y             float64 `json:"y_coordinate" db:"y_coordinate"`
	SequenceOrder int     `json:"sequence_order" db:"sequence_order"`
}

// RouteMarkerInput is the request body for creating a route marker
type RouteMarkerInput struct {
	Label         string  `json:"label"`
	MarkerType    string  `json:"marker_type" binding:"required"`
	X             float64 `json:"x_coordinate"`
	Y             float64 `json:"y_coordinate"`
	SequenceOrder int     `json:"sequence_order"`
}

// ToMarker converts the input into a marker belonging to layoutID
func (in RouteMarkerInput) ToMarker(layoutID int64) RouteMarker {
	return RouteMarker{
		LayoutID:      layoutID,
		Label:         in.Label,
		MarkerType:    in.MarkerType,
		X:             in.X,
		Y:             in.Y,
		SequenceOrder: in.SequenceOrder,
	}
}
