package models

import "strings"

// Element types. Slot types hold product and take part in pick analytics,
// annotation types are drawing aids only.
const (
	ElementTypeBin      = "bin"
	ElementTypeRack     = "rack"
	ElementTypeShelf    = "shelf"
	ElementTypePallet   = "pallet"
	ElementTypeFlowRack = "flow_rack"
	ElementTypeFloor    = "floor"

	ElementTypeTextLabel = "text_label"
	ElementTypeLine      = "line"
	ElementTypeArrow     = "arrow"
	ElementTypeWall      = "wall"
)

var slotElementTypes = map[string]bool{
	ElementTypeBin:      true,
	ElementTypeRack:     true,
	ElementTypeShelf:    true,
	ElementTypePallet:   true,
	ElementTypeFlowRack: true,
	ElementTypeFloor:    true,
}

var annotationElementTypes = map[string]bool{
	ElementTypeTextLabel: true,
	ElementTypeLine:      true,
	ElementTypeArrow:     true,
	ElementTypeWall:      true,
}

// IsSlotType reports whether elements of this type can hold picked product
func IsSlotType(t string) bool {
	return slotElementTypes[t]
}

// IsValidElementType reports whether t is a known element type
func IsValidElementType(t string) bool {
	return slotElementTypes[t] || annotationElementTypes[t]
}

// WarehouseElement is a rectangle on the layout canvas
type WarehouseElement struct {
	ID       int64   `json:"id" db:"id"`
	LayoutID int64   `json:"layout_id" db:"layout_id"`
	Label    string  `json:"label" db:"label"`
	Type     string  `json:"element_type" db:"element_type"`
	X        float64 `json:"x_coordinate" db:"x_coordinate"` // Top-left corner, pixels
	Y        float64 `json:"y_coordinate" db:"y_coordinate"`
	Width    float64 `json:"width" db:"width"`
	Height   float64 `json:"height" db:"height"`
	Rotation float64 `json:"rotation" db:"rotation"` // Degrees, display only
	Capacity int     `json:"capacity" db:"capacity"` // Units, 0 = unknown
}

// IsSlot reports whether the element takes part in pick analytics
func (e WarehouseElement) IsSlot() bool {
	return IsSlotType(e.Type)
}

// NormalizedLabel is the key used to match CSV rows to elements
func NormalizedLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// ElementInput is the request body for creating or updating an element
type ElementInput struct {
	ID       int64   `json:"id"`
	Label    string  `json:"label"`
	Type     string  `json:"element_type" binding:"required"`
	X        float64 `json:"x_coordinate"`
	Y        float64 `json:"y_coordinate"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	Capacity int     `json:"capacity"`
}

// ToElement converts the input into an element belonging to layoutID
func (in ElementInput) ToElement(layoutID int64) WarehouseElement {
	return WarehouseElement{
		ID:       in.ID,
		LayoutID: layoutID,
		Label:    strings.TrimSpace(in.Label),
		Type:     in.Type,
		X:        in.X,
		Y:        in.Y,
		Width:    in.Width,
		Height:   in.Height,
		Rotation: in.Rotation,
		Capacity: in.Capacity,
	}
}
