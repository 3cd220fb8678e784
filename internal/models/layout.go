package models

import "time"

// Layout represents a warehouse floor plan drawn on the designer canvas
type Layout struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	CanvasWidth  float64   `json:"canvas_width" db:"canvas_width"`   // Pixels
	CanvasHeight float64   `json:"canvas_height" db:"canvas_height"` // Pixels
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// LayoutInput is the request body for creating or updating a layout
type LayoutInput struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
}

// Default canvas size used when a layout is created without one
const (
	DefaultCanvasWidth  = 1200.0
	DefaultCanvasHeight = 800.0
)
