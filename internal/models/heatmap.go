package models

// HeatmapCell represents a single slot element in the heatmap
type HeatmapCell struct {
	ElementID   int64   `json:"element_id"`
	Label       string  `json:"element_name"`
	ElementType string  `json:"element_type"`
	X           float64 `json:"x_coordinate"`
	Y           float64 `json:"y_coordinate"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Intensity   float64 `json:"intensity"` // Normalized 0-1
	Value       int     `json:"value"`     // Raw pick count
	Tier        string  `json:"velocity_tier"`
}

// HeatmapResponse represents the heatmap API response
type HeatmapResponse struct {
	Period   Period        `json:"period"`
	Cells    []HeatmapCell `json:"cells"`
	Count    int           `json:"count"`
	MaxValue int           `json:"max_value"`
	MinValue int           `json:"min_value"`
}
