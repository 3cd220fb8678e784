package models

import "time"

// DateLayout is the storage and API format of pick dates
const DateLayout = "2006-01-02"

// Upload kinds
const (
	UploadKindElement = "element"
	UploadKindItem    = "item"
)

// PickTransaction is one day's pick count at an element
type PickTransaction struct {
	ID        int64  `json:"id" db:"id"`
	LayoutID  int64  `json:"layout_id" db:"layout_id"`
	ElementID int64  `json:"element_id" db:"element_id"`
	PickDate  string `json:"pick_date" db:"pick_date"` // YYYY-MM-DD
	PickCount int    `json:"pick_count" db:"pick_count"`
	UploadID  string `json:"upload_id" db:"upload_id"`
}

// ItemPickTransaction is one day's pick count of an item at its location
type ItemPickTransaction struct {
	ID        int64  `json:"id" db:"id"`
	LayoutID  int64  `json:"layout_id" db:"layout_id"`
	ItemID    string `json:"item_id" db:"item_id"`
	ElementID int64  `json:"element_id" db:"element_id"`
	PickDate  string `json:"pick_date" db:"pick_date"`
	PickCount int    `json:"pick_count" db:"pick_count"`
	UploadID  string `json:"upload_id" db:"upload_id"`
}

// Item is a SKU slotted at an element
type Item struct {
	LayoutID    int64  `json:"layout_id" db:"layout_id"`
	ItemID      string `json:"item_id" db:"item_id"`
	Description string `json:"item_description" db:"item_description"`
	ElementID   int64  `json:"element_id" db:"element_id"`
	Quantity    int    `json:"quantity" db:"quantity"` // Units on hand, 0 = unknown
}

// Upload records one accepted CSV file
type Upload struct {
	ID        string    `json:"id" db:"id"`
	LayoutID  int64     `json:"layout_id" db:"layout_id"`
	Kind      string    `json:"kind" db:"kind"`
	FileName  string    `json:"file_name" db:"file_name"`
	RowCount  int       `json:"row_count" db:"row_count"`
	StartDate string    `json:"start_date" db:"start_date"`
	EndDate   string    `json:"end_date" db:"end_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AggregatedPickData is the pick volume of one element over a period
type AggregatedPickData struct {
	ElementID     int64   `json:"element_id"`
	Label         string  `json:"element_name"`
	ElementType   string  `json:"element_type"`
	TotalPicks    int     `json:"total_picks"`
	FirstDate     string  `json:"first_date"`
	LastDate      string  `json:"last_date"`
	Days          int     `json:"days"`
	AvgDailyPicks float64 `json:"avg_daily_picks"`
	RoundTripFeet float64 `json:"round_trip_distance_feet"`
	HasDistance   bool    `json:"has_distance"`
}

// AggregatedItemPickData is the pick volume of one item over a period
type AggregatedItemPickData struct {
	ItemID        string  `json:"item_id"`
	Description   string  `json:"item_description"`
	ElementID     int64   `json:"element_id"`
	Label         string  `json:"location"`
	ElementType   string  `json:"element_type"`
	Quantity      int     `json:"quantity"`
	Capacity      int     `json:"capacity"`
	TotalPicks    int     `json:"total_picks"`
	FirstDate     string  `json:"first_date"`
	LastDate      string  `json:"last_date"`
	Days          int     `json:"days"`
	AvgDailyPicks float64 `json:"avg_daily_picks"`
	RoundTripFeet float64 `json:"round_trip_distance_feet"`
	HasDistance   bool    `json:"has_distance"`
}

// DailyPickTotal is the layout-wide pick count of one day
type DailyPickTotal struct {
	Date  string `json:"date"`
	Picks int    `json:"picks"`
}

// InclusiveDays returns the number of calendar days in [first, last].
// Unparseable or inverted ranges count as one day.
func InclusiveDays(first, last string) int {
	f, err1 := time.Parse(DateLayout, first)
	l, err2 := time.Parse(DateLayout, last)
	if err1 != nil || err2 != nil || l.Before(f) {
		return 1
	}
	return int(l.Sub(f).Hours()/24) + 1
}
