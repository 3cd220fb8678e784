package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jengzang/slotting-backend-go/internal/models"
)

// DefaultSampleDays is the length of a generated sample file
const DefaultSampleDays = 14

// WriteSampleCSV writes a deterministic sample upload for the layout's slot
// elements, covering days days ending at end. Earlier elements get more
// picks so the sample shows a spread of velocity tiers.
func WriteSampleCSV(w io.Writer, kind string, elements []models.WarehouseElement, days int, end time.Time) error {
	if days <= 0 {
		days = DefaultSampleDays
	}

	var slots []models.WarehouseElement
	for _, e := range elements {
		if e.IsSlot() && e.Label != "" {
			slots = append(slots, e)
		}
	}
	if len(slots) == 0 {
		return fmt.Errorf("%w: layout has no labelled slot elements", models.ErrInvalidInput)
	}

	cw := csv.NewWriter(w)
	var head []string
	switch kind {
	case models.UploadKindElement, "":
		head = []string{"element_name", "date", "pick_count"}
	case models.UploadKindItem:
		head = []string{"item_id", "item_description", "location", "date", "pick_count", "quantity"}
	default:
		return fmt.Errorf("%w: unknown sample kind %q", models.ErrInvalidInput, kind)
	}
	if err := cw.Write(head); err != nil {
		return err
	}

	start := end.AddDate(0, 0, -(days - 1))
	for d := 0; d < days; d++ {
		date := start.AddDate(0, 0, d).Format(models.DateLayout)
		for i, e := range slots {
			picks := samplePicks(i, d)
			var record []string
			if kind == models.UploadKindItem {
				sku := fmt.Sprintf("SKU-%04d", i+1)
				record = []string{sku, "Sample item " + strconv.Itoa(i+1), e.Label, date, strconv.Itoa(picks), strconv.Itoa(20 + i%5*10)}
			} else {
				record = []string{e.Label, date, strconv.Itoa(picks)}
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func samplePicks(index, day int) int {
	base := 40 - index*3
	if base < 1 {
		base = 1
	}
	return base + (day*7+index*3)%5
}
