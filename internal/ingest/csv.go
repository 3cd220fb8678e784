// Package ingest parses pick-data CSV uploads and validates them against the
// labels of a layout's slot elements.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jengzang/slotting-backend-go/internal/models"
)

// MaxRowErrors caps the row errors reported for one upload
const MaxRowErrors = 50

// Accepted date formats, tried in order
var dateLayouts = []string{models.DateLayout, "01/02/2006", "1/2/2006"}

// Column aliases, normalized to lower case
var (
	labelColumns       = []string{"element_name", "element", "location", "label"}
	dateColumns        = []string{"date", "pick_date"}
	countColumns       = []string{"pick_count", "picks", "count"}
	itemColumns        = []string{"item_id", "sku", "item"}
	descriptionColumns = []string{"item_description", "description"}
	quantityColumns    = []string{"quantity", "qty", "on_hand"}
)

// ParseDate normalizes a CSV date to YYYY-MM-DD
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(models.DateLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", s)
}

// ElementIndex resolves CSV labels to slot elements, case-insensitively.
// When labels collide the lowest element id wins.
type ElementIndex map[string]models.WarehouseElement

// NewElementIndex indexes the slot elements of a layout by label
func NewElementIndex(elements []models.WarehouseElement) ElementIndex {
	idx := make(ElementIndex, len(elements))
	for _, e := range elements {
		if !e.IsSlot() {
			continue
		}
		key := models.NormalizedLabel(e.Label)
		if key == "" {
			continue
		}
		if cur, ok := idx[key]; ok && cur.ID < e.ID {
			continue
		}
		idx[key] = e
	}
	return idx
}

// Lookup finds the element with the given label
func (idx ElementIndex) Lookup(label string) (models.WarehouseElement, bool) {
	e, ok := idx[models.NormalizedLabel(label)]
	return e, ok
}

// Result is the outcome of a successful parse
type Result struct {
	ElementPicks []models.PickTransaction
	ItemPicks    []models.ItemPickTransaction
	Items        []models.Item
	StartDate    string
	EndDate      string
}

// Rows returns the number of accepted pick rows
func (r *Result) Rows() int {
	return len(r.ElementPicks) + len(r.ItemPicks)
}

func (r *Result) observeDate(d string) {
	if r.StartDate == "" || d < r.StartDate {
		r.StartDate = d
	}
	if r.EndDate == "" || d > r.EndDate {
		r.EndDate = d
	}
}

// collector accumulates row errors up to MaxRowErrors
type collector struct {
	rows      []models.RowError
	truncated bool
}

func (c *collector) add(e models.RowError) {
	if len(c.rows) >= MaxRowErrors {
		c.truncated = true
		return
	}
	c.rows = append(c.rows, e)
}

func (c *collector) err() error {
	if len(c.rows) == 0 {
		return nil
	}
	return &models.ValidationError{Rows: c.rows, Truncated: c.truncated}
}

// header maps column names to positions
type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	record, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &models.ValidationError{Rows: []models.RowError{{Row: 1, Message: "file is empty"}}}
	}
	if err != nil {
		return nil, &models.ValidationError{Rows: []models.RowError{{Row: 1, Message: err.Error()}}}
	}
	h := make(header, len(record))
	for i, name := range record {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	return h, nil
}

// find returns the position of the first present alias, or -1
func (h header) find(aliases []string) int {
	for _, a := range aliases {
		if i, ok := h[a]; ok {
			return i
		}
	}
	return -1
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("pick count %q is not an integer", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("pick count %d is negative", n)
	}
	return n, nil
}

// lineOf returns the file line of the record just read, falling back to next
func lineOf(cr *csv.Reader, err error, next int) int {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return perr.Line
	}
	if err == nil {
		if line, _ := cr.FieldPos(0); line > 0 {
			return line
		}
	}
	return next
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// ParseElementPicks reads an element pick CSV
// (element_name,date,pick_count). Any invalid row rejects the whole file
// with a *models.ValidationError.
func ParseElementPicks(r io.Reader, layoutID int64, idx ElementIndex) (*Result, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	labelCol, dateCol, countCol := h.find(labelColumns), h.find(dateColumns), h.find(countColumns)
	var errs collector
	for _, missing := range missingColumns(map[string]int{"element_name": labelCol, "date": dateCol, "pick_count": countCol}) {
		errs.add(models.RowError{Row: 1, Column: missing, Message: "missing required column"})
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	res := &Result{ElementPicks: []models.PickTransaction{}}
	row := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row = lineOf(cr, err, row+1)
		if err != nil {
			errs.add(models.RowError{Row: row, Message: err.Error()})
			continue
		}
		if isBlank(record) {
			continue
		}

		label := field(record, labelCol)
		element, ok := idx.Lookup(label)
		if !ok {
			errs.add(models.RowError{Row: row, Column: "element_name", Value: label, Message: "no slot element with this label in the layout"})
			continue
		}
		date, err := ParseDate(field(record, dateCol))
		if err != nil {
			errs.add(models.RowError{Row: row, Column: "date", Value: field(record, dateCol), Message: err.Error()})
			continue
		}
		count, err := parseCount(field(record, countCol))
		if err != nil {
			errs.add(models.RowError{Row: row, Column: "pick_count", Value: field(record, countCol), Message: err.Error()})
			continue
		}

		res.ElementPicks = append(res.ElementPicks, models.PickTransaction{
			LayoutID:  layoutID,
			ElementID: element.ID,
			PickDate:  date,
			PickCount: count,
		})
		res.observeDate(date)
	}

	if err := errs.err(); err != nil {
		return nil, err
	}
	if len(res.ElementPicks) == 0 {
		return nil, &models.ValidationError{Rows: []models.RowError{{Row: 2, Message: "file has no data rows"}}}
	}
	return res, nil
}

// ParseItemPicks reads an item pick CSV
// (item_id,item_description,location,date,pick_count[,quantity]). The item
// master is taken from the last row seen for each item.
func ParseItemPicks(r io.Reader, layoutID int64, idx ElementIndex) (*Result, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	itemCol, labelCol := h.find(itemColumns), h.find(labelColumns)
	dateCol, countCol := h.find(dateColumns), h.find(countColumns)
	descCol, qtyCol := h.find(descriptionColumns), h.find(quantityColumns)

	var errs collector
	for _, missing := range missingColumns(map[string]int{"item_id": itemCol, "location": labelCol, "date": dateCol, "pick_count": countCol}) {
		errs.add(models.RowError{Row: 1, Column: missing, Message: "missing required column"})
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	res := &Result{ItemPicks: []models.ItemPickTransaction{}}
	items := make(map[string]int)
	row := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row = lineOf(cr, err, row+1)
		if err != nil {
			errs.add(models.RowError{Row: row, Message: err.Error()})
			continue
		}
		if isBlank(record) {
			continue
		}

		itemID := field(record, itemCol)
		if itemID == "" {
			errs.add(models.RowError{Row: row, Column: "item_id", Message: "item id is required"})
			continue
		}
		label := field(record, labelCol)
		element, ok := idx.Lookup(label)
		if !ok {
			errs.add(models.RowError{Row: row, Column: "location", Value: label, Message: "no slot element with this label in the layout"})
			continue
		}
		date, err := ParseDate(field(record, dateCol))
		if err != nil {
			errs.add(models.RowError{Row: row, Column: "date", Value: field(record, dateCol), Message: err.Error()})
			continue
		}
		count, err := parseCount(field(record, countCol))
		if err != nil {
			errs.add(models.RowError{Row: row, Column: "pick_count", Value: field(record, countCol), Message: err.Error()})
			continue
		}
		quantity := 0
		if q := field(record, qtyCol); q != "" {
			quantity, err = strconv.Atoi(q)
			if err != nil || quantity < 0 {
				errs.add(models.RowError{Row: row, Column: "quantity", Value: q, Message: "quantity must be a non-negative integer"})
				continue
			}
		}

		res.ItemPicks = append(res.ItemPicks, models.ItemPickTransaction{
			LayoutID:  layoutID,
			ItemID:    itemID,
			ElementID: element.ID,
			PickDate:  date,
			PickCount: count,
		})
		res.observeDate(date)

		it := models.Item{
			LayoutID:    layoutID,
			ItemID:      itemID,
			Description: field(record, descCol),
			ElementID:   element.ID,
			Quantity:    quantity,
		}
		if i, ok := items[itemID]; ok {
			if it.Description == "" {
				it.Description = res.Items[i].Description
			}
			res.Items[i] = it
		} else {
			items[itemID] = len(res.Items)
			res.Items = append(res.Items, it)
		}
	}

	if err := errs.err(); err != nil {
		return nil, err
	}
	if len(res.ItemPicks) == 0 {
		return nil, &models.ValidationError{Rows: []models.RowError{{Row: 2, Message: "file has no data rows"}}}
	}
	return res, nil
}

// missingColumns lists required columns whose position is -1, in a stable order
func missingColumns(cols map[string]int) []string {
	order := []string{"item_id", "element_name", "location", "date", "pick_count"}
	var out []string
	for _, name := range order {
		if pos, ok := cols[name]; ok && pos < 0 {
			out = append(out, name)
		}
	}
	return out
}
