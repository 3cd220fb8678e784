package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for malformed or inconsistent requests
	ErrInvalidInput = errors.New("invalid input")
)

// RowError describes a rejected CSV row
type RowError struct {
	Row     int    `json:"row"` // 1-based, header is row 1
	Column  string `json:"column,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// ValidationError is returned when an upload contains invalid rows
type ValidationError struct {
	Rows      []RowError `json:"rows"`
	Truncated bool       `json:"truncated"`
}

func (e *ValidationError) Error() string {
	if len(e.Rows) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, 3)
	for i, r := range e.Rows {
		if i == 3 {
			break
		}
		parts = append(parts, fmt.Sprintf("row %d: %s", r.Row, r.Message))
	}
	msg := fmt.Sprintf("%d invalid rows: %s", len(e.Rows), strings.Join(parts, "; "))
	if len(e.Rows) > 3 || e.Truncated {
		msg += "; ..."
	}
	return msg
}

// Unwrap lets callers match validation failures with ErrInvalidInput
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
