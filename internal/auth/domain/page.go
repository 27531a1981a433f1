package domain

import "math"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPageNumber keeps Offset far from int overflow.
	MaxPageNumber = math.MaxInt32
)

// Page selects a window of a listing. Limit is always within 1..MaxPageSize
// once built through NewPage.
type Page struct {
	Number int
	Limit  int
}

// NewPage clamps number and limit into their valid ranges.
func NewPage(number, limit int) Page {
	number = max(1, min(number, MaxPageNumber))
	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}
	return Page{Number: number, Limit: limit}
}

// Offset is the number of rows to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}
