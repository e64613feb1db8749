package store

import "math" // Offset bounds

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a one-based pagination window
type Page struct {
	Number int // Page number, starting at 1
	Limit  int // Rows per page
}

// NewPage applies defaults to non-positive values and caps the limit
func NewPage(number, limit int) Page {
	if number < 1 {
		number = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// Keep (number-1)*limit within int so far pages stay empty instead of wrapping
	if number-1 > math.MaxInt/limit {
		number = math.MaxInt / limit
	}
	return Page{Number: number, Limit: limit}
}

// Offset returns the number of rows skipped before this page
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}
