// Package pagination windows an already-sorted publication fetch into a
// single page plus a rough estimate of how many further pages exist.
package pagination

import (
	"errors"
	"math"
)

const (
	// PageSize is the number of records returned per page.
	PageSize = 15
	// FetchCap is the number of rows requested from the data source per
	// listing call. With a saturated fetch it allows estimating up to three
	// pages after the current one.
	FetchCap = 46

	// MaxPage is the largest page whose offset fits in an int.
	MaxPage = math.MaxInt/PageSize + 1
)

var (
	ErrInvalidPage = errors.New("page number out of range")
	ErrNoRecords   = errors.New("no records available")
)

// Window is one page of records plus the estimated number of pages after it.
type Window[T any] struct {
	Items []T
	More  int
}

// Offset translates a 1-based page number into a row offset.
// Pages outside [1, MaxPage] are rejected.
func Offset(page int) (int, error) {
	if page < 1 || page > MaxPage {
		return 0, ErrInvalidPage
	}
	return (page - 1) * PageSize, nil
}

// Slice cuts the first page out of rows fetched at the page's offset.
// More is ceil(len(rows)/PageSize)-1; because rows are capped at FetchCap
// this is an upper bound on visible pages, not an exact count.
func Slice[T any](rows []T) (Window[T], error) {
	if len(rows) == 0 {
		return Window[T]{}, ErrNoRecords
	}

	more := (len(rows)+PageSize-1)/PageSize - 1

	items := rows
	if len(items) > PageSize {
		items = items[:PageSize]
	}
	return Window[T]{Items: items, More: more}, nil
}
