// Package recent remembers the last folios a visitor found, most recent first.
package recent

import (
	"context"
	"errors"
)

// MaxEntries is the hard cap on remembered folios per visitor.
const MaxEntries = 5

// ErrNoVisitor is returned when a call carries no visitor key.
var ErrNoVisitor = errors.New("visitor id is required")

// Store keeps recent folios per visitor.
type Store interface {
	Add(ctx context.Context, visitorID string, folio int64) error
	List(ctx context.Context, visitorID string) ([]int64, error)
	Clear(ctx context.Context, visitorID string) error
}

// Push puts folio at the front of list, drops earlier occurrences and keeps at
// most max entries. list is not modified.
func Push(list []int64, folio int64, max int) []int64 {
	max = clampMax(max)
	out := make([]int64, 0, min(len(list)+1, max))
	out = append(out, folio)
	for _, f := range list {
		if len(out) == max {
			break
		}
		if f == folio || contains(out, f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func contains(list []int64, v int64) bool {
	for _, f := range list {
		if f == v {
			return true
		}
	}
	return false
}

func clampMax(max int) int {
	if max <= 0 || max > MaxEntries {
		return MaxEntries
	}
	return max
}
