package inventory

import (
	"strings"
	"time"

	"github.com/anmawex/dashboard-challenge/pkg/catalog"
)

// DateRange bounds product creation times. Both bounds are optional and
// independent; an inverted range simply matches nothing.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// filterProducts returns the products whose title contains the search term
// (case-insensitive) and whose creation time falls within the range. Order
// follows the input; no sort is applied. The term is matched verbatim;
// trimming is the input boundary's job.
func filterProducts(products []catalog.Product, search string, dates DateRange) []catalog.Product {
	term := strings.ToLower(search)

	matched := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if term != "" && !strings.Contains(strings.ToLower(p.Title), term) {
			continue
		}
		if !withinRange(p.CreationAt, dates) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

// withinRange treats the start bound as the beginning of its day and the end
// bound as the end of its day, so the entire end date is included.
func withinRange(t time.Time, dates DateRange) bool {
	if dates.Start != nil && t.Before(startOfDay(*dates.Start)) {
		return false
	}
	if dates.End != nil && t.After(endOfDay(*dates.End)) {
		return false
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
