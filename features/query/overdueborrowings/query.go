package overdueborrowings

import (
	"time"

	"github.com/bookhive/borrowing-engine-go/core"
)

// scanLookahead is how far past "now" the scan looks for upcoming due dates:
// borrowings due tomorrow are announced today.
const scanLookahead = 1

// Query represents one overdue scan at a given point in time.
type Query struct {
	Now core.Date
}

// BuildQuery creates a new Query for the given scan time.
func BuildQuery(now time.Time) Query {
	return Query{
		Now: core.ToDate(now),
	}
}

// Deadline returns the inclusive due-date cutoff of the scan.
func (q Query) Deadline() core.Date {
	return q.Now.AddDate(0, 0, scanLookahead)
}
