package shell

import (
	"time"

	"github.com/bookhive/borrowing-engine-go/core"
)

// Clock provides "today" to the handlers so that date-dependent business
// logic stays deterministic under test.
type Clock interface {
	Today() core.Date
}

// SystemClock is the production Clock backed by the wall clock.
type SystemClock struct{}

// Today returns the current calendar date in UTC.
func (SystemClock) Today() core.Date {
	return core.ToDate(time.Now())
}

// FixedClock is a Clock pinned to one date, for tests.
type FixedClock struct {
	Date core.Date
}

// Today returns the pinned date.
func (c FixedClock) Today() core.Date {
	return c.Date
}
