// Package overdueborrowings implements the overdue scan: a read-only query
// for open borrowings due within the next day, fanned out as notices to the
// notification sink. The scan is finite and recomputes from current storage
// state on every invocation; sink failures are logged and swallowed per
// notice, they never affect the other notices.
package overdueborrowings
