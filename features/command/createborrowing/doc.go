// Package createborrowing implements the create-borrowing use case: decrement
// the book's inventory, persist the borrowing, open a checkout session for
// the daily fee and persist the PENDING payment - all inside one unit of
// work. A gateway failure rolls the whole unit back, so no partial state is
// ever observable. On success a notification goes out post-commit.
package createborrowing
