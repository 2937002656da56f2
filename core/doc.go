// Package core contains the pure domain model of the borrowing engine:
// books, borrowings, payments, the fine calculation and the shared error
// vocabulary. Nothing in this package performs I/O - all persistence and
// gateway concerns live in the outer packages.
package core
