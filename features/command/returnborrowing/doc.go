// Package returnborrowing implements the return-borrowing use case: record
// the actual return date, restore the book's inventory and, when the return
// is late, create the PENDING fine payment - all inside one unit of work.
// A borrowing can be returned at most once; the second of two concurrent
// attempts fails with core.ErrAlreadyReturned and changes nothing.
package returnborrowing
