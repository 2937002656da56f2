package core

// OverdueBorrowing is the read model produced by the overdue scan: the open
// borrowing joined with the book title and the borrower needed to build a
// notice.
type OverdueBorrowing struct {
	Borrowing Borrowing
	BookTitle string
	User      User
}
