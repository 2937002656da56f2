package overdueborrowings

import (
	"fmt"

	"github.com/bookhive/borrowing-engine-go/core"
)

const (
	noticeFormat    = "Overdue borrowing:\nUser: %s\nBook: %s\nEmail user: %s\nReturn date: %s"
	noneOverdueText = "No borrowings overdue today!"

	dateLayout = "2006-01-02"
)

// OverdueNotice is one message produced by the scan, either announcing one
// overdue borrowing or - exactly once per empty scan - that nothing is due.
type OverdueNotice struct {
	None               bool
	UserName           string
	UserEmail          string
	BookTitle          string
	ExpectedReturnDate core.Date
}

// BuildNotice creates the notice for one overdue borrowing record.
func BuildNotice(record core.OverdueBorrowing) OverdueNotice {
	return OverdueNotice{
		UserName:           record.User.FullName(),
		UserEmail:          record.User.Email,
		BookTitle:          record.BookTitle,
		ExpectedReturnDate: record.Borrowing.ExpectedReturnDate,
	}
}

// NoneOverdueNotice creates the single notice emitted by an empty scan.
func NoneOverdueNotice() OverdueNotice {
	return OverdueNotice{None: true}
}

// Text renders the notice as the human-readable message sent to the sink.
func (n OverdueNotice) Text() string {
	if n.None {
		return noneOverdueText
	}

	return fmt.Sprintf(noticeFormat, n.UserName, n.BookTitle, n.UserEmail, n.ExpectedReturnDate.Format(dateLayout))
}
