package postgresengine

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/bookhive/borrowing-engine-go/core"
)

// InsertBorrowing persists a new active borrowing.
func (s *Store) InsertBorrowing(ctx context.Context, borrowing core.Borrowing) error {
	record := goqu.Record{
		colID:                 borrowing.ID.String(),
		colBorrowDate:         borrowing.BorrowDate.Format(dateLayout),
		colExpectedReturnDate: borrowing.ExpectedReturnDate.Format(dateLayout),
		colActualReturnDate:   nil,
		colBookID:             borrowing.BookID.String(),
		colUserID:             borrowing.UserID.String(),
	}

	if borrowing.ActualReturnDate != nil {
		record[colActualReturnDate] = borrowing.ActualReturnDate.Format(dateLayout)
	}

	sqlQuery, _, buildErr := s.dialect().
		Insert(s.tables.Borrowings).
		Rows(record).
		ToSQL()
	if buildErr != nil {
		return s.buildQueryError(buildErr)
	}

	_, err := s.executeStatement(ctx, sqlQuery)

	return err
}

// BorrowingByID loads one borrowing, or core.ErrBorrowingNotFound.
func (s *Store) BorrowingByID(ctx context.Context, borrowingID uuid.UUID) (core.Borrowing, error) {
	var empty core.Borrowing

	sqlQuery, _, buildErr := s.dialect().
		From(s.tables.Borrowings).
		Select(colID, colBorrowDate, colExpectedReturnDate, colActualReturnDate, colBookID, colUserID).
		Where(goqu.C(colID).Eq(borrowingID.String())).
		ToSQL()
	if buildErr != nil {
		return empty, s.buildQueryError(buildErr)
	}

	rows, queryErr := s.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return empty, queryErr
	}
	defer s.closeRows(rows)

	if !rows.Next() {
		return empty, core.ErrBorrowingNotFound
	}

	borrowing, scanErr := s.scanBorrowing(rows)
	if scanErr != nil {
		return empty, scanErr
	}

	return borrowing, nil
}

// CloseBorrowing records the actual return date. The update is conditional on
// actual_return_date IS NULL, so of two concurrent return attempts exactly
// one wins - the other affects no rows and gets core.ErrAlreadyReturned.
func (s *Store) CloseBorrowing(ctx context.Context, borrowingID uuid.UUID, returnedOn time.Time) error {
	sqlQuery, _, buildErr := s.dialect().
		Update(s.tables.Borrowings).
		Set(goqu.Record{colActualReturnDate: core.ToDate(returnedOn).Format(dateLayout)}).
		Where(goqu.C(colID).Eq(borrowingID.String()), goqu.C(colActualReturnDate).IsNull()).
		ToSQL()
	if buildErr != nil {
		return s.buildQueryError(buildErr)
	}

	rowsAffected, execErr := s.executeStatement(ctx, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		return core.ErrAlreadyReturned
	}

	return nil
}

// ListBorrowings returns borrowings, optionally filtered by user and by
// active state (active means no actual return date recorded yet). Both
// filters are tri-state: a nil pointer means "no filter".
func (s *Store) ListBorrowings(ctx context.Context, userID *uuid.UUID, onlyActive *bool) ([]core.Borrowing, error) {
	ds := s.dialect().
		From(s.tables.Borrowings).
		Select(colID, colBorrowDate, colExpectedReturnDate, colActualReturnDate, colBookID, colUserID).
		Order(goqu.C(colBorrowDate).Asc())

	if userID != nil {
		ds = ds.Where(goqu.C(colUserID).Eq(userID.String()))
	}

	if onlyActive != nil {
		if *onlyActive {
			ds = ds.Where(goqu.C(colActualReturnDate).IsNull())
		} else {
			ds = ds.Where(goqu.C(colActualReturnDate).IsNotNull())
		}
	}

	sqlQuery, _, buildErr := ds.ToSQL()
	if buildErr != nil {
		return nil, s.buildQueryError(buildErr)
	}

	rows, queryErr := s.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(rows)

	borrowings := make([]core.Borrowing, 0)

	for rows.Next() {
		borrowing, scanErr := s.scanBorrowing(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		borrowings = append(borrowings, borrowing)
	}

	return borrowings, nil
}

// OverdueBorrowings returns all open borrowings whose expected return date
// lies at or before the deadline, joined with book title and user identity.
func (s *Store) OverdueBorrowings(ctx context.Context, deadline time.Time) ([]core.OverdueBorrowing, error) {
	borrowings := goqu.T(s.tables.Borrowings).As("b")
	books := goqu.T(s.tables.Books).As("bk")
	users := goqu.T(s.tables.Users).As("u")

	sqlQuery, _, buildErr := s.dialect().
		From(borrowings).
		Join(books, goqu.On(goqu.I("bk.id").Eq(goqu.I("b.book_id")))).
		Join(users, goqu.On(goqu.I("u.id").Eq(goqu.I("b.user_id")))).
		Select(
			goqu.I("b.id"), goqu.I("b.borrow_date"), goqu.I("b.expected_return_date"),
			goqu.I("b.actual_return_date"), goqu.I("b.book_id"), goqu.I("b.user_id"),
			goqu.I("bk.title"), goqu.I("u.email"), goqu.I("u.first_name"), goqu.I("u.last_name"),
		).
		Where(
			goqu.I("b.expected_return_date").Lte(core.ToDate(deadline).Format(dateLayout)),
			goqu.I("b.actual_return_date").IsNull(),
		).
		Order(goqu.I("b.expected_return_date").Asc()).
		ToSQL()
	if buildErr != nil {
		return nil, s.buildQueryError(buildErr)
	}

	rows, queryErr := s.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(rows)

	overdue := make([]core.OverdueBorrowing, 0)

	for rows.Next() {
		var record core.OverdueBorrowing
		var actualReturnDate sql.NullTime

		scanErr := rows.Scan(
			&record.Borrowing.ID, &record.Borrowing.BorrowDate, &record.Borrowing.ExpectedReturnDate,
			&actualReturnDate, &record.Borrowing.BookID, &record.Borrowing.UserID,
			&record.BookTitle, &record.User.Email, &record.User.FirstName, &record.User.LastName,
		)
		if scanErr != nil {
			return nil, s.scanError(scanErr)
		}

		record.Borrowing = normalizeBorrowingDates(record.Borrowing, actualReturnDate)
		record.User.ID = record.Borrowing.UserID
		overdue = append(overdue, record)
	}

	return overdue, nil
}

func (s *Store) scanBorrowing(rows interface{ Scan(dest ...any) error }) (core.Borrowing, error) {
	var borrowing core.Borrowing
	var actualReturnDate sql.NullTime

	scanErr := rows.Scan(
		&borrowing.ID, &borrowing.BorrowDate, &borrowing.ExpectedReturnDate,
		&actualReturnDate, &borrowing.BookID, &borrowing.UserID,
	)
	if scanErr != nil {
		return core.Borrowing{}, s.scanError(scanErr)
	}

	return normalizeBorrowingDates(borrowing, actualReturnDate), nil
}

// normalizeBorrowingDates maps the scanned values back to UTC calendar dates.
func normalizeBorrowingDates(borrowing core.Borrowing, actualReturnDate sql.NullTime) core.Borrowing {
	borrowing.BorrowDate = core.ToDate(borrowing.BorrowDate)
	borrowing.ExpectedReturnDate = core.ToDate(borrowing.ExpectedReturnDate)

	if actualReturnDate.Valid {
		returned := core.ToDate(actualReturnDate.Time)
		borrowing.ActualReturnDate = &returned
	}

	return borrowing
}
