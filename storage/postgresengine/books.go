package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookhive/borrowing-engine-go/core"
)

// InsertBook persists a new book with its initial inventory.
func (s *Store) InsertBook(ctx context.Context, book core.Book) error {
	sqlQuery, _, buildErr := s.dialect().
		Insert(s.tables.Books).
		Rows(goqu.Record{
			colID:        book.ID.String(),
			colTitle:     book.Title,
			colAuthor:    book.Author,
			colInventory: book.Inventory,
			colDailyFee:  book.DailyFee.String(),
		}).
		ToSQL()
	if buildErr != nil {
		return s.buildQueryError(buildErr)
	}

	_, err := s.executeStatement(ctx, sqlQuery)

	return err
}

// BookByID loads one book, or core.ErrBookNotFound.
func (s *Store) BookByID(ctx context.Context, bookID uuid.UUID) (core.Book, error) {
	var empty core.Book

	sqlQuery, _, buildErr := s.dialect().
		From(s.tables.Books).
		Select(colID, colTitle, colAuthor, colInventory, colDailyFee).
		Where(goqu.C(colID).Eq(bookID.String())).
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
		return empty, core.ErrBookNotFound
	}

	var book core.Book
	var dailyFee decimal.Decimal

	if scanErr := rows.Scan(&book.ID, &book.Title, &book.Author, &book.Inventory, &dailyFee); scanErr != nil {
		return empty, s.scanError(scanErr)
	}

	book.DailyFee = dailyFee

	return book, nil
}

// DecrementBookInventory takes one copy out of the inventory. The decrement
// is a single conditional statement guarded by inventory > 0, so two
// concurrent borrowings can never push the inventory below zero: the loser
// affects no rows and gets core.ErrInventoryUnavailable.
func (s *Store) DecrementBookInventory(ctx context.Context, bookID uuid.UUID) error {
	sqlQuery, _, buildErr := s.dialect().
		Update(s.tables.Books).
		Set(goqu.Record{colInventory: goqu.L(colInventory + " - 1")}).
		Where(goqu.C(colID).Eq(bookID.String()), goqu.C(colInventory).Gt(0)).
		ToSQL()
	if buildErr != nil {
		return s.buildQueryError(buildErr)
	}

	rowsAffected, execErr := s.executeStatement(ctx, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		return core.ErrInventoryUnavailable
	}

	return nil
}

// IncrementBookInventory puts one copy back into the inventory as a single
// statement, safe under concurrent returns of distinct borrowings.
func (s *Store) IncrementBookInventory(ctx context.Context, bookID uuid.UUID) error {
	sqlQuery, _, buildErr := s.dialect().
		Update(s.tables.Books).
		Set(goqu.Record{colInventory: goqu.L(colInventory + " + 1")}).
		Where(goqu.C(colID).Eq(bookID.String())).
		ToSQL()
	if buildErr != nil {
		return s.buildQueryError(buildErr)
	}

	rowsAffected, execErr := s.executeStatement(ctx, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		return core.ErrBookNotFound
	}

	return nil
}
