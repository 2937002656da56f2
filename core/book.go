package core

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Book represents one title in the catalogue together with its lendable inventory.
// Inventory is never mutated through this struct - the store mutates it with
// single conditional statements inside the borrowing transactions, so the
// invariant inventory >= 0 holds under concurrency.
type Book struct {
	ID        uuid.UUID
	Title     string
	Author    string
	Inventory int
	DailyFee  decimal.Decimal
}

// BuildBook creates a new Book with a fresh identity.
func BuildBook(title string, author string, inventory int, dailyFee decimal.Decimal) Book {
	return Book{
		ID:        uuid.New(),
		Title:     title,
		Author:    author,
		Inventory: inventory,
		DailyFee:  dailyFee,
	}
}

// DailyFeeCents returns the daily fee as an amount of cents for the payment gateway.
func (b Book) DailyFeeCents() int64 {
	return b.DailyFee.Mul(decimal.NewFromInt(100)).IntPart()
}
