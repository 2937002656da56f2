package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// fineMultiplier is the 10% penalty applied on top of the overdue-days cost.
var fineMultiplier = decimal.RequireFromString("1.1")

// CalculateFine computes the overdue penalty for a completed borrowing.
//
// A return at or before the expected return date costs nothing. Otherwise the
// fine is daysOverdue * dailyFee * 1.1, where partial days are rounded up to
// whole days. Pure and deterministic given its inputs.
func CalculateFine(expectedReturnDate time.Time, actualReturnDate time.Time, dailyFee decimal.Decimal) decimal.Decimal {
	daysOverdue := DaysBetween(expectedReturnDate, actualReturnDate)
	if daysOverdue == 0 {
		return decimal.Zero
	}

	return dailyFee.
		Mul(decimal.NewFromInt(int64(daysOverdue))).
		Mul(fineMultiplier)
}
