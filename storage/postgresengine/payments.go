package postgresengine

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookhive/borrowing-engine-go/core"
)

// InsertPayment persists a new payment. Session id and url may be empty for
// FINE-type payments that have no checkout session yet.
func (s *Store) InsertPayment(ctx context.Context, payment core.Payment) error {
	record := goqu.Record{
		colID:          payment.ID.String(),
		colStatus:      string(payment.Status),
		colType:        string(payment.Type),
		colBorrowingID: payment.BorrowingID.String(),
		colSessionID:   nil,
		colSessionURL:  nil,
		colMoneyToPay:  payment.MoneyToPay.String(),
	}

	if payment.HasSession() {
		record[colSessionID] = payment.SessionID
		record[colSessionURL] = payment.SessionURL
	}

	sqlQuery, _, buildErr := s.dialect().
		Insert(s.tables.Payments).
		Rows(record).
		ToSQL()
	if buildErr != nil {
		return s.buildQueryError(buildErr)
	}

	_, err := s.executeStatement(ctx, sqlQuery)

	return err
}

// PaymentByID loads one payment, or core.ErrPaymentNotFound.
func (s *Store) PaymentByID(ctx context.Context, paymentID uuid.UUID) (core.Payment, error) {
	return s.paymentWhere(ctx, goqu.C(colID).Eq(paymentID.String()), core.ErrPaymentNotFound)
}

// PaymentBySessionID loads the payment attached to a checkout session, or
// core.ErrSessionNotFound when the session is unknown.
func (s *Store) PaymentBySessionID(ctx context.Context, sessionID string) (core.Payment, error) {
	return s.paymentWhere(ctx, goqu.C(colSessionID).Eq(sessionID), core.ErrSessionNotFound)
}

// PaymentsByBorrowing returns all payments belonging to one borrowing.
func (s *Store) PaymentsByBorrowing(ctx context.Context, borrowingID uuid.UUID) ([]core.Payment, error) {
	sqlQuery, _, buildErr := s.paymentSelect().
		Where(goqu.C(colBorrowingID).Eq(borrowingID.String())).
		ToSQL()
	if buildErr != nil {
		return nil, s.buildQueryError(buildErr)
	}

	rows, queryErr := s.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(rows)

	payments := make([]core.Payment, 0)

	for rows.Next() {
		payment, scanErr := s.scanPayment(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		payments = append(payments, payment)
	}

	return payments, nil
}

// MarkPaymentPaid sets the payment status to PAID.
func (s *Store) MarkPaymentPaid(ctx context.Context, paymentID uuid.UUID) error {
	sqlQuery, _, buildErr := s.dialect().
		Update(s.tables.Payments).
		Set(goqu.Record{colStatus: string(core.PaymentStatusPaid)}).
		Where(goqu.C(colID).Eq(paymentID.String())).
		ToSQL()
	if buildErr != nil {
		return s.buildQueryError(buildErr)
	}

	rowsAffected, execErr := s.executeStatement(ctx, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		return core.ErrPaymentNotFound
	}

	return nil
}

// SetPaymentSession attaches a checkout session to an existing payment. The
// update is conditional on session_id IS NULL, so of two concurrent attach
// attempts exactly one wins - the other affects no rows and gets
// core.ErrSessionAlreadyExists. Existence of the payment is the caller's
// concern, checked by the preceding lookup.
func (s *Store) SetPaymentSession(ctx context.Context, paymentID uuid.UUID, session core.CheckoutSession) error {
	sqlQuery, _, buildErr := s.dialect().
		Update(s.tables.Payments).
		Set(goqu.Record{
			colSessionID:  session.SessionID,
			colSessionURL: session.SessionURL,
		}).
		Where(goqu.C(colID).Eq(paymentID.String()), goqu.C(colSessionID).IsNull()).
		ToSQL()
	if buildErr != nil {
		return s.buildQueryError(buildErr)
	}

	rowsAffected, execErr := s.executeStatement(ctx, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		return core.ErrSessionAlreadyExists
	}

	return nil
}

func (s *Store) paymentSelect() *goqu.SelectDataset {
	return s.dialect().
		From(s.tables.Payments).
		Select(colID, colStatus, colType, colBorrowingID, colSessionID, colSessionURL, colMoneyToPay)
}

func (s *Store) paymentWhere(ctx context.Context, condition goqu.Expression, notFound error) (core.Payment, error) {
	var empty core.Payment

	sqlQuery, _, buildErr := s.paymentSelect().Where(condition).ToSQL()
	if buildErr != nil {
		return empty, s.buildQueryError(buildErr)
	}

	rows, queryErr := s.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return empty, queryErr
	}
	defer s.closeRows(rows)

	if !rows.Next() {
		return empty, notFound
	}

	return s.scanPayment(rows)
}

func (s *Store) scanPayment(rows interface{ Scan(dest ...any) error }) (core.Payment, error) {
	var payment core.Payment
	var status, paymentType string
	var sessionID, sessionURL sql.NullString
	var moneyToPay decimal.Decimal

	scanErr := rows.Scan(&payment.ID, &status, &paymentType, &payment.BorrowingID, &sessionID, &sessionURL, &moneyToPay)
	if scanErr != nil {
		return core.Payment{}, s.scanError(scanErr)
	}

	payment.Status = core.PaymentStatus(status)
	payment.Type = core.PaymentType(paymentType)
	payment.SessionID = sessionID.String
	payment.SessionURL = sessionURL.String
	payment.MoneyToPay = moneyToPay

	return payment, nil
}
