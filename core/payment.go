package core

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a payment.
// The only transition is PENDING -> PAID, driven by the gateway success callback.
type PaymentStatus string

// PaymentType distinguishes the borrowing fee from an overdue fine.
type PaymentType string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"

	PaymentTypePayment PaymentType = "PAYMENT"
	PaymentTypeFine    PaymentType = "FINE"
)

// CheckoutSession is the handle of a hosted checkout transaction at the
// external payment gateway.
type CheckoutSession struct {
	SessionID  string
	SessionURL string
}

// Payment represents money owed for a borrowing or for an overdue fine.
//
// A PAYMENT-type payment is created synchronously with its borrowing and
// always carries a checkout session. A FINE-type payment is created at return
// time without a session; a session is attached later through a separate
// checkout request.
type Payment struct {
	ID          uuid.UUID
	Status      PaymentStatus
	Type        PaymentType
	BorrowingID uuid.UUID
	SessionID   string
	SessionURL  string
	MoneyToPay  decimal.Decimal
}

// BuildBorrowingPayment creates the PENDING payment that accompanies a new borrowing.
func BuildBorrowingPayment(borrowingID uuid.UUID, session CheckoutSession, moneyToPay decimal.Decimal) Payment {
	return Payment{
		ID:          uuid.New(),
		Status:      PaymentStatusPending,
		Type:        PaymentTypePayment,
		BorrowingID: borrowingID,
		SessionID:   session.SessionID,
		SessionURL:  session.SessionURL,
		MoneyToPay:  moneyToPay,
	}
}

// BuildFinePayment creates the PENDING fine payment for a late return.
// It has no checkout session until one is requested explicitly.
func BuildFinePayment(borrowingID uuid.UUID, moneyToPay decimal.Decimal) Payment {
	return Payment{
		ID:          uuid.New(),
		Status:      PaymentStatusPending,
		Type:        PaymentTypeFine,
		BorrowingID: borrowingID,
		MoneyToPay:  moneyToPay,
	}
}

// HasSession reports whether a checkout session has been attached to this payment.
func (p Payment) HasSession() bool {
	return p.SessionID != ""
}

// MoneyToPayCents returns the owed amount as cents for the payment gateway.
func (p Payment) MoneyToPayCents() int64 {
	return p.MoneyToPay.Mul(decimal.NewFromInt(100)).IntPart()
}
