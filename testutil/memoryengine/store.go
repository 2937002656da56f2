package memoryengine

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bookhive/borrowing-engine-go/core"
)

// Store is an in-memory implementation of every store interface the feature
// packages declare, plus the shell.UnitOfWork contract. Execute snapshots the
// whole state and restores it when the closure fails, mirroring the
// transactional rollback of the Postgres engine.
type Store struct {
	mu         sync.Mutex
	books      map[uuid.UUID]core.Book
	users      map[uuid.UUID]core.User
	borrowings map[uuid.UUID]core.Borrowing
	payments   map[uuid.UUID]core.Payment
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		books:      make(map[uuid.UUID]core.Book),
		users:      make(map[uuid.UUID]core.User),
		borrowings: make(map[uuid.UUID]core.Borrowing),
		payments:   make(map[uuid.UUID]core.Payment),
	}
}

type storeSnapshot struct {
	books      map[uuid.UUID]core.Book
	users      map[uuid.UUID]core.User
	borrowings map[uuid.UUID]core.Borrowing
	payments   map[uuid.UUID]core.Payment
}

// Execute implements the unit of work: state changes made by fn are kept on
// success and fully reverted when fn returns an error.
func (s *Store) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := s.snapshot()

	if err := fn(ctx); err != nil {
		s.restore(snapshot)
		return err
	}

	return nil
}

func (s *Store) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return storeSnapshot{
		books:      copyMap(s.books),
		users:      copyMap(s.users),
		borrowings: copyMap(s.borrowings),
		payments:   copyMap(s.payments),
	}
}

func (s *Store) restore(snapshot storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books = snapshot.books
	s.users = snapshot.users
	s.borrowings = snapshot.borrowings
	s.payments = snapshot.payments
}

func copyMap[V any](source map[uuid.UUID]V) map[uuid.UUID]V {
	target := make(map[uuid.UUID]V, len(source))
	for key, value := range source {
		target[key] = value
	}

	return target
}

// InsertBook persists a new book.
func (s *Store) InsertBook(_ context.Context, book core.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books[book.ID] = book

	return nil
}

// BookByID loads one book, or core.ErrBookNotFound.
func (s *Store) BookByID(_ context.Context, bookID uuid.UUID) (core.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[bookID]
	if !ok {
		return core.Book{}, core.ErrBookNotFound
	}

	return book, nil
}

// DecrementBookInventory mirrors the conditional single-statement decrement:
// it fails with core.ErrInventoryUnavailable unless inventory > 0.
func (s *Store) DecrementBookInventory(_ context.Context, bookID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[bookID]
	if !ok || book.Inventory <= 0 {
		return core.ErrInventoryUnavailable
	}

	book.Inventory--
	s.books[bookID] = book

	return nil
}

// IncrementBookInventory puts one copy back.
func (s *Store) IncrementBookInventory(_ context.Context, bookID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[bookID]
	if !ok {
		return core.ErrBookNotFound
	}

	book.Inventory++
	s.books[bookID] = book

	return nil
}

// InsertUser persists a new user.
func (s *Store) InsertUser(_ context.Context, user core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.ID] = user

	return nil
}

// UserByID loads one user, or core.ErrUserNotFound.
func (s *Store) UserByID(_ context.Context, userID uuid.UUID) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return core.User{}, core.ErrUserNotFound
	}

	return user, nil
}

// InsertBorrowing persists a new borrowing.
func (s *Store) InsertBorrowing(_ context.Context, borrowing core.Borrowing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.borrowings[borrowing.ID] = borrowing

	return nil
}

// BorrowingByID loads one borrowing, or core.ErrBorrowingNotFound.
func (s *Store) BorrowingByID(_ context.Context, borrowingID uuid.UUID) (core.Borrowing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	borrowing, ok := s.borrowings[borrowingID]
	if !ok {
		return core.Borrowing{}, core.ErrBorrowingNotFound
	}

	return borrowing, nil
}

// CloseBorrowing mirrors the conditional update on the open row: a second
// close attempt fails with core.ErrAlreadyReturned.
func (s *Store) CloseBorrowing(_ context.Context, borrowingID uuid.UUID, returnedOn time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	borrowing, ok := s.borrowings[borrowingID]
	if !ok || borrowing.IsReturned() {
		return core.ErrAlreadyReturned
	}

	returned := core.ToDate(returnedOn)
	borrowing.ActualReturnDate = &returned
	s.borrowings[borrowingID] = borrowing

	return nil
}

// ListBorrowings filters by user and active state; nil pointers mean "no filter".
func (s *Store) ListBorrowings(_ context.Context, userID *uuid.UUID, onlyActive *bool) ([]core.Borrowing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	borrowings := make([]core.Borrowing, 0)

	for _, borrowing := range s.borrowings {
		if userID != nil && borrowing.UserID != *userID {
			continue
		}

		if onlyActive != nil && *onlyActive == borrowing.IsReturned() {
			continue
		}

		borrowings = append(borrowings, borrowing)
	}

	sort.Slice(borrowings, func(i, j int) bool {
		return borrowings[i].BorrowDate.Before(borrowings[j].BorrowDate)
	})

	return borrowings, nil
}

// OverdueBorrowings returns open borrowings due at or before the deadline,
// joined with book and user data.
func (s *Store) OverdueBorrowings(_ context.Context, deadline time.Time) ([]core.OverdueBorrowing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	overdue := make([]core.OverdueBorrowing, 0)

	for _, borrowing := range s.borrowings {
		if !borrowing.IsOverdueAt(deadline) {
			continue
		}

		record := core.OverdueBorrowing{Borrowing: borrowing}

		if book, ok := s.books[borrowing.BookID]; ok {
			record.BookTitle = book.Title
		}

		if user, ok := s.users[borrowing.UserID]; ok {
			record.User = user
		}

		overdue = append(overdue, record)
	}

	sort.Slice(overdue, func(i, j int) bool {
		return overdue[i].Borrowing.ExpectedReturnDate.Before(overdue[j].Borrowing.ExpectedReturnDate)
	})

	return overdue, nil
}

// InsertPayment persists a new payment.
func (s *Store) InsertPayment(_ context.Context, payment core.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.payments[payment.ID] = payment

	return nil
}

// PaymentByID loads one payment, or core.ErrPaymentNotFound.
func (s *Store) PaymentByID(_ context.Context, paymentID uuid.UUID) (core.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[paymentID]
	if !ok {
		return core.Payment{}, core.ErrPaymentNotFound
	}

	return payment, nil
}

// PaymentBySessionID loads the payment attached to a checkout session, or
// core.ErrSessionNotFound.
func (s *Store) PaymentBySessionID(_ context.Context, sessionID string) (core.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, payment := range s.payments {
		if payment.SessionID != "" && payment.SessionID == sessionID {
			return payment, nil
		}
	}

	return core.Payment{}, core.ErrSessionNotFound
}

// PaymentsByBorrowing returns all payments belonging to one borrowing.
func (s *Store) PaymentsByBorrowing(_ context.Context, borrowingID uuid.UUID) ([]core.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payments := make([]core.Payment, 0)

	for _, payment := range s.payments {
		if payment.BorrowingID == borrowingID {
			payments = append(payments, payment)
		}
	}

	return payments, nil
}

// MarkPaymentPaid sets the payment status to PAID.
func (s *Store) MarkPaymentPaid(_ context.Context, paymentID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[paymentID]
	if !ok {
		return core.ErrPaymentNotFound
	}

	payment.Status = core.PaymentStatusPaid
	s.payments[paymentID] = payment

	return nil
}

// SetPaymentSession mirrors the conditional attach on the session-less row:
// a second attach attempt fails with core.ErrSessionAlreadyExists.
func (s *Store) SetPaymentSession(_ context.Context, paymentID uuid.UUID, session core.CheckoutSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[paymentID]
	if !ok {
		return core.ErrPaymentNotFound
	}

	if payment.HasSession() {
		return core.ErrSessionAlreadyExists
	}

	payment.SessionID = session.SessionID
	payment.SessionURL = session.SessionURL
	s.payments[paymentID] = payment

	return nil
}

// BorrowingCount reports how many borrowings exist, for test assertions.
func (s *Store) BorrowingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.borrowings)
}

// PaymentCount reports how many payments exist, for test assertions.
func (s *Store) PaymentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.payments)
}
