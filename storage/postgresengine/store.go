package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/bookhive/borrowing-engine-go/storage/postgresengine/internal/adapters"
)

const (
	defaultBooksTableName      = "books"
	defaultBorrowingsTableName = "borrowings"
	defaultPaymentsTableName   = "payments"
	defaultUsersTableName      = "users"

	dialectPostgres = "postgres"
	dateLayout      = "2006-01-02"

	logMsgBuildQueryFailed = "failed to build query"
	logMsgQueryFailed      = "database query execution failed"
	logMsgExecFailed       = "database statement execution failed"
	logMsgScanRowFailed    = "failed to scan database row"
	logMsgCloseRowsFailed  = "failed to close database rows"
	logMsgRowsAffected     = "failed to get rows affected count"
	logMsgBeginTxFailed    = "failed to begin transaction"
	logMsgCommitFailed     = "failed to commit transaction"
	logMsgRollbackFailed   = "failed to roll back transaction"
	logMsgSQLExecuted      = "executed sql"
	logAttrError           = "error"
	logAttrQuery           = "query"
	logAttrDurationMS      = "duration_ms"

	colID                 = "id"
	colTitle              = "title"
	colAuthor             = "author"
	colInventory          = "inventory"
	colDailyFee           = "daily_fee"
	colBorrowDate         = "borrow_date"
	colExpectedReturnDate = "expected_return_date"
	colActualReturnDate   = "actual_return_date"
	colBookID             = "book_id"
	colUserID             = "user_id"
	colBorrowingID        = "borrowing_id"
	colStatus             = "status"
	colType               = "type"
	colSessionID          = "session_id"
	colSessionURL         = "session_url"
	colMoneyToPay         = "money_to_pay"
	colEmail              = "email"
	colFirstName          = "first_name"
	colLastName           = "last_name"
)

var (
	// ErrNilDatabaseConnection is returned when a constructor receives a nil connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTableName is returned when an empty table name is configured.
	ErrEmptyTableName = errors.New("empty table name supplied")

	// ErrBuildingQueryFailed wraps goqu SQL generation failures.
	ErrBuildingQueryFailed = errors.New("building sql query failed")

	// ErrQueryingFailed wraps database read failures.
	ErrQueryingFailed = errors.New("querying the database failed")

	// ErrExecutingFailed wraps database write failures.
	ErrExecutingFailed = errors.New("executing the database statement failed")

	// ErrScanningRowFailed wraps row scan failures.
	ErrScanningRowFailed = errors.New("scanning a database row failed")
)

type sqlQueryString = string

// Logger interface for SQL query logging, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// TableNames configures which tables the store reads and writes.
type TableNames struct {
	Books      string
	Borrowings string
	Payments   string
	Users      string
}

// Store is the Postgres-backed persistence layer of the borrowing engine.
// It implements the consumer-side store interfaces declared by the command
// and query feature packages, and the shell.UnitOfWork contract.
type Store struct {
	db     adapters.DBAdapter
	tables TableNames
	logger Logger
}

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithLogger sets the logger for the Store.
// Debug level receives SQL with execution timing; Warn receives non-critical
// issues like rollback failures; Error receives failures that abort operations.
func WithLogger(logger Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithTableNames overrides the default table names.
func WithTableNames(tables TableNames) Option {
	return func(s *Store) error {
		if tables.Books == "" || tables.Borrowings == "" || tables.Payments == "" || tables.Users == "" {
			return ErrEmptyTableName
		}

		s.tables = tables

		return nil
	}
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (*Store, error) {
	s := &Store{
		db: db,
		tables: TableNames{
			Books:      defaultBooksTableName,
			Borrowings: defaultBorrowingsTableName,
			Payments:   defaultPaymentsTableName,
			Users:      defaultUsersTableName,
		},
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Store) dialect() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

// executeQuery runs a read statement against the transaction in ctx, or the pool.
func (s *Store) executeQuery(ctx context.Context, sqlQuery sqlQueryString) (adapters.DBRows, error) {
	start := time.Now()
	rows, err := s.querier(ctx).Query(ctx, sqlQuery)
	s.logSQLWithDuration(sqlQuery, time.Since(start))

	if err != nil {
		s.logError(logMsgQueryFailed, err, sqlQuery)
		return nil, errors.Join(ErrQueryingFailed, err)
	}

	return rows, nil
}

// executeStatement runs a write statement and returns the affected row count.
func (s *Store) executeStatement(ctx context.Context, sqlQuery sqlQueryString) (int64, error) {
	start := time.Now()
	result, err := s.querier(ctx).Exec(ctx, sqlQuery)
	s.logSQLWithDuration(sqlQuery, time.Since(start))

	if err != nil {
		s.logError(logMsgExecFailed, err, sqlQuery)
		return 0, errors.Join(ErrExecutingFailed, err)
	}

	rowsAffected, affectedErr := result.RowsAffected()
	if affectedErr != nil {
		s.logError(logMsgRowsAffected, affectedErr, sqlQuery)
		return 0, errors.Join(ErrExecutingFailed, affectedErr)
	}

	return rowsAffected, nil
}

// closeRows safely closes database rows and logs any errors.
func (s *Store) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

func (s *Store) buildQueryError(err error) error {
	s.logError(logMsgBuildQueryFailed, err, "")
	return errors.Join(ErrBuildingQueryFailed, err)
}

func (s *Store) scanError(err error) error {
	s.logError(logMsgScanRowFailed, err, "")
	return errors.Join(ErrScanningRowFailed, err)
}

func (s *Store) logError(msg string, err error, sqlQuery sqlQueryString) {
	if s.logger == nil {
		return
	}

	if sqlQuery != "" {
		s.logger.Error(msg, logAttrError, err.Error(), logAttrQuery, sqlQuery)
		return
	}

	s.logger.Error(msg, logAttrError, err.Error())
}

func (s *Store) logSQLWithDuration(sqlQuery sqlQueryString, duration time.Duration) {
	if s.logger == nil {
		return
	}

	milliseconds := float64(duration.Nanoseconds()) / 1e6
	s.logger.Debug(logMsgSQLExecuted, logAttrQuery, sqlQuery, logAttrDurationMS, milliseconds)
}
