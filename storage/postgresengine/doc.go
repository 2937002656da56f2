// Package postgresengine implements the borrowing engine's storage on
// Postgres. All SQL is built with goqu and executed through interchangeable
// database adapters (pgx pool, sqlx, database/sql). The Store also provides
// the unit of work: Execute runs a closure inside a transaction whose handle
// travels in the context, so every store method transparently joins the
// enclosing transaction when there is one.
//
// Inventory is only ever mutated with single conditional statements
// (decrement guarded by inventory > 0, increment unguarded), and a borrowing
// is closed with a conditional update on actual_return_date IS NULL. These
// guards close the races between concurrent creates and concurrent returns
// without application-side read-modify-write.
package postgresengine
