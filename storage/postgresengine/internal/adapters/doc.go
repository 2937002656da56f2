// Package adapters abstracts the concrete database client libraries behind
// small interfaces so the store can run on pgxpool, sqlx or database/sql
// without caring which one is wired in. The transactional variants back the
// unit of work.
package adapters
