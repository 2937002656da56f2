// Package memoryengine provides in-memory doubles for the storage, unit of
// work, payment gateway and notification sink contracts. The command and
// query tests run against these, with the same error semantics as the
// Postgres engine, so they need no database.
package memoryengine
