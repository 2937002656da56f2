// Package testdoubles provides logger test doubles for asserting on the
// operational logging of command handlers and the overdue scan runner.
package testdoubles
