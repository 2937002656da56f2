// Package shell holds the orchestration contracts shared by the command and
// query handlers: the unit-of-work boundary, post-commit hooks, the clock and
// the notification sink contract. It depends on core but on no storage or
// gateway implementation.
package shell
