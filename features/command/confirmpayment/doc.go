// Package confirmpayment handles the gateway's success callback: it flips
// the payment attached to the checkout session from PENDING to PAID.
// Replays are idempotent - an already-paid session confirms again without
// error and without a duplicate side effect.
package confirmpayment
