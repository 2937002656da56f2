// Package cancelpayment handles the gateway's cancel callback: the payment
// attached to the checkout session stays PENDING so the user can pay later.
// A paid payment cannot be cancelled - that callback fails as a conflict.
package cancelpayment
