package memoryengine

import (
	"context"
	"fmt"
	"sync"

	"github.com/bookhive/borrowing-engine-go/core"
)

// OpenedSession records one successful OpenSession call on the FakeGateway.
type OpenedSession struct {
	AmountCents  int64
	ProductLabel string
	Session      core.CheckoutSession
}

// FakeGateway is a scriptable payment gateway double. By default every
// OpenSession call succeeds with a generated session; FailNextWith makes the
// next call fail with the given error instead.
type FakeGateway struct {
	mu       sync.Mutex
	nextErr  error
	counter  int
	Sessions []OpenedSession
}

// NewFakeGateway creates a gateway double that succeeds by default.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{}
}

// FailNextWith makes the next OpenSession call fail with err.
func (g *FakeGateway) FailNextWith(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nextErr = err
}

// OpenSession returns a fresh generated checkout session, or the scripted error.
func (g *FakeGateway) OpenSession(_ context.Context, amountCents int64, productLabel string) (core.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.nextErr != nil {
		err := g.nextErr
		g.nextErr = nil

		return core.CheckoutSession{}, err
	}

	g.counter++
	session := core.CheckoutSession{
		SessionID:  fmt.Sprintf("cs_test_%d", g.counter),
		SessionURL: fmt.Sprintf("https://checkout.example.test/c/pay/cs_test_%d", g.counter),
	}

	g.Sessions = append(g.Sessions, OpenedSession{
		AmountCents:  amountCents,
		ProductLabel: productLabel,
		Session:      session,
	})

	return session, nil
}
