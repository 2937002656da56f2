// Package stripecheckout adapts the Stripe hosted-checkout API to the
// payment gateway contract of the borrowing engine. The adapter is a thin
// boundary: it opens sessions and classifies failures, nothing more. The
// engine treats any failure here as fatal to the enclosing transaction.
package stripecheckout

import (
	"context"
	"errors"
	"time"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/bookhive/borrowing-engine-go/core"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultCurrency = string(stripe.CurrencyUSD)

	logMsgSessionOpened     = "checkout session opened"
	logMsgOpenSessionFailed = "opening checkout session failed"
	logAttrSessionID        = "session_id"
	logAttrAmountCents      = "amount_cents"
	logAttrError            = "error"
)

// ErrNonPositiveAmount is the detail carried by core.ErrGatewayRejected when
// a session is requested for a non-positive amount.
var ErrNonPositiveAmount = errors.New("checkout amount must be positive")

// ErrEmptyAPIKey is returned when the client is constructed without an API key.
var ErrEmptyAPIKey = errors.New("stripe api key must not be empty")

// ErrInvalidTimeout is returned when a non-positive timeout is configured.
var ErrInvalidTimeout = errors.New("timeout must be positive")

// Logger interface for session logging and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config carries the explicit gateway configuration injected at process
// start. Business logic never reads ambient global state.
type Config struct {
	APIKey     string
	SuccessURL string
	CancelURL  string
}

// Client opens Stripe checkout sessions for borrowing fees and fines.
type Client struct {
	api      *client.API
	config   Config
	currency string
	timeout  time.Duration
	logger   Logger
}

// Option defines a functional option for configuring a Client.
type Option func(*Client) error

// WithTimeout bounds each gateway call. The default is 10 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout <= 0 {
			return ErrInvalidTimeout
		}

		c.timeout = timeout

		return nil
	}
}

// WithCurrency sets the checkout currency. The default is USD.
func WithCurrency(currency string) Option {
	return func(c *Client) error {
		c.currency = currency
		return nil
	}
}

// WithLogger sets the logger for the Client.
func WithLogger(logger Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// NewClient creates a checkout client with optional configuration.
func NewClient(config Config, options ...Option) (*Client, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	api := &client.API{}
	api.Init(config.APIKey, nil)

	c := &Client{
		api:      api,
		config:   config,
		currency: defaultCurrency,
		timeout:  defaultTimeout,
	}

	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// OpenSession creates a hosted checkout session for the given amount.
//
// A non-positive amount fails locally with core.ErrGatewayRejected. Remote
// failures are classified into core.ErrGatewayRejected (Stripe refused the
// request) or core.ErrGatewayUnavailable (network, auth or server trouble),
// always carrying the underlying detail.
func (c *Client) OpenSession(ctx context.Context, amountCents int64, productLabel string) (core.CheckoutSession, error) {
	var empty core.CheckoutSession

	if amountCents <= 0 {
		return empty, errors.Join(core.ErrGatewayRejected, ErrNonPositiveAmount)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(c.config.SuccessURL),
		CancelURL:  stripe.String(c.config.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(c.currency),
					UnitAmount: stripe.Int64(amountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(productLabel),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		classified := classifyStripeError(err)

		if c.logger != nil {
			c.logger.Error(logMsgOpenSessionFailed, logAttrError, err.Error(), logAttrAmountCents, amountCents)
		}

		return empty, classified
	}

	if c.logger != nil {
		c.logger.Debug(logMsgSessionOpened, logAttrSessionID, session.ID, logAttrAmountCents, amountCents)
	}

	return core.CheckoutSession{
		SessionID:  session.ID,
		SessionURL: session.URL,
	}, nil
}

// classifyStripeError maps a Stripe client error onto the engine's gateway
// error kinds, keeping the original error as joined detail.
func classifyStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch stripeErr.Type {
		case stripe.ErrorTypeInvalidRequest, stripe.ErrorTypeCard:
			return errors.Join(core.ErrGatewayRejected, err)
		default:
			return errors.Join(core.ErrGatewayUnavailable, err)
		}
	}

	return errors.Join(core.ErrGatewayUnavailable, err)
}
