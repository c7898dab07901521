package usecase

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultDepositPercent        = 30
	DefaultBalanceLeadTime       = 7 * 24 * time.Hour
	DefaultBalanceReminderWindow = 3 * 24 * time.Hour
	DefaultPaymentSessionTTL     = 30 * time.Minute
	DefaultGatewayMaxAttempts    = 3
	DefaultGatewayRetryBackoff   = 500 * time.Millisecond
	DefaultCurrency              = "BRL"
)

type options struct {
	now                   func() time.Time
	log                   zerolog.Logger
	currency              string
	depositPercent        int
	balanceLeadTime       time.Duration
	balanceReminderWindow time.Duration
	sessionTTL            time.Duration
	gatewayMaxAttempts    int
	gatewayRetryBackoff   time.Duration
}

// Option tunes a use case. Options a use case does not read are ignored, so
// the same slice can be handed to every constructor.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		now:                   func() time.Time { return time.Now().UTC() },
		log:                   zerolog.Nop(),
		currency:              DefaultCurrency,
		depositPercent:        DefaultDepositPercent,
		balanceLeadTime:       DefaultBalanceLeadTime,
		balanceReminderWindow: DefaultBalanceReminderWindow,
		sessionTTL:            DefaultPaymentSessionTTL,
		gatewayMaxAttempts:    DefaultGatewayMaxAttempts,
		gatewayRetryBackoff:   DefaultGatewayRetryBackoff,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

func WithCurrency(currency string) Option {
	return func(o *options) {
		if currency != "" {
			o.currency = currency
		}
	}
}

func WithDefaultDepositPercent(pct int) Option {
	return func(o *options) {
		if pct >= 0 && pct <= 100 {
			o.depositPercent = pct
		}
	}
}

// WithBalanceLeadTime sets how long before the event the balance falls due.
func WithBalanceLeadTime(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.balanceLeadTime = d
		}
	}
}

// WithBalanceReminderWindow sets how far ahead of the due date a deposit-paid
// booking is moved to BALANCE_SCHEDULED.
func WithBalanceReminderWindow(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.balanceReminderWindow = d
		}
	}
}

func WithPaymentSessionTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.sessionTTL = d
		}
	}
}

func WithGatewayRetry(maxAttempts int, backoff time.Duration) Option {
	return func(o *options) {
		if maxAttempts > 0 {
			o.gatewayMaxAttempts = maxAttempts
		}
		if backoff >= 0 {
			o.gatewayRetryBackoff = backoff
		}
	}
}
