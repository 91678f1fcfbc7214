package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/sony/gobreaker"

	"codeberg.org/snonux/glossarymaker/internal/logging"
)

// ErrUnavailable is returned while the circuit breaker is open
var ErrUnavailable = errors.New("service unavailable")

// Validator checks a raw response; a non-nil error triggers a retry
type Validator func(raw string) error

// ResilientOptions configures retries and the circuit breaker
type ResilientOptions struct {
	// MaxAttempts is the total number of tries per request
	MaxAttempts int
	// Delay is the constant wait between tries
	Delay time.Duration
	// TripAfter consecutive failures open the breaker; 0 means 2*MaxAttempts
	TripAfter int
	// OpenTimeout is how long the breaker stays open; 0 means Delay, so
	// the breaker is half-open again by the next attempt
	OpenTimeout time.Duration
}

// Resilient retries requests to a backend behind one circuit breaker
type Resilient struct {
	backend Backend
	breaker *gobreaker.CircuitBreaker
	opts    ResilientOptions
}

// NewResilient wraps backend with retries and a circuit breaker
func NewResilient(backend Backend, opts ResilientOptions) *Resilient {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	if opts.TripAfter < 1 {
		opts.TripAfter = 2 * opts.MaxAttempts
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = opts.Delay
		if opts.OpenTimeout == 0 {
			opts.OpenTimeout = time.Nanosecond
		}
	}

	tripAfter := uint32(opts.TripAfter)
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        backend.Name(),
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfter
		},
		IsSuccessful: func(err error) bool {
			// Credential and validation problems say nothing about availability
			return err == nil ||
				errors.Is(err, ErrInvalidCredential) ||
				errors.Is(err, ErrInvalidResponse) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Default().Warn("Circuit breaker state changed", "backend", name, "from", from.String(), "to", to.String())
		},
	})

	return &Resilient{backend: backend, breaker: breaker, opts: opts}
}

// Name returns the wrapped backend name
func (r *Resilient) Name() string {
	return r.backend.Name()
}

// Generate implements Backend
func (r *Resilient) Generate(ctx context.Context, req Request) (string, error) {
	return r.GenerateValid(ctx, req, nil)
}

// GenerateValid sends req until the response passes accept
// Credential failures stop immediately. Every other failure, an open
// breaker included, is retried up to MaxAttempts with a constant delay.
func (r *Resilient) GenerateValid(ctx context.Context, req Request, accept Validator) (string, error) {
	logger := logging.Default()
	backoff := retry.WithMaxRetries(uint64(r.opts.MaxAttempts-1), retry.NewConstant(r.delay()))

	attempt := 0
	var result string
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		logger.Debug("Sending request", "backend", r.backend.Name(), "attempt", attempt, "of", r.opts.MaxAttempts)

		out, err := r.breaker.Execute(func() (interface{}, error) {
			text, err := r.backend.Generate(ctx, req)
			if err != nil {
				return nil, err
			}
			if accept != nil {
				if verr := accept(text); verr != nil {
					if !errors.Is(verr, ErrInvalidResponse) {
						verr = fmt.Errorf("%w: %v", ErrInvalidResponse, verr)
					}
					return nil, verr
				}
			}
			return text, nil
		})

		switch {
		case err == nil:
			result = out.(string)
			return nil
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			logger.Warn("Circuit breaker open, waiting", "backend", r.backend.Name(), "attempt", attempt, "of", r.opts.MaxAttempts)
			return retry.RetryableError(fmt.Errorf("%s: %w: %v", r.backend.Name(), ErrUnavailable, err))
		case IsAuthError(err):
			if !errors.Is(err, ErrInvalidCredential) {
				err = fmt.Errorf("%w: %v", ErrInvalidCredential, err)
			}
			return err
		case ctx.Err() != nil:
			return ctx.Err()
		}

		logger.Warn("Request failed", "backend", r.backend.Name(), "attempt", attempt, "of", r.opts.MaxAttempts, "err", err)
		return retry.RetryableError(err)
	})
	if err != nil {
		if attempt >= r.opts.MaxAttempts && !errors.Is(err, ErrInvalidCredential) {
			return "", fmt.Errorf("max retries exceeded after %d attempts: %w", attempt, err)
		}
		return "", err
	}
	return result, nil
}

func (r *Resilient) delay() time.Duration {
	if r.opts.Delay == 0 {
		// go-retry rejects a zero interval
		return time.Nanosecond
	}
	return r.opts.Delay
}
