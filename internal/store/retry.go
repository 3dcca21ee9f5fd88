package store

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"

	"wordrush/internal/domain"
)

// Retrying wraps a store and retries failed calls with backoff. Lookups of
// missing rounds, bad input and cancelled contexts are returned immediately.
type Retrying struct {
	next     Store
	attempts uint
	delay    time.Duration
	logger   zerolog.Logger
}

// NewRetrying wraps next. attempts counts the first try; values below 1 mean 1.
func NewRetrying(next Store, attempts uint, delay time.Duration, logger zerolog.Logger) *Retrying {
	if attempts < 1 {
		attempts = 1
	}
	return &Retrying{
		next:     next,
		attempts: attempts,
		delay:    delay,
		logger:   logger,
	}
}

func retryable(err error) bool {
	return !errors.Is(err, domain.ErrNotFound) &&
		!errors.Is(err, domain.ErrInvalidInput) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

func (r *Retrying) options(ctx context.Context, op string) []retry.Option {
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			r.logger.Warn().Err(err).Uint("n", n).Str("op", op).Msg("store-call-failed-retrying")
		}),
	}
}

func (r *Retrying) Get(ctx context.Context, code string) (*domain.Round, error) {
	return retry.DoWithData(func() (*domain.Round, error) {
		return r.next.Get(ctx, code)
	}, r.options(ctx, "get")...)
}

func (r *Retrying) Put(ctx context.Context, round *domain.Round) error {
	return retry.Do(func() error {
		return r.next.Put(ctx, round)
	}, r.options(ctx, "put")...)
}

func (r *Retrying) Delete(ctx context.Context, code string) error {
	return retry.Do(func() error {
		return r.next.Delete(ctx, code)
	}, r.options(ctx, "delete")...)
}

func (r *Retrying) Count(ctx context.Context) (int, error) {
	return retry.DoWithData(func() (int, error) {
		return r.next.Count(ctx)
	}, r.options(ctx, "count")...)
}

func (r *Retrying) CreatedBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	return retry.DoWithData(func() ([]string, error) {
		return r.next.CreatedBefore(ctx, cutoff)
	}, r.options(ctx, "created-before")...)
}

func (r *Retrying) Close() error {
	return r.next.Close()
}
