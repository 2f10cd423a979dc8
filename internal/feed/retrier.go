package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sabawi/stocks-tracker/internal/domain"
	"github.com/sabawi/stocks-tracker/internal/util"
)

// Compile-time interface check.
var _ Fetcher = (*Retrier)(nil)

// Retrier wraps a Fetcher with the tracker's bounded retry policy: a
// failed fetch or a daily window too short to compute a previous close
// is retried after a fixed wait, up to a total attempt budget per symbol
// per poll cycle. Exhausting the budget yields ErrDataUnavailable.
type Retrier struct {
	inner    Fetcher
	attempts int
	wait     time.Duration
	log      *slog.Logger
}

// NewRetrier creates a Retrier around inner with the given attempt budget
// and fixed inter-attempt wait.
func NewRetrier(inner Fetcher, attempts int, wait time.Duration) *Retrier {
	return &Retrier{
		inner:    inner,
		attempts: attempts,
		wait:     wait,
		log:      slog.Default().With("component", "feed"),
	}
}

// Fetch retrieves both windows for symbol, retrying per the policy.
func (r *Retrier) Fetch(ctx context.Context, symbol string) (domain.PriceWindow, domain.PriceWindow, error) {
	var daily, minute domain.PriceWindow

	err := util.Retry(ctx, r.attempts, r.wait, func() error {
		var ferr error
		daily, minute, ferr = r.inner.Fetch(ctx, symbol)
		if ferr != nil {
			return ferr
		}
		if daily.Len() < MinDailySamples {
			return fmt.Errorf("%w: %s daily window has %d samples, need %d",
				ErrDataUnavailable, symbol, daily.Len(), MinDailySamples)
		}
		return nil
	})
	if err != nil {
		r.log.Warn("retry budget exhausted", "symbol", symbol, "attempts", r.attempts, "err", err)
		if errors.Is(err, ErrDataUnavailable) || errors.Is(err, context.Canceled) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, symbol, err)
	}

	return daily, minute, nil
}
