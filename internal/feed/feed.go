// Package feed retrieves price windows for tracked symbols from the
// market-data provider.
package feed

import (
	"context"
	"errors"

	"github.com/sabawi/stocks-tracker/internal/domain"
)

// ErrDataUnavailable reports that the provider returned no usable data
// for a symbol. After the retry budget is exhausted it is fatal for the
// whole tracker, not a per-symbol skip.
var ErrDataUnavailable = errors.New("market data unavailable")

// MinDailySamples is the smallest daily window that still allows a
// previous close to be computed.
const MinDailySamples = 2

// Fetcher retrieves, per symbol, a daily history window covering roughly
// a month and a minute-resolution window covering the most recent day.
// The last element of each window is the most recent sample.
type Fetcher interface {
	Fetch(ctx context.Context, symbol string) (daily, minute domain.PriceWindow, err error)
}
