package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"github.com/sabawi/stocks-tracker/internal/domain"
	"github.com/sabawi/stocks-tracker/internal/util"
)

// Compile-time interface check.
var _ Fetcher = (*AlpacaFetcher)(nil)

// AlpacaFetcher fetches daily and minute bars from the Alpaca market-data
// API. Bar timestamps are converted to exchange-local time so that the
// downstream session classification sees the same clock the exchange does.
type AlpacaFetcher struct {
	client  *marketdata.Client
	limiter *util.RateLimiter
	loc     *time.Location
	feed    marketdata.Feed
	log     *slog.Logger
}

// NewAlpacaFetcher creates an AlpacaFetcher configured with the given
// credentials and request budget.
func NewAlpacaFetcher(apiKey, apiSecret, dataURL string, rateLimitPerMin int) (*AlpacaFetcher, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("loading exchange timezone: %w", err)
	}

	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}

	return &AlpacaFetcher{
		client:  marketdata.NewClient(opts),
		limiter: util.NewRateLimiter(rateLimitPerMin),
		loc:     loc,
		feed:    marketdata.IEX,
		log:     slog.Default().With("component", "feed"),
	}, nil
}

// Fetch retrieves the daily window (~1 month of daily bars) and the
// minute window (most recent day of minute bars) for symbol. Provider
// errors and empty results are reported as ErrDataUnavailable.
func (f *AlpacaFetcher) Fetch(ctx context.Context, symbol string) (domain.PriceWindow, domain.PriceWindow, error) {
	now := time.Now()

	daily, err := f.getWindow(ctx, symbol, marketdata.OneDay, now.AddDate(0, -1, 0), now)
	if err != nil {
		return nil, nil, err
	}

	minute, err := f.getWindow(ctx, symbol, marketdata.OneMin, now.Add(-24*time.Hour), now)
	if err != nil {
		return nil, nil, err
	}

	f.log.Debug("fetched windows", "symbol", symbol, "daily", daily.Len(), "minute", minute.Len())
	return daily, minute, nil
}

// getWindow fetches one bar window and maps it to a PriceWindow in
// exchange-local time.
func (f *AlpacaFetcher) getWindow(ctx context.Context, symbol string, tf marketdata.TimeFrame, start, end time.Time) (domain.PriceWindow, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	bars, err := f.client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: tf,
		Start:     start,
		End:       end,
		Feed:      f.feed,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: GetBars %s: %v", ErrDataUnavailable, symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no bars for %s", ErrDataUnavailable, symbol)
	}

	window := make(domain.PriceWindow, 0, len(bars))
	for _, b := range bars {
		window = append(window, domain.Sample{
			Timestamp: b.Timestamp.In(f.loc),
			Close:     b.Close,
		})
	}
	return window, nil
}
