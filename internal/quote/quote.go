// Package quote derives per-symbol price snapshots from fetched windows.
package quote

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sabawi/stocks-tracker/internal/domain"
)

// ErrDivisionUndefined reports that the previous close is zero, so a
// percent change cannot be computed. The tracker skips the symbol for
// the cycle rather than failing the loop.
var ErrDivisionUndefined = errors.New("previous close is zero")

// sessionCutoff is 15:59:00 exchange-local time as seconds since
// midnight. A minute sample at or after this instant marks the session
// as end-of-day.
const sessionCutoff = 15*3600 + 59*60

// Compute derives a Quote for symbol from its daily and minute windows.
// It is a pure function of its inputs.
//
// Prices are rounded to 2 decimal places before the change and percent
// change are computed, and again after, matching the reference tracker's
// output exactly (the rounding error of dividing rounded values is
// deliberately visible).
func Compute(symbol string, daily, minute domain.PriceWindow) (domain.Quote, error) {
	if daily.Len() < 2 {
		return domain.Quote{}, fmt.Errorf("computing %s: daily window has %d samples, need at least 2", symbol, daily.Len())
	}
	if minute.Len() < 1 {
		return domain.Quote{}, fmt.Errorf("computing %s: minute window is empty", symbol)
	}

	lastFromDaily := round2(daily.Last().Close)
	prevClose := round2(daily.SecondToLast().Close)
	minuteClose := round2(minute.Last().Close)
	ts := minute.Last().Timestamp

	session := domain.SessionEndOfDay
	lastPrice := lastFromDaily
	if secondsOfDay(ts) < sessionCutoff {
		session = domain.SessionIntraday
		lastPrice = minuteClose
	}

	if prevClose == 0 {
		return domain.Quote{}, fmt.Errorf("%w: %s", ErrDivisionUndefined, symbol)
	}

	change := round2(lastPrice - prevClose)
	changePct := round2(100 * change / prevClose)

	return domain.Quote{
		Symbol:    symbol,
		Timestamp: ts,
		LastPrice: lastPrice,
		PrevClose: prevClose,
		Change:    change,
		ChangePct: changePct,
		Session:   session,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func secondsOfDay(t time.Time) int {
	h, m, s := t.Clock()
	return h*3600 + m*60 + s
}
