// Package domain defines the core market-data types shared by the fetch,
// calculation, and rendering layers.
package domain

import "time"

// Sample is a single (timestamp, close) observation for one symbol.
type Sample struct {
	Timestamp time.Time
	Close     float64
}

// PriceWindow is a time-ordered sequence of samples over one horizon
// (daily over roughly a month, or minute over the most recent day). The
// last element is the most recent. Windows are produced fresh each poll
// cycle and discarded after use.
type PriceWindow []Sample

// Len returns the number of samples in the window.
func (w PriceWindow) Len() int { return len(w) }

// Last returns the most recent sample. The window must be non-empty.
func (w PriceWindow) Last() Sample { return w[len(w)-1] }

// SecondToLast returns the sample before the most recent one. The window
// must hold at least two samples.
func (w PriceWindow) SecondToLast() Sample { return w[len(w)-2] }

// Session classifies whether a quote reflects a still-open trading
// session or a completed one.
type Session string

const (
	SessionIntraday Session = "INTRADAY"
	SessionEndOfDay Session = "EOD"
)

// Quote is a derived per-symbol snapshot for one poll cycle. Quotes are
// never mutated, only replaced on the next cycle.
type Quote struct {
	Symbol    string
	Timestamp time.Time // latest minute-sample time, exchange-local
	LastPrice float64
	PrevClose float64
	Change    float64 // LastPrice - PrevClose, rounded to 2 decimals
	ChangePct float64 // 100 * Change / PrevClose, from rounded inputs
	Session   Session
}
