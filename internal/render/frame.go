// Package render builds the per-cycle table of quotes: sorting, column
// formatting, and the per-cell color rules the terminal view paints with.
package render

import (
	"sort"

	"github.com/sabawi/stocks-tracker/internal/domain"
)

// Frame is the sequence of quotes painted in one refresh cycle, sorted
// descending by percent change. It exists only to be painted and is
// discarded on the next cycle.
type Frame []domain.Quote

// BuildFrame copies quotes into a Frame and stable-sorts it descending
// by percent change. Ties keep their original fetch order.
func BuildFrame(quotes []domain.Quote) Frame {
	f := make(Frame, len(quotes))
	copy(f, quotes)
	sort.SliceStable(f, func(i, j int) bool {
		return f[i].ChangePct > f[j].ChangePct
	})
	return f
}

// Tone classifies a cell for color painting.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneUp
	ToneDown
)

// ChangeTone returns the tone for a numeric change value: up for
// positive, down for negative, neutral for exactly zero.
func ChangeTone(v float64) Tone {
	switch {
	case v > 0:
		return ToneUp
	case v < 0:
		return ToneDown
	default:
		return ToneNeutral
	}
}
