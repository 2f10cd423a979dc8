package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sabawi/stocks-tracker/internal/domain"
	"github.com/sabawi/stocks-tracker/internal/feed"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeFetcher serves fixed windows per symbol.
type fakeFetcher struct {
	daily  map[string]domain.PriceWindow
	minute map[string]domain.PriceWindow
	err    error
}

func (f *fakeFetcher) Fetch(_ context.Context, symbol string) (domain.PriceWindow, domain.PriceWindow, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.daily[symbol], f.minute[symbol], nil
}

func window(ts time.Time, closes ...float64) domain.PriceWindow {
	w := make(domain.PriceWindow, 0, len(closes))
	for i, c := range closes {
		w = append(w, domain.Sample{Timestamp: ts.AddDate(0, 0, i), Close: c})
	}
	return w
}

func fetcherFor(t *testing.T, prevCloses map[string]float64) *fakeFetcher {
	t.Helper()
	day := time.Date(2024, 7, 1, 16, 0, 0, 0, time.UTC)
	intradayTS := time.Date(2024, 7, 2, 14, 0, 0, 0, time.UTC)

	f := &fakeFetcher{
		daily:  make(map[string]domain.PriceWindow),
		minute: make(map[string]domain.PriceWindow),
	}
	for sym, prev := range prevCloses {
		f.daily[sym] = window(day, prev, 100.00)
		f.minute[sym] = domain.PriceWindow{{Timestamp: intradayTS, Close: 101.00}}
	}
	return f
}

func TestQuitKey(t *testing.T) {
	m := New([]string{"AAPL"}, fetcherFor(t, map[string]float64{"AAPL": 98.00}), time.Second, testLogger())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("'q' should produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("'q' command produced %T, want tea.QuitMsg", cmd())
	}
}

func TestRefreshCycleBuildsSortedFrame(t *testing.T) {
	fetcher := fetcherFor(t, map[string]float64{
		"AAPL": 98.00,  // +3.06%
		"MSFT": 100.50, // +0.50%
		"TSLA": 102.00, // -0.98%
	})
	m := New([]string{"AAPL", "MSFT", "TSLA"}, fetcher, time.Second, testLogger())

	msg := m.refreshCmd()()
	fm, ok := msg.(frameMsg)
	if !ok {
		t.Fatalf("refresh produced %T, want frameMsg", msg)
	}
	if fm.err != nil {
		t.Fatalf("refresh returned error: %v", fm.err)
	}
	if len(fm.frame) != 3 {
		t.Fatalf("frame has %d rows, want 3", len(fm.frame))
	}
	if fm.frame[0].Symbol != "AAPL" || fm.frame[2].Symbol != "TSLA" {
		t.Errorf("frame not sorted by percent change: %+v", fm.frame)
	}
}

func TestRefreshSkipsUndefinedPercentChange(t *testing.T) {
	fetcher := fetcherFor(t, map[string]float64{
		"AAPL": 98.00,
		"JUNK": 0.00, // previous close of zero: skip, don't crash
	})
	m := New([]string{"AAPL", "JUNK"}, fetcher, time.Second, testLogger())

	msg := m.refreshCmd()()
	fm := msg.(frameMsg)
	if fm.err != nil {
		t.Fatalf("refresh returned error: %v", fm.err)
	}
	if len(fm.frame) != 1 || fm.frame[0].Symbol != "AAPL" {
		t.Fatalf("frame = %+v, want only AAPL", fm.frame)
	}
	if len(fm.skipped) != 1 || fm.skipped[0] != "JUNK" {
		t.Errorf("skipped = %v, want [JUNK]", fm.skipped)
	}
}

func TestFetchFailureIsFatal(t *testing.T) {
	fetcher := &fakeFetcher{err: feed.ErrDataUnavailable}
	m := New([]string{"AAPL"}, fetcher, time.Second, testLogger())

	msg := m.refreshCmd()()
	fm := msg.(frameMsg)
	if !errors.Is(fm.err, feed.ErrDataUnavailable) {
		t.Fatalf("refresh error = %v, want ErrDataUnavailable", fm.err)
	}

	next, cmd := m.Update(fm)
	model := next.(Model)
	if model.Err() == nil {
		t.Error("fatal fetch error not recorded on the model")
	}
	if cmd == nil {
		t.Fatal("fatal frame should produce a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("fatal frame command produced %T, want tea.QuitMsg", cmd())
	}
}

func TestFrameSchedulesNextCycle(t *testing.T) {
	m := New([]string{"AAPL"}, fetcherFor(t, map[string]float64{"AAPL": 98.00}), time.Second, testLogger())

	fm := m.refreshCmd()().(frameMsg)
	next, cmd := m.Update(fm)
	model := next.(Model)

	if model.refreshing {
		t.Error("model still refreshing after frame delivery")
	}
	if cmd == nil {
		t.Error("frame delivery should schedule the next tick")
	}
	if model.Err() != nil {
		t.Errorf("unexpected fatal error: %v", model.Err())
	}
}

func TestViewTruncatesToTerminal(t *testing.T) {
	m := New([]string{"AAPL", "MSFT", "TSLA"},
		fetcherFor(t, map[string]float64{"AAPL": 98.00, "MSFT": 100.50, "TSLA": 102.00}),
		time.Second, testLogger())

	fm := m.refreshCmd()().(frameMsg)
	next, _ := m.Update(fm)
	m = next.(Model)

	// Height 7 leaves room for exactly one data row.
	next, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 7})
	m = next.(Model)

	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) > 7 {
		t.Errorf("view has %d lines, want at most 7", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w > 40 {
			t.Errorf("line %d has width %d, want at most 40", i, w)
		}
	}
	if !strings.Contains(view, "AAPL") {
		t.Error("top row AAPL missing from truncated view")
	}
	if strings.Contains(view, "TSLA") {
		t.Error("overflow row TSLA should be dropped, not scrolled")
	}
}

func TestViewShowsAllRowsWhenRoomy(t *testing.T) {
	m := New([]string{"AAPL", "MSFT"},
		fetcherFor(t, map[string]float64{"AAPL": 98.00, "MSFT": 100.50}),
		time.Second, testLogger())

	fm := m.refreshCmd()().(frameMsg)
	next, _ := m.Update(fm)
	m = next.(Model)
	next, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	view := m.View()
	for _, want := range []string{"AAPL", "MSFT", "Symbol", "Change ($)", "Change (%)", "INTRADAY"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
