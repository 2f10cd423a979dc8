// Package tui owns the terminal render loop: it polls quotes on a fixed
// interval, paints the color-coded table, and exits on 'q'. The bubbletea
// alt-screen program guarantees the terminal mode is restored on every
// exit path.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sabawi/stocks-tracker/internal/domain"
	"github.com/sabawi/stocks-tracker/internal/feed"
	"github.com/sabawi/stocks-tracker/internal/quote"
	"github.com/sabawi/stocks-tracker/internal/render"
)

// Styles.
var (
	headerBarStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4"))
	footerBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	neutralStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	upStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	downStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	spinnerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func toneStyle(t render.Tone) lipgloss.Style {
	switch t {
	case render.ToneUp:
		return upStyle
	case render.ToneDown:
		return downStyle
	default:
		return neutralStyle
	}
}

// Messages.
type tickMsg time.Time

type frameMsg struct {
	frame   render.Frame
	skipped []string // symbols skipped this cycle (undefined percent change)
	err     error    // fatal: retry budget exhausted
}

// Model is the bubbletea model for the tracker display.
type Model struct {
	symbols  []string
	fetcher  feed.Fetcher
	interval time.Duration
	log      *slog.Logger

	spin       spinner.Model
	frame      render.Frame
	skipped    []string
	updatedAt  time.Time
	refreshing bool
	fatalErr   error

	width, height int
}

// New creates a Model that polls the given symbols through fetcher every
// interval.
func New(symbols []string, fetcher feed.Fetcher, interval time.Duration, logger *slog.Logger) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))
	return Model{
		symbols:    symbols,
		fetcher:    fetcher,
		interval:   interval,
		log:        logger,
		spin:       sp,
		refreshing: true,
	}
}

// Err returns the fatal error that ended the loop, if any. The caller
// reports it after the terminal is restored.
func (m Model) Err() error {
	return m.fatalErr
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.refreshCmd())
}

// refreshCmd runs one poll cycle: fetch and compute each symbol
// sequentially, then deliver the sorted frame. A symbol whose percent
// change is undefined is skipped for the cycle; an exhausted fetch is
// fatal for the whole tracker.
func (m Model) refreshCmd() tea.Cmd {
	symbols := m.symbols
	fetcher := m.fetcher
	log := m.log

	return func() tea.Msg {
		ctx := context.Background()
		quotes := make([]domain.Quote, 0, len(symbols))
		var skipped []string

		for _, sym := range symbols {
			daily, minute, err := fetcher.Fetch(ctx, sym)
			if err != nil {
				return frameMsg{err: fmt.Errorf("fetching %s: %w", sym, err)}
			}

			q, err := quote.Compute(sym, daily, minute)
			if err != nil {
				if errors.Is(err, quote.ErrDivisionUndefined) {
					log.Warn("skipping symbol for this cycle", "symbol", sym, "err", err)
					skipped = append(skipped, sym)
					continue
				}
				return frameMsg{err: err}
			}
			quotes = append(quotes, q)
		}

		return frameMsg{frame: render.BuildFrame(quotes), skipped: skipped}
	}
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.refreshing {
			return m, nil
		}
		m.refreshing = true
		return m, m.refreshCmd()

	case frameMsg:
		m.refreshing = false
		if msg.err != nil {
			m.fatalErr = msg.err
			m.log.Error("poll cycle failed", "err", msg.err)
			return m, tea.Quit
		}
		m.frame = msg.frame
		m.skipped = msg.skipped
		m.updatedAt = time.Now()
		return m, tickCmd(m.interval)
	}

	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	lines := make([]string, 0, len(m.frame)+6)
	lines = append(lines, m.headerBar())

	border := neutralStyle.Render(clip(render.Border(), m.width))
	lines = append(lines, border)
	lines = append(lines, m.paintRow(headerRowCells()))
	lines = append(lines, border)

	// Data rows, dropped silently once terminal height is exhausted.
	budget := m.height - len(lines) - 2 // closing border + footer
	for i, q := range m.frame {
		if i >= budget {
			break
		}
		lines = append(lines, m.paintRow(render.RowCells(q)))
	}
	lines = append(lines, border)

	if len(m.skipped) > 0 && len(lines) < m.height-1 {
		lines = append(lines, dimStyle.Render(clip("  skipped (no previous close): "+strings.Join(m.skipped, ", "), m.width)))
	}

	lines = append(lines, m.footerBar())
	return strings.Join(lines, "\n")
}

func (m Model) headerBar() string {
	status := fmt.Sprintf(" stocks-tracker    %d symbols    every %s ", len(m.symbols), m.interval)
	if !m.updatedAt.IsZero() {
		status += fmt.Sprintf("   updated %s ", m.updatedAt.Format("15:04:05"))
	}
	// Two columns are reserved past the bar for the refresh spinner so the
	// styled spinner never gets sliced by byte-based clipping.
	barWidth := m.width - 2
	bar := headerBarStyle.Render(clip(padTo(status, barWidth), barWidth))
	if m.refreshing {
		bar += " " + m.spin.View()
	}
	return bar
}

func (m Model) footerBar() string {
	return footerBarStyle.Render(clip(padTo(" q quit ", m.width), m.width))
}

// paintRow styles each cell independently and joins them with neutral
// separators, stopping once the terminal width is filled.
func (m Model) paintRow(cells []render.Cell) string {
	var b strings.Builder
	remaining := m.width

	write := func(text string, style lipgloss.Style) bool {
		if remaining <= 0 {
			return false
		}
		if len(text) > remaining {
			text = text[:remaining]
		}
		remaining -= len(text)
		b.WriteString(style.Render(text))
		return remaining > 0
	}

	if !write("|", neutralStyle) {
		return b.String()
	}
	for _, c := range cells {
		if !write(c.Text, toneStyle(c.Tone)) {
			break
		}
		if !write("|", neutralStyle) {
			break
		}
	}
	return b.String()
}

func headerRowCells() []render.Cell {
	texts := render.HeaderCells()
	cells := make([]render.Cell, len(texts))
	for i, t := range texts {
		cells[i] = render.Cell{Text: t, Tone: render.ToneNeutral}
	}
	return cells
}

func clip(s string, width int) string {
	if width > 0 && len(s) > width {
		return s[:width]
	}
	return s
}

func padTo(s string, width int) string {
	if width <= 0 || len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
