package render

import (
	"strings"

	"github.com/sabawi/stocks-tracker/internal/domain"
)

// Column describes one table column: header name and interior width.
type Column struct {
	Name  string
	Width int
}

// Columns is the fixed column order of the tracker table.
var Columns = []Column{
	{Name: "Date/Time", Width: 18},
	{Name: "Symbol", Width: 8},
	{Name: "Last Price", Width: 12},
	{Name: "Prev. Close", Width: 13},
	{Name: "Change ($)", Width: 12},
	{Name: "Change (%)", Width: 12},
	{Name: "Session", Width: 10},
}

// Indices of the two colorized change columns.
const (
	colChangeAbs = 4
	colChangePct = 5
)

// Cell is a formatted table cell plus the tone it should be painted in.
type Cell struct {
	Text string
	Tone Tone
}

// Border returns the horizontal border line (+---+---+...).
func Border() string {
	var b strings.Builder
	b.WriteByte('+')
	for _, c := range Columns {
		b.WriteString(strings.Repeat("-", c.Width))
		b.WriteByte('+')
	}
	return b.String()
}

// HeaderCells returns the centered header cell texts, one per column.
func HeaderCells() []string {
	cells := make([]string, len(Columns))
	for i, c := range Columns {
		cells[i] = padCenter(c.Name, c.Width)
	}
	return cells
}

// RowCells formats a quote into one cell per column. The two change
// columns carry the tone of their sign; every other cell is neutral.
func RowCells(q domain.Quote) []Cell {
	texts := []string{
		padLeft(FormatTimestamp(q.Timestamp), Columns[0].Width),
		padLeft(q.Symbol, Columns[1].Width),
		padRight(FormatPrice(q.LastPrice), Columns[2].Width),
		padRight(FormatPrice(q.PrevClose), Columns[3].Width),
		padRight(FormatChange(q.Change), Columns[4].Width),
		padRight(FormatChange(q.ChangePct), Columns[5].Width),
		padLeft(string(q.Session), Columns[6].Width),
	}

	cells := make([]Cell, len(texts))
	for i, text := range texts {
		cells[i] = Cell{Text: text, Tone: ToneNeutral}
	}
	cells[colChangeAbs].Tone = ChangeTone(q.Change)
	cells[colChangePct].Tone = ChangeTone(q.ChangePct)
	return cells
}

// JoinRow assembles cell texts into a bordered table line. The view
// paints cells individually; this form is used for plain output and
// tests.
func JoinRow(texts []string) string {
	return "|" + strings.Join(texts, "|") + "|"
}

func padLeft(s string, width int) string {
	s = " " + s
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padRight(s string, width int) string {
	s = s + " "
	if len(s) >= width {
		return s[len(s)-width:]
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
