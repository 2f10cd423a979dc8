package render

import (
	"fmt"
	"time"
)

// timestampLayout renders as hh:mmAM/PM mm,dd,yy, matching the reference
// tracker's display format.
const timestampLayout = "03:04PM 01,02,06"

// FormatTimestamp formats a quote timestamp for the Date/Time column.
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// FormatPrice formats a price with two decimal places.
func FormatPrice(p float64) string {
	return fmt.Sprintf("%.2f", p)
}

// FormatChange formats a change value with two decimal places. Negative
// values carry their sign; positive values are unsigned like the
// reference output.
func FormatChange(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
