// Package symbols loads the ticker symbol list the tracker watches.
package symbols

import (
	"fmt"
	"os"
	"strings"
)

// Load reads a whitespace-separated list of ticker symbols from path and
// returns them normalized to uppercase, in file order. The list is loaded
// once at startup and is immutable for the process lifetime.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading symbols file: %w", err)
	}

	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return nil, fmt.Errorf("symbols file %q contains no symbols", path)
	}

	syms := make([]string, 0, len(fields))
	for _, f := range fields {
		syms = append(syms, strings.ToUpper(f))
	}
	return syms, nil
}
