package symbols

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stocks.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing temp symbols file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "aapl MSFT\n  goog\tTSLA\n")

	syms, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := []string{"AAPL", "MSFT", "GOOG", "TSLA"}
	if len(syms) != len(want) {
		t.Fatalf("Load returned %d symbols, want %d", len(syms), len(want))
	}
	for i := range want {
		if syms[i] != want[i] {
			t.Errorf("syms[%d] = %q, want %q", i, syms[i], want[i])
		}
	}
}

func TestLoadEmpty(t *testing.T) {
	path := writeFile(t, "   \n\t\n")

	if _, err := Load(path); err == nil {
		t.Fatal("Load should fail on a file with no symbols")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("Load should fail on a missing file")
	}
}
