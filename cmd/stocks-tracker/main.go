package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/sabawi/stocks-tracker/internal/config"
	"github.com/sabawi/stocks-tracker/internal/feed"
	"github.com/sabawi/stocks-tracker/internal/symbols"
	"github.com/sabawi/stocks-tracker/internal/tui"
	"github.com/sabawi/stocks-tracker/internal/util"
)

const usage = "Usage: stocks-tracker <stocks_file> [interval_seconds]"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	stocksFile := os.Args[1]

	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfgPath := os.Getenv("TRACKER_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	interval := time.Duration(cfg.Tracker.IntervalSeconds) * time.Second
	if len(os.Args) > 2 {
		secs, err := strconv.Atoi(os.Args[2])
		if err != nil || secs <= 0 {
			fmt.Fprintf(os.Stderr, "invalid interval %q\n%s\n", os.Args[2], usage)
			os.Exit(1)
		}
		interval = time.Duration(secs) * time.Second
	}

	syms, err := symbols.Load(stocksFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
		os.Exit(1)
	}

	// The TUI owns the terminal surface, so the logger writes to a dated
	// file instead of stdout.
	logPath := filepath.Join(os.TempDir(), fmt.Sprintf("stocks-tracker-%s.log", time.Now().Format("2006-01-02")))
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := util.NewLogger(logFile, cfg.Logging.Level)
	util.SetDefault(logger)

	alpacaFetcher, err := feed.NewAlpacaFetcher(
		cfg.Alpaca.APIKey,
		cfg.Alpaca.APISecret,
		cfg.Alpaca.DataURL,
		cfg.Tracker.RateLimitPerMin,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating fetcher: %v\n", err)
		os.Exit(1)
	}
	fetcher := feed.NewRetrier(
		alpacaFetcher,
		cfg.Tracker.RetryAttempts,
		time.Duration(cfg.Tracker.RetryWaitSeconds)*time.Second,
	)

	logger.Info("starting tracker",
		"symbols", len(syms),
		"interval", interval,
		"log", logPath,
	)

	// The alt-screen program restores the terminal on every exit path,
	// including fatal fetch errors surfaced through the model.
	p := tea.NewProgram(
		tui.New(syms, fetcher, interval, logger),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if m, ok := finalModel.(tui.Model); ok && m.Err() != nil {
		fmt.Fprintf(os.Stderr, "error while getting data: %v\n", m.Err())
		os.Exit(1)
	}
}
