package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/epaper"
	"github.com/fwojciec/epaper/analyze"
	"github.com/fwojciec/epaper/htmltomarkdown"
	ephttp "github.com/fwojciec/epaper/http"
	"github.com/fwojciec/epaper/resolve"
	"github.com/fwojciec/epaper/rod"
	epslog "github.com/fwojciec/epaper/slog"
	"github.com/fwojciec/epaper/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	NewspaperService epaper.NewspaperService
	EditionService   epaper.EditionService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    time.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("epaper"),
		kong.Description("Find and download the editions of online newspapers"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'epaper --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(cli.Verbose, stderr)

	// Analyze works on a URL alone and never touches the database.
	if cmd != "analyze" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set EPAPER_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.NewspaperService = sqlite.NewNewspaperService(m.DB)
		m.EditionService = sqlite.NewEditionService(m.DB)
		deps.DB = m.DB
		deps.Newspapers = m.NewspaperService
		deps.Editions = m.EditionService
	}

	if cmd == "analyze" || cmd == "sync" {
		fetcher, err := newFetcher(cli, stderr)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		analyzer := newAnalyzer(epslog.NewLoggingFetcher(fetcher, deps.Logger), cli.Rate, deps.Logger)
		deps.Runner = analyzer
		deps.Analyzer = epslog.NewLoggingAnalyzer(analyzer, deps.Logger)
		deps.Converter = htmltomarkdown.NewConverter()
	}

	if cmd == "download" {
		deps.Downloader = epslog.NewLoggingDownloader(ephttp.NewDownloader(), deps.Logger)
	}

	return kongCtx.Run(deps)
}

// newFetcher returns the browser fetcher when pages must be rendered and
// the plain HTTP fetcher otherwise.
func newFetcher(cli *CLI, stderr io.Writer) (epaper.Fetcher, error) {
	if !cli.Rendered {
		return ephttp.NewFetcher(ephttp.WithTimeout(cli.Timeout)), nil
	}

	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return fetcher, nil
}

// newAnalyzer wires the resolver and the default strategies around fetcher.
func newAnalyzer(fetcher epaper.Fetcher, rps float64, logger *slog.Logger) *analyze.Analyzer {
	resolver := epslog.NewLoggingResolver(
		resolve.NewResolver(fetcher,
			resolve.WithLogger(logger),
			resolve.WithRateLimiter(resolve.NewDomainLimiter(rps)),
			resolve.WithRetryDelays(resolve.DefaultRetryDelays()),
		),
		logger,
	)

	return &analyze.Analyzer{
		Resolver:   resolver,
		Strategies: epslog.WrapStrategies(analyze.DefaultStrategies(resolver), logger),
	}
}

func newLogger(verbose bool, stderr io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultDBPath() string {
	if path := os.Getenv("EPAPER_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "epaper.db"
	}
	dir := filepath.Join(home, ".epaper")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "epaper.db")
}
