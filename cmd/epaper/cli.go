package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/epaper"
	"github.com/fwojciec/epaper/analyze"
	"github.com/fwojciec/epaper/sqlite"
)

// Runner runs an analysis and reports how its result was chosen.
type Runner interface {
	Run(ctx context.Context, url string) (*analyze.Result, error)
}

var _ Runner = (*analyze.Analyzer)(nil)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	DB         *sqlite.DB
	Newspapers epaper.NewspaperService
	Editions   epaper.EditionService
	Analyzer   epaper.Analyzer
	Runner     Runner
	Converter  epaper.Converter
	Downloader epaper.Downloader
	Now        func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose  bool          `short:"v" help:"Log fetches and strategy results to stderr"`
	Rendered bool          `help:"Render pages in headless Chrome before extraction"`
	Timeout  time.Duration `default:"10s" help:"Timeout for a single page fetch"`
	Rate     float64       `default:"1" help:"Requests per second per domain"`

	Analyze  AnalyzeCmd  `cmd:"" help:"Extract editions from a newspaper page"`
	Add      AddCmd      `cmd:"" help:"Register a newspaper"`
	List     ListCmd     `cmd:"" help:"List registered newspapers"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a newspaper and its editions"`
	Sync     SyncCmd     `cmd:"" help:"Analyze a newspaper and store its current editions"`
	Download DownloadCmd `cmd:"" help:"Download the stored editions of a newspaper"`
	Import   ImportCmd   `cmd:"" help:"Register newspapers from a YAML catalog"`
	Export   ExportCmd   `cmd:"" help:"Print registered newspapers as a YAML catalog"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URL     string `arg:"" help:"Newspaper index URL"`
	JSON    bool   `name:"json" help:"Print editions as a JSON object"`
	Explain bool   `help:"Show redirects and per-strategy counts on stderr"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name string `arg:"" help:"Newspaper name"`
	URL  string `arg:"" help:"Newspaper index URL"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Newspaper name"`
	Force bool   `help:"Confirm deletion"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	Name string `arg:"" help:"Newspaper name"`
}

// DownloadCmd is the "download" subcommand.
type DownloadCmd struct {
	Name        string   `arg:"" help:"Newspaper name"`
	Title       []string `short:"t" help:"Only download editions with this title (repeatable)"`
	Dir         string   `short:"d" default:"." help:"Root directory for downloaded editions"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent download limit"`
	Again       bool     `help:"Download editions that were already downloaded"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File string `arg:"" optional:"" type:"existingfile" help:"Catalog file (defaults to the built-in catalog)"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct{}
