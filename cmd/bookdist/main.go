package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mkandula/bookdist/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing books.csv, institutions.csv, requests.csv",
		)
		booksFile        = flag.String("books", "", "Path to books CSV file")
		institutionsFile = flag.String("institutions", "", "Path to institutions CSV file")
		requestsFile     = flag.String("requests", "", "Path to requests CSV file")
		strategy         = flag.String("strategy", "priority", "Allocation strategy: priority, proportional, equal")
		passes           = flag.Int("passes", 1, "Number of allocation passes to run")
		format           = flag.String("format", "text", "Output format: text, json, csv")
		outputDir        = flag.String("output", "", "Output directory for CSV reports (optional)")
		verbose          = flag.Bool("verbose", false, "Enable verbose output")
		debug            = flag.Bool("debug", false, "Enable debug logging")
		help             = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	logger, err := buildLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	config := commands.Config{
		ScenarioDir:      *scenarioDir,
		BooksFile:        *booksFile,
		InstitutionsFile: *institutionsFile,
		RequestsFile:     *requestsFile,
		Strategy:         *strategy,
		Passes:           *passes,
		Format:           *format,
		OutputDir:        *outputDir,
		Verbose:          *verbose,
		Help:             *help,
	}

	cmd := commands.NewDistributeCommand(config, logger)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildLogger owns the process-wide logger lifecycle; core packages only
// ever receive it as a dependency.
func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
