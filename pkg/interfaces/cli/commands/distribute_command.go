package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mkandula/bookdist/pkg/application/services/allocation"
	"github.com/mkandula/bookdist/pkg/application/services/loans"
	"github.com/mkandula/bookdist/pkg/application/services/reporting"
	"github.com/mkandula/bookdist/pkg/domain/entities"
	"github.com/mkandula/bookdist/pkg/infrastructure/events"
	"github.com/mkandula/bookdist/pkg/infrastructure/metrics"
	"github.com/mkandula/bookdist/pkg/infrastructure/notify"
	csvrepo "github.com/mkandula/bookdist/pkg/infrastructure/repositories/csv"
	"github.com/mkandula/bookdist/pkg/infrastructure/repositories/memory"
)

// Config holds configuration for the distribute command
type Config struct {
	ScenarioDir      string
	BooksFile        string
	InstitutionsFile string
	RequestsFile     string
	Strategy         string
	Passes           int
	Format           string
	OutputDir        string
	Verbose          bool
	Help             bool
}

// DistributeCommand loads a scenario, runs allocation passes, and emits reports
type DistributeCommand struct {
	config Config
	logger *zap.Logger
}

// NewDistributeCommand creates a new distribute command
func NewDistributeCommand(config Config, logger *zap.Logger) *DistributeCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DistributeCommand{config: config, logger: logger}
}

// Execute runs the distribute command
func (c *DistributeCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if c.config.Passes < 1 {
		c.config.Passes = 1
	}

	strategy, err := strategyByName(c.config.Strategy)
	if err != nil {
		return err
	}

	ledger := memory.NewStockLedger(c.logger)
	catalog := memory.NewCatalogRepository()
	institutions := memory.NewInstitutionRepository()
	loanRepo := memory.NewLoanRepository()
	store := events.NewInMemoryStore(c.logger)
	registry := metrics.NewRegistry()
	notifier := notify.NewLoggerNotifier(c.logger)

	loanService, err := loans.NewService(ledger, loanRepo, store, 0, c.logger)
	if err != nil {
		return fmt.Errorf("build loan service: %w", err)
	}

	coordinator, err := allocation.NewCoordinator(strategy, ledger, institutions,
		allocation.WithNotifier(notifier),
		allocation.WithLoanIssuer(loanService),
		allocation.WithEventStore(store),
		allocation.WithMetrics(registry),
		allocation.WithLogger(c.logger),
	)
	if err != nil {
		return fmt.Errorf("build coordinator: %w", err)
	}

	if err := c.loadScenario(ledger, catalog, institutions, coordinator); err != nil {
		return err
	}

	for i := 0; i < c.config.Passes; i++ {
		result, err := coordinator.RunPass(ctx)
		if err != nil {
			return fmt.Errorf("pass %d: %w", i+1, err)
		}
		if c.config.Verbose {
			fmt.Printf("Pass %d (%s): %d moves, %d units allocated, %d requests fulfilled\n",
				i+1, result.Strategy, result.Moves, result.AllocatedUnits, result.NewlyFulfilled)
		}
	}

	reporter, err := reporting.NewService(ledger, catalog, institutions)
	if err != nil {
		return fmt.Errorf("build reporting service: %w", err)
	}
	return c.writeOutput(reporter)
}

// loadScenario fills the repositories either from CSV files or, when no
// files are configured, from a small built-in demo scenario.
func (c *DistributeCommand) loadScenario(
	ledger *memory.StockLedger,
	catalog *memory.CatalogRepository,
	institutions *memory.InstitutionRepository,
	coordinator *allocation.Coordinator,
) error {
	booksFile, institutionsFile, requestsFile := c.resolveInputFiles()
	if booksFile == "" {
		return seedDemoScenario(ledger, catalog, institutions, coordinator)
	}

	loader := csvrepo.NewLoader()

	books, err := loader.LoadBooks(booksFile)
	if err != nil {
		return err
	}
	for _, bs := range books {
		if err := catalog.AddBook(bs.Book); err != nil {
			return err
		}
		if err := ledger.Add(bs.Book.ISBN, bs.Quantity); err != nil {
			return err
		}
	}

	loaded, err := loader.LoadInstitutions(institutionsFile)
	if err != nil {
		return err
	}
	for _, institution := range loaded {
		if err := institutions.Register(institution); err != nil {
			return err
		}
	}

	requests, err := loader.LoadRequests(requestsFile)
	if err != nil {
		return err
	}
	for _, line := range requests {
		if _, err := catalog.GetBook(line.ISBN); err != nil {
			return fmt.Errorf("request for unknown book: %w", err)
		}
		if _, err := coordinator.SubmitRequest(line.InstitutionID, line.ISBN, line.Quantity, line.Priority); err != nil {
			return err
		}
	}
	return nil
}

func (c *DistributeCommand) resolveInputFiles() (books, institutions, requests string) {
	if c.config.ScenarioDir != "" {
		return filepath.Join(c.config.ScenarioDir, "books.csv"),
			filepath.Join(c.config.ScenarioDir, "institutions.csv"),
			filepath.Join(c.config.ScenarioDir, "requests.csv")
	}
	return c.config.BooksFile, c.config.InstitutionsFile, c.config.RequestsFile
}

func (c *DistributeCommand) writeOutput(reporter *reporting.Service) error {
	switch strings.ToLower(c.config.Format) {
	case "", "text":
		summary := reporter.Summary()
		fmt.Printf("Requests: %d total, %d fulfilled, %d partially fulfilled, %d pending\n",
			summary.TotalRequests, summary.Fulfilled, summary.PartiallyFulfilled, summary.Pending)
		fmt.Printf("Fulfillment rate: %.1f%%, remaining stock: %d units\n",
			summary.FulfillmentRate*100, summary.TotalStock)
		for _, report := range reporter.InstitutionReports() {
			fmt.Printf("  %s (%s): %d requests, %d fulfilled, %d units received\n",
				report.Name, report.ID, report.TotalRequests, report.Fulfilled, report.TotalReceived)
		}
		return nil

	case "json":
		return reporter.WriteSummaryJSON(os.Stdout)

	case "csv":
		outputDir := c.config.OutputDir
		if outputDir == "" {
			outputDir = "."
		}
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := writeFile(filepath.Join(outputDir, "inventory_report.csv"), reporter.WriteInventoryCSV); err != nil {
			return err
		}
		return writeFile(filepath.Join(outputDir, "distribution_report.csv"), reporter.WriteDistributionCSV)

	default:
		return fmt.Errorf("unknown output format: %q", c.config.Format)
	}
}

func writeFile(path string, write func(w io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if err := write(file); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func strategyByName(name string) (allocation.Strategy, error) {
	switch strings.ToLower(name) {
	case "", "priority", "priority-greedy":
		return allocation.NewPriorityGreedy(), nil
	case "proportional", "proportional-need":
		return allocation.NewProportionalNeed(), nil
	case "equal", "equal-split":
		return allocation.NewEqualSplit(), nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q", name)
	}
}

// seedDemoScenario loads a small catalog and two competing institutions.
func seedDemoScenario(
	ledger *memory.StockLedger,
	catalog *memory.CatalogRepository,
	institutions *memory.InstitutionRepository,
	coordinator *allocation.Coordinator,
) error {
	book, err := entities.NewBook(
		"978-0-13-468599-1", "Mathematics X", "R. Sharma",
		entities.Mathematics, 2021, "National Press", decimal.NewFromInt(250),
	)
	if err != nil {
		return err
	}
	if err := catalog.AddBook(book); err != nil {
		return err
	}
	if err := ledger.Add(book.ISBN, 500); err != nil {
		return err
	}

	a, err := entities.NewInstitution("INST-A", "Central High School", entities.HighSchool, "Pune", 1200)
	if err != nil {
		return err
	}
	b, err := entities.NewInstitution("INST-B", "City College", entities.College, "Nagpur", 900)
	if err != nil {
		return err
	}
	for _, institution := range []*entities.Institution{a, b} {
		if err := institutions.Register(institution); err != nil {
			return err
		}
	}

	if _, err := coordinator.SubmitRequest(a.ID, book.ISBN, 300, entities.Critical); err != nil {
		return err
	}
	if _, err := coordinator.SubmitRequest(b.ID, book.ISBN, 250, entities.Medium); err != nil {
		return err
	}
	return nil
}

func (c *DistributeCommand) showHelp() {
	fmt.Println("bookdist - book stock allocation engine")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  bookdist -scenario <dir> [-strategy priority|proportional|equal] [-passes N] [-format text|json|csv]")
	fmt.Println()
	fmt.Println("Scenario directory must contain books.csv, institutions.csv and requests.csv.")
	fmt.Println("Without a scenario, a built-in demo catalog is used.")
}
