// Command example shows programmatic use of the allocation engine:
// build the ledger and repositories, register institutions, submit
// requests, and run passes with different strategies.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mkandula/bookdist/pkg/application/services/allocation"
	"github.com/mkandula/bookdist/pkg/application/services/reporting"
	"github.com/mkandula/bookdist/pkg/domain/entities"
	"github.com/mkandula/bookdist/pkg/infrastructure/repositories/memory"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ledger := memory.NewStockLedger(logger)
	catalog := memory.NewCatalogRepository()
	institutions := memory.NewInstitutionRepository()

	book, err := entities.NewBook(
		"978-0-13-468599-1", "Physics XII", "H. Verma",
		entities.Science, 2020, "National Press", decimal.NewFromInt(320),
	)
	if err != nil {
		log.Fatal(err)
	}
	if err := catalog.AddBook(book); err != nil {
		log.Fatal(err)
	}
	if err := ledger.Add(book.ISBN, 100); err != nil {
		log.Fatal(err)
	}

	school, err := entities.NewInstitution("SCH-1", "Hill Valley School", entities.HighSchool, "Shimla", 600)
	if err != nil {
		log.Fatal(err)
	}
	college, err := entities.NewInstitution("COL-1", "River College", entities.College, "Patna", 450)
	if err != nil {
		log.Fatal(err)
	}
	for _, institution := range []*entities.Institution{school, college} {
		if err := institutions.Register(institution); err != nil {
			log.Fatal(err)
		}
	}

	coordinator, err := allocation.NewCoordinator(
		allocation.NewProportionalNeed(), ledger, institutions,
		allocation.WithLogger(logger),
	)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := coordinator.SubmitRequest(school.ID, book.ISBN, 100, entities.High); err != nil {
		log.Fatal(err)
	}
	if _, err := coordinator.SubmitRequest(college.ID, book.ISBN, 300, entities.Medium); err != nil {
		log.Fatal(err)
	}

	result, err := coordinator.RunPass(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("pass with %s: %d units allocated in %d moves\n",
		result.Strategy, result.AllocatedUnits, result.Moves)

	reporter, err := reporting.NewService(ledger, catalog, institutions)
	if err != nil {
		log.Fatal(err)
	}
	for _, report := range reporter.InstitutionReports() {
		fmt.Printf("%s received %d units\n", report.Name, report.TotalReceived)
	}
	fmt.Printf("remaining stock: %d\n", ledger.AvailableQuantity(book.ISBN))
}
