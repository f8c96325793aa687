package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/mkandula/bookdist/pkg/domain/entities"
	"github.com/mkandula/bookdist/pkg/domain/repositories"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Summary aggregates request outcomes across all institutions.
type Summary struct {
	TotalRequests      int     `json:"total_requests"`
	Fulfilled          int     `json:"fulfilled"`
	PartiallyFulfilled int     `json:"partially_fulfilled"`
	Pending            int     `json:"pending"`
	Approved           int     `json:"approved"`
	Rejected           int     `json:"rejected"`
	FulfillmentRate    float64 `json:"fulfillment_rate"`
	TotalStock         int     `json:"total_stock"`
}

// InstitutionReport summarizes one institution's requests and receipts.
type InstitutionReport struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Type               string `json:"type"`
	Location           string `json:"location"`
	StudentCount       int    `json:"student_count"`
	TotalRequests      int    `json:"total_requests"`
	Fulfilled          int    `json:"fulfilled"`
	PartiallyFulfilled int    `json:"partially_fulfilled"`
	Pending            int    `json:"pending"`
	TotalReceived      int    `json:"total_received"`
}

// Service produces reports over ledger, catalog and institution state.
// It is pull-only: nothing here mutates core state.
type Service struct {
	ledger       repositories.StockLedger
	catalog      repositories.CatalogRepository
	institutions repositories.InstitutionRepository
}

// NewService creates a reporting service.
func NewService(ledger repositories.StockLedger, catalog repositories.CatalogRepository, institutions repositories.InstitutionRepository) (*Service, error) {
	if ledger == nil {
		return nil, fmt.Errorf("ledger cannot be nil")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}
	if institutions == nil {
		return nil, fmt.Errorf("institution repository cannot be nil")
	}
	return &Service{ledger: ledger, catalog: catalog, institutions: institutions}, nil
}

// Summary aggregates request outcomes across all institutions.
func (s *Service) Summary() Summary {
	summary := Summary{TotalStock: s.ledger.TotalStock()}

	for _, institution := range s.institutions.List() {
		for _, req := range institution.Requests() {
			summary.TotalRequests++
			switch req.Status() {
			case entities.Fulfilled:
				summary.Fulfilled++
			case entities.PartiallyFulfilled:
				summary.PartiallyFulfilled++
			case entities.Pending:
				summary.Pending++
			case entities.Approved:
				summary.Approved++
			case entities.Rejected:
				summary.Rejected++
			}
		}
	}

	if summary.TotalRequests > 0 {
		summary.FulfillmentRate = float64(summary.Fulfilled) / float64(summary.TotalRequests)
	}
	return summary
}

// InstitutionReports summarizes every registered institution, ordered by ID.
func (s *Service) InstitutionReports() []InstitutionReport {
	var reports []InstitutionReport
	for _, institution := range s.institutions.List() {
		report := InstitutionReport{
			ID:            institution.ID,
			Name:          institution.Name,
			Type:          institution.Type.String(),
			Location:      institution.Location,
			StudentCount:  institution.StudentCount,
			TotalReceived: institution.TotalReceived(),
		}
		for _, req := range institution.Requests() {
			report.TotalRequests++
			switch req.Status() {
			case entities.Fulfilled:
				report.Fulfilled++
			case entities.PartiallyFulfilled:
				report.PartiallyFulfilled++
			case entities.Pending:
				report.Pending++
			}
		}
		reports = append(reports, report)
	}
	return reports
}

// TransactionLog returns the most recent ledger transactions, newest
// first, capped at limit (0 means no cap).
func (s *Service) TransactionLog(limit int) []entities.TransactionRecord {
	history := s.ledger.TransactionHistory()

	reversed := make([]entities.TransactionRecord, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		reversed = append(reversed, history[i])
		if limit > 0 && len(reversed) == limit {
			break
		}
	}
	return reversed
}

// WriteInventoryCSV writes the catalog with current availability.
func (s *Service) WriteInventoryCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"isbn", "title", "author", "category", "year", "publisher", "price", "available"}); err != nil {
		return fmt.Errorf("write inventory header: %w", err)
	}

	available := s.ledger.Snapshot()
	for _, book := range s.catalog.AllBooks() {
		record := []string{
			book.ISBN,
			book.Title,
			book.Author,
			book.Category.String(),
			strconv.Itoa(book.PublicationYear),
			book.Publisher,
			book.Price.String(),
			strconv.Itoa(available[book.ISBN]),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write inventory row for %s: %w", book.ISBN, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteDistributionCSV writes per-institution request outcomes.
func (s *Service) WriteDistributionCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{"institution_id", "name", "type", "location", "students", "total_requests", "fulfilled", "partially_fulfilled", "pending", "total_received"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write distribution header: %w", err)
	}

	for _, report := range s.InstitutionReports() {
		record := []string{
			report.ID,
			report.Name,
			report.Type,
			report.Location,
			strconv.Itoa(report.StudentCount),
			strconv.Itoa(report.TotalRequests),
			strconv.Itoa(report.Fulfilled),
			strconv.Itoa(report.PartiallyFulfilled),
			strconv.Itoa(report.Pending),
			strconv.Itoa(report.TotalReceived),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write distribution row for %s: %w", report.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSummaryJSON writes the overall summary and institution reports as JSON.
func (s *Service) WriteSummaryJSON(w io.Writer) error {
	payload := struct {
		Summary      Summary             `json:"summary"`
		Institutions []InstitutionReport `json:"institutions"`
	}{
		Summary:      s.Summary(),
		Institutions: s.InstitutionReports(),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}
