package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mkandula/bookdist/pkg/domain/entities"
	"github.com/mkandula/bookdist/pkg/domain/repositories"
)

// CatalogRepository provides in-memory book metadata storage with a
// category index for lookups.
type CatalogRepository struct {
	mu            sync.RWMutex
	books         map[string]*entities.Book
	categoryIndex map[entities.Category][]string
}

// NewCatalogRepository creates a new in-memory catalog repository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		books:         make(map[string]*entities.Book),
		categoryIndex: make(map[entities.Category][]string),
	}
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// AddBook registers a catalog entry. Each ISBN gets exactly one entry;
// re-adding an existing ISBN fails.
func (r *CatalogRepository) AddBook(book *entities.Book) error {
	if book == nil {
		return fmt.Errorf("book cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.books[book.ISBN]; exists {
		return fmt.Errorf("catalog entry already exists for ISBN %s", book.ISBN)
	}

	r.books[book.ISBN] = book
	r.categoryIndex[book.Category] = append(r.categoryIndex[book.Category], book.ISBN)
	return nil
}

// GetBook returns the catalog entry for an ISBN.
func (r *CatalogRepository) GetBook(isbn string) (*entities.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, exists := r.books[isbn]
	if !exists {
		return nil, fmt.Errorf("book %q: %w", isbn, repositories.ErrNotFound)
	}
	return book, nil
}

// AllBooks returns all catalog entries ordered by ISBN.
func (r *CatalogRepository) AllBooks() []*entities.Book {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]*entities.Book, 0, len(r.books))
	for _, book := range r.books {
		books = append(books, book)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ISBN < books[j].ISBN })
	return books
}

// SearchByTitle returns entries whose title contains the keyword, case-insensitively.
func (r *CatalogRepository) SearchByTitle(keyword string) []*entities.Book {
	return r.search(func(b *entities.Book) string { return b.Title }, keyword)
}

// SearchByAuthor returns entries whose author contains the keyword, case-insensitively.
func (r *CatalogRepository) SearchByAuthor(keyword string) []*entities.Book {
	return r.search(func(b *entities.Book) string { return b.Author }, keyword)
}

func (r *CatalogRepository) search(field func(*entities.Book) string, keyword string) []*entities.Book {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(keyword)
	var results []*entities.Book
	for _, book := range r.books {
		if strings.Contains(strings.ToLower(field(book)), needle) {
			results = append(results, book)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ISBN < results[j].ISBN })
	return results
}

// BooksByCategory returns entries in a category, ordered by insertion.
func (r *CatalogRepository) BooksByCategory(category entities.Category) []*entities.Book {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []*entities.Book
	for _, isbn := range r.categoryIndex[category] {
		if book, exists := r.books[isbn]; exists {
			results = append(results, book)
		}
	}
	return results
}
