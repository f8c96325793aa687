package repositories

import "github.com/mkandula/bookdist/pkg/domain/entities"

// CatalogRepository provides read access to book metadata. The core never
// mutates catalog data after entry.
type CatalogRepository interface {
	AddBook(book *entities.Book) error
	GetBook(isbn string) (*entities.Book, error)
	AllBooks() []*entities.Book
	SearchByTitle(keyword string) []*entities.Book
	SearchByAuthor(keyword string) []*entities.Book
	BooksByCategory(category entities.Category) []*entities.Book
}
