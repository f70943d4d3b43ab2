package services

import (
	"github.com/jjudge-oj/todoapi/internal/store"
	"github.com/jjudge-oj/todoapi/types"
)

// BookRepository defines the operations of the books catalogue.
type BookRepository interface {
	List() []types.Book
	FindByID(id int) (types.Book, error)
	FilterByRating(rating int) []types.Book
	FilterByPublishedDate(year int) []types.Book
	Create(book types.Book) types.Book
	Update(book types.Book) error
	Delete(id int) error
}

// BookService encapsulates book use-cases.
type BookService struct {
	repo BookRepository
}

func NewBookService(repo BookRepository) *BookService {
	return &BookService{repo: repo}
}

func (s *BookService) List() []types.Book {
	return s.repo.List()
}

func (s *BookService) Get(id int) (types.Book, error) {
	return s.repo.FindByID(id)
}

func (s *BookService) ByRating(rating int) []types.Book {
	return s.repo.FilterByRating(rating)
}

func (s *BookService) ByPublishedDate(year int) []types.Book {
	return s.repo.FilterByPublishedDate(year)
}

// Create ignores any id in the request; the store assigns one.
func (s *BookService) Create(req types.BookRequest) types.Book {
	return s.repo.Create(bookFromRequest(0, req))
}

// Update replaces the book named by req.ID. A request without an id can
// never match and yields store.ErrNotFound.
func (s *BookService) Update(req types.BookRequest) error {
	if req.ID == nil {
		return store.ErrNotFound
	}
	return s.repo.Update(bookFromRequest(*req.ID, req))
}

func (s *BookService) Delete(id int) error {
	return s.repo.Delete(id)
}

func bookFromRequest(id int, req types.BookRequest) types.Book {
	return types.Book{
		ID:            id,
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Rating:        req.Rating,
		PublishedDate: req.PublishedDate,
	}
}
