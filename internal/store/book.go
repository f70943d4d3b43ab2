package store

import (
	"sync"

	"github.com/jjudge-oj/todoapi/types"
)

// BookStore is an in-memory, process-local books catalogue. Lookups are
// linear scans in insertion order.
type BookStore struct {
	mu    sync.RWMutex
	books []types.Book
}

// NewBookStore returns a store holding a copy of seed.
func NewBookStore(seed []types.Book) *BookStore {
	books := make([]types.Book, len(seed))
	copy(books, seed)
	return &BookStore{books: books}
}

// DefaultBooks is the catalogue the server starts with.
func DefaultBooks() []types.Book {
	return []types.Book{
		{ID: 1, Title: "Computer Science Pro", Author: "codingwithroby", Description: "A very nice book!", Rating: 5, PublishedDate: 2000},
		{ID: 2, Title: "Be Fast with FastAPI", Author: "codingwithroby", Description: "A great book!", Rating: 5, PublishedDate: 2001},
		{ID: 3, Title: "Master Endpoints", Author: "codingwithroby", Description: "A awesome book!", Rating: 5, PublishedDate: 2002},
		{ID: 4, Title: "HP1", Author: "Author 1", Description: "Book Description", Rating: 2, PublishedDate: 2003},
		{ID: 5, Title: "HP2", Author: "Author 2", Description: "Book Description", Rating: 3, PublishedDate: 2000},
		{ID: 6, Title: "HP3", Author: "Author 3", Description: "Book Description", Rating: 1, PublishedDate: 2000},
	}
}

func (s *BookStore) List() []types.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]types.Book, len(s.books))
	copy(books, s.books)
	return books
}

func (s *BookStore) FindByID(id int) (types.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, book := range s.books {
		if book.ID == id {
			return book, nil
		}
	}
	return types.Book{}, ErrNotFound
}

func (s *BookStore) FilterByRating(rating int) []types.Book {
	return s.filter(func(book types.Book) bool { return book.Rating == rating })
}

func (s *BookStore) FilterByPublishedDate(year int) []types.Book {
	return s.filter(func(book types.Book) bool { return book.PublishedDate == year })
}

// Create assigns the book an id one greater than the last book's id (1 for
// an empty store) and appends it. Ids are not gap-safe: deleting the last
// book and creating another reuses its id.
func (s *BookStore) Create(book types.Book) types.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	book.ID = 1
	if n := len(s.books); n > 0 {
		book.ID = s.books[n-1].ID + 1
	}
	s.books = append(s.books, book)
	return book
}

// Update replaces the first book whose id matches book.ID.
func (s *BookStore) Update(book types.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if s.books[i].ID == book.ID {
			s.books[i] = book
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes the first book with the given id.
func (s *BookStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, book := range s.books {
		if book.ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *BookStore) filter(match func(types.Book) bool) []types.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]types.Book, 0)
	for _, book := range s.books {
		if match(book) {
			books = append(books, book)
		}
	}
	return books
}
