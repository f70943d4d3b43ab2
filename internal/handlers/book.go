package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jjudge-oj/todoapi/internal/services"
	"github.com/jjudge-oj/todoapi/internal/store"
	"github.com/jjudge-oj/todoapi/types"
)

const (
	detailBookNotFound = "Book not found"
	bookIDParam        = "book_id"
	minRating          = 1
	maxRating          = 5
	minPublishedYear   = 1900
	maxPublishedYear   = 2100
)

// BookHandler serves the in-memory books catalogue.
type BookHandler struct {
	bookService *services.BookService
}

func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// BookRouter registers the books routes. "/books" and "/books/" are
// distinct endpoints, so they are registered on the parent router.
func BookRouter(r chi.Router, bookService *services.BookService) {
	handler := NewBookHandler(bookService)

	r.Get("/books", handler.ListBooks)
	r.Get("/books/", handler.BooksByRating)
	r.Get("/books/published_date/", handler.BooksByPublishedDate)
	r.Get("/books/{book_id}", handler.GetBook)
	r.Post("/create-book", handler.CreateBook)
	r.Put("/books/id", handler.UpdateBook)
	r.Delete("/books/{book_id}", handler.DeleteBook)
}

func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.bookService.List())
}

func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := bookIDFromPath(w, r)
	if !ok {
		return
	}

	book, err := h.bookService.Get(id)
	if err != nil {
		writeBookError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) BooksByRating(w http.ResponseWriter, r *http.Request) {
	rating, ok := boundedQueryInt(w, r, "bookRating", minRating, maxRating)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.bookService.ByRating(rating))
}

func (h *BookHandler) BooksByPublishedDate(w http.ResponseWriter, r *http.Request) {
	year, ok := boundedQueryInt(w, r, "published_date", minPublishedYear, maxPublishedYear)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.bookService.ByPublishedDate(year))
}

func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBookRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, h.bookService.Create(req))
}

func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBookRequest(w, r)
	if !ok {
		return
	}
	if err := h.bookService.Update(req); err != nil {
		writeBookError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := bookIDFromPath(w, r)
	if !ok {
		return
	}
	if err := h.bookService.Delete(id); err != nil {
		writeBookError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeBookError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, detailBookNotFound)
		return
	}
	writeError(w, http.StatusInternalServerError, "Failed to process book")
}

func bookIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := parsePathID(r, bookIDParam)
	if !ok {
		writeValidationError(w, invalidInput("path", bookIDParam, "Input should be greater than 0", "greater_than"))
		return 0, false
	}
	return id, true
}

func boundedQueryInt(w http.ResponseWriter, r *http.Request, name string, lo, hi int) (int, bool) {
	if !r.URL.Query().Has(name) {
		writeValidationError(w, invalidInput("query", name, "Field required", "missing"))
		return 0, false
	}
	value, ok := parseQueryInt(r, name)
	if !ok {
		writeValidationError(w, invalidInput("query", name,
			"Input should be a valid integer, unable to parse string as an integer", "int_parsing"))
		return 0, false
	}
	if value < lo || value > hi {
		writeValidationError(w, invalidInput("query", name,
			fmt.Sprintf("Input should be between %d and %d", lo, hi), "value_error"))
		return 0, false
	}
	return value, true
}

func decodeBookRequest(w http.ResponseWriter, r *http.Request) (types.BookRequest, bool) {
	var req types.BookRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeValidationError(w, invalidJSON(err))
		return req, false
	}
	if issues := validateBody(req); issues != nil {
		writeValidationError(w, issues...)
		return req, false
	}
	return req, true
}
