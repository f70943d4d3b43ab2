package services

import (
	"testing"

	"github.com/jjudge-oj/todoapi/internal/store"
	"github.com/jjudge-oj/todoapi/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookServiceCreateIgnoresRequestID(t *testing.T) {
	svc := NewBookService(store.NewBookStore(store.DefaultBooks()))

	id := 1
	book := svc.Create(types.BookRequest{ID: &id, Title: "New Book", Author: "Someone", Description: "Short text", Rating: 5, PublishedDate: 2025})
	assert.Equal(t, 7, book.ID)

	got, err := svc.Get(7)
	require.NoError(t, err)
	assert.Equal(t, book, got)

	first, err := svc.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Computer Science Pro", first.Title)
}

func TestBookServiceUpdate(t *testing.T) {
	svc := NewBookService(store.NewBookStore(store.DefaultBooks()))

	assert.ErrorIs(t, svc.Update(types.BookRequest{Title: "no id"}), store.ErrNotFound)

	missing := 42
	assert.ErrorIs(t, svc.Update(types.BookRequest{ID: &missing, Title: "x"}), store.ErrNotFound)

	id := 4
	require.NoError(t, svc.Update(types.BookRequest{ID: &id, Title: "HP1 revised", Author: "Author 1", Description: "Updated", Rating: 4, PublishedDate: 2004}))

	book, err := svc.Get(4)
	require.NoError(t, err)
	assert.Equal(t, types.Book{ID: 4, Title: "HP1 revised", Author: "Author 1", Description: "Updated", Rating: 4, PublishedDate: 2004}, book)
	assert.Len(t, svc.ByRating(4), 1)
	assert.Len(t, svc.ByPublishedDate(2004), 1)
}

func TestBookServiceDelete(t *testing.T) {
	svc := NewBookService(store.NewBookStore(store.DefaultBooks()))

	require.NoError(t, svc.Delete(6))
	assert.Len(t, svc.List(), 5)
	assert.ErrorIs(t, svc.Delete(6), store.ErrNotFound)
}
