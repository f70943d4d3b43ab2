package store

import (
	"sync"
	"testing"

	"github.com/jjudge-oj/todoapi/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookStoreFilters(t *testing.T) {
	books := NewBookStore(DefaultBooks())

	assert.Len(t, books.List(), 6)

	book, err := books.FindByID(4)
	require.NoError(t, err)
	assert.Equal(t, "HP1", book.Title)

	_, err = books.FindByID(99)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Len(t, books.FilterByRating(5), 3)
	assert.Empty(t, books.FilterByRating(4))

	byYear := books.FilterByPublishedDate(2000)
	require.Len(t, byYear, 3)
	assert.Equal(t, []int{1, 5, 6}, []int{byYear[0].ID, byYear[1].ID, byYear[2].ID})
}

func TestBookStoreCreateUsesLastID(t *testing.T) {
	books := NewBookStore(nil)

	first := books.Create(types.Book{Title: "first"})
	assert.Equal(t, 1, first.ID)
	second := books.Create(types.Book{ID: 77, Title: "second"})
	assert.Equal(t, 2, second.ID)

	// Ids derive from the last element, so removing it frees the id again.
	require.NoError(t, books.Delete(second.ID))
	third := books.Create(types.Book{Title: "third"})
	assert.Equal(t, 2, third.ID)

	// Removing an earlier element does not.
	require.NoError(t, books.Delete(first.ID))
	fourth := books.Create(types.Book{Title: "fourth"})
	assert.Equal(t, 3, fourth.ID)
}

func TestBookStoreUpdateReplacesFirstMatchOnly(t *testing.T) {
	books := NewBookStore([]types.Book{
		{ID: 1, Title: "a"},
		{ID: 1, Title: "duplicate"},
	})

	require.NoError(t, books.Update(types.Book{ID: 1, Title: "updated"}))

	list := books.List()
	assert.Equal(t, "updated", list[0].Title)
	assert.Equal(t, "duplicate", list[1].Title)

	assert.ErrorIs(t, books.Update(types.Book{ID: 9}), ErrNotFound)
}

func TestBookStoreDelete(t *testing.T) {
	books := NewBookStore(DefaultBooks())

	require.NoError(t, books.Delete(3))
	assert.Len(t, books.List(), 5)
	assert.ErrorIs(t, books.Delete(3), ErrNotFound)
}

func TestBookStoreListReturnsCopy(t *testing.T) {
	books := NewBookStore(DefaultBooks())

	list := books.List()
	list[0].Title = "mutated"

	book, err := books.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Computer Science Pro", book.Title)
}

func TestBookStoreConcurrentCreate(t *testing.T) {
	books := NewBookStore(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			books.Create(types.Book{Title: "concurrent"})
		}()
	}
	wg.Wait()

	list := books.List()
	require.Len(t, list, 50)
	for i, book := range list {
		assert.Equal(t, i+1, book.ID)
	}
}
