package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBookAddAndGet(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	added, err := r.Books.Add(ctx, testBook("The Go Programming Language", "Donovan", 39.99, 10))
	require.NoError(t, err)
	require.NotEmpty(t, added.ID)
	require.NotZero(t, added.CreatedAt)

	got, err := r.Books.GetByID(ctx, added.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, *added, *got)

	missing, err := r.Books.GetByID(ctx, "no-such-id")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestBookSearchCaseInsensitive(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	_, err := r.Books.Add(ctx, testBook("Dune", "Frank Herbert", 12.50, 5))
	require.NoError(t, err)
	_, err = r.Books.Add(ctx, testBook("Foundation", "Isaac Asimov", 11.00, 3))
	require.NoError(t, err)

	byTitle, err := r.Books.Search(ctx, "dUnE")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	require.Equal(t, "Dune", byTitle[0].Title)

	byAuthor, err := r.Books.Search(ctx, "asimov")
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	require.Equal(t, "Foundation", byAuthor[0].Title)

	byCategory, err := r.Books.Search(ctx, "FICTION")
	require.NoError(t, err)
	require.Len(t, byCategory, 2)

	none, err := r.Books.Search(ctx, "cookbook")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestBookGetByCategory(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	book := testBook("Dune", "Frank Herbert", 12.50, 5)
	book.Category = "Science Fiction"
	_, err := r.Books.Add(ctx, book)
	require.NoError(t, err)

	found, err := r.Books.GetByCategory(ctx, "science fiction")
	require.NoError(t, err)
	require.Len(t, found, 1)

	// substring is not enough for the category filter
	none, err := r.Books.GetByCategory(ctx, "science")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestBookUpdate(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	added, err := r.Books.Add(ctx, testBook("Dune", "Frank Herbert", 12.50, 5))
	require.NoError(t, err)

	updated := *added
	updated.Price = 15.00
	got, err := r.Books.Update(ctx, updated)
	require.NoError(t, err)
	require.Equal(t, 15.00, got.Price)

	reloaded, err := r.Books.GetByID(ctx, added.ID)
	require.NoError(t, err)
	require.Equal(t, 15.00, reloaded.Price)

	ghost := testBook("Ghost", "Nobody", 1, 1)
	_, err = r.Books.Update(ctx, ghost)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBookDeleteIsIdempotent(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	added, err := r.Books.Add(ctx, testBook("Dune", "Frank Herbert", 12.50, 5))
	require.NoError(t, err)
	_, err = r.Books.Add(ctx, testBook("Foundation", "Isaac Asimov", 11.00, 3))
	require.NoError(t, err)

	require.NoError(t, r.Books.Delete(ctx, added.ID))
	all, err := r.Books.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	// second delete of the same id is a no-op, not an error
	require.NoError(t, r.Books.Delete(ctx, added.ID))
	all, err = r.Books.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestBookAdjustStock(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	added, err := r.Books.Add(ctx, testBook("Dune", "Frank Herbert", 12.50, 10))
	require.NoError(t, err)

	require.NoError(t, r.Books.AdjustStock(ctx, added.ID, 3))
	got, err := r.Books.GetByID(ctx, added.ID)
	require.NoError(t, err)
	require.Equal(t, 7, got.Stock)

	// no floor at zero
	require.NoError(t, r.Books.AdjustStock(ctx, added.ID, 9))
	got, err = r.Books.GetByID(ctx, added.ID)
	require.NoError(t, err)
	require.Equal(t, -2, got.Stock)

	// unknown id is a silent no-op
	require.NoError(t, r.Books.AdjustStock(ctx, "no-such-id", 1))
}
