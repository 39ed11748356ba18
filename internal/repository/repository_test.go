package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookgetter/bookstore/internal/models"
	"github.com/bookgetter/bookstore/internal/store"
)

type testRepos struct {
	Books  *BookRepository
	Users  *UserRepository
	Carts  *CartRepository
	Orders *OrderRepository
}

func newTestRepos(t *testing.T) *testRepos {
	t.Helper()
	backend, err := store.NewFileBackend(t.TempDir())
	require.NoError(t, err)

	books := NewBookRepository(backend)
	return &testRepos{
		Books:  books,
		Users:  NewUserRepository(backend),
		Carts:  NewCartRepository(backend, books),
		Orders: NewOrderRepository(backend, books),
	}
}

func testBook(title, author string, price float64, stock int) models.Book {
	return models.NewBook(title, author, "978-0000000000", price, "fiction", "a test book", "images/books/test.jpg", stock)
}
