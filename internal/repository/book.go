package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bookgetter/bookstore/internal/models"
	"github.com/bookgetter/bookstore/internal/store"
)

// BookRepository is the sole owner of the books collection and the source of
// truth for price and stock. Every mutation is a full load-mutate-save cycle
// serialized by mu.
type BookRepository struct {
	mu  sync.Mutex
	col *store.Collection[models.Book]
}

func NewBookRepository(backend store.Backend) *BookRepository {
	return &BookRepository{col: store.NewCollection[models.Book](backend, "books")}
}

func (r *BookRepository) GetAll(ctx context.Context) ([]models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.col.Load(ctx)
}

func (r *BookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	books, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range books {
		if books[i].ID == id {
			return &books[i], nil
		}
	}
	return nil, nil
}

// Search matches the query as a case-insensitive substring of title, author
// or category.
func (r *BookRepository) Search(ctx context.Context, query string) ([]models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	books, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	matched := []models.Book{}
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) ||
			strings.Contains(strings.ToLower(b.Category), q) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func (r *BookRepository) GetByCategory(ctx context.Context, category string) ([]models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	books, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.Book{}
	for _, b := range books {
		if strings.EqualFold(b.Category, category) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func (r *BookRepository) Add(ctx context.Context, book models.Book) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	books, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	books = append(books, book)
	if err := r.col.Save(ctx, books); err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *BookRepository) Update(ctx context.Context, book models.Book) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	books, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range books {
		if books[i].ID == book.ID {
			books[i] = book
			if err := r.col.Save(ctx, books); err != nil {
				return nil, err
			}
			return &book, nil
		}
	}
	return nil, fmt.Errorf("%w: book %s", ErrNotFound, book.ID)
}

// Delete removes the book with the given id. Deleting an absent id is not an
// error; the collection is rewritten either way.
func (r *BookRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	books, err := r.col.Load(ctx)
	if err != nil {
		return err
	}
	kept := books[:0]
	for _, b := range books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	return r.col.Save(ctx, kept)
}

// AdjustStock subtracts quantity from the book's stock. Unknown ids are a
// silent no-op and the result is not clamped at zero; callers are trusted to
// have checked sufficiency beforehand.
func (r *BookRepository) AdjustStock(ctx context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	books, err := r.col.Load(ctx)
	if err != nil {
		return err
	}
	for i := range books {
		if books[i].ID == id {
			books[i].Stock -= quantity
			return r.col.Save(ctx, books)
		}
	}
	return nil
}
