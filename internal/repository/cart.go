package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bookgetter/bookstore/internal/models"
	"github.com/bookgetter/bookstore/internal/store"
)

// CartRepository owns the carts collection. Each user has at most one cart,
// maintained by find-or-create. Book data is reached only through the book
// repository's public operations; the cart lock is always taken before any
// book lock.
type CartRepository struct {
	mu    sync.Mutex
	col   *store.Collection[models.Cart]
	books *BookRepository
}

func NewCartRepository(backend store.Backend, books *BookRepository) *CartRepository {
	return &CartRepository{
		col:   store.NewCollection[models.Cart](backend, "carts"),
		books: books,
	}
}

// GetOrCreate returns the user's cart, creating and persisting an empty one
// on first access. The returned cart is always stock-enriched.
func (r *CartRepository) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	carts, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := findCart(carts, userID)
	if idx < 0 {
		carts = append(carts, models.NewCart(userID))
		if err := r.col.Save(ctx, carts); err != nil {
			return nil, err
		}
		idx = len(carts) - 1
	}
	cart := carts[idx]
	if err := r.enrich(ctx, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem merges quantity into an existing item for the same book, or appends
// a new item snapshotting the book's current title, author, price and image.
func (r *CartRepository) AddItem(ctx context.Context, userID string, book models.Book, quantity int) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	carts, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := findCart(carts, userID)
	if idx < 0 {
		carts = append(carts, models.NewCart(userID))
		idx = len(carts) - 1
	}

	cart := &carts[idx]
	merged := false
	for i := range cart.Items {
		if cart.Items[i].BookID == book.ID {
			cart.Items[i].Quantity += quantity
			cart.Items[i].AvailableStock = book.Stock
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			BookID:         book.ID,
			BookTitle:      book.Title,
			BookAuthor:     book.Author,
			Price:          book.Price,
			Quantity:       quantity,
			ImageURL:       book.ImageURL,
			AvailableStock: book.Stock,
		})
	}
	cart.UpdatedAt = time.Now().UnixMilli()

	if err := r.col.Save(ctx, carts); err != nil {
		return nil, err
	}
	out := *cart
	if err := r.enrich(ctx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetQuantity sets the quantity of the cart item for bookID, removing the
// item when quantity is zero or negative. The quantity is not validated
// against live stock; callers check sufficiency before calling.
func (r *CartRepository) SetQuantity(ctx context.Context, userID, bookID string, quantity int) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	carts, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := findCart(carts, userID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: cart for user %s", ErrNotFound, userID)
	}

	cart := &carts[idx]
	if quantity <= 0 {
		kept := cart.Items[:0]
		for _, item := range cart.Items {
			if item.BookID != bookID {
				kept = append(kept, item)
			}
		}
		cart.Items = kept
	} else {
		for i := range cart.Items {
			if cart.Items[i].BookID == bookID {
				cart.Items[i].Quantity = quantity
				break
			}
		}
	}
	cart.UpdatedAt = time.Now().UnixMilli()

	if err := r.col.Save(ctx, carts); err != nil {
		return nil, err
	}
	out := *cart
	if err := r.enrich(ctx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Clear empties the user's cart. A user without a cart is a no-op.
func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	carts, err := r.col.Load(ctx)
	if err != nil {
		return err
	}
	idx := findCart(carts, userID)
	if idx < 0 {
		return nil
	}
	carts[idx].Items = []models.CartItem{}
	carts[idx].UpdatedAt = time.Now().UnixMilli()
	return r.col.Save(ctx, carts)
}

// enrich overwrites each item's AvailableStock with the book's live stock.
// Snapshot fields stay as taken at add time.
func (r *CartRepository) enrich(ctx context.Context, cart *models.Cart) error {
	for i := range cart.Items {
		book, err := r.books.GetByID(ctx, cart.Items[i].BookID)
		if err != nil {
			return err
		}
		if book != nil {
			cart.Items[i].AvailableStock = book.Stock
		}
	}
	return nil
}

func findCart(carts []models.Cart, userID string) int {
	for i := range carts {
		if carts[i].UserID == userID {
			return i
		}
	}
	return -1
}
