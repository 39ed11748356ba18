package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/bookgetter/bookstore/internal/logging"
	"github.com/bookgetter/bookstore/internal/models"
	"github.com/bookgetter/bookstore/internal/store"
)

// OrderRepository owns the orders collection. Orders are immutable after
// creation except for their status. Stock effects go through the book
// repository's public API; the order lock is always taken before the book
// lock, never the other way around.
type OrderRepository struct {
	mu    sync.Mutex
	col   *store.Collection[models.Order]
	books *BookRepository
}

func NewOrderRepository(backend store.Backend, books *BookRepository) *OrderRepository {
	return &OrderRepository{
		col:   store.NewCollection[models.Order](backend, "orders"),
		books: books,
	}
}

// Create appends a new pending order and then decrements book stock once per
// item. The whole sequence runs under the order lock so the order and its
// stock effects are never observably interleaved with another checkout. The
// order save and the per-book saves are still separate writes: if a decrement
// fails the order already exists, and the error surfaces to the caller as a
// needs-reconciliation state rather than a rollback.
func (r *OrderRepository) Create(ctx context.Context, userID string, items []models.OrderItem, totalAmount float64, shippingAddress, phone string) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	for _, item := range items {
		if item.BookID == "" {
			return nil, fmt.Errorf("%w: bookId required", ErrValidation)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	orders, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	order := models.NewOrder(userID, items, totalAmount, shippingAddress, phone)
	orders = append(orders, order)
	if err := r.col.Save(ctx, orders); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := r.books.AdjustStock(ctx, item.BookID, item.Quantity); err != nil {
			logging.FromContext(ctx).Error("stock adjustment failed after order save",
				"order_id", order.ID, "book_id", item.BookID, "error", err)
			return &order, fmt.Errorf("order %s saved but stock adjustment failed: %w", order.ID, err)
		}
	}
	return &order, nil
}

func (r *OrderRepository) GetByUser(ctx context.Context, userID string) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.Order{}
	for _, o := range orders {
		if o.UserID == userID {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, nil
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.col.Load(ctx)
}

// UpdateStatus overwrites the order's status with the given string. There is
// no transition table; any status is accepted.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			orders[i].Status = status
			if err := r.col.Save(ctx, orders); err != nil {
				return nil, err
			}
			o := orders[i]
			return &o, nil
		}
	}
	return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
}
