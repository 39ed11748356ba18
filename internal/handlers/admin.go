package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookgetter/bookstore/internal/models"
	"github.com/bookgetter/bookstore/internal/repository"
)

type AdminHandler struct {
	Books  *repository.BookRepository
	Users  *repository.UserRepository
	Orders *repository.OrderRepository
}

// Dashboard aggregates store-wide stats across all three collections.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.Books.GetAll(ctx)
	if err != nil {
		return toHTTPError(err)
	}
	orders, err := h.Orders.GetAll(ctx)
	if err != nil {
		return toHTTPError(err)
	}
	users, err := h.Users.GetAll(ctx)
	if err != nil {
		return toHTTPError(err)
	}

	var customers, pending int
	var revenue float64
	for _, u := range users {
		if u.Role == models.RoleCustomer {
			customers++
		}
	}
	for _, o := range orders {
		revenue += o.TotalAmount
		if o.Status == models.OrderStatusPending {
			pending++
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"totalBooks":     len(books),
		"totalOrders":    len(orders),
		"totalCustomers": customers,
		"totalRevenue":   revenue,
		"pendingOrders":  pending,
		"totalUsers":     len(users),
	})
}

func (h *AdminHandler) GetUsers(c echo.Context) error {
	users, err := h.Users.GetAll(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, users)
}
