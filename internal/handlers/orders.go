package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookgetter/bookstore/internal/events"
	"github.com/bookgetter/bookstore/internal/models"
	"github.com/bookgetter/bookstore/internal/repository"
)

type OrderHandler struct {
	Orders   *repository.OrderRepository
	Carts    *repository.CartRepository
	Producer *events.Producer
}

// Checkout turns the user's cart into an immutable order. Item prices and
// the total are frozen from the cart snapshots; the cart is cleared after
// the order is created.
func (h *OrderHandler) Checkout(c echo.Context) error {
	userID, err := customerOnly(c)
	if err != nil {
		return err
	}

	var req struct {
		ShippingAddress string `json:"shippingAddress"`
		Phone           string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.ShippingAddress == "" || req.Phone == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Shipping address and phone are required")
	}

	ctx := c.Request().Context()
	cart, err := h.Carts.GetOrCreate(ctx, userID)
	if err != nil {
		return toHTTPError(err)
	}
	if len(cart.Items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Cart is empty")
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, ci := range cart.Items {
		items = append(items, models.NewOrderItem(ci.BookID, ci.BookTitle, ci.BookAuthor, ci.Price, ci.Quantity))
	}

	order, err := h.Orders.Create(ctx, userID, items, cart.TotalAmount(), req.ShippingAddress, req.Phone)
	if err != nil {
		return toHTTPError(err)
	}

	if err := h.Carts.Clear(ctx, userID); err != nil {
		return toHTTPError(err)
	}

	publish(c, h.Producer, "order_events", userID, map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": order.ID,
		"total":   order.TotalAmount,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "order": order})
}

func (h *OrderHandler) GetMyOrders(c echo.Context) error {
	userID, err := customerOnly(c)
	if err != nil {
		return err
	}
	orders, err := h.Orders.GetByUser(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

// GetMyOrder returns the order only when it belongs to the caller; orders of
// other users are indistinguishable from absent ones.
func (h *OrderHandler) GetMyOrder(c echo.Context) error {
	userID, err := customerOnly(c)
	if err != nil {
		return err
	}
	order, err := h.Orders.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	if order == nil || order.UserID != userID {
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetAllOrders(c echo.Context) error {
	orders, err := h.Orders.GetAll(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Status is required")
	}

	order, err := h.Orders.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return toHTTPError(err)
	}

	publish(c, h.Producer, "order_events", order.UserID, map[string]any{
		"type":    "order_status_updated",
		"orderID": order.ID,
		"status":  order.Status,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "order": order})
}
