package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bookgetter/bookstore/internal/events"
	"github.com/bookgetter/bookstore/internal/jwtmiddleware"
	"github.com/bookgetter/bookstore/internal/models"
	"github.com/bookgetter/bookstore/internal/repository"
)

type CartHandler struct {
	Carts    *repository.CartRepository
	Books    *repository.BookRepository
	Producer *events.Producer
}

// customerOnly mirrors the original behavior: administrators have no cart.
func customerOnly(c echo.Context) (string, error) {
	role, err := jwtmiddleware.Role(c)
	if err != nil {
		return "", err
	}
	if role == models.RoleAdmin {
		return "", echo.NewHTTPError(http.StatusForbidden, "Administrators cannot access shopping cart")
	}
	return jwtmiddleware.UserID(c)
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := customerOnly(c)
	if err != nil {
		return err
	}
	cart, err := h.Carts.GetOrCreate(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, cart)
}

// AddToCart validates the book and its stock before delegating to the cart
// repository; the repository itself does not re-check quantity against stock.
func (h *CartHandler) AddToCart(c echo.Context) error {
	userID, err := customerOnly(c)
	if err != nil {
		return err
	}

	var req struct {
		BookID   string `json:"bookId"`
		Quantity int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Quantity < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "Quantity must be positive")
	}

	book, err := h.Books.GetByID(c.Request().Context(), req.BookID)
	if err != nil {
		return toHTTPError(err)
	}
	if book == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Book not found")
	}
	if book.Stock < req.Quantity {
		return echo.NewHTTPError(http.StatusBadRequest, "Insufficient stock")
	}

	cart, err := h.Carts.AddItem(c.Request().Context(), userID, *book, req.Quantity)
	if err != nil {
		return toHTTPError(err)
	}

	publish(c, h.Producer, "cart_events", userID, map[string]any{
		"type":     "cart_item_added",
		"userID":   userID,
		"bookID":   book.ID,
		"quantity": req.Quantity,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "cart": cart})
}

func (h *CartHandler) UpdateCartItem(c echo.Context) error {
	userID, err := customerOnly(c)
	if err != nil {
		return err
	}

	var req struct {
		BookID   string `json:"bookId"`
		Quantity int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Quantity > 0 {
		book, err := h.Books.GetByID(c.Request().Context(), req.BookID)
		if err != nil {
			return toHTTPError(err)
		}
		if book == nil {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		if req.Quantity > book.Stock {
			return echo.NewHTTPError(http.StatusBadRequest,
				"Cannot add more items. Only "+strconv.Itoa(book.Stock)+" remaining in stock.")
		}
	}

	cart, err := h.Carts.SetQuantity(c.Request().Context(), userID, req.BookID, req.Quantity)
	if err != nil {
		return toHTTPError(err)
	}

	publish(c, h.Producer, "cart_events", userID, map[string]any{
		"type":     "cart_item_updated",
		"userID":   userID,
		"bookID":   req.BookID,
		"quantity": req.Quantity,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "cart": cart})
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	userID, err := customerOnly(c)
	if err != nil {
		return err
	}
	if err := h.Carts.Clear(c.Request().Context(), userID); err != nil {
		return toHTTPError(err)
	}

	publish(c, h.Producer, "cart_events", userID, map[string]any{
		"type":   "cart_cleared",
		"userID": userID,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Cart cleared"})
}
