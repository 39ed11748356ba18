package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bookgetter/bookstore/internal/events"
	"github.com/bookgetter/bookstore/internal/models"
	"github.com/bookgetter/bookstore/internal/repository"
	"github.com/bookgetter/bookstore/internal/util"
)

type BookHandler struct {
	Books    *repository.BookRepository
	Producer *events.Producer
}

type bookRequest struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	ISBN        string  `json:"isbn"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Stock       int     `json:"stock"`
}

// GetBooks lists the catalog, optionally paged with ?page= and ?size=.
func (h *BookHandler) GetBooks(c echo.Context) error {
	books, err := h.Books.GetAll(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	if c.QueryParam("page") == "" && c.QueryParam("size") == "" {
		return c.JSON(http.StatusOK, books)
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, limit := util.Offsets(page, size)
	if from >= len(books) {
		return c.JSON(http.StatusOK, echo.Map{"total": len(books), "items": []models.Book{}})
	}
	to := from + limit
	if to > len(books) {
		to = len(books)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": len(books), "items": books[from:to]})
}

func (h *BookHandler) GetBook(c echo.Context) error {
	book, err := h.Books.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	if book == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Book not found")
	}
	return c.JSON(http.StatusOK, book)
}

func (h *BookHandler) Search(c echo.Context) error {
	books, err := h.Books.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *BookHandler) GetByCategory(c echo.Context) error {
	books, err := h.Books.GetByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *BookHandler) CreateBook(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Title == "" || req.Author == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Title and author are required")
	}
	if req.Price < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Price cannot be negative")
	}

	book, err := h.Books.Add(c.Request().Context(), models.NewBook(
		req.Title, req.Author, req.ISBN, req.Price,
		req.Category, req.Description, req.ImageURL, req.Stock,
	))
	if err != nil {
		return toHTTPError(err)
	}

	publish(c, h.Producer, "product_events", book.ID, map[string]any{
		"type":   "book_created",
		"bookID": book.ID,
		"title":  book.Title,
	})

	return c.JSON(http.StatusCreated, book)
}

func (h *BookHandler) UpdateBook(c echo.Context) error {
	existing, err := h.Books.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	if existing == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Book not found")
	}

	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Price < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Price cannot be negative")
	}

	updated := *existing
	updated.Title = req.Title
	updated.Author = req.Author
	updated.ISBN = req.ISBN
	updated.Price = req.Price
	updated.Category = req.Category
	updated.Description = req.Description
	updated.ImageURL = req.ImageURL
	updated.Stock = req.Stock

	book, err := h.Books.Update(c.Request().Context(), updated)
	if err != nil {
		return toHTTPError(err)
	}

	publish(c, h.Producer, "product_events", book.ID, map[string]any{
		"type":   "book_updated",
		"bookID": book.ID,
	})

	return c.JSON(http.StatusOK, book)
}

func (h *BookHandler) DeleteBook(c echo.Context) error {
	id := c.Param("id")
	if err := h.Books.Delete(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}

	publish(c, h.Producer, "product_events", id, map[string]any{
		"type":   "book_deleted",
		"bookID": id,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// AdjustStock subtracts the given quantity from the book's stock.
func (h *BookHandler) AdjustStock(c echo.Context) error {
	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Quantity == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Quantity is required")
	}
	if err := h.Books.AdjustStock(c.Request().Context(), c.Param("id"), *req.Quantity); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
