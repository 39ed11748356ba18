package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/bookgetter/bookstore/internal/handlers"
	"github.com/bookgetter/bookstore/internal/jwtmiddleware"
)

type Deps struct {
	JWTSecret     []byte
	AuthHandler   *handlers.AuthHandler
	BookHandler   *handlers.BookHandler
	CartHandler   *handlers.CartHandler
	OrderHandler  *handlers.OrderHandler
	UserHandler   *handlers.UserHandler
	AdminHandler  *handlers.AdminHandler
	UploadHandler *handlers.UploadHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)

	books := v1.Group("/books")
	books.GET("", d.BookHandler.GetBooks)
	books.GET("/search", d.BookHandler.Search)
	books.GET("/category/:category", d.BookHandler.GetByCategory)
	books.GET("/:id", d.BookHandler.GetBook)

	auth := v1.Group("", jwtmiddleware.JWTMiddleware(d.JWTSecret))

	auth.GET("/profile", d.UserHandler.GetProfile)
	auth.PUT("/profile", d.UserHandler.UpdateProfile)

	auth.GET("/cart", d.CartHandler.GetCart)
	auth.POST("/cart", d.CartHandler.AddToCart)
	auth.PUT("/cart", d.CartHandler.UpdateCartItem)
	auth.DELETE("/cart", d.CartHandler.ClearCart)

	auth.POST("/orders", d.OrderHandler.Checkout)
	auth.GET("/orders", d.OrderHandler.GetMyOrders)
	auth.GET("/orders/:id", d.OrderHandler.GetMyOrder)

	admin := auth.Group("/admin", jwtmiddleware.AdminOnly)

	admin.POST("/books", d.BookHandler.CreateBook)
	admin.PUT("/books/:id", d.BookHandler.UpdateBook)
	admin.DELETE("/books/:id", d.BookHandler.DeleteBook)
	admin.POST("/books/:id/stock", d.BookHandler.AdjustStock)

	admin.GET("/orders", d.OrderHandler.GetAllOrders)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateStatus)

	admin.GET("/users", d.AdminHandler.GetUsers)
	admin.GET("/stats", d.AdminHandler.Dashboard)

	admin.POST("/upload", d.UploadHandler.UploadImage)
}
