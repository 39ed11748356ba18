package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/bookgetter/bookstore/internal/jwtmiddleware"
	"github.com/bookgetter/bookstore/internal/models"
	"github.com/bookgetter/bookstore/internal/repository"
	"github.com/bookgetter/bookstore/internal/store"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	Books  *repository.BookRepository
	Users  *repository.UserRepository
	Carts  *repository.CartRepository
	Orders *repository.OrderRepository

	Auth  *AuthHandler
	Book  *BookHandler
	Cart  *CartHandler
	Order *OrderHandler
	User  *UserHandler
	Admin *AdminHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend, err := store.NewFileBackend(t.TempDir())
	require.NoError(t, err)

	books := repository.NewBookRepository(backend)
	users := repository.NewUserRepository(backend)
	carts := repository.NewCartRepository(backend, books)
	orders := repository.NewOrderRepository(backend, books)

	secret := []byte("test-secret")
	return &testEnv{
		T:      t,
		E:      echo.New(),
		Books:  books,
		Users:  users,
		Carts:  carts,
		Orders: orders,
		Auth:   &AuthHandler{Users: users, JWTSecret: secret},
		Book:   &BookHandler{Books: books},
		Cart:   &CartHandler{Carts: carts, Books: books},
		Order:  &OrderHandler{Orders: orders, Carts: carts},
		User:   &UserHandler{Users: users},
		Admin:  &AdminHandler{Books: books, Users: users, Orders: orders},
	}
}

func (env *testEnv) doJSONRequest(method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// asUser installs a parsed token on the context the way the JWT middleware
// would, so handlers can be exercised without running the middleware chain.
func asUser(c echo.Context, userID, role string) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": role,
	})
	c.Set(jwtmiddleware.ContextKey, token)
}

func (env *testEnv) addBook(title string, price float64, stock int) *models.Book {
	env.T.Helper()
	book, err := env.Books.Add(context.Background(),
		models.NewBook(title, "Author", "978-0000000000", price, "fiction", "", "", stock))
	require.NoError(env.T, err)
	return book
}

func (env *testEnv) registerCustomer(username string) *models.User {
	env.T.Helper()
	user, err := env.Users.Register(context.Background(), username, "pw123456", username+"@x.com", models.RoleCustomer)
	require.NoError(env.T, err)
	return user
}
