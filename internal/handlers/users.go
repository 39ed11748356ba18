package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookgetter/bookstore/internal/jwtmiddleware"
	"github.com/bookgetter/bookstore/internal/repository"
)

type UserHandler struct {
	Users *repository.UserRepository
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}
	user, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}
	if user == nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial update; omitted fields keep their stored
// values, and an empty password means "keep the current one".
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := jwtmiddleware.UserID(c)
	if err != nil {
		return err
	}

	var req struct {
		Email    *string `json:"email"`
		Address  *string `json:"address"`
		Phone    *string `json:"phone"`
		Password *string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.Users.Patch(c.Request().Context(), userID, repository.UserPatch{
		Email:    req.Email,
		Address:  req.Address,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}
