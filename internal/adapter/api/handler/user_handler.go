package handler

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/usecase"
	"telemart/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

// GetMe returns the caller's profile, creating it on first sign-in.
func (h *UserHandler) GetMe(c echo.Context) error {
	email, _ := c.Get("email").(string)
	name, _ := c.Get("name").(string)

	user, err := h.userUseCase.EnsureUser(c.Request().Context(), currentUserID(c), email, name)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req usecase.UpdateProfileInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}
