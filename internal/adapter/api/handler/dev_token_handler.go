package handler

import (
	"github.com/labstack/echo/v4"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/internal/infrastructure/firebase"
	"telemart/pkg/errors"
	"telemart/pkg/response"
)

// DevTokenHandler issues development tokens for local runs on the in-memory
// store, where no Firebase project is available.
type DevTokenHandler struct {
	userRepo repository.UserRepository
}

var devTokenHandler *DevTokenHandler

func NewDevTokenHandler(userRepo repository.UserRepository) *DevTokenHandler {
	return &DevTokenHandler{
		userRepo: userRepo,
	}
}

func SetupDevTokenHandler(userRepo repository.UserRepository) {
	devTokenHandler = NewDevTokenHandler(userRepo)
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

type devTokenRequest struct {
	UID   string `json:"uid" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Name  string `json:"name"`
	Role  string `json:"role" validate:"omitempty,oneof=customer admin"`
}

// GenerateToken upserts the user with the requested role and returns a token
// the development verifier accepts.
func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	var req devTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}
	if req.Role == "" {
		req.Role = entity.RoleCustomer
	}

	ctx := c.Request().Context()
	user, err := h.userRepo.GetByID(ctx, req.UID)
	switch {
	case err == nil:
		user.Role = req.Role
		if req.Email != "" {
			user.Email = req.Email
		}
		if req.Name != "" {
			user.Name = req.Name
		}
		err = h.userRepo.Update(ctx, user)
	case errors.IsNotFound(err):
		user = &entity.User{ID: req.UID, Email: req.Email, Name: req.Name, Role: req.Role}
		err = h.userRepo.Create(ctx, user)
	}
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"token": firebase.DevToken(user.ID),
		"user":  user,
	})
}
