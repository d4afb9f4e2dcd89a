package usecase

import (
	"context"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// EnsureUser returns the stored user for uid, creating a customer record
// from the token claims on first sight.
func (uc *UserUseCase) EnsureUser(ctx context.Context, uid, email, name string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err == nil {
		return user, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	user = &entity.User{
		ID:    uid,
		Email: email,
		Name:  name,
		Role:  entity.RoleCustomer,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) GetUser(ctx context.Context, uid string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, uid)
}

type UpdateProfileInput struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, uid string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	user.Name = input.Name
	user.Phone = input.Phone
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// IsAdmin reports whether uid has the admin role. Unknown users are not admins.
func (uc *UserUseCase) IsAdmin(ctx context.Context, uid string) (bool, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin(), nil
}
