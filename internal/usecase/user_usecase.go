package usecase

import (
	"context"

	"staygo/internal/domain/entity"
	"staygo/internal/domain/repository"
	"staygo/pkg/errors"
	"staygo/pkg/utils"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, callerID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, callerID)
}

type UpdateProfileInput struct {
	Name     string
	Bio      string
	Phone    string
	Avatar   string
	Location string
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, callerID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Avatar != "" {
		user.Avatar = input.Avatar
	}
	if input.Location != "" {
		user.Location = input.Location
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Admin operations.

func (uc *UserUseCase) ListUsers(ctx context.Context, callerID string, page, limit int) ([]*entity.User, int64, error) {
	if err := uc.requireAdmin(ctx, callerID); err != nil {
		return nil, 0, err
	}

	pagination := utils.NewPaginationParams(page, limit)
	return uc.userRepo.List(ctx, pagination.PageSize, pagination.Offset)
}

func (uc *UserUseCase) GetUser(ctx context.Context, callerID, userID string) (*entity.User, error) {
	if err := uc.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	if !utils.ValidRef(userID) {
		return nil, errors.BadRequest("Invalid user ID", nil)
	}
	return uc.userRepo.GetByID(ctx, userID)
}

// SetRole is the admin role assignment; the target role must be in the enum.
func (uc *UserUseCase) SetRole(ctx context.Context, callerID, userID, role string) (*entity.User, error) {
	if err := uc.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	if !utils.ValidRef(userID) {
		return nil, errors.BadRequest("Invalid user ID", nil)
	}

	switch role {
	case entity.RoleUser, entity.RoleHost, entity.RoleAdmin:
	default:
		return nil, errors.BadRequest("Invalid role", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}

	user.Role = role
	return user, nil
}

// DeleteUser is admin-only and irreversible.
func (uc *UserUseCase) DeleteUser(ctx context.Context, callerID, userID string) error {
	if err := uc.requireAdmin(ctx, callerID); err != nil {
		return err
	}
	if !utils.ValidRef(userID) {
		return errors.BadRequest("Invalid user ID", nil)
	}

	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	return uc.userRepo.Delete(ctx, userID)
}

func (uc *UserUseCase) requireAdmin(ctx context.Context, callerID string) error {
	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return errors.Forbidden("Admin privileges required", nil)
	}
	return nil
}
