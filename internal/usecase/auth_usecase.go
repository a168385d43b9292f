package usecase

import (
	"context"
	"time"

	"staygo/internal/domain/entity"
	"staygo/internal/domain/repository"
	"staygo/pkg/errors"
	"staygo/pkg/logger"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	authProvider AuthProvider
}

func NewAuthUseCase(userRepo repository.UserRepository, authProvider AuthProvider) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		authProvider: authProvider,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Username string
	Password string
}

type AuthResult struct {
	User  *entity.User
	Token string
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if existing, err := uc.userRepo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, errors.BadRequest("Email already exists", nil)
	}
	if existing, err := uc.userRepo.GetByUsername(ctx, input.Username); err == nil && existing != nil {
		return nil, errors.BadRequest("Username already exists", nil)
	}

	uid, err := uc.authProvider.CreateUser(ctx, input.Email, input.Password, input.Username)
	if err != nil {
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:        uid,
		Email:     input.Email,
		Username:  input.Username,
		Name:      input.Name,
		Role:      entity.RoleUser,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal("Failed to create user record", err)
	}

	token, err := uc.authProvider.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	logger.Info("User %s registered as %s", uid, input.Username)
	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.Unauthorized("Invalid username or password", err)
	}

	token, err := uc.authProvider.SignInWithEmailPassword(user.Email, password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid username or password", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) ChangePassword(ctx context.Context, callerID, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return errors.BadRequest("Password must be at least 6 characters", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return err
	}

	// Re-authenticate with the old password before rotating.
	if _, err := uc.authProvider.SignInWithEmailPassword(user.Email, oldPassword); err != nil {
		return errors.Unauthorized("Invalid username or password", err)
	}

	if err := uc.authProvider.UpdateUserPassword(ctx, callerID, newPassword); err != nil {
		return errors.Internal("Failed to update password", err)
	}

	return nil
}

// DeleteAccount removes the caller after password re-authentication. The
// provider credential and the user document go together; irreversible.
func (uc *AuthUseCase) DeleteAccount(ctx context.Context, callerID, password string) error {
	user, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return err
	}

	if _, err := uc.authProvider.SignInWithEmailPassword(user.Email, password); err != nil {
		return errors.Unauthorized("Invalid username or password", err)
	}

	if err := uc.authProvider.DeleteUser(ctx, callerID); err != nil {
		return errors.Internal("Failed to delete user from authentication provider", err)
	}

	if err := uc.userRepo.Delete(ctx, callerID); err != nil {
		return err
	}

	logger.Info("Account %s deleted", callerID)
	return nil
}
