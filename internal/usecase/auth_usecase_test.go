package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staygo/internal/domain/entity"
	"staygo/pkg/errors"
)

// fakeAuthProvider keeps credentials in memory and mints opaque tokens.
type fakeAuthProvider struct {
	passwords map[string]string // email -> password
	uids      map[string]string // email -> uid
}

func newFakeAuthProvider() *fakeAuthProvider {
	return &fakeAuthProvider{
		passwords: make(map[string]string),
		uids:      make(map[string]string),
	}
}

func (p *fakeAuthProvider) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	uid := uuid.New().String()
	p.passwords[email] = password
	p.uids[email] = uid
	return uid, nil
}

func (p *fakeAuthProvider) VerifyToken(ctx context.Context, token string) (string, error) {
	return token, nil
}

func (p *fakeAuthProvider) UpdateUserPassword(ctx context.Context, uid, newPassword string) error {
	for email, id := range p.uids {
		if id == uid {
			p.passwords[email] = newPassword
			return nil
		}
	}
	return errors.NotFound("User", nil)
}

func (p *fakeAuthProvider) DeleteUser(ctx context.Context, uid string) error {
	for email, id := range p.uids {
		if id == uid {
			delete(p.uids, email)
			delete(p.passwords, email)
			return nil
		}
	}
	return errors.NotFound("User", nil)
}

func (p *fakeAuthProvider) SignInWithEmailPassword(email, password string) (string, error) {
	stored, ok := p.passwords[email]
	if !ok || stored != password {
		return "", errors.Unauthorized("Invalid credentials", nil)
	}
	return "token-" + p.uids[email], nil
}

func newAuthFixture(t *testing.T) (*AuthUseCase, *memUserRepo, *fakeAuthProvider) {
	t.Helper()
	users := newMemUserRepo()
	provider := newFakeAuthProvider()
	return NewAuthUseCase(users, provider), users, provider
}

func TestRegister(t *testing.T) {
	uc, users, _ := newAuthFixture(t)
	ctx := context.Background()

	result, err := uc.Register(ctx, RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Username: "alice",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, entity.RoleUser, result.User.Role)
	assert.Equal(t, "active", result.User.Status)

	stored, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, stored.ID)
}

func TestRegisterDuplicates(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	input := RegisterInput{Name: "Alice", Email: "alice@example.com", Username: "alice", Password: "secret123"}
	_, err := uc.Register(ctx, input)
	require.NoError(t, err)

	// Same email.
	dup := input
	dup.Username = "alice2"
	_, err = uc.Register(ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	// Same username.
	dup = input
	dup.Email = "alice2@example.com"
	_, err = uc.Register(ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestLogin(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, RegisterInput{Email: "alice@example.com", Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	result, err := uc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	_, err = uc.Login(ctx, "alice", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	_, err = uc.Login(ctx, "nobody", "secret123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestChangePassword(t *testing.T) {
	uc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	result, err := uc.Register(ctx, RegisterInput{Email: "alice@example.com", Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	err = uc.ChangePassword(ctx, result.User.ID, "secret123", "short")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	err = uc.ChangePassword(ctx, result.User.ID, "wrong-old", "newsecret")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	require.NoError(t, uc.ChangePassword(ctx, result.User.ID, "secret123", "newsecret"))

	_, err = uc.Login(ctx, "alice", "newsecret")
	assert.NoError(t, err)
}

func TestDeleteAccount(t *testing.T) {
	uc, users, _ := newAuthFixture(t)
	ctx := context.Background()

	result, err := uc.Register(ctx, RegisterInput{Email: "alice@example.com", Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	err = uc.DeleteAccount(ctx, result.User.ID, "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	require.NoError(t, uc.DeleteAccount(ctx, result.User.ID, "secret123"))

	_, err = users.GetByID(ctx, result.User.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	_, err = uc.Login(ctx, "alice", "secret123")
	require.Error(t, err)
}
