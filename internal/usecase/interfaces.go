package usecase

import "context"

// AuthProvider is the identity-provider surface the auth flows need.
// Password credentials live with the provider, never in the document store.
type AuthProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	UpdateUserPassword(ctx context.Context, uid, newPassword string) error
	DeleteUser(ctx context.Context, uid string) error
	SignInWithEmailPassword(email, password string) (string, error)
}
