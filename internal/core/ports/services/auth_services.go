package services

import (
	"context"

	"github.com/SscSPs/todo_api/internal/core/domain"
	"github.com/SscSPs/todo_api/internal/dto"
)

// SessionSvc defines the credential and session lifecycle.
type SessionSvc interface {
	// Register creates a user and opens a first session.
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenPairResponse, error)

	// Login checks credentials and opens a new session.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenPairResponse, error)

	// Refresh rotates a refresh token: the presented token is consumed and a new pair returned.
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error)

	// Logout forgets a single refresh token. Unknown tokens are not an error.
	Logout(ctx context.Context, refreshToken string) error
}

// ProfileSvc defines operations on the authenticated user's own account.
type ProfileSvc interface {
	// Me returns the stored user.
	Me(ctx context.Context, userID int64) (*domain.User, error)

	// ChangePassword replaces the password and revokes every refresh token of the user.
	ChangePassword(ctx context.Context, userID int64, req dto.ChangePasswordRequest) error
}

// AuthSvcFacade combines all authentication-related service interfaces.
type AuthSvcFacade interface {
	SessionSvc
	ProfileSvc
}
