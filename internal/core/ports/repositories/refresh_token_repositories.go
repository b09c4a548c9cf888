package repositories

import (
	"context"

	"github.com/SscSPs/todo_api/internal/core/domain"
)

// RefreshTokenRepositoryFacade stores the server-side refresh token records.
type RefreshTokenRepositoryFacade interface {
	// SaveRefreshToken records a newly issued refresh token.
	SaveRefreshToken(ctx context.Context, record domain.RefreshToken) error

	// FindRefreshToken returns the stored record for token, or apperrors.ErrNotFound.
	FindRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error)

	// DeleteRefreshToken removes the record for token. Reports whether one existed.
	DeleteRefreshToken(ctx context.Context, token string) (bool, error)

	// DeleteRefreshTokensByUser removes every record owned by userID and reports how many went.
	DeleteRefreshTokensByUser(ctx context.Context, userID int64) (int, error)
}
