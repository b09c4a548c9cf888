package filestore

import (
	"context"
	"fmt"

	"github.com/SscSPs/todo_api/internal/apperrors"
	"github.com/SscSPs/todo_api/internal/core/domain"
	portsrepo "github.com/SscSPs/todo_api/internal/core/ports/repositories"
)

const refreshTokensFile = "refresh-tokens.json"

type fileRefreshTokenRepository struct {
	tokens *Collection[domain.RefreshToken]
}

func newFileRefreshTokenRepository(tokens *Collection[domain.RefreshToken]) *fileRefreshTokenRepository {
	return &fileRefreshTokenRepository{tokens: tokens}
}

var _ portsrepo.RefreshTokenRepositoryFacade = (*fileRefreshTokenRepository)(nil)

func (r *fileRefreshTokenRepository) SaveRefreshToken(ctx context.Context, record domain.RefreshToken) error {
	err := r.tokens.Update(ctx, func(records []domain.RefreshToken) ([]domain.RefreshToken, error) {
		return append(records, record), nil
	})
	if err != nil {
		return fmt.Errorf("save refresh token for user %d: %w", record.UserID, err)
	}
	return nil
}

func (r *fileRefreshTokenRepository) FindRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	for _, rec := range r.tokens.Load(ctx) {
		if rec.Token == token {
			return &rec, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fileRefreshTokenRepository) DeleteRefreshToken(ctx context.Context, token string) (bool, error) {
	n, err := r.deleteWhere(ctx, func(rec domain.RefreshToken) bool { return rec.Token == token })
	if err != nil {
		return false, fmt.Errorf("delete refresh token: %w", err)
	}
	return n > 0, nil
}

func (r *fileRefreshTokenRepository) DeleteRefreshTokensByUser(ctx context.Context, userID int64) (int, error) {
	n, err := r.deleteWhere(ctx, func(rec domain.RefreshToken) bool { return rec.UserID == userID })
	if err != nil {
		return 0, fmt.Errorf("delete refresh tokens for user %d: %w", userID, err)
	}
	return n, nil
}

func (r *fileRefreshTokenRepository) deleteWhere(ctx context.Context, match func(domain.RefreshToken) bool) (int, error) {
	removed := 0
	err := r.tokens.Update(ctx, func(records []domain.RefreshToken) ([]domain.RefreshToken, error) {
		kept := records[:0]
		for _, rec := range records {
			if match(rec) {
				removed++
				continue
			}
			kept = append(kept, rec)
		}
		return kept, nil
	})
	return removed, err
}
