package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/todo_api/internal/apperrors"
	"github.com/SscSPs/todo_api/internal/core/domain"
	portsrepo "github.com/SscSPs/todo_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/todo_api/internal/core/ports/services"
	"github.com/SscSPs/todo_api/internal/dto"
	"github.com/SscSPs/todo_api/internal/utils"
)

type authService struct {
	BaseService
	userRepo         portsrepo.UserRepositoryFacade
	refreshTokenRepo portsrepo.RefreshTokenRepositoryFacade
	tokens           portssvc.TokenSvcFacade
	hasher           portssvc.PasswordHasher
	ids              *utils.IDGenerator
	now              func() time.Time
}

// NewAuthService creates the service behind /auth.
func NewAuthService(
	userRepo portsrepo.UserRepositoryFacade,
	refreshTokenRepo portsrepo.RefreshTokenRepositoryFacade,
	tokens portssvc.TokenSvcFacade,
	hasher portssvc.PasswordHasher,
	ids *utils.IDGenerator,
) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		tokens:           tokens,
		hasher:           hasher,
		ids:              ids,
		now:              time.Now,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenPairResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.New(apperrors.ErrValidation, "Email and password required")
	}

	if _, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.New(apperrors.ErrDuplicate, "User already exists")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var age *int
	if req.Age != nil && *req.Age != 0 {
		a := *req.Age
		age = &a
	}

	user := domain.User{
		ID:        s.ids.Next(),
		Email:     req.Email,
		Password:  hash,
		Age:       age,
		CreatedAt: domain.FormatTimestamp(s.now()),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		// Another request may have registered the same email after the check above.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.New(apperrors.ErrDuplicate, "User already exists")
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("email", req.Email))
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.Int64("user_id", user.ID))
	return s.openSession(ctx, &user)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenPairResponse, error) {
	invalid := apperrors.New(apperrors.ErrUnauthorized, "Invalid credentials")
	if req.Email == "" || req.Password == "" {
		return nil, invalid
	}

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, invalid
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !s.hasher.Verify(req.Password, user.Password) {
		s.LogDebug(ctx, "Password mismatch", slog.Int64("user_id", user.ID))
		return nil, invalid
	}

	return s.openSession(ctx, user)
}

// Refresh consumes refreshToken and returns a new pair. The stored record is
// checked before the signature, and removed before the new pair is minted.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	if refreshToken == "" {
		return nil, apperrors.New(apperrors.ErrUnauthorized, "Refresh token required")
	}
	invalid := apperrors.New(apperrors.ErrInvalidToken, "Invalid refresh token")

	if _, err := s.refreshTokenRepo.FindRefreshToken(ctx, refreshToken); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, invalid
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		s.LogDebug(ctx, "Stored refresh token failed verification", slog.String("error", err.Error()))
		return nil, invalid
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if _, err := s.refreshTokenRepo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		s.LogError(ctx, err, "Failed to remove rotated refresh token", slog.Int64("user_id", user.ID))
		return nil, err
	}

	return s.openSession(ctx, user)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return apperrors.New(apperrors.ErrUnauthorized, "Refresh token required")
	}
	removed, err := s.refreshTokenRepo.DeleteRefreshToken(ctx, refreshToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to remove refresh token on logout")
		return err
	}
	s.LogDebug(ctx, "Logout", slog.Bool("token_found", removed))
	return nil
}

func (s *authService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID int64, req dto.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return apperrors.New(apperrors.ErrValidation, "Both passwords are required")
	}

	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(req.OldPassword, user.Password) {
		return apperrors.New(apperrors.ErrUnauthorized, "Invalid old password")
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = hash
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.New(apperrors.ErrNotFound, "User not found")
		}
		s.LogError(ctx, err, "Failed to update password", slog.Int64("user_id", userID))
		return err
	}

	revoked, err := s.refreshTokenRepo.DeleteRefreshTokensByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to revoke refresh tokens", slog.Int64("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "Password changed", slog.Int64("user_id", userID), slog.Int("revoked_sessions", revoked))
	return nil
}

// openSession issues a token pair and records the refresh token.
func (s *authService) openSession(ctx context.Context, user *domain.User) (*dto.TokenPairResponse, error) {
	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}
	if err := s.refreshTokenRepo.SaveRefreshToken(ctx, domain.RefreshToken{Token: refreshToken, UserID: user.ID}); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.Int64("user_id", user.ID))
		return nil, err
	}
	return &dto.TokenPairResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
