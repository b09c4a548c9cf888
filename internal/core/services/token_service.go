package services

import (
	"fmt"
	"time"

	"github.com/SscSPs/todo_api/internal/core/domain"
	portssvc "github.com/SscSPs/todo_api/internal/core/ports/services"
	"github.com/SscSPs/todo_api/internal/platform/config"
	"github.com/SscSPs/todo_api/internal/utils"
)

// tokenService signs and verifies access and refresh JWTs. The two kinds use
// separate secrets, so one can never stand in for the other.
type tokenService struct {
	cfg *config.Config
	now func() time.Time
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, now: time.Now}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// IssueAccessToken creates a new JWT access token for the given user.
func (s *tokenService) IssueAccessToken(user *domain.User) (string, error) {
	claims := utils.AccessClaims{
		UserID:           user.ID,
		Email:            user.Email,
		RegisteredClaims: utils.NewRegisteredClaims(user.ID, s.cfg.JWTIssuer, s.cfg.JWTExpiryDuration, s.now()),
	}
	token, err := utils.GenerateJWT(claims, s.cfg.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return token, nil
}

// IssueRefreshToken creates a new JWT refresh token for the given user.
func (s *tokenService) IssueRefreshToken(user *domain.User) (string, error) {
	claims := utils.RefreshClaims{
		UserID:           user.ID,
		RegisteredClaims: utils.NewRegisteredClaims(user.ID, s.cfg.JWTIssuer, s.cfg.RefreshTokenExpiryDuration, s.now()),
	}
	token, err := utils.GenerateJWT(claims, s.cfg.RefreshTokenSecret)
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}
	return token, nil
}

func (s *tokenService) VerifyAccessToken(token string) (*utils.AccessClaims, error) {
	claims := &utils.AccessClaims{}
	if err := utils.ParseAndValidateJWT(token, s.cfg.JWTSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *tokenService) VerifyRefreshToken(token string) (*utils.RefreshClaims, error) {
	claims := &utils.RefreshClaims{}
	if err := utils.ParseAndValidateJWT(token, s.cfg.RefreshTokenSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
