package services

import (
	"github.com/SscSPs/todo_api/internal/core/domain"
	"github.com/SscSPs/todo_api/internal/utils"
)

// TokenIssuerSvc mints signed tokens for a user.
type TokenIssuerSvc interface {
	// IssueAccessToken returns a short-lived access token carrying the user's id and email.
	IssueAccessToken(user *domain.User) (string, error)

	// IssueRefreshToken returns a long-lived refresh token carrying the user's id.
	IssueRefreshToken(user *domain.User) (string, error)
}

// TokenVerifierSvc checks signature, algorithm and expiry of presented tokens.
type TokenVerifierSvc interface {
	VerifyAccessToken(token string) (*utils.AccessClaims, error)
	VerifyRefreshToken(token string) (*utils.RefreshClaims, error)
}

// TokenSvcFacade combines token issuing and verification.
type TokenSvcFacade interface {
	TokenIssuerSvc
	TokenVerifierSvc
}
