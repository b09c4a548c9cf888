package utils

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims are carried by short-lived access tokens.
type AccessClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// RefreshClaims are carried by refresh tokens.
type RefreshClaims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// NewRegisteredClaims builds the standard claims for userID. Every token gets a
// random jti so tokens minted within the same second still differ.
func NewRegisteredClaims(userID int64, issuer string, expiryDuration time.Duration, now time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
}

// GenerateJWT signs claims with HS256.
func GenerateJWT(claims jwt.Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string into claims, validates its
// signature and standard claims (exp, nbf, iat).
func ParseAndValidateJWT(tokenString string, secretKey string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Don't forget to validate the alg is what you expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return err // This will include errors like token expired, signature invalid, etc.
	}

	if !token.Valid {
		return jwt.ErrTokenSignatureInvalid
	}
	return nil
}
