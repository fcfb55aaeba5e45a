package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Purpose scopes a token to the flow that issued it, so a password-reset link
// cannot be replayed as a login token.
type Purpose string

const (
	PurposeAuth          Purpose = "auth"
	PurposeVerifyEmail   Purpose = "verify-email"
	PurposeResetPassword Purpose = "reset-password"
)

type AccountClaims struct {
	jwt.RegisteredClaims
	ID      int64
	Purpose Purpose
}

// GenerateAccountJWT issues an HS256 token for the account, scoped to purpose.
func GenerateAccountJWT(id int64, purpose Purpose, expire time.Duration, key []byte) (string, error) {
	claims := AccountClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
		},
		ID:      id,
		Purpose: purpose,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("generating account jwt token: %s", err.Error())
	}
	return tokenString, nil
}

// ValidateAccountJWT parses and verifies the token and checks it was issued
// for the expected purpose.
func ValidateAccountJWT(tokenString string, purpose Purpose, key []byte) (*AccountClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, new(AccountClaims), func(_ *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*AccountClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}
