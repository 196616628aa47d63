// Package auth issues and parses session tokens.
package auth

import (
	"fmt"

	"github.com/dmitrijs2005/nutriscan/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the owning account and a random token id so that two
// tokens for the same account never collide.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateSessionToken signs a non-expiring HS256 token for userID.
// The token is issued once at registration and stored with the account.
func GenerateSessionToken(userID string, secretKey []byte) (string, error) {
	jti, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ID: jti},
		UserID:           userID,
	})

	return token.SignedString(secretKey)
}

// GetUserIDFromToken verifies the signature and returns the account id.
// Any failure is reported as common.ErrorInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrorInvalidToken
	}

	return claims.UserID, nil
}
