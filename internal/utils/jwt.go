package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jmrodas/parkings-api/models"
)

// GenerateJWTToken issues a signed HS256 token for the given user. The user
// id is carried in the Subject claim and a random jti makes every token
// unique even within the same second.
func GenerateJWTToken(issuer string, userID int64, duration time.Duration, signKey string) (*models.Token, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return nil, fmt.Errorf("error signing token: %w", err)
	}

	return &models.Token{
		Token:            token,
		RegisteredClaims: claims,
		SignedString:     signed,
		UserID:           userID,
	}, nil
}

// ValidateAndParseJWTToken verifies the signature, expiry and issuer of a
// signed token and returns its parsed form.
func ValidateAndParseJWTToken(signed, issuer, signKey string) (*models.Token, error) {
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(signed, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}

			return []byte(signKey), nil
		},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("error parsing token: %w", err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim %q: %w", claims.Subject, err)
	}

	return &models.Token{
		Token:            parsed,
		RegisteredClaims: claims,
		SignedString:     signed,
		UserID:           userID,
	}, nil
}
