// Package auth issues and verifies the password-reset grant handed out after
// a successful OTP verification.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/adminpanel/internal/common"
)

// ResetSubject is the subject every reset grant carries.
const ResetSubject = "password-reset"

// Claims of a reset grant. The grant does not expire.
type Claims struct {
	jwt.RegisteredClaims
}

func GenerateResetGrant(secretKey []byte, issuedAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  ResetSubject,
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	})

	s, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign reset grant: %w", err)
	}
	return s, nil
}

// VerifyResetGrant checks signature, algorithm and subject. Any failure is
// reported as common.ErrInvalidToken.
func VerifyResetGrant(tokenString string, secretKey []byte) error {
	if tokenString == "" {
		return common.ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithSubject(ResetSubject))
	if err != nil {
		return errors.Join(common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return common.ErrInvalidToken
	}
	return nil
}
