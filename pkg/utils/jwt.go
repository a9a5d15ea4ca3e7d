package utils

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

const tokenIssuer = "tripnest"

// GenerateToken signs an HS256 token for userID. purpose separates session
// cookies from short-lived password reset tokens.
func GenerateToken(secretKey, userID, purpose string, tokenDuration time.Duration) (string, error) {
	return signClaims(secretKey, transfer.CustomClaims{UserID: userID, Purpose: purpose}, tokenDuration)
}

// GenerateResetToken signs a password reset token tied to the verified code codeID.
func GenerateResetToken(secretKey, userID string, codeID int64, tokenDuration time.Duration) (string, error) {
	return signClaims(secretKey, transfer.CustomClaims{
		UserID:  userID,
		Purpose: transfer.TokenPurposePasswordReset,
		CodeID:  codeID,
	}, tokenDuration)
}

func signClaims(secretKey string, claims transfer.CustomClaims, tokenDuration time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    tokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(secretKey))
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	return signedToken, nil
}

func ValidateToken(secretKey, tokenString, purpose string) (*transfer.CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &transfer.CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secretKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		slog.Debug("token rejected", "error", err)
		return nil, err
	}

	claims, ok := token.Claims.(*transfer.CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Purpose != purpose {
		return nil, errors.New("token purpose mismatch")
	}

	return claims, nil
}
