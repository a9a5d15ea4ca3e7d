package utils

import (
	"testing"
	"time"

	"github.com/maheshrc27/tripnest-api/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "42", transfer.TokenPurposeSession, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(testSecret, token, transfer.TokenPurposeSession)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateResetToken(t *testing.T) {
	token, err := GenerateResetToken(testSecret, "42", 7, time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(testSecret, token, transfer.TokenPurposePasswordReset)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, int64(7), claims.CodeID)

	_, err = ValidateToken(testSecret, token, transfer.TokenPurposeSession)
	assert.Error(t, err)
}

func TestValidateToken_Rejects(t *testing.T) {
	token, err := GenerateToken(testSecret, "42", transfer.TokenPurposePasswordReset, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(testSecret, token, transfer.TokenPurposeSession)
	assert.Error(t, err, "purpose mismatch")

	_, err = ValidateToken("another-secret-another-secret-xx", token, transfer.TokenPurposePasswordReset)
	assert.Error(t, err, "wrong secret")

	expired, err := GenerateToken(testSecret, "42", transfer.TokenPurposeSession, -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(testSecret, expired, transfer.TokenPurposeSession)
	assert.Error(t, err, "expired")

	_, err = ValidateToken(testSecret, "not-a-token", transfer.TokenPurposeSession)
	assert.Error(t, err)
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP(6)
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "non-digit in %q", code)
		}
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel(" WARN ").String())
	assert.Equal(t, "INFO", parseLevel("nonsense").String())
}
