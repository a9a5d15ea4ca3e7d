package config

import (
	"strings"
	"testing"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEnv_Defaults(t *testing.T) {
	t.Setenv("POSTGRES_URI", "postgres://localhost/tripnest")
	t.Setenv("SECRET_KEY", strings.Repeat("k", 32))

	var cfg Config
	require.NoError(t, cleanenv.ReadEnv(&cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, ":5000", cfg.ListenAddr())
	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 5, cfg.OTPMaxAttempts)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "tripnest_session", cfg.CookieName)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	cfg := Config{OTPMaxAttempts: 5, RateLimitPerMinute: 10}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_URI")
	assert.Contains(t, err.Error(), "SECRET_KEY")

	cfg.PostgresURI = "postgres://x"
	cfg.SecretKey = strings.Repeat("s", 40)
	assert.NoError(t, cfg.Validate())

	cfg.OTPMaxAttempts = 0
	assert.ErrorContains(t, cfg.Validate(), "OTP_MAX_ATTEMPTS")
}
