package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type R2 struct {
	AccountID  string `env:"R2_ACCOUNT_ID"`
	AccessKey  string `env:"R2_ACCESS_KEY"`
	SecretKey  string `env:"R2_SECRET_KEY"`
	BucketName string `env:"R2_BUCKET_NAME"`
	PublicURL  string `env:"R2_PUBLIC_URL"`
}

type SMTP struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" env-default:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" env-default:"no-reply@tripnest.local"`
}

type Log struct {
	Level      string `env:"LOG_LEVEL" env-default:"info"`
	Format     string `env:"LOG_FORMAT" env-default:"text"`
	Output     string `env:"LOG_OUTPUT" env-default:"stderr"`
	FilePath   string `env:"LOG_FILE_PATH" env-default:"logs/tripnest.log"`
	MaxSize    int    `env:"LOG_MAX_SIZE" env-default:"100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" env-default:"3"`
	MaxAge     int    `env:"LOG_MAX_AGE" env-default:"28"`
	Compress   bool   `env:"LOG_COMPRESS" env-default:"true"`
}

type Config struct {
	Port               int           `env:"PORT" env-default:"5000"`
	PostgresURI        string        `env:"POSTGRES_URI"`
	RedisURI           string        `env:"REDIS_URI" env-default:"localhost:6379"`
	FrontendURL        string        `env:"FRONTEND_URL" env-default:"http://localhost:3000"`
	APIURL             string        `env:"API_URL" env-default:"http://localhost:5000"`
	GoogleClientID     string        `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string        `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI  string        `env:"GOOGLE_REDIRECT_URI" env-default:"http://localhost:5000/api/v2/auth/google/callback"`
	R2                 R2
	SMTP               SMTP
	Log                Log
	SecretKey          string        `env:"SECRET_KEY"`
	CookieName         string        `env:"COOKIE_NAME" env-default:"tripnest_session"`
	CookieSecure       bool          `env:"COOKIE_SECURE" env-default:"false"`
	SessionTTL         time.Duration `env:"SESSION_TTL" env-default:"24h"`
	OTPTTL             time.Duration `env:"OTP_TTL" env-default:"10m"`
	OTPMaxAttempts     int           `env:"OTP_MAX_ATTEMPTS" env-default:"5"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" env-default:"20"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" env-default:"5"`
	MigrateOnStart     bool          `env:"MIGRATE_ON_START" env-default:"true"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.PostgresURI == "" {
		errs = append(errs, errors.New("POSTGRES_URI is required"))
	}
	if len(c.SecretKey) < 32 {
		errs = append(errs, errors.New("SECRET_KEY must be at least 32 characters"))
	}
	if c.OTPMaxAttempts < 1 {
		errs = append(errs, errors.New("OTP_MAX_ATTEMPTS must be positive"))
	}
	if c.RateLimitPerMinute < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must be positive"))
	}
	return errors.Join(errs...)
}

// ListenAddr is the fiber listen address.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
