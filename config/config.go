package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds every setting the backend reads from the environment
type Config struct {
	Port                string `env:"PORT" envDefault:"8080"`
	ReadTimeoutSeconds  int    `env:"READ_TIMEOUT_SECONDS" envDefault:"180"`
	WriteTimeoutSeconds int    `env:"WRITE_TIMEOUT_SECONDS" envDefault:"180"`
	IdleTimeoutSeconds  int    `env:"IDLE_TIMEOUT_SECONDS" envDefault:"180"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	Database Database `envPrefix:"DB_"`

	GenerateModels       bool `env:"GENERATE_MODELS" envDefault:"false"`
	GenerateColumnReport bool `env:"GENERATE_COLUMN_REPORT" envDefault:"false"`
	AutoMigrate          bool `env:"AUTO_MIGRATE" envDefault:"true"`

	AcceptedOrigins []string `env:"ACCEPTED_ORIGINS" envSeparator:","`

	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	AdminJWTSecret    string        `env:"ADMIN_JWT_SECRET"`
	AdminTokenTTL     time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"12h"`

	Storage Storage `envPrefix:"STORAGE_"`

	RedisURL          string        `env:"REDIS_URL"`
	PublicRateLimit   int           `env:"PUBLIC_RATE_LIMIT" envDefault:"5"`
	PublicRateWindow  time.Duration `env:"PUBLIC_RATE_WINDOW" envDefault:"10m"`
	SiteBaseURL       string        `env:"BASE_URL"`
	ResendAPIKey      string        `env:"RESEND_API_KEY"`
	ResendFromEmail   string        `env:"RESEND_FROM_EMAIL"`
	NotifyEmail       string        `env:"CONTACT_NOTIFY_EMAIL"`
	TwilioAccountSID  string        `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string        `env:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber  string        `env:"TWILIO_FROM_NUMBER"`
	NotifyPhoneNumber string        `env:"CONTACT_NOTIFY_PHONE"`
	SSMParameterPath  string        `env:"SSM_PARAMETER_PATH"`
}

// Database describes the primary connection and an optional read replica
type Database struct {
	Type       string `env:"TYPE" envDefault:"postgres"`
	Host       string `env:"HOST" envDefault:"localhost"`
	User       string `env:"USER" envDefault:"postgres"`
	Password   string `env:"PASSWORD"`
	Name       string `env:"NAME" envDefault:"portfolio"`
	Port       string `env:"PORT" envDefault:"5432"`
	SSLMode    string `env:"SSLMODE" envDefault:"disable"`
	ReplicaDSN string `env:"REPLICA_DSN"`
}

// Storage selects the file storage backend
type Storage struct {
	Driver     string `env:"DRIVER" envDefault:"local"`
	LocalDir   string `env:"LOCAL_DIR" envDefault:"storage/public"`
	PublicURL  string `env:"PUBLIC_URL" envDefault:"http://localhost:8080/storage"`
	S3Bucket   string `env:"S3_BUCKET"`
	S3Region   string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint string `env:"S3_ENDPOINT"`
}

// DSN builds the postgres connection string for the primary database
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// Load reads .env (if present), overlays SSM parameters when SSM_PARAMETER_PATH
// is set, and parses the result into a Config.
func Load(ctx context.Context) (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded, using process environment")
	}

	if path := strings.TrimSpace(os.Getenv("SSM_PARAMETER_PATH")); path != "" {
		if err := overlaySSM(ctx, path); err != nil {
			return Config{}, fmt.Errorf("load ssm parameters: %w", err)
		}
	}

	return Parse()
}

// Parse reads the current process environment into a Config
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
