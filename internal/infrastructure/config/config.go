package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=8h"`

	// Users is the static credential table, e.g.
	// AUTH_USERS="arav:password123,priya:ecell@iiitr". Values may also be
	// bcrypt hashes.
	Users map[string]string `env:"AUTH_USERS"`

	// StoreBackend selects the row store: "sheets" or "mongo".
	StoreBackend string `env:"STORE_BACKEND, default=sheets"`

	Sheets SheetsConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

type SheetsConfig struct {
	SpreadsheetID   string `env:"GOOGLE_SHEET_ID"`
	CredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE, default=credentials.json"`
	SheetName       string `env:"SHEET_NAME, default=Sheet1"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=gatepass"`
}

type RedisConfig struct {
	// Addr is optional; when empty the check-in lock stays in-process.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB,  default=0"`
}

// defaultUsers is the built-in staff roster, used when AUTH_USERS is unset.
var defaultUsers = map[string]string{
	"arav":  "password123",
	"priya": "ecell@iiitr",
	"dev":   "hello123",
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if len(cfg.Users) == 0 {
		cfg.Users = defaultUsers
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	if cfg.StoreBackend == "sheets" && cfg.Sheets.SpreadsheetID == "" {
		return nil, fmt.Errorf("config: GOOGLE_SHEET_ID is required for the sheets backend")
	}
	return &cfg, nil
}
