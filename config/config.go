// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends selectable via STORE_BACKEND.
const (
	StoreFile     = "file"
	StorePostgres = "postgres"
)

// Interaction-term bases selectable via INTERACTION_BASIS.
const (
	BasisNormalized = "normalized"
	BasisRaw        = "raw"
)

// Config holds all application configuration.
type Config struct {
	// Model artifact consumed by the predictor at startup.
	ModelPath string

	// File-backed record store.
	DBFile string

	// StoreBackend selects the record store implementation: "file" or "postgres".
	StoreBackend string

	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	// Only consulted when StoreBackend is "postgres".
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// InteractionBasis selects whether the model's interaction terms are
	// computed from normalized or raw temp/humidity values.
	InteractionBasis string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	v := newViper()

	// Defaults
	v.SetDefault("MODEL_PATH", "model.json")
	v.SetDefault("DB_FILE", "database.json")
	v.SetDefault("STORE_BACKEND", StoreFile)
	v.SetDefault("DB_USER", "bikeapi")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "bikedata")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("INTERACTION_BASIS", BasisNormalized)
	v.SetDefault("PORT", ":5000")
	v.SetDefault("TLS_DOMAINS", "")
	v.SetDefault("DEBUG", true)

	cfg := &Config{
		ModelPath:        v.GetString("MODEL_PATH"),
		DBFile:           v.GetString("DB_FILE"),
		StoreBackend:     v.GetString("STORE_BACKEND"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		DBUser:           v.GetString("DB_USER"),
		DBPass:           v.GetString("DB_PASS"),
		DBHost:           v.GetString("DB_HOST"),
		DBPort:           v.GetString("DB_PORT"),
		DBName:           v.GetString("DB_NAME"),
		DBSSLMode:        v.GetString("DB_SSLMODE"),
		InteractionBasis: v.GetString("INTERACTION_BASIS"),
		Debug:            v.GetBool("DEBUG"),
		Port:             v.GetString("PORT"),
		TLSDomains:       splitTrimmed(v.GetString("TLS_DOMAINS")),
	}

	cfg.validate()
	return cfg
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

func (c *Config) validate() {
	switch c.StoreBackend {
	case StoreFile:
		if c.DBFile == "" {
			log.Fatal("config: DB_FILE must be set when STORE_BACKEND=file")
		}
	case StorePostgres:
		if c.DatabaseURL == "" && c.DBPass == "" {
			log.Fatal("config: DATABASE_URL or DB_PASS must be set when STORE_BACKEND=postgres")
		}
	default:
		log.Fatalf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.ModelPath == "" {
		log.Fatal("config: MODEL_PATH must be set")
	}
	if b := c.InteractionBasis; b != BasisNormalized && b != BasisRaw {
		log.Fatalf("config: INTERACTION_BASIS must be %q or %q, got %q", BasisNormalized, BasisRaw, b)
	}
	if !c.Debug && len(c.TLSDomains) == 0 {
		log.Fatal("config: TLS_DOMAINS must be set when DEBUG=false")
	}
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
