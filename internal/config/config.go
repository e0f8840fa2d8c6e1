package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Extractor ExtractorConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// AuthConfig holds bearer-token settings. An empty secret disables auth.
type AuthConfig struct {
	Secret string        `mapstructure:"secret"`
	Issuer string        `mapstructure:"issuer"`
	Expiry time.Duration `mapstructure:"expiry"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogEntry is one known item name with its default tax rate, as carried
// in configuration.
type CatalogEntry struct {
	Name   string
	TaxPct float64
}

// WeightConfig holds the document number disambiguation weights.
type WeightConfig struct {
	LetterDigit     int `mapstructure:"letter_digit"`
	Separator       int `mapstructure:"separator"`
	PreferredLength int `mapstructure:"preferred_length"`
	Overlong        int `mapstructure:"overlong"`
	LetterStart     int `mapstructure:"letter_start"`
}

// ExtractorConfig holds the extraction engine tuning data. The catalog,
// boundary and artifact vocabularies and the scoring weights are calibrated
// against sample documents; they are configuration, not code.
type ExtractorConfig struct {
	VendorPrefix      string
	DefaultTaxPct     float64
	GenericItemCap    int
	MaxBatch          int
	Catalog           []CatalogEntry
	AddressBoundaries []string
	NotesBoundaries   []string
	TrailingArtifacts []string
	Weights           WeightConfig
}

// Load reads configuration from environment variables with the BILLSCAN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Auth defaults (disabled until a secret is configured)
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.issuer", "billscan")
	v.SetDefault("auth.expiry", "24h")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Extractor defaults
	v.SetDefault("extractor.vendor_prefix", "SEL")
	v.SetDefault("extractor.default_tax_pct", 5)
	v.SetDefault("extractor.generic_item_cap", 5)
	v.SetDefault("extractor.max_batch", 100)
	v.SetDefault("extractor.catalog", "Charger:5,Selfie Stick:5,Power Bank:18,Tempered Glass:12,Back Cover:12,Earphones:18")
	v.SetDefault("extractor.address_boundaries", "Phone,Mobile,GST,Invoice,Bill,Date,Description,Item,Notes,SubTotal,Total")
	v.SetDefault("extractor.notes_boundaries", "Share,Lens,Translate,Search")
	v.SetDefault("extractor.trailing_artifacts", "Share Lens,Share,Lens,LTE,Phone,Mobile")
	v.SetDefault("extractor.weight.letter_digit", 10)
	v.SetDefault("extractor.weight.separator", 5)
	v.SetDefault("extractor.weight.preferred_length", 3)
	v.SetDefault("extractor.weight.overlong", -5)
	v.SetDefault("extractor.weight.letter_start", 2)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                       "BILLSCAN_SERVER_PORT",
		"server.read_timeout":               "BILLSCAN_SERVER_READ_TIMEOUT",
		"server.write_timeout":              "BILLSCAN_SERVER_WRITE_TIMEOUT",
		"server.environment":                "BILLSCAN_SERVER_ENVIRONMENT",
		"auth.secret":                       "BILLSCAN_AUTH_SECRET",
		"auth.issuer":                       "BILLSCAN_AUTH_ISSUER",
		"auth.expiry":                       "BILLSCAN_AUTH_EXPIRY",
		"cors.allowed_origins":              "BILLSCAN_CORS_ALLOWED_ORIGINS",
		"extractor.vendor_prefix":           "BILLSCAN_EXTRACTOR_VENDOR_PREFIX",
		"extractor.default_tax_pct":         "BILLSCAN_EXTRACTOR_DEFAULT_TAX_PCT",
		"extractor.generic_item_cap":        "BILLSCAN_EXTRACTOR_GENERIC_ITEM_CAP",
		"extractor.max_batch":               "BILLSCAN_EXTRACTOR_MAX_BATCH",
		"extractor.catalog":                 "BILLSCAN_EXTRACTOR_CATALOG",
		"extractor.address_boundaries":      "BILLSCAN_EXTRACTOR_ADDRESS_BOUNDARIES",
		"extractor.notes_boundaries":        "BILLSCAN_EXTRACTOR_NOTES_BOUNDARIES",
		"extractor.trailing_artifacts":      "BILLSCAN_EXTRACTOR_TRAILING_ARTIFACTS",
		"extractor.weight.letter_digit":     "BILLSCAN_EXTRACTOR_WEIGHT_LETTER_DIGIT",
		"extractor.weight.separator":        "BILLSCAN_EXTRACTOR_WEIGHT_SEPARATOR",
		"extractor.weight.preferred_length": "BILLSCAN_EXTRACTOR_WEIGHT_PREFERRED_LENGTH",
		"extractor.weight.overlong":         "BILLSCAN_EXTRACTOR_WEIGHT_OVERLONG",
		"extractor.weight.letter_start":     "BILLSCAN_EXTRACTOR_WEIGHT_LETTER_START",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BILLSCAN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLSCAN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Auth = AuthConfig{
		Secret: v.GetString("auth.secret"),
		Issuer: v.GetString("auth.issuer"),
		Expiry: v.GetDuration("auth.expiry"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	catalog, err := parseCatalog(v.GetString("extractor.catalog"))
	if err != nil {
		return nil, fmt.Errorf("invalid extractor.catalog: %w", err)
	}
	cfg.Extractor = ExtractorConfig{
		VendorPrefix:      v.GetString("extractor.vendor_prefix"),
		DefaultTaxPct:     v.GetFloat64("extractor.default_tax_pct"),
		GenericItemCap:    v.GetInt("extractor.generic_item_cap"),
		MaxBatch:          v.GetInt("extractor.max_batch"),
		Catalog:           catalog,
		AddressBoundaries: splitList(v.GetString("extractor.address_boundaries")),
		NotesBoundaries:   splitList(v.GetString("extractor.notes_boundaries")),
		TrailingArtifacts: splitList(v.GetString("extractor.trailing_artifacts")),
		Weights: WeightConfig{
			LetterDigit:     v.GetInt("extractor.weight.letter_digit"),
			Separator:       v.GetInt("extractor.weight.separator"),
			PreferredLength: v.GetInt("extractor.weight.preferred_length"),
			Overlong:        v.GetInt("extractor.weight.overlong"),
			LetterStart:     v.GetInt("extractor.weight.letter_start"),
		},
	}

	return cfg, nil
}

// splitList parses a comma-separated string into trimmed non-empty elements.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseCatalog parses "Name:pct,Name:pct" into catalog entries.
func parseCatalog(s string) ([]CatalogEntry, error) {
	var entries []CatalogEntry
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, pctStr, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Errorf("entry %q missing tax rate", part)
		}
		pct, err := strconv.ParseFloat(strings.TrimSpace(pctStr), 64)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", part, err)
		}
		entries = append(entries, CatalogEntry{Name: strings.TrimSpace(name), TaxPct: pct})
	}
	return entries, nil
}
