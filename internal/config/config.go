// Package config holds the hoteld runtime settings.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MarkoPoloResearchLab/hotel/pkg/hotel"
	"github.com/shopspring/decimal"
)

// Store backends.
const (
	StoreGorm = "gorm"
	StorePgx  = "pgx"
)

const (
	defaultDatabaseURL       = "sqlite:///tmp/hotel.db"
	defaultGRPCListenAddr    = ":7000"
	defaultAllowedOrigin     = "http://localhost:8000"
	defaultSessionIssuer     = "tauth"
	defaultSessionCookie     = "app_session"
	defaultAdminRole         = "admin"
	defaultAMQPExchange      = "hotel.events"
	defaultRequestTimeout    = 5 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
	postgresScheme           = "postgres://"
	postgresqlScheme         = "postgresql://"
	errorMessageInvalidLimit = "%s must be a positive decimal: %w"
)

var errInvalidConfig = errors.New("invalid config")

// Config aggregates runtime settings for hoteld.
type Config struct {
	DatabaseURL    string
	Store          string
	GRPCListenAddr string
	// HTTPListenAddr enables the session-authenticated HTTP API when set.
	HTTPListenAddr    string
	AllowedOrigins    []string
	SessionSigningKey string
	SessionIssuer     string
	SessionCookieName string
	AdminRole         string
	// AMQPURL enables RabbitMQ event publishing; events are only logged otherwise.
	AMQPURL         string
	AMQPExchange    string
	DefaultCurrency string
	MaxDeposit      string
	MinWithdrawal   string
	LogFile         string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Validate fills defaults and ensures the configuration contains sane values.
func (cfg *Config) Validate() error {
	cfg.DatabaseURL = defaultIfEmpty(cfg.DatabaseURL, defaultDatabaseURL)
	cfg.Store = strings.ToLower(defaultIfEmpty(cfg.Store, StoreGorm))
	cfg.GRPCListenAddr = defaultIfEmpty(cfg.GRPCListenAddr, defaultGRPCListenAddr)
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{defaultAllowedOrigin}
	}
	cfg.SessionIssuer = defaultIfEmpty(cfg.SessionIssuer, defaultSessionIssuer)
	cfg.SessionCookieName = defaultIfEmpty(cfg.SessionCookieName, defaultSessionCookie)
	cfg.AdminRole = defaultIfEmpty(cfg.AdminRole, defaultAdminRole)
	cfg.AMQPExchange = defaultIfEmpty(cfg.AMQPExchange, defaultAMQPExchange)
	cfg.DefaultCurrency = defaultIfEmpty(cfg.DefaultCurrency, hotel.CurrencyBYN.String())
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	switch cfg.Store {
	case StoreGorm:
	case StorePgx:
		if !cfg.IsPostgres() {
			return fmt.Errorf("%w: store %q requires a postgres database url", errInvalidConfig, StorePgx)
		}
	default:
		return fmt.Errorf("%w: unsupported store %q", errInvalidConfig, cfg.Store)
	}
	if _, err := hotel.ParseCurrency(cfg.DefaultCurrency); err != nil {
		return fmt.Errorf("%w: %w", errInvalidConfig, err)
	}
	if _, err := cfg.WalletLimits(); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.HTTPListenAddr) != "" {
		if len(cfg.SessionSigningKey) == 0 {
			return fmt.Errorf("%w: jwt signing key is required for the http api", errInvalidConfig)
		}
	}
	return nil
}

// IsPostgres reports whether DatabaseURL points at PostgreSQL.
func (cfg Config) IsPostgres() bool {
	return strings.HasPrefix(cfg.DatabaseURL, postgresScheme) || strings.HasPrefix(cfg.DatabaseURL, postgresqlScheme)
}

// Currency returns the validated default account currency.
func (cfg Config) Currency() hotel.Currency {
	currency, err := hotel.ParseCurrency(cfg.DefaultCurrency)
	if err != nil {
		return hotel.CurrencyBYN
	}
	return currency
}

// WalletLimits overlays the configured limits on the service defaults.
func (cfg Config) WalletLimits() (hotel.WalletLimits, error) {
	limits := hotel.DefaultWalletLimits()
	if strings.TrimSpace(cfg.MaxDeposit) != "" {
		maxDeposit, err := parseLimit(cfg.MaxDeposit)
		if err != nil {
			return hotel.WalletLimits{}, fmt.Errorf(errorMessageInvalidLimit, "max deposit", err)
		}
		limits.MaxDeposit = maxDeposit
	}
	if strings.TrimSpace(cfg.MinWithdrawal) != "" {
		minWithdrawal, err := parseLimit(cfg.MinWithdrawal)
		if err != nil {
			return hotel.WalletLimits{}, fmt.Errorf(errorMessageInvalidLimit, "min withdrawal", err)
		}
		limits.MinWithdrawal = minWithdrawal
	}
	return limits, nil
}

func parseLimit(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %w", errInvalidConfig, err)
	}
	if !value.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: %s is not positive", errInvalidConfig, raw)
	}
	return value, nil
}

func defaultIfEmpty(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// ParseAllowedOrigins splits comma-delimited origins into a slice.
func ParseAllowedOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	normalized := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	return normalized
}
