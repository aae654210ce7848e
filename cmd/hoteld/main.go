package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/MarkoPoloResearchLab/hotel/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagDatabaseURL       = "database-url"
	flagStore             = "store"
	flagGRPCListenAddr    = "grpc-listen-addr"
	flagHTTPListenAddr    = "http-listen-addr"
	flagAllowedOrigins    = "allowed-origins"
	flagSessionSigningKey = "session-signing-key"
	flagSessionIssuer     = "session-issuer"
	flagSessionCookieName = "session-cookie-name"
	flagAdminRole         = "admin-role"
	flagAMQPURL           = "amqp-url"
	flagAMQPExchange      = "amqp-exchange"
	flagDefaultCurrency   = "default-currency"
	flagMaxDeposit        = "max-deposit"
	flagMinWithdrawal     = "min-withdrawal"
	flagLogFile           = "log-file"
	flagRequestTimeout    = "request-timeout"

	defaultDatabaseURL    = "sqlite:///tmp/hotel.db"
	defaultGRPCListenAddr = ":7000"
)

// envBindings maps viper keys to the environment variables that override them.
var envBindings = map[string]string{
	flagDatabaseURL:       "DATABASE_URL",
	flagStore:             "HOTEL_STORE",
	flagGRPCListenAddr:    "GRPC_LISTEN_ADDR",
	flagHTTPListenAddr:    "HTTP_LISTEN_ADDR",
	flagAllowedOrigins:    "ALLOWED_ORIGINS",
	flagSessionSigningKey: "SESSION_SIGNING_KEY",
	flagSessionIssuer:     "SESSION_ISSUER",
	flagSessionCookieName: "SESSION_COOKIE_NAME",
	flagAdminRole:         "ADMIN_ROLE",
	flagAMQPURL:           "AMQP_URL",
	flagAMQPExchange:      "AMQP_EXCHANGE",
	flagDefaultCurrency:   "DEFAULT_CURRENCY",
	flagMaxDeposit:        "MAX_DEPOSIT",
	flagMinWithdrawal:     "MIN_WITHDRAWAL",
	flagLogFile:           "LOG_FILE",
	flagRequestTimeout:    "REQUEST_TIMEOUT",
}

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "hoteld: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := &config.Config{}
	cmd := &cobra.Command{
		Use:           "hoteld",
		Short:         "Hotel booking and wallet service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd, cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String(flagDatabaseURL, defaultDatabaseURL, "sqlite:// path or postgres:// connection string")
	flags.String(flagStore, config.StoreGorm, "store backend: gorm or pgx (postgres only)")
	flags.String(flagGRPCListenAddr, defaultGRPCListenAddr, "gRPC listen address")
	flags.String(flagHTTPListenAddr, "", "HTTP API listen address (empty disables the HTTP API)")
	flags.String(flagAllowedOrigins, "", "comma-separated CORS origins for the HTTP API")
	flags.String(flagSessionSigningKey, "", "HS256 key used to validate session cookies")
	flags.String(flagSessionIssuer, "", "expected session issuer")
	flags.String(flagSessionCookieName, "", "session cookie name")
	flags.String(flagAdminRole, "", "session role allowed to change booking status")
	flags.String(flagAMQPURL, "", "RabbitMQ URL for event publishing (empty logs events instead)")
	flags.String(flagAMQPExchange, "", "RabbitMQ topic exchange")
	flags.String(flagDefaultCurrency, "", "currency for new accounts (BYN, USD, EUR)")
	flags.String(flagMaxDeposit, "", "largest accepted deposit")
	flags.String(flagMinWithdrawal, "", "smallest accepted withdrawal")
	flags.String(flagLogFile, "", "rotating log file written next to stdout")
	flags.Duration(flagRequestTimeout, 0, "per-request timeout for the HTTP API")

	cmd.AddCommand(newRoomsCommand(cfg))
	return cmd
}

func loadConfig(cmd *cobra.Command, cfg *config.Config) error {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			return err
		}
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(key)); err != nil {
			return err
		}
	}

	cfg.DatabaseURL = viper.GetString(flagDatabaseURL)
	cfg.Store = viper.GetString(flagStore)
	cfg.GRPCListenAddr = viper.GetString(flagGRPCListenAddr)
	cfg.HTTPListenAddr = viper.GetString(flagHTTPListenAddr)
	cfg.AllowedOrigins = config.ParseAllowedOrigins(viper.GetString(flagAllowedOrigins))
	cfg.SessionSigningKey = viper.GetString(flagSessionSigningKey)
	cfg.SessionIssuer = viper.GetString(flagSessionIssuer)
	cfg.SessionCookieName = viper.GetString(flagSessionCookieName)
	cfg.AdminRole = viper.GetString(flagAdminRole)
	cfg.AMQPURL = viper.GetString(flagAMQPURL)
	cfg.AMQPExchange = viper.GetString(flagAMQPExchange)
	cfg.DefaultCurrency = viper.GetString(flagDefaultCurrency)
	cfg.MaxDeposit = viper.GetString(flagMaxDeposit)
	cfg.MinWithdrawal = viper.GetString(flagMinWithdrawal)
	cfg.LogFile = viper.GetString(flagLogFile)
	cfg.RequestTimeout = viper.GetDuration(flagRequestTimeout)
	return cfg.Validate()
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, 30*time.Second)
}
