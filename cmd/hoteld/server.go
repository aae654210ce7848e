package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	hotelv1 "github.com/MarkoPoloResearchLab/hotel/api/hotel/v1"
	"github.com/MarkoPoloResearchLab/hotel/internal/config"
	"github.com/MarkoPoloResearchLab/hotel/internal/grpcserver"
	"github.com/MarkoPoloResearchLab/hotel/internal/httpapi"
	"github.com/MarkoPoloResearchLab/hotel/internal/logging"
	"github.com/MarkoPoloResearchLab/hotel/internal/notify"
	"github.com/MarkoPoloResearchLab/hotel/internal/store/gormstore"
	"github.com/MarkoPoloResearchLab/hotel/internal/store/pgstore"
	"github.com/MarkoPoloResearchLab/hotel/pkg/hotel"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tyemirov/tauth/pkg/sessionvalidator"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"
)

// roomCatalog is the catalog maintenance surface both store backends expose.
type roomCatalog interface {
	UpsertRoom(ctx context.Context, room hotel.Room) (hotel.Room, error)
}

type backend struct {
	store   hotel.Store
	catalog roomCatalog
	close   func()
}

func runServer(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.NewLogger(logging.Options{FilePath: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	storage, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("database open: %w", err)
	}
	defer storage.close()

	notifier, closeNotifier, err := buildNotifier(cfg, logger)
	if err != nil {
		return err
	}
	defer closeNotifier()

	limits, err := cfg.WalletLimits()
	if err != nil {
		return err
	}
	hotelService, err := hotel.NewService(storage.store, func() time.Time { return time.Now().UTC() },
		hotel.WithOperationLogger(logging.NewOperationLogger(logger)),
		hotel.WithNotifier(notifier),
		hotel.WithWalletLimits(limits),
		hotel.WithDefaultCurrency(cfg.Currency()),
	)
	if err != nil {
		return fmt.Errorf("hotel service init: %w", err)
	}

	lis, err := net.Listen("tcp", cfg.GRPCListenAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	grpcServer := grpc.NewServer()
	hotelv1.RegisterHotelServiceServer(grpcServer, grpcserver.NewHotelServiceServer(hotelService))

	errCh := make(chan error, 2)
	go func() {
		logger.Info("gRPC server starting", zap.String("listen_addr", cfg.GRPCListenAddr), zap.String("store", cfg.Store))
		errCh <- grpcServer.Serve(lis)
	}()

	httpCtx, stopHTTP := context.WithCancel(ctx)
	defer stopHTTP()
	if cfg.HTTPListenAddr != "" {
		sessionValidator, err := sessionvalidator.New(sessionvalidator.Config{
			SigningKey: []byte(cfg.SessionSigningKey),
			Issuer:     cfg.SessionIssuer,
			CookieName: cfg.SessionCookieName,
		})
		if err != nil {
			grpcServer.Stop()
			return fmt.Errorf("session validator: %w", err)
		}
		router := httpapi.NewRouter(httpapi.Config{
			AllowedOrigins: cfg.AllowedOrigins,
			AdminRole:      cfg.AdminRole,
			RequestTimeout: cfg.RequestTimeout,
		}, hotelService, sessionValidator, logger)
		go func() {
			if serveErr := httpapi.Serve(httpCtx, cfg.HTTPListenAddr, router, cfg.ShutdownTimeout, logger); serveErr != nil {
				errCh <- fmt.Errorf("http api: %w", serveErr)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
		stopHTTP()
		grpcServer.GracefulStop()
		if serveErr := <-errCh; serveErr != nil && !errors.Is(serveErr, grpc.ErrServerStopped) {
			return serveErr
		}
		return nil
	case serveErr := <-errCh:
		stopHTTP()
		grpcServer.Stop()
		if errors.Is(serveErr, grpc.ErrServerStopped) {
			return nil
		}
		return serveErr
	}
}

func buildNotifier(cfg *config.Config, logger *zap.Logger) (hotel.Notifier, func(), error) {
	if cfg.AMQPURL == "" {
		return notify.NewLogNotifier(logger), func() {}, nil
	}
	publisher, err := notify.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, nil, fmt.Errorf("event publisher: %w", err)
	}
	logger.Info("publishing events", zap.String("exchange", cfg.AMQPExchange))
	return publisher, func() { _ = publisher.Close() }, nil
}

func openBackend(ctx context.Context, cfg *config.Config) (backend, error) {
	if cfg.Store == config.StorePgx {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return backend{}, err
		}
		store := pgstore.New(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return backend{}, fmt.Errorf("migrate: %w", err)
		}
		return backend{store: store, catalog: store, close: pool.Close}, nil
	}

	gormDB, cleanup, driver, err := openDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		return backend{}, err
	}
	if err := prepareSchema(gormDB, driver); err != nil {
		_ = cleanup()
		return backend{}, err
	}
	store := gormstore.New(gormDB)
	return backend{store: store, catalog: store, close: func() { _ = cleanup() }}, nil
}

func openDatabase(ctx context.Context, dsn string) (*gorm.DB, func() error, string, error) {
	driver, sqlitePath, err := resolveDriver(dsn)
	if err != nil {
		return nil, nil, "", err
	}

	var db *gorm.DB
	gormConfig := &gorm.Config{}
	switch driver {
	case driverPostgres:
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
	case driverSQLite:
		db, err = gorm.Open(sqlite.Open(sqlitePath), gormConfig)
	default:
		return nil, nil, "", fmt.Errorf("unsupported database scheme %q", driver)
	}
	if err != nil {
		return nil, nil, "", err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, "", err
	}
	if driver == driverSQLite {
		// SQLite has no row locks; one connection serializes the units of work.
		sqlDB.SetMaxOpenConns(1)
	}
	cleanup := func() error { return sqlDB.Close() }
	return db.WithContext(ctx), cleanup, driver, nil
}

func resolveDriver(dsn string) (string, string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return driverPostgres, "", nil
	}
	if strings.HasPrefix(dsn, "sqlite://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", "", fmt.Errorf("parse sqlite url: %w", err)
		}
		path := u.Path
		if path == "" {
			path = u.Host
		}
		if path == "" || path == "/" {
			path = "hotel.db"
		}
		sqlitePath, err := normalizeSQLitePath(path)
		return driverSQLite, sqlitePath, err
	}
	// Treat everything else as a direct sqlite path.
	sqlitePath, err := normalizeSQLitePath(dsn)
	return driverSQLite, sqlitePath, err
}

func normalizeSQLitePath(path string) (string, error) {
	if path == ":memory:" {
		return path, nil
	}
	if strings.HasPrefix(path, "/") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", err
		}
		return path, nil
	}
	abs := filepath.Join(".", path)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", err
	}
	return abs, nil
}

func prepareSchema(db *gorm.DB, driver string) error {
	if err := gormstore.Migrate(db); err != nil {
		return fmt.Errorf("auto migrate (%s): %w", driver, err)
	}
	return nil
}
