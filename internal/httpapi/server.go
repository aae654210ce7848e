// Package httpapi serves the hotel service to browsers behind a tauth session cookie.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/MarkoPoloResearchLab/hotel/pkg/hotel"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/tyemirov/tauth/pkg/sessionvalidator"
	"go.uber.org/zap"
)

const claimsContextKey = "auth_claims"

// Config carries the HTTP surface settings.
type Config struct {
	AllowedOrigins []string
	// AdminRole grants access to the operator routes under /api/admin.
	AdminRole      string
	RequestTimeout time.Duration
}

type httpHandler struct {
	logger       *zap.Logger
	hotelService *hotel.Service
	validate     *validator.Validate
	cfg          Config
}

// NewRouter wires the API routes.
func NewRouter(cfg Config, hotelService *hotel.Service, sessionValidator *sessionvalidator.Validator, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	handler := &httpHandler{
		logger:       logger,
		hotelService: hotelService,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		cfg:          cfg,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Origin", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(sessionValidator.GinMiddleware(claimsContextKey))

	api.GET("/rooms/available", handler.handleAvailableRooms)

	api.POST("/wallet", handler.handleOpenWallet)
	api.GET("/wallet", handler.handleBalance)
	api.POST("/wallet/deposits", handler.handleDeposit)
	api.POST("/wallet/withdrawals", handler.handleWithdraw)
	api.GET("/wallet/transactions", handler.handleTransactions)
	api.GET("/wallet/transactions/:id", handler.handleTransaction)

	api.POST("/bookings", handler.handleCreateBooking)
	api.GET("/bookings", handler.handleListBookings)
	api.GET("/bookings/:id", handler.handleGetBooking)
	api.POST("/bookings/:id/cancel", handler.handleCancelBooking)
	api.POST("/bookings/:id/complete", handler.handleCompleteBooking)

	admin := api.Group("/admin")
	admin.Use(handler.requireRole(cfg.AdminRole))
	admin.PATCH("/bookings/:id/status", handler.handleUpdateStatus)

	return router
}

// Serve runs handler on listenAddr until ctx is cancelled, then drains in-flight requests.
func Serve(ctx context.Context, listenAddr string, handler http.Handler, shutdownTimeout time.Duration, logger *zap.Logger) error {
	server := &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http api listening", zap.String("addr", listenAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Warn("server shutdown error", zap.Error(shutdownErr))
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		logger.Debug("http request",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Int("status", ctx.Writer.Status()),
			zap.Int("bytes", ctx.Writer.Size()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", ctx.ClientIP()),
		)
	}
}

func (handler *httpHandler) requireRole(role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims := getClaims(ctx)
		if claims == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(errorUnauthorized, "missing session"))
			return
		}
		if !slices.Contains(claims.GetUserRoles(), role) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, errorResponse(errorForbidden, "operator role required"))
			return
		}
		ctx.Next()
	}
}

func getClaims(ctx *gin.Context) *sessionvalidator.Claims {
	claimsValue, ok := ctx.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := claimsValue.(*sessionvalidator.Claims)
	return claims
}

// callerID resolves the session user or writes a 401.
func callerID(ctx *gin.Context) (hotel.UserID, bool) {
	claims := getClaims(ctx)
	if claims == nil {
		ctx.JSON(http.StatusUnauthorized, errorResponse(errorUnauthorized, "missing session"))
		return hotel.UserID{}, false
	}
	userID, err := hotel.NewUserID(claims.GetUserID())
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, errorResponse(errorUnauthorized, "session has no user"))
		return hotel.UserID{}, false
	}
	return userID, true
}

func (handler *httpHandler) requestContext(ctx *gin.Context) (context.Context, context.CancelFunc) {
	if handler.cfg.RequestTimeout <= 0 {
		return context.WithCancel(ctx.Request.Context())
	}
	return context.WithTimeout(ctx.Request.Context(), handler.cfg.RequestTimeout)
}
