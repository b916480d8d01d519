package main

// POST /auth/register, /auth/login, /auth/logout - Session
// GET /me, PUT /me/profile, POST /me/pin - Current user and settings
// POST /wallet/fund, GET /transactions - Wallet and ledger
// GET /products?category=, DELETE /products/{id} - Catalog
// GET /vendors, POST /vendors, GET /vendors/{id}/products - Vendors
// GET|DELETE /cart, POST /cart/{add,increment,decrement,remove} - Cart
// GET /likes, POST /likes/toggle - Likes
// POST /checkout/order - Checkout

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/emmanueljoseph223300-dotcom/Shop-Smart/config"
	"github.com/emmanueljoseph223300-dotcom/Shop-Smart/handler"
	"github.com/emmanueljoseph223300-dotcom/Shop-Smart/service"
	"github.com/emmanueljoseph223300-dotcom/Shop-Smart/store"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg.Dev)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Store ---
	st, err := openStore(cfg)
	if err != nil {
		logger.Fatal("open store", zap.String("backend", string(cfg.Backend)), zap.Error(err))
	}
	defer st.Close()
	logger.Info("store ready", zap.String("backend", string(cfg.Backend)))

	// --- Service ---
	svc, err := service.NewService(ctx, st,
		service.WithLogger(logger.Named("service")),
		service.WithCredentials(service.BcryptCredentials{Cost: cfg.BcryptCost}),
	)
	if err != nil {
		logger.Fatal("load state", zap.Error(err))
	}
	cancel := svc.Subscribe(func(e service.Event) {
		logger.Debug("state changed", zap.String("op", string(e.Op)), zap.Error(e.Err))
	})
	defer cancel()

	// --- Handlers ---
	h := handler.NewHandler(svc, logger.Named("http"))

	// --- Router ---
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	// --- Server ---
	srv := &http.Server{Addr: cfg.Addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("server running", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", zap.Error(err))
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendBolt:
		return store.OpenBolt(cfg.DBPath)
	case config.BackendSQLite:
		return store.OpenSQLite(cfg.DBPath)
	case config.BackendPostgres:
		return store.OpenPostgres(cfg.DatabaseURL)
	default:
		return store.NewMemoryStore(), nil
	}
}
