package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"github.com/dmitrijs2005/adminpanel/internal/client/config"
	"github.com/dmitrijs2005/adminpanel/internal/client/guard"
	"github.com/dmitrijs2005/adminpanel/internal/client/repositories/namespace"
	"github.com/dmitrijs2005/adminpanel/internal/client/services"
	"github.com/dmitrijs2005/adminpanel/internal/client/storage"
	"github.com/dmitrijs2005/adminpanel/internal/client/store"
	"github.com/dmitrijs2005/adminpanel/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger

	storage *storage.Storage
	store   store.Store

	authService services.AuthService
	superAdmins services.SuperAdminService
	recovery    services.RecoveryService
	guard       *guard.Guard
	router      *Router

	// resetGrant is handed from OTP verification to the new-password view.
	resetGrant string

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the configured storage and wires the console. When the
// storage cannot be opened the console still starts: every read reports
// nothing stored and every write fails.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	st, err := storage.Open(ctx, storage.Options{
		Driver: c.StorageDriver,
		Path:   c.DatabasePath,
		DSN:    c.DatabaseDSN,
		Origin: c.Origin,
	})

	var ns namespace.Repository
	switch {
	case errors.Is(err, storage.ErrUnknownDriver):
		return nil, err
	case err != nil:
		logger.Warn(ctx, "storage unavailable, nothing will be persisted", "driver", c.StorageDriver, "error", err)
		ns = namespace.Unavailable{}
	default:
		ns = st.Namespace
	}

	a := newApp(c, logger, ns, bufio.NewReader(os.Stdin), os.Stdout)
	a.storage = st
	return a, nil
}

func newApp(c *config.Config, logger logging.Logger, ns namespace.Repository, reader *bufio.Reader, out io.Writer) *App {
	st := store.NewStore(ns, store.WithLogger(logger))
	router := NewRouter(logger)

	a := &App{
		config:      c,
		logger:      logger,
		store:       st,
		authService: services.NewAuthService(st, logger),
		superAdmins: services.NewSuperAdminService(st, logger),
		recovery: services.NewRecoveryService(services.RecoveryConfig{
			Code:     c.OTPCode,
			Cooldown: c.OTPResendCooldown,
			Secret:   []byte(c.ResetSecret),
		}, logger),
		router: router,
		reader: reader,
		out:    out,
	}
	a.guard = guard.New(st, router, guard.WithLogger(logger), guard.WithLoading(func(ctx context.Context) {
		logger.Debug(ctx, "checking session", "path", router.Current())
	}))
	a.registerRoutes()
	return a
}

func (a *App) registerRoutes() {
	a.router.Handle(RootPath, a.homeView)
	a.router.Handle(LoginPath, a.loginView)
	a.router.Handle(DashboardPath, a.protect(a.dashboardView))
	a.router.Handle(CreateSuperAdminPath, a.protect(a.createSuperAdminView))
	a.router.Handle(ViewSuperAdminsPath, a.protect(a.listSuperAdminsView))
	a.router.Handle(SuperAdminPath, a.protect(a.superAdminView))
	a.router.Handle(OTPVerificationPath, a.otpVerificationView)
	a.router.Handle(NewPasswordPath, a.newPasswordView)
}

// protect puts a view behind the session guard.
func (a *App) protect(h Handler) Handler {
	return func(ctx context.Context, p Params) error {
		view := a.guard.Protect(func(ctx context.Context) error {
			return h(ctx, p)
		})
		return view(ctx)
	}
}

// Close releases the storage handle.
func (a *App) Close() error {
	if a.storage == nil {
		return nil
	}
	return a.storage.Close()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.authService.CurrentUser(ctx) != nil
}
