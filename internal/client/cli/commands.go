package cli

import (
	"context"
	"net/url"
)

func (a *App) Login(ctx context.Context) error {
	return a.router.Open(ctx, LoginPath)
}

func (a *App) Dashboard(ctx context.Context) error {
	return a.router.Open(ctx, DashboardPath)
}

func (a *App) Create(ctx context.Context) error {
	return a.router.Open(ctx, CreateSuperAdminPath)
}

func (a *App) List(ctx context.Context, term string) error {
	path := ViewSuperAdminsPath
	if term != "" {
		path += "?" + url.Values{"q": {term}}.Encode()
	}
	return a.router.Open(ctx, path)
}

func (a *App) Show(ctx context.Context, id string) error {
	return a.router.Open(ctx, PathFor(SuperAdminPath, id))
}

// Forgot starts the password-reset flow.
func (a *App) Forgot(ctx context.Context) error {
	return a.router.Open(ctx, OTPVerificationPath)
}

func (a *App) Open(ctx context.Context, path string) error {
	return a.router.Open(ctx, path)
}
