package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/adminpanel/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// homeView sends the user to the dashboard when a session exists and to the
// login view otherwise.
func (a *App) homeView(ctx context.Context, _ Params) error {
	if a.isLoggedIn(ctx) {
		a.router.Navigate(ctx, DashboardPath)
	} else {
		a.router.Navigate(ctx, LoginPath)
	}
	return nil
}

// loginView prompts for credentials and opens the dashboard on success.
// Rejected credentials leave the user on the login view.
func (a *App) loginView(ctx context.Context, _ Params) error {
	fmt.Fprintln(a.out, "Sign in to the admin panel")

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Login(ctx, email, password)
	if errors.Is(err, common.ErrInvalidCredentials) {
		fmt.Fprintln(a.out, "Login failed: email and password are required")
		return nil
	}
	if err != nil {
		a.logger.Error(ctx, "login failed", "error", err)
		fmt.Fprintln(a.out, "Login failed, please try again.")
		return nil
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", user.Email, user.Role)
	a.router.Navigate(ctx, DashboardPath)
	return nil
}

// Logout removes the stored session and returns to the login view.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return a.router.Open(ctx, LoginPath)
}
