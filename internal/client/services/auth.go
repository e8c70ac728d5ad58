// Package services contains the console's application services. They sit
// between the views and the record store: login and logout, super-admin
// management and account recovery.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/adminpanel/internal/client/models"
	"github.com/dmitrijs2005/adminpanel/internal/client/store"
	"github.com/dmitrijs2005/adminpanel/internal/common"
	"github.com/dmitrijs2005/adminpanel/internal/logging"
)

// AuthService manages the single stored session.
//
// Contract:
//   - Login: authenticate and persist the session; rejected credentials
//     yield common.ErrInvalidCredentials. The password buffer is wiped.
//   - Logout: remove the session; safe to call without one.
//   - CurrentUser: the stored session user, or nil.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) *models.User
}

type authService struct {
	store  store.Store
	logger logging.Logger
}

func NewAuthService(s store.Store, logger logging.Logger) AuthService {
	return &authService{store: s, logger: logger.With("service", "auth")}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	defer common.WipeByteArray(password)

	user, err := a.store.AuthenticateUser(ctx, email, string(password))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil {
		return nil, common.ErrInvalidCredentials
	}

	a.logger.Info(ctx, "logged in", "email", user.Email, "role", user.Role)
	return user, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.RemoveUser(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	a.logger.Info(ctx, "logged out")
	return nil
}

func (a *authService) CurrentUser(ctx context.Context) *models.User {
	return a.store.GetUser(ctx)
}
