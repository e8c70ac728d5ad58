package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/adminpanel/internal/client/models"
)

// Authenticator turns credentials into a User. A nil user with a nil error
// means the credentials were rejected.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// MockAuthenticator accepts any non-empty email/password pair. It stands in
// for a real authentication service; there is no credential check.
type MockAuthenticator struct {
	// NewID generates user identifiers. Defaults to random UUIDs.
	NewID func() string
}

func (m MockAuthenticator) Authenticate(_ context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, nil
	}

	newID := m.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	return &models.User{
		ID:    newID(),
		Email: email,
		Role:  models.RoleForEmail(email),
	}, nil
}
