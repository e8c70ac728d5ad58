// Package store is the record store: the only component that reads or writes
// the durable namespace. It keeps two JSON records, the session user and the
// append-only super-admin sequence, and never fails a read: missing,
// unreadable or malformed data is reported as absent.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/adminpanel/internal/client/models"
	"github.com/dmitrijs2005/adminpanel/internal/client/repositories/namespace"
	"github.com/dmitrijs2005/adminpanel/internal/logging"
)

// Namespace keys.
const (
	UserKey        = "auth_user"
	SuperAdminsKey = "super_admins"
)

// Store is the surface the rest of the console depends on.
//
// Contract:
//   - SaveUser replaces the stored user wholesale; no field validation.
//   - GetUser returns nil when no user is stored or it cannot be read.
//   - RemoveUser is idempotent.
//   - SaveSuperAdmin appends to the sequence; no deduplication.
//   - GetSuperAdmins returns the sequence in insertion order, never nil.
//   - AuthenticateUser returns (nil, nil) for rejected credentials and
//     persists the user on success.
type Store interface {
	SaveUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context) *models.User
	RemoveUser(ctx context.Context) error
	SaveSuperAdmin(ctx context.Context, record models.SuperAdmin) error
	GetSuperAdmins(ctx context.Context) []models.SuperAdmin
	AuthenticateUser(ctx context.Context, email, password string) (*models.User, error)
}

type recordStore struct {
	ns     namespace.Repository
	auth   Authenticator
	logger logging.Logger

	// appendMu serialises the read-modify-write of SaveSuperAdmin.
	appendMu sync.Mutex
}

type Option func(*recordStore)

func WithLogger(l logging.Logger) Option {
	return func(s *recordStore) { s.logger = l }
}

func WithAuthenticator(a Authenticator) Option {
	return func(s *recordStore) { s.auth = a }
}

// NewStore builds a Store over ns. Without options it authenticates with
// MockAuthenticator and discards logs.
func NewStore(ns namespace.Repository, opts ...Option) Store {
	s := &recordStore{
		ns:     ns,
		auth:   MockAuthenticator{},
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "store")
	return s
}

func (s *recordStore) SaveUser(ctx context.Context, user models.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.ns.Set(ctx, UserKey, b); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *recordStore) GetUser(ctx context.Context) *models.User {
	b, err := s.ns.Get(ctx, UserKey)
	if err != nil {
		s.logger.Warn(ctx, "user unreadable, treating as logged out", "error", err)
		return nil
	}
	if b == nil {
		return nil
	}

	var user *models.User
	if err := json.Unmarshal(b, &user); err != nil {
		s.logger.Warn(ctx, "malformed user record, treating as logged out", "error", err)
		return nil
	}
	return user
}

func (s *recordStore) RemoveUser(ctx context.Context) error {
	if err := s.ns.Delete(ctx, UserKey); err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	return nil
}

func (s *recordStore) SaveSuperAdmin(ctx context.Context, record models.SuperAdmin) error {
	s.appendMu.Lock()
	defer s.appendMu.Unlock()

	appendRecord := func(current []byte) ([]byte, error) {
		records := append(s.decodeSuperAdmins(ctx, current), record)
		return json.Marshal(records)
	}

	if u, ok := s.ns.(namespace.Updater); ok {
		if err := u.Update(ctx, SuperAdminsKey, appendRecord); err != nil {
			return fmt.Errorf("save super admin: %w", err)
		}
		return nil
	}

	current, err := s.ns.Get(ctx, SuperAdminsKey)
	if err != nil {
		s.logger.Warn(ctx, "super admins unreadable, starting a new list", "error", err)
		current = nil
	}
	next, err := appendRecord(current)
	if err != nil {
		return fmt.Errorf("encode super admins: %w", err)
	}
	if err := s.ns.Set(ctx, SuperAdminsKey, next); err != nil {
		return fmt.Errorf("save super admin: %w", err)
	}
	return nil
}

func (s *recordStore) GetSuperAdmins(ctx context.Context) []models.SuperAdmin {
	b, err := s.ns.Get(ctx, SuperAdminsKey)
	if err != nil {
		s.logger.Warn(ctx, "super admins unreadable, treating as empty", "error", err)
		return []models.SuperAdmin{}
	}
	return s.decodeSuperAdmins(ctx, b)
}

func (s *recordStore) decodeSuperAdmins(ctx context.Context, b []byte) []models.SuperAdmin {
	records := []models.SuperAdmin{}
	if b == nil {
		return records
	}
	if err := json.Unmarshal(b, &records); err != nil {
		s.logger.Warn(ctx, "malformed super admins record, treating as empty", "error", err)
		return []models.SuperAdmin{}
	}
	if records == nil {
		return []models.SuperAdmin{}
	}
	return records
}

func (s *recordStore) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if err := s.SaveUser(ctx, *user); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "user authenticated", "user_id", user.ID, "role", user.Role)
	return user, nil
}
