// Package guard gates protected console views behind a stored session.
//
// A mount reads the session exactly once. With a user present the view runs
// with that user in its context; without one the guard asks the navigator for
// the login path once and the view never runs. Nothing is re-checked until
// the next mount.
package guard

import (
	"context"
	"sync/atomic"

	"github.com/dmitrijs2005/adminpanel/internal/client/models"
	"github.com/dmitrijs2005/adminpanel/internal/logging"
)

// LoginPath is where unauthenticated mounts are sent.
const LoginPath = "/login"

type State int32

const (
	StateChecking State = iota
	StateAuthorized
	StateRedirecting
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthorized:
		return "authorized"
	case StateRedirecting:
		return "redirecting"
	default:
		return "unknown"
	}
}

// SessionReader is the part of the record store the guard consults.
type SessionReader interface {
	GetUser(ctx context.Context) *models.User
}

type Navigator interface {
	Navigate(ctx context.Context, path string)
}

// View is anything the guard can mount.
type View func(ctx context.Context) error

type Guard struct {
	sessions  SessionReader
	nav       Navigator
	logger    logging.Logger
	onLoading func(ctx context.Context)

	state atomic.Int32
}

type Option func(*Guard)

func WithLogger(l logging.Logger) Option {
	return func(g *Guard) { g.logger = l }
}

// WithLoading registers a hook called when a mount enters the checking state.
func WithLoading(fn func(ctx context.Context)) Option {
	return func(g *Guard) { g.onLoading = fn }
}

func New(sessions SessionReader, nav Navigator, opts ...Option) *Guard {
	g := &Guard{
		sessions: sessions,
		nav:      nav,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "guard")
	return g
}

// Mount performs one session check and either runs view or redirects.
// The only error returned is the view's own.
func (g *Guard) Mount(ctx context.Context, view View) error {
	g.state.Store(int32(StateChecking))
	if g.onLoading != nil {
		g.onLoading(ctx)
	}

	user := g.sessions.GetUser(ctx)
	if user == nil {
		g.state.Store(int32(StateRedirecting))
		g.logger.Debug(ctx, "no session, redirecting", "to", LoginPath)
		g.nav.Navigate(ctx, LoginPath)
		return nil
	}

	g.state.Store(int32(StateAuthorized))
	return view(WithUser(ctx, user))
}

// Protect wraps view so every invocation is a fresh mount.
func (g *Guard) Protect(view View) View {
	return func(ctx context.Context) error {
		return g.Mount(ctx, view)
	}
}

// State reports the state reached by the most recent mount.
func (g *Guard) State() State {
	return State(g.state.Load())
}
