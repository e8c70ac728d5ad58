package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/adminpanel/internal/client/guard"
	"github.com/dmitrijs2005/adminpanel/internal/logging"
)

// Logical paths of the console views.
const (
	RootPath             = "/"
	LoginPath            = guard.LoginPath
	DashboardPath        = "/dashboard"
	CreateSuperAdminPath = "/create-super-admin"
	ViewSuperAdminsPath  = "/view-super-admins"
	SuperAdminPath       = "/super-admin/{id}"
	OTPVerificationPath  = "/otp-verification"
	NewPasswordPath      = "/new-password"
)

// maxRedirects bounds how many views one Open may chain through.
const maxRedirects = 8

var (
	ErrNoRoute          = errors.New("no such page")
	ErrTooManyRedirects = errors.New("too many redirects")
)

// Params carries path parameters ("{id}") and query values of the opened path.
type Params map[string]string

type Handler func(ctx context.Context, p Params) error

type route struct {
	pattern  string
	segments []string
	handler  Handler
}

// Router maps logical paths to views. Navigate only queues a path; Open runs
// the queue, so a view may redirect by navigating before it returns.
type Router struct {
	routes  []route
	queue   []string
	current string
	logger  logging.Logger
}

func NewRouter(logger logging.Logger) *Router {
	return &Router{logger: logger.With("component", "router")}
}

// Handle registers h for pattern. A segment written as {name} matches any
// non-empty segment and is passed to h as Params[name].
func (r *Router) Handle(pattern string, h Handler) {
	r.routes = append(r.routes, route{
		pattern:  pattern,
		segments: splitPath(pattern),
		handler:  h,
	})
}

// Navigate queues path to be opened once the running view returns.
func (r *Router) Navigate(_ context.Context, path string) {
	r.queue = append(r.queue, path)
}

// Open shows path and then follows every navigation the views queue.
func (r *Router) Open(ctx context.Context, path string) error {
	r.Navigate(ctx, path)
	defer func() { r.queue = r.queue[:0] }()

	for hops := 0; len(r.queue) > 0; hops++ {
		if hops >= maxRedirects {
			return fmt.Errorf("%w opening %s", ErrTooManyRedirects, path)
		}

		next := r.queue[0]
		r.queue = r.queue[1:]

		h, params, ok := r.match(next)
		if !ok {
			return fmt.Errorf("%s: %w", next, ErrNoRoute)
		}

		r.logger.Debug(ctx, "open", "path", next)
		r.current = next
		if err := h(ctx, params); err != nil {
			return err
		}
	}
	return nil
}

// Current is the path of the view opened last.
func (r *Router) Current() string {
	return r.current
}

// PathFor fills the {name} segments of pattern from args, in order.
func PathFor(pattern string, args ...string) string {
	segments := splitPath(pattern)
	for i, s := range segments {
		if isParam(s) && len(args) > 0 {
			segments[i] = url.PathEscape(args[0])
			args = args[1:]
		}
	}
	return "/" + strings.Join(segments, "/")
}

func (r *Router) match(path string) (Handler, Params, bool) {
	rawPath, rawQuery, _ := strings.Cut(path, "?")
	segments := splitPath(rawPath)

	for _, rt := range r.routes {
		params, ok := matchSegments(rt.segments, segments)
		if !ok {
			continue
		}
		if rawQuery != "" {
			values, err := url.ParseQuery(rawQuery)
			if err != nil {
				return nil, nil, false
			}
			for k := range values {
				params[k] = values.Get(k)
			}
		}
		return rt.handler, params, true
	}
	return nil, nil, false
}

func matchSegments(pattern, path []string) (Params, bool) {
	if len(pattern) != len(path) {
		return nil, false
	}

	params := Params{}
	for i, p := range pattern {
		switch {
		case isParam(p):
			v, err := url.PathUnescape(path[i])
			if err != nil || v == "" {
				return nil, false
			}
			params[strings.Trim(p, "{}")] = v
		case p != path[i]:
			return nil, false
		}
	}
	return params, true
}

func isParam(segment string) bool {
	return len(segment) > 2 && strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}")
}

// splitPath turns "/a/b/" into [a b]; the root path is an empty slice.
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "/")
}
