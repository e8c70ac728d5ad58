package services

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/adminpanel/internal/client/models"
	"github.com/dmitrijs2005/adminpanel/internal/client/store"
	"github.com/dmitrijs2005/adminpanel/internal/common"
	"github.com/dmitrijs2005/adminpanel/internal/logging"
)

// Form field names, as reported by ValidationError.
const (
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldSuperAdminID = "superadminId"
	FieldOrgID        = "orgId"
)

const (
	minPasswordLength = 8
	minIDLength       = 3

	recentWindow = 7 * 24 * time.Hour
	recentLimit  = 3
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// CreateRequest is the create-super-admin form. Password is checked but
// never stored.
type CreateRequest struct {
	Email        string
	Password     string
	SuperAdminID string
	OrgID        string
}

// ValidationError maps form fields to a message. It matches
// common.ErrValidation with errors.Is.
type ValidationError map[string]string

func (v ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(common.ErrValidation.Error())
	for i, field := range slices.Sorted(maps.Keys(v)) {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(field + ": " + v[field])
	}
	return b.String()
}

func (v ValidationError) Unwrap() error {
	return common.ErrValidation
}

// Stats is the dashboard summary.
type Stats struct {
	Total         int
	Organizations int
	LastWeek      int
	MostRecent    []models.SuperAdmin
}

// SuperAdminService manages the super-admin sequence.
//
// Contract:
//   - Create: validate the form, append a record with a fresh id and the
//     current time; a ValidationError is returned when any field fails.
//   - List: records whose email, superadminId or orgId contain term,
//     case-insensitively; all records for an empty term. Insertion order.
//   - Get: the first record with the id, or common.ErrNotFound.
//   - Stats: totals for the dashboard: records, distinct orgIds, records
//     created in the last 7 days and the 3 newest records.
type SuperAdminService interface {
	Create(ctx context.Context, req CreateRequest) (models.SuperAdmin, error)
	List(ctx context.Context, term string) []models.SuperAdmin
	Get(ctx context.Context, id string) (models.SuperAdmin, error)
	Stats(ctx context.Context) Stats
}

type superAdminService struct {
	store  store.Store
	logger logging.Logger
	now    func() time.Time
	newID  func() string
}

type SuperAdminOption func(*superAdminService)

// WithClock overrides the time source used for createdAt and Stats.
func WithClock(now func() time.Time) SuperAdminOption {
	return func(s *superAdminService) { s.now = now }
}

func WithIDGenerator(newID func() string) SuperAdminOption {
	return func(s *superAdminService) { s.newID = newID }
}

func NewSuperAdminService(s store.Store, logger logging.Logger, opts ...SuperAdminOption) SuperAdminService {
	svc := &superAdminService{
		store:  s,
		logger: logger.With("service", "superadmins"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Validate checks a create form. It returns nil when every field passes.
func (r CreateRequest) Validate() error {
	errs := ValidationError{}

	switch {
	case r.Email == "":
		errs[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(r.Email):
		errs[FieldEmail] = "Email is invalid"
	}

	switch {
	case r.Password == "":
		errs[FieldPassword] = "Password is required"
	case utf8.RuneCountInString(r.Password) < minPasswordLength:
		errs[FieldPassword] = fmt.Sprintf("Password must be at least %d characters", minPasswordLength)
	}

	switch {
	case r.SuperAdminID == "":
		errs[FieldSuperAdminID] = "Super Admin ID is required"
	case utf8.RuneCountInString(r.SuperAdminID) < minIDLength:
		errs[FieldSuperAdminID] = fmt.Sprintf("Super Admin ID must be at least %d characters", minIDLength)
	}

	switch {
	case r.OrgID == "":
		errs[FieldOrgID] = "Organization ID is required"
	case utf8.RuneCountInString(r.OrgID) < minIDLength:
		errs[FieldOrgID] = fmt.Sprintf("Organization ID must be at least %d characters", minIDLength)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (s *superAdminService) Create(ctx context.Context, req CreateRequest) (models.SuperAdmin, error) {
	if err := req.Validate(); err != nil {
		return models.SuperAdmin{}, err
	}

	record := models.SuperAdmin{
		ID:           s.newID(),
		Email:        req.Email,
		SuperAdminID: req.SuperAdminID,
		OrgID:        req.OrgID,
		CreatedAt:    models.FormatCreatedAt(s.now()),
	}

	if err := s.store.SaveSuperAdmin(ctx, record); err != nil {
		return models.SuperAdmin{}, fmt.Errorf("create super admin: %w", err)
	}

	s.logger.Info(ctx, "super admin created", "id", record.ID, "superadmin_id", record.SuperAdminID)
	return record, nil
}

func (s *superAdminService) List(ctx context.Context, term string) []models.SuperAdmin {
	all := s.store.GetSuperAdmins(ctx)

	term = strings.TrimSpace(term)
	if term == "" {
		return all
	}

	out := make([]models.SuperAdmin, 0, len(all))
	for _, r := range all {
		if matches(r, term) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.SuperAdmin, term string) bool {
	for _, field := range []string{r.Email, r.SuperAdminID, r.OrgID} {
		if common.ContainsFold(field, term) {
			return true
		}
	}
	return false
}

func (s *superAdminService) Get(ctx context.Context, id string) (models.SuperAdmin, error) {
	for _, r := range s.store.GetSuperAdmins(ctx) {
		if r.ID == id {
			return r, nil
		}
	}
	return models.SuperAdmin{}, fmt.Errorf("super admin %q: %w", id, common.ErrNotFound)
}

func (s *superAdminService) Stats(ctx context.Context) Stats {
	all := s.store.GetSuperAdmins(ctx)
	cutoff := s.now().Add(-recentWindow)

	st := Stats{Total: len(all)}
	orgs := make(map[string]struct{}, len(all))
	for _, r := range all {
		orgs[r.OrgID] = struct{}{}
		if t, ok := r.CreatedTime(); ok && !t.Before(cutoff) {
			st.LastWeek++
		}
	}

	st.Organizations = len(orgs)

	sorted := slices.Clone(all)
	slices.SortStableFunc(sorted, compareNewestFirst)
	st.MostRecent = sorted[:min(recentLimit, len(sorted))]
	return st
}

// compareNewestFirst orders records by createdAt descending; records with an
// unparseable timestamp go last.
func compareNewestFirst(a, b models.SuperAdmin) int {
	ta, okA := a.CreatedTime()
	tb, okB := b.CreatedTime()
	switch {
	case okA && okB:
		return tb.Compare(ta)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}

// IsValidationError extracts the field messages from err, if any.
func IsValidationError(err error) (ValidationError, bool) {
	var v ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
