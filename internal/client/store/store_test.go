package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/adminpanel/internal/client/models"
	"github.com/dmitrijs2005/adminpanel/internal/client/repositories/namespace"
	"github.com/dmitrijs2005/adminpanel/internal/common"
)

// plainNamespace hides Update so the store falls back to Get+Set.
type plainNamespace struct {
	namespace.Repository
}

type failingSetNamespace struct {
	namespace.Repository
}

func (failingSetNamespace) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func fixedID(id string) func() string {
	return func() string { return id }
}

func TestStore_SaveGetUser_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore(namespace.NewMemoryRepository())

	u := models.User{ID: "1", Email: "a@b.c", Role: models.RoleAdmin}
	require.NoError(t, s.SaveUser(ctx, u))

	got := s.GetUser(ctx)
	require.NotNil(t, got)
	if diff := cmp.Diff(u, *got); diff != "" {
		t.Fatalf("user mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_SaveUser_Overwrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore(namespace.NewMemoryRepository())

	require.NoError(t, s.SaveUser(ctx, models.User{ID: "1", Email: "first@x.io", Role: models.RoleAdmin}))
	require.NoError(t, s.SaveUser(ctx, models.User{ID: "2", Email: "superadmin@x.io", Role: models.RoleSuperAdmin}))

	got := s.GetUser(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "2", got.ID)
	assert.Equal(t, models.RoleSuperAdmin, got.Role)
}

func TestStore_GetUser_Absent(t *testing.T) {
	s := NewStore(namespace.NewMemoryRepository())
	assert.Nil(t, s.GetUser(context.Background()))
}

func TestStore_GetUser_MalformedIsAbsent(t *testing.T) {
	ctx := context.Background()
	ns := namespace.NewMemoryRepository()
	require.NoError(t, ns.Set(ctx, UserKey, []byte("{not json")))

	s := NewStore(ns)
	assert.Nil(t, s.GetUser(ctx))
}

func TestStore_GetUser_NullIsAbsent(t *testing.T) {
	ctx := context.Background()
	ns := namespace.NewMemoryRepository()
	require.NoError(t, ns.Set(ctx, UserKey, []byte("null")))

	assert.Nil(t, NewStore(ns).GetUser(ctx))
}

func TestStore_RemoveUser_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := NewStore(namespace.NewMemoryRepository())

	require.NoError(t, s.SaveUser(ctx, models.User{ID: "1", Email: "a@b.c", Role: models.RoleAdmin}))
	require.NoError(t, s.RemoveUser(ctx))
	assert.Nil(t, s.GetUser(ctx))

	require.NoError(t, s.RemoveUser(ctx))
	assert.Nil(t, s.GetUser(ctx))
}

func TestStore_GetSuperAdmins_EmptyNeverNil(t *testing.T) {
	got := NewStore(namespace.NewMemoryRepository()).GetSuperAdmins(context.Background())
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStore_GetSuperAdmins_MalformedIsEmpty(t *testing.T) {
	ctx := context.Background()
	ns := namespace.NewMemoryRepository()
	require.NoError(t, ns.Set(ctx, SuperAdminsKey, []byte(`{"id":"x"}`)))

	got := NewStore(ns).GetSuperAdmins(ctx)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStore_SaveSuperAdmin_AppendsInOrder(t *testing.T) {
	tests := []struct {
		name string
		ns   namespace.Repository
	}{
		{"updater", namespace.NewMemoryRepository()},
		{"get-set", plainNamespace{namespace.NewMemoryRepository()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := NewStore(tt.ns)

			want := []models.SuperAdmin{
				{ID: "r1", Email: "one@x.io", SuperAdminID: "SA1", OrgID: "ORG1", CreatedAt: "2024-01-01T00:00:00Z"},
				{ID: "r2", Email: "two@x.io", SuperAdminID: "SA2", OrgID: "ORG2", CreatedAt: "2024-01-02T00:00:00Z"},
				// duplicates are kept
				{ID: "r2", Email: "two@x.io", SuperAdminID: "SA2", OrgID: "ORG2", CreatedAt: "2024-01-02T00:00:00Z"},
			}
			for _, r := range want {
				require.NoError(t, s.SaveSuperAdmin(ctx, r))
			}

			if diff := cmp.Diff(want, s.GetSuperAdmins(ctx)); diff != "" {
				t.Fatalf("records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_SaveSuperAdmin_ReplacesMalformed(t *testing.T) {
	ctx := context.Background()
	ns := namespace.NewMemoryRepository()
	require.NoError(t, ns.Set(ctx, SuperAdminsKey, []byte("garbage")))

	s := NewStore(ns)
	r := models.SuperAdmin{ID: "r1", Email: "one@x.io", SuperAdminID: "SA1", OrgID: "ORG1"}
	require.NoError(t, s.SaveSuperAdmin(ctx, r))

	assert.Equal(t, []models.SuperAdmin{r}, s.GetSuperAdmins(ctx))
}

func TestStore_SaveSuperAdmin_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := NewStore(plainNamespace{namespace.NewMemoryRepository()})

	const n = 50
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.SaveSuperAdmin(ctx, models.SuperAdmin{ID: fmt.Sprintf("r%d", i)})
		}()
	}
	wg.Wait()

	assert.Len(t, s.GetSuperAdmins(ctx), n)
}

func TestStore_Unavailable(t *testing.T) {
	ctx := context.Background()
	s := NewStore(namespace.Unavailable{})

	assert.Nil(t, s.GetUser(ctx))
	assert.Empty(t, s.GetSuperAdmins(ctx))

	err := s.SaveUser(ctx, models.User{ID: "1"})
	require.ErrorIs(t, err, common.ErrUnavailable)

	err = s.RemoveUser(ctx)
	require.ErrorIs(t, err, common.ErrUnavailable)

	err = s.SaveSuperAdmin(ctx, models.SuperAdmin{ID: "r1"})
	require.ErrorIs(t, err, common.ErrUnavailable)
}

func TestStore_SaveSuperAdmin_WriteError(t *testing.T) {
	s := NewStore(failingSetNamespace{namespace.NewMemoryRepository()})

	err := s.SaveSuperAdmin(context.Background(), models.SuperAdmin{ID: "r1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestStore_AuthenticateUser(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     *models.User
	}{
		{
			name:     "admin",
			email:    "admin@acme.io",
			password: "x",
			want:     &models.User{ID: "id-1", Email: "admin@acme.io", Role: models.RoleAdmin},
		},
		{
			name:     "superadmin",
			email:    "root.superadmin@acme.io",
			password: "x",
			want:     &models.User{ID: "id-1", Email: "root.superadmin@acme.io", Role: models.RoleSuperAdmin},
		},
		{
			name:     "case sensitive marker",
			email:    "SuperAdmin@acme.io",
			password: "x",
			want:     &models.User{ID: "id-1", Email: "SuperAdmin@acme.io", Role: models.RoleAdmin},
		},
		{name: "empty email", email: "", password: "x"},
		{name: "empty password", email: "a@b.c", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := NewStore(namespace.NewMemoryRepository(),
				WithAuthenticator(MockAuthenticator{NewID: fixedID("id-1")}))

			got, err := s.AuthenticateUser(ctx, tt.email, tt.password)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("user mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.want, s.GetUser(ctx)); diff != "" {
				t.Fatalf("stored user mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_AuthenticateUser_RejectedKeepsExistingSession(t *testing.T) {
	ctx := context.Background()
	s := NewStore(namespace.NewMemoryRepository())

	existing := models.User{ID: "1", Email: "a@b.c", Role: models.RoleAdmin}
	require.NoError(t, s.SaveUser(ctx, existing))

	got, err := s.AuthenticateUser(ctx, "", "")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, &existing, s.GetUser(ctx))
}

func TestMockAuthenticator_FreshIDs(t *testing.T) {
	ctx := context.Background()
	a := MockAuthenticator{}

	u1, err := a.Authenticate(ctx, "a@b.c", "x")
	require.NoError(t, err)
	u2, err := a.Authenticate(ctx, "a@b.c", "x")
	require.NoError(t, err)

	assert.NotEmpty(t, u1.ID)
	assert.NotEqual(t, u1.ID, u2.ID)
}

type rejectAll struct{ err error }

func (r rejectAll) Authenticate(context.Context, string, string) (*models.User, error) {
	return nil, r.err
}

func TestStore_AuthenticateUser_AuthenticatorError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	s := NewStore(namespace.NewMemoryRepository(), WithAuthenticator(rejectAll{err: boom}))

	got, err := s.AuthenticateUser(ctx, "a@b.c", "x")
	require.ErrorIs(t, err, boom)
	assert.Nil(t, got)
	assert.Nil(t, s.GetUser(ctx))
}
