package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/adminpanel/internal/client/config"
	"github.com/dmitrijs2005/adminpanel/internal/client/models"
	"github.com/dmitrijs2005/adminpanel/internal/client/repositories/namespace"
	"github.com/dmitrijs2005/adminpanel/internal/client/storage"
	"github.com/dmitrijs2005/adminpanel/internal/logging"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ResetSecret = "test-secret"
	return cfg
}

// stubPasswords makes getPassword return pw in order, then io.EOF.
func stubPasswords(t *testing.T, pw ...string) {
	t.Helper()
	old := getPassword
	t.Cleanup(func() { getPassword = old })

	queue := append([]string(nil), pw...)
	getPassword = func(io.Writer, string) ([]byte, error) {
		if len(queue) == 0 {
			return nil, io.EOF
		}
		p := queue[0]
		queue = queue[1:]
		return []byte(p), nil
	}
}

func newTestApp(t *testing.T, input string, passwords ...string) (*App, *bytes.Buffer) {
	t.Helper()
	stubPasswords(t, passwords...)
	out := &bytes.Buffer{}
	a := newApp(testConfig(), logging.Discard(), namespace.NewMemoryRepository(), rdr(input), out)
	return a, out
}

func loginAs(t *testing.T, a *App, email string) {
	t.Helper()
	require.NoError(t, a.store.SaveUser(context.Background(), models.User{ID: "u1", Email: email, Role: models.RoleForEmail(email)}))
}

func TestApp_RootWithoutSession_LogsIn(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "ops.superadmin@acme.io\n", "pw")

	require.NoError(t, a.Open(ctx, RootPath))

	user := a.store.GetUser(ctx)
	require.NotNil(t, user)
	assert.Equal(t, models.RoleSuperAdmin, user.Role)
	assert.Contains(t, out.String(), "Welcome back, ops.superadmin@acme.io")
	assert.Equal(t, DashboardPath, a.router.Current())
}

func TestApp_RootWithSession_GoesToDashboard(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "")
	loginAs(t, a, "admin@acme.io")

	require.NoError(t, a.Open(ctx, RootPath))
	assert.Contains(t, out.String(), "Admin Dashboard")
	assert.NotContains(t, out.String(), "Sign in")
}

func TestApp_ProtectedViewRedirectsToLogin(t *testing.T) {
	ctx := context.Background()

	for _, path := range []string{DashboardPath, CreateSuperAdminPath, ViewSuperAdminsPath, PathFor(SuperAdminPath, "x")} {
		t.Run(path, func(t *testing.T) {
			// empty credentials are rejected
			a, out := newTestApp(t, "\n", "")

			require.NoError(t, a.Open(ctx, path))
			assert.Contains(t, out.String(), "Sign in")
			assert.Contains(t, out.String(), "Login failed")
			assert.NotContains(t, out.String(), "Admin Dashboard")
			assert.Equal(t, LoginPath, a.router.Current())
			assert.Nil(t, a.store.GetUser(ctx))
		})
	}
}

func TestApp_CreateSuperAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid form", func(t *testing.T) {
		a, out := newTestApp(t, "root@acme\nSA\n\n", "short")
		loginAs(t, a, "admin@acme.io")

		require.NoError(t, a.Create(ctx))
		assert.Contains(t, out.String(), "email: Email is invalid")
		assert.Contains(t, out.String(), "password: Password must be at least 8 characters")
		assert.Contains(t, out.String(), "superadminId: Super Admin ID must be at least 3 characters")
		assert.Contains(t, out.String(), "orgId: Organization ID is required")
		assert.Empty(t, a.store.GetSuperAdmins(ctx))
		assert.Equal(t, CreateSuperAdminPath, a.router.Current())
	})

	t.Run("valid form", func(t *testing.T) {
		a, out := newTestApp(t, "root@acme.io\nSA-001\nORG-001\n", "longenough")
		loginAs(t, a, "admin@acme.io")

		require.NoError(t, a.Create(ctx))

		records := a.store.GetSuperAdmins(ctx)
		require.Len(t, records, 1)
		assert.Equal(t, "root@acme.io", records[0].Email)
		assert.Equal(t, "SA-001", records[0].SuperAdminID)
		assert.Equal(t, "ORG-001", records[0].OrgID)
		assert.Contains(t, out.String(), "Super admin created successfully")
		assert.Equal(t, DashboardPath, a.router.Current())
	})
}

func seedRecords(t *testing.T, a *App) {
	t.Helper()
	for _, r := range []models.SuperAdmin{
		{ID: "r1", Email: "alice@acme.io", SuperAdminID: "SA-ALPHA", OrgID: "ORG-1", CreatedAt: "2024-01-01T00:00:00Z"},
		{ID: "r2", Email: "bob@globex.io", SuperAdminID: "SA-BETA", OrgID: "ORG-2", CreatedAt: "2024-01-02T00:00:00Z"},
	} {
		require.NoError(t, a.store.SaveSuperAdmin(context.Background(), r))
	}
}

func TestApp_ListAndShow(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "")
	loginAs(t, a, "admin@acme.io")
	seedRecords(t, a)

	require.NoError(t, a.List(ctx, "globex"))
	assert.Contains(t, out.String(), "bob@globex.io")
	assert.NotContains(t, out.String(), "alice@acme.io")

	out.Reset()
	require.NoError(t, a.List(ctx, "nobody here"))
	assert.Contains(t, out.String(), `No super admins match "nobody here"`)

	out.Reset()
	require.NoError(t, a.Show(ctx, "r1"))
	assert.Contains(t, out.String(), "Super Admin Details")
	assert.Contains(t, out.String(), "alice@acme.io")

	out.Reset()
	require.NoError(t, a.Show(ctx, "missing"))
	assert.Contains(t, out.String(), "Super admin not found")
	assert.Contains(t, out.String(), "Super Administrators")
	assert.Equal(t, ViewSuperAdminsPath, a.router.Current())
}

func TestApp_Logout(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "\n", "")
	loginAs(t, a, "admin@acme.io")

	require.NoError(t, a.Logout(ctx))
	assert.Nil(t, a.store.GetUser(ctx))
	assert.Contains(t, out.String(), "Logged out")
	assert.Equal(t, LoginPath, a.router.Current())

	// a second logout is harmless
	a.reader = rdr("\n")
	stubPasswords(t, "")
	require.NoError(t, a.Logout(ctx))
}

func TestApp_PasswordRecovery(t *testing.T) {
	ctx := context.Background()
	input := "12\n654321\nresend\n123456\n" + // otp view
		"\n" // login view after the reset
	a, out := newTestApp(t, input, "weak", "weak", "Abcdef1!", "Abcdef1?", "Abcdef1!", "Abcdef1!", "")

	require.NoError(t, a.Forgot(ctx))

	s := out.String()
	assert.Contains(t, s, "Please enter all 6 digits")
	assert.Contains(t, s, "The OTP you entered is incorrect")
	assert.Contains(t, s, "Resend code in 60s")
	assert.Contains(t, s, "OTP verified!")
	assert.Contains(t, s, "Password does not meet requirements")
	assert.Contains(t, s, "Passwords don't match")
	assert.Contains(t, s, "Password updated!")
	assert.Equal(t, LoginPath, a.router.Current())
	assert.Empty(t, a.resetGrant)
}

func TestApp_NewPasswordRequiresVerifiedCode(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "\n\n", "")

	require.NoError(t, a.Open(ctx, NewPasswordPath))
	assert.Contains(t, out.String(), "Verify the code sent to your email first.")
	assert.Contains(t, out.String(), "Enter the 6-digit code")
}

func TestApp_Menu(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "")
	seedRecords(t, a)

	require.NoError(t, a.Menu(ctx, ""))
	assert.Contains(t, out.String(), "Super Admins (2)  -> open /view-super-admins")
	assert.Contains(t, out.String(), "Admin Tools")

	out.Reset()
	require.NoError(t, a.Menu(ctx, "zzz"))
	assert.Equal(t, "No results found for \"zzz\"\n", out.String())
}

func TestApp_StorageUnavailable(t *testing.T) {
	ctx := context.Background()
	stubPasswords(t, "pw")
	out := &bytes.Buffer{}
	a := newApp(testConfig(), logging.Discard(), namespace.Unavailable{}, rdr("a@b.c\n"), out)

	require.NoError(t, a.Open(ctx, RootPath))
	assert.Contains(t, out.String(), "Login failed, please try again.")
	assert.Nil(t, a.store.GetUser(ctx))
}

func TestNewApp(t *testing.T) {
	ctx := context.Background()

	t.Run("sqlite", func(t *testing.T) {
		cfg := testConfig()
		cfg.DatabasePath = filepath.Join(t.TempDir(), "data", "panel.db")

		a, err := NewApp(ctx, cfg)
		require.NoError(t, err)
		require.NotNil(t, a.storage)
		require.NoError(t, a.Close())

		_, err = os.Stat(cfg.DatabasePath)
		require.NoError(t, err)
	})

	t.Run("memory", func(t *testing.T) {
		cfg := testConfig()
		cfg.StorageDriver = storage.DriverMemory

		a, err := NewApp(ctx, cfg)
		require.NoError(t, err)
		assert.IsType(t, &namespace.MemoryRepository{}, a.storage.Namespace)
		require.NoError(t, a.Close())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := testConfig()
		cfg.StorageDriver = "redis"

		_, err := NewApp(ctx, cfg)
		require.ErrorIs(t, err, storage.ErrUnknownDriver)
	})

	t.Run("unopenable storage falls back", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

		cfg := testConfig()
		cfg.DatabasePath = filepath.Join(blocker, "panel.db")

		a, err := NewApp(ctx, cfg)
		require.NoError(t, err)
		assert.Nil(t, a.storage)
		assert.Nil(t, a.store.GetUser(ctx))
		require.NoError(t, a.Close())
	})
}
