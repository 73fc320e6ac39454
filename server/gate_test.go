package server_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gymstack/gymstack/internal/config"
	"github.com/gymstack/gymstack/principals"
	"github.com/gymstack/gymstack/token"
	"github.com/stretchr/testify/require"
)

func TestAccessGate_Exclusions(t *testing.T) {
	f := setupTestFixture(t)

	// None of these may ever redirect to login, with or without a session.
	for _, path := range []string{"/healthz", "/metrics", "/api/auth/me", "/static/app.css"} {
		w := f.do(t, http.MethodGet, path, nil, nil)
		require.NotEqual(t, http.StatusSeeOther, w.Code, "excluded path %s was redirected", path)
	}
}

func TestAccessGate_PublicPages(t *testing.T) {
	f := setupTestFixture(t)

	t.Run("login page is reachable without a session", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/login", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("login page is never cached", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/login", nil, nil)
		require.Contains(t, w.Header().Get("Cache-Control"), "no-store")
		require.Contains(t, w.Header().Get("Cache-Control"), "must-revalidate")
	})

	t.Run("register page is reachable without a session", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/register", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAccessGate_RequireAuth(t *testing.T) {
	f := setupTestFixture(t)

	t.Run("missing cookie redirects with session_expired", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/dashboard/gym-owner", nil, nil)
		require.Equal(t, http.StatusSeeOther, w.Code)

		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		require.Equal(t, "/login", loc.Path)
		require.Equal(t, "/dashboard/gym-owner", loc.Query().Get("callbackUrl"))
		require.Equal(t, "session_expired", loc.Query().Get("from"))
	})

	t.Run("invalid cookie redirects with invalid_token", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/dashboard/gym-owner", nil,
			&http.Cookie{Name: "token", Value: "garbage"})
		require.Equal(t, http.StatusSeeOther, w.Code)

		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		require.Equal(t, "invalid_token", loc.Query().Get("from"))
	})

	t.Run("expired cookie redirects with invalid_token", func(t *testing.T) {
		owner := f.createPrincipal(t, f.owners, "expired@gym.com", principals.RoleGymOwner, "")
		raw, err := f.codec.Encode(token.Claims{
			ID: owner.ID, Email: owner.Email, Role: owner.Role,
		}, -1)
		require.NoError(t, err)

		w := f.do(t, http.MethodGet, "/dashboard/gym-owner", nil,
			&http.Cookie{Name: "token", Value: raw})
		require.Equal(t, http.StatusSeeOther, w.Code)

		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		require.Equal(t, "invalid_token", loc.Query().Get("from"))
	})
}

func TestAccessGate_RoleIsolation(t *testing.T) {
	f := setupTestFixture(t)

	owner := f.createPrincipal(t, f.owners, "owner@gym.com", principals.RoleGymOwner, "")
	trainer := f.createPrincipal(t, f.trainers, "trainer@gym.com", principals.RoleTrainer, owner.GymID)
	member := f.createPrincipal(t, f.members, "member@gym.com", principals.RoleMember, owner.GymID)

	cookies := map[principals.Role]*http.Cookie{
		principals.RoleGymOwner: f.mintCookie(t, owner),
		principals.RoleTrainer:  f.mintCookie(t, trainer),
		principals.RoleMember:   f.mintCookie(t, member),
	}

	areas := map[principals.Role]string{
		principals.RoleGymOwner: "/dashboard/gym-owner",
		principals.RoleTrainer:  "/dashboard/trainer",
		principals.RoleMember:   "/dashboard/member",
	}

	// Every role against every area: own area passes, every other redirects
	// to the caller's dashboard.
	for callerRole, cookie := range cookies {
		for areaRole, areaPath := range areas {
			w := f.do(t, http.MethodGet, areaPath, nil, cookie)
			if callerRole == areaRole {
				require.Equal(t, http.StatusOK, w.Code,
					"%s should enter %s", callerRole, areaPath)
			} else {
				require.Equal(t, http.StatusSeeOther, w.Code,
					"%s should be redirected from %s", callerRole, areaPath)
				require.Equal(t, callerRole.DashboardPath(), w.Header().Get("Location"))
			}
		}
	}

	t.Run("ordinary roles cannot enter the super-admin area", func(t *testing.T) {
		for role, cookie := range cookies {
			w := f.do(t, http.MethodGet, "/dashboard/super-admin", nil, cookie)
			require.Equal(t, http.StatusSeeOther, w.Code)
			require.Equal(t, role.DashboardPath(), w.Header().Get("Location"))
		}
	})
}

func TestAccessGate_SuperAdminArea(t *testing.T) {
	f := setupTestFixture(t)

	t.Run("operator token with the distinguished email enters", func(t *testing.T) {
		cookie := f.mintCookie(t, &principals.Principal{
			ID:    config.SuperAdminID,
			Email: config.SuperAdminEmail,
			Name:  config.SuperAdminName,
			Role:  principals.RoleSuperAdmin,
		})
		w := f.do(t, http.MethodGet, "/dashboard/super-admin", nil, cookie)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("super-admin role with the wrong email is turned away", func(t *testing.T) {
		cookie := f.mintCookie(t, &principals.Principal{
			ID:    "forged",
			Email: "attacker@evil.com",
			Role:  principals.RoleSuperAdmin,
		})
		w := f.do(t, http.MethodGet, "/dashboard/super-admin", nil, cookie)
		require.Equal(t, http.StatusSeeOther, w.Code)
	})
}

func TestAccessGate_PrivilegedResponsesAreNotCached(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.createPrincipal(t, f.owners, "owner@gym.com", principals.RoleGymOwner, "")

	w := f.do(t, http.MethodGet, "/dashboard/gym-owner", nil, f.mintCookie(t, owner))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestAccessGate_UnprotectedPathsPassThrough(t *testing.T) {
	f := setupTestFixture(t)

	// Outside the protected prefixes the gate does not demand a session; the
	// router decides what exists there.
	w := f.do(t, http.MethodGet, "/nothing-here", nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
