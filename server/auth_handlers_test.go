package server_test

import (
	"net/http"
	"testing"

	"github.com/gymstack/gymstack/internal/config"
	"github.com/gymstack/gymstack/principals"
	"github.com/stretchr/testify/require"
)

func TestLoginHandler(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.createPrincipal(t, f.owners, testOwnerEmail, principals.RoleGymOwner, "")

	t.Run("valid credentials set the session cookie", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    testOwnerEmail,
			"password": testOwnerPassword,
		}, nil)
		require.Equal(t, http.StatusOK, w.Code)

		cookie := sessionCookie(w)
		require.NotNil(t, cookie)
		require.NotEmpty(t, cookie.Value)
		require.True(t, cookie.HttpOnly)
		require.Equal(t, "/", cookie.Path)
		require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		require.False(t, cookie.Secure) // DEV over plain http

		body := decodeBody(t, w)
		require.Equal(t, "gym-owner", body["role"])
		user := body["user"].(map[string]any)
		require.Equal(t, owner.ID, user["id"])
		require.Equal(t, testOwnerEmail, user["email"])

		claims, err := f.codec.Decode(cookie.Value)
		require.NoError(t, err)
		require.Equal(t, owner.ID, claims.ID)
	})

	t.Run("wrong password is a generic 401 with no cookie", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    testOwnerEmail,
			"password": "WrongPassword1",
		}, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Nil(t, sessionCookie(w))
		require.Equal(t, "invalid credentials", decodeBody(t, w)["error"])
	})

	t.Run("unknown email is indistinguishable from wrong password", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "nobody@gym.com",
			"password": testOwnerPassword,
		}, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, "invalid credentials", decodeBody(t, w)["error"])
	})

	t.Run("operator login works without a store record", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    config.SuperAdminEmail,
			"password": config.SuperAdminPassword,
		}, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "super-admin", decodeBody(t, w)["role"])
	})
}

func TestRegisterHandler(t *testing.T) {
	f := setupTestFixture(t)

	t.Run("creates a gym owner and logs it in", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/auth/register", map[string]string{
			"email":    "new@gym.com",
			"password": "Password123",
			"gymName":  "Iron Temple",
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code)

		cookie := sessionCookie(w)
		require.NotNil(t, cookie)

		claims, err := f.codec.Decode(cookie.Value)
		require.NoError(t, err)
		require.Equal(t, principals.RoleGymOwner, claims.Role)

		// The owner's gym is keyed by its own id.
		p, err := f.owners.GetByID(claims.ID)
		require.NoError(t, err)
		require.Equal(t, p.ID, p.GymID)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		f.createPrincipal(t, f.owners, "taken@gym.com", principals.RoleGymOwner, "")

		w := f.do(t, http.MethodPost, "/api/auth/register", map[string]string{
			"email":    "taken@gym.com",
			"password": "Password123",
			"gymName":  "Other Gym",
		}, nil)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("weak password is rejected", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/auth/register", map[string]string{
			"email":    "weak@gym.com",
			"password": "short",
			"gymName":  "Weak Gym",
		}, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing gym name is rejected", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/auth/register", map[string]string{
			"email":    "nogym@gym.com",
			"password": "Password123",
		}, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogoutHandler(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.createPrincipal(t, f.owners, testOwnerEmail, principals.RoleGymOwner, "")

	t.Run("clears the cookie for an authenticated caller", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/auth/logout", nil, f.mintCookie(t, owner))
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, map[string]any{"success": true}, decodeBody(t, w))

		cookie := sessionCookie(w)
		require.NotNil(t, cookie)
		require.Empty(t, cookie.Value)
		require.Negative(t, cookie.MaxAge)
	})

	t.Run("succeeds with no session at all", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/auth/logout", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, map[string]any{"success": true}, decodeBody(t, w))
	})

	t.Run("response is never cached", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/auth/logout", nil, nil)
		require.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	})
}

func TestRefreshHandler(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.createPrincipal(t, f.owners, testOwnerEmail, principals.RoleGymOwner, "")

	t.Run("re-issues the cookie for an authenticated caller", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/auth/refresh", nil, f.mintCookie(t, owner))
		require.Equal(t, http.StatusOK, w.Code)

		cookie := sessionCookie(w)
		require.NotNil(t, cookie)

		claims, err := f.codec.Decode(cookie.Value)
		require.NoError(t, err)
		require.Equal(t, owner.ID, claims.ID)

		body := decodeBody(t, w)
		require.Equal(t, float64(7*24*60*60), body["expiresIn"])
	})

	t.Run("refuses an unauthenticated caller", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/auth/refresh", nil, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Nil(t, sessionCookie(w))
	})
}

func TestMeHandler(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.createPrincipal(t, f.owners, testOwnerEmail, principals.RoleGymOwner, "")

	t.Run("returns the caller's claims", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/auth/me", nil, f.mintCookie(t, owner))
		require.Equal(t, http.StatusOK, w.Code)

		user := decodeBody(t, w)["user"].(map[string]any)
		require.Equal(t, owner.ID, user["id"])
		require.Equal(t, testOwnerEmail, user["email"])
		require.Equal(t, "gym-owner", user["role"])
	})

	t.Run("401 without a session", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/auth/me", nil, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
