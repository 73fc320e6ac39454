package server_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	appointmentfake "github.com/gymstack/gymstack/appointments/repofake"
	"github.com/gymstack/gymstack/auth"
	equipmentfake "github.com/gymstack/gymstack/equipment/repofake"
	"github.com/gymstack/gymstack/internal/config"
	"github.com/gymstack/gymstack/principals"
	"github.com/gymstack/gymstack/principals/repofake"
	"github.com/gymstack/gymstack/server"
	"github.com/gymstack/gymstack/token"
	"github.com/stretchr/testify/require"
)

const (
	testSecret        = "test-signing-secret"
	testOwnerEmail    = "a@gym.com"
	testOwnerPassword = "Password123"
)

// testConfig satisfies config.Config without touching files or environment.
type testConfig struct {
	env string
}

func (c testConfig) GetPort() string       { return ":0" }
func (c testConfig) GetAppName() string    { return "GymStack" }
func (c testConfig) GetDataFolder() string { return "" }
func (c testConfig) GetEnv() string {
	if c.env == "" {
		return "DEV"
	}
	return c.env
}
func (c testConfig) IsProduction() bool            { return c.GetEnv() == "PRODUCTION" }
func (c testConfig) GetTokenSecret() string        { return testSecret }
func (c testConfig) TokenSecretConfigured() bool   { return true }
func (c testConfig) GetSuperAdminEmail() string    { return config.SuperAdminEmail }
func (c testConfig) GetSuperAdminPassword() string { return config.SuperAdminPassword }
func (c testConfig) GetSuperAdminName() string     { return config.SuperAdminName }

var _ config.Config = testConfig{}

type testFixture struct {
	server       *server.Server
	codec        *token.Codec
	owners       *repofake.FakePrincipalRepo
	trainers     *repofake.FakePrincipalRepo
	members      *repofake.FakePrincipalRepo
	equipment    *equipmentfake.FakeEquipmentRepo
	appointments *appointmentfake.FakeAppointmentRepo
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	owners := repofake.NewFakePrincipalRepo()
	trainers := repofake.NewFakePrincipalRepo()
	members := repofake.NewFakePrincipalRepo()

	directory, err := principals.NewDirectory(owners, trainers, members)
	require.NoError(t, err)

	equipmentRepo := equipmentfake.NewFakeEquipmentRepo()
	appointmentRepo := appointmentfake.NewFakeAppointmentRepo()

	srv, err := server.New(testConfig{}, server.Repos{
		Directory:    directory,
		Equipment:    equipmentRepo,
		Appointments: appointmentRepo,
	})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, srv.Close()) })

	return &testFixture{
		server:       srv,
		codec:        token.NewCodec(token.NewHMACSigner(testSecret)),
		owners:       owners,
		trainers:     trainers,
		members:      members,
		equipment:    equipmentRepo,
		appointments: appointmentRepo,
	}
}

func (f *testFixture) createPrincipal(t *testing.T, store *repofake.FakePrincipalRepo, email string, role principals.Role, gymID string) *principals.Principal {
	t.Helper()

	hash, err := principals.HashPassword(testOwnerPassword)
	require.NoError(t, err)

	p := &principals.Principal{
		Email:        email,
		Name:         "Test " + string(role),
		Role:         role,
		GymID:        gymID,
		Status:       principals.StatusActive,
		PasswordHash: hash,
	}
	require.NoError(t, store.Upsert(p))
	if gymID == "" && role == principals.RoleGymOwner {
		p.GymID = p.ID
		require.NoError(t, store.Upsert(p))
	}
	return p
}

// mintCookie signs a session cookie directly, bypassing the login endpoint.
func (f *testFixture) mintCookie(t *testing.T, p *principals.Principal) *http.Cookie {
	t.Helper()

	raw, err := f.codec.Encode(token.Claims{
		ID:          p.ID,
		Email:       principals.NormalizeEmail(p.Email),
		DisplayName: p.Name,
		Role:        p.Role,
	}, p.Role.SessionTTL())
	require.NoError(t, err)

	return &http.Cookie{Name: auth.CookieName, Value: raw}
}

func (f *testFixture) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		r.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	f.server.ServeHTTP(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}
