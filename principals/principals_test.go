package principals_test

import (
	"testing"
	"time"

	"github.com/gymstack/gymstack/principals"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"gym-owner", "trainer", "member", "super-admin"} {
		role, err := principals.ParseRole(valid)
		require.NoError(t, err)
		require.Equal(t, principals.Role(valid), role)
		require.True(t, role.Valid())
	}

	for _, invalid := range []string{"", "admin", "GYM-OWNER", "gym_owner"} {
		_, err := principals.ParseRole(invalid)
		require.Error(t, err)
	}
}

func TestRole_SessionTTL(t *testing.T) {
	require.Equal(t, 4*time.Hour, principals.RoleSuperAdmin.SessionTTL())
	require.Equal(t, 7*24*time.Hour, principals.RoleGymOwner.SessionTTL())
	require.Equal(t, 7*24*time.Hour, principals.RoleTrainer.SessionTTL())
	require.Equal(t, 7*24*time.Hour, principals.RoleMember.SessionTTL())
}

func TestRole_DashboardPath(t *testing.T) {
	require.Equal(t, "/dashboard/trainer", principals.RoleTrainer.DashboardPath())
	require.Equal(t, "/dashboard/super-admin", principals.RoleSuperAdmin.DashboardPath())
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "a@gym.com", principals.NormalizeEmail("  A@Gym.Com "))
	require.Equal(t, "", principals.NormalizeEmail("   "))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := principals.HashPassword("Password123")
	require.NoError(t, err)
	require.NotEqual(t, "Password123", hash)

	require.True(t, principals.CheckPasswordHash("Password123", hash))
	require.False(t, principals.CheckPasswordHash("password123", hash))
	require.False(t, principals.CheckPasswordHash("Password123", "not-a-hash"))
}

func TestValidatePasswordStrength(t *testing.T) {
	require.NoError(t, principals.ValidatePasswordStrength("Password123"))

	tests := []struct {
		name     string
		password string
	}{
		{"too short", "Pa1"},
		{"no uppercase", "password123"},
		{"no lowercase", "PASSWORD123"},
		{"no number", "PasswordOnly"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, principals.ValidatePasswordStrength(tc.password))
		})
	}
}

func TestPrincipal_WithoutPassword(t *testing.T) {
	p := &principals.Principal{ID: "p1", Email: "a@gym.com", PasswordHash: "hash"}
	stripped := p.WithoutPassword()
	require.Empty(t, stripped.PasswordHash)
	require.Equal(t, "hash", p.PasswordHash)
	require.Equal(t, "p1", stripped.ID)
}
