package config

import "github.com/knadh/koanf/v2"

const (
	// DefaultTokenSecret is the fallback signing secret used when none is
	// configured. The server refuses to start with it in production and
	// logs a loud warning everywhere else.
	DefaultTokenSecret = "gymstack-insecure-dev-secret"

	// The operator account is compiled in so it can authenticate even when
	// its store record is missing or was deleted. The trade-off is that the
	// password cannot be rotated without a new build.
	SuperAdminEmail    = "root@gymstack.app"
	SuperAdminPassword = "gymstack-root-2024"
	SuperAdminName     = "GymStack Operations"

	// SuperAdminID is the sentinel principal id carried in operator tokens;
	// it never refers to a store record.
	SuperAdminID = "super-admin"
)

type SecurityConfig interface {
	GetTokenSecret() string
	TokenSecretConfigured() bool
	GetSuperAdminEmail() string
	GetSuperAdminPassword() string
	GetSuperAdminName() string
}

type Security struct {
	k *koanf.Koanf
}

var _ SecurityConfig = Security{}

func (s Security) GetTokenSecret() string {
	if secret := s.k.String("security.token_secret"); secret != "" {
		return secret
	}
	return DefaultTokenSecret
}

func (s Security) TokenSecretConfigured() bool {
	return s.k.String("security.token_secret") != ""
}

func (s Security) GetSuperAdminEmail() string {
	return SuperAdminEmail
}

func (s Security) GetSuperAdminPassword() string {
	return SuperAdminPassword
}

func (s Security) GetSuperAdminName() string {
	return SuperAdminName
}
