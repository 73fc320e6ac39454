// Package auth implements credential verification and request
// authentication: the single choke point every protected handler goes
// through before touching a resource.
package auth

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gymstack/gymstack/internal/config"
	apperrors "github.com/gymstack/gymstack/internal/errors"
	"github.com/gymstack/gymstack/principals"
	"github.com/gymstack/gymstack/token"
	"github.com/pkg/errors"
)

// CookieName is the session token cookie every protected request carries.
const CookieName = "token"

// Result is the outcome of authenticating a request.
type Result struct {
	IsAuthenticated bool
	Claims          *token.Claims
}

// Service verifies credentials, issues tokens, and authenticates requests.
// Clock control for expiry lives in the codec, which owns all timestamp
// handling.
type Service struct {
	directory *principals.Directory
	codec     *token.Codec
	security  config.SecurityConfig
}

func NewService(directory *principals.Directory, codec *token.Codec, security config.SecurityConfig) (*Service, error) {
	if directory == nil {
		return nil, errors.New("[NewService] principal directory is required")
	}
	if codec == nil {
		return nil, errors.New("[NewService] token codec is required")
	}
	if security == nil {
		return nil, errors.New("[NewService] security config is required")
	}

	return &Service{
		directory: directory,
		codec:     codec,
		security:  security,
	}, nil
}

// VerifyCredentials checks an email/password pair and returns the matching
// principal with its password hash stripped. The operator identity is
// matched literally against compiled-in constants before any store lookup,
// so it can authenticate even when its store record is missing. Every
// failure collapses to ErrInvalidCredentials; callers never learn whether
// the email or the password was wrong.
func (s *Service) VerifyCredentials(email, password string) (*principals.Principal, error) {
	email = principals.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	if email == principals.NormalizeEmail(s.security.GetSuperAdminEmail()) {
		if subtle.ConstantTimeCompare([]byte(password), []byte(s.security.GetSuperAdminPassword())) == 1 {
			return s.superAdminPrincipal(), nil
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	p, err := s.directory.FindByEmail(email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !principals.CheckPasswordHash(password, p.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return p.WithoutPassword(), nil
}

// IssueToken signs a session token for the principal, applying the
// role-based TTL policy. It returns the token and the lifetime granted.
func (s *Service) IssueToken(p *principals.Principal) (string, time.Duration, error) {
	ttl := p.Role.SessionTTL()
	claims := token.Claims{
		ID:          p.ID,
		Email:       principals.NormalizeEmail(p.Email),
		DisplayName: p.Name,
		Role:        p.Role,
	}

	raw, err := s.codec.Encode(claims, ttl)
	if err != nil {
		return "", 0, errors.Wrap(err, "[Service.IssueToken] codec.Encode")
	}
	return raw, ttl, nil
}

// Authenticate extracts and decodes the token cookie. It is pure with
// respect to the token: no store lookups, no side effects. A missing cookie
// and an invalid one produce the same not-authenticated result.
func (s *Service) Authenticate(r *http.Request) Result {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Result{}
	}

	claims, err := s.codec.Decode(cookie.Value)
	if err != nil {
		return Result{}
	}

	return Result{IsAuthenticated: true, Claims: claims}
}

// Refresh re-issues a token for an already-authenticated request, keeping
// the claims and re-applying the role TTL policy. Refresh extends a
// session; it never creates one.
func (s *Service) Refresh(r *http.Request) (string, time.Duration, error) {
	result := s.Authenticate(r)
	if !result.IsAuthenticated {
		return "", 0, apperrors.ErrNotAuthenticated
	}

	return s.IssueToken(&principals.Principal{
		ID:    result.Claims.ID,
		Email: result.Claims.Email,
		Name:  result.Claims.DisplayName,
		Role:  result.Claims.Role,
	})
}

// superAdminPrincipal synthesizes the operator principal from configuration.
// Its ID is a sentinel, not a store key.
func (s *Service) superAdminPrincipal() *principals.Principal {
	return &principals.Principal{
		ID:     config.SuperAdminID,
		Email:  principals.NormalizeEmail(s.security.GetSuperAdminEmail()),
		Name:   s.security.GetSuperAdminName(),
		Role:   principals.RoleSuperAdmin,
		Status: principals.StatusActive,
	}
}
