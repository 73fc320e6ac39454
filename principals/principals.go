package principals

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Role identifies which kind of principal a record or token belongs to.
type Role string

const (
	RoleGymOwner   Role = "gym-owner"
	RoleTrainer    Role = "trainer"
	RoleMember     Role = "member"
	RoleSuperAdmin Role = "super-admin"
)

const (
	// Ordinary principals keep a session for a week; the operator account
	// deliberately gets a much shorter one.
	defaultSessionTTL    = 7 * 24 * time.Hour
	superAdminSessionTTL = 4 * time.Hour
)

// ParseRole converts a string into a Role, rejecting anything outside the
// closed enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleGymOwner, RoleTrainer, RoleMember, RoleSuperAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// SessionTTL returns the token lifetime policy for the role.
func (r Role) SessionTTL() time.Duration {
	if r == RoleSuperAdmin {
		return superAdminSessionTTL
	}
	return defaultSessionTTL
}

// DashboardPath returns the role's default dashboard root, used by the edge
// gate to self-heal navigation into another role's area.
func (r Role) DashboardPath() string {
	return "/dashboard/" + string(r)
}

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Principal is a stored identity: a gym owner, trainer, or member. The
// operator account is never stored; its claims are synthesized from
// compiled-in constants.
type Principal struct {
	ID           string    `json:"id,omitempty"`
	Email        string    `json:"email,omitempty"` // lowercase-normalized
	Name         string    `json:"name,omitempty"`  // organization/gym name shown in the UI
	Role         Role      `json:"role,omitempty"`
	GymID        string    `json:"gym_id,omitempty"` // owning gym; a gym owner's GymID equals its own ID
	Status       Status    `json:"status,omitempty"`
	PasswordHash string    `json:"-"` // never serialize
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// WithoutPassword returns a copy safe to hand to callers and encoders.
func (p *Principal) WithoutPassword() *Principal {
	out := *p
	out.PasswordHash = ""
	return &out
}

// NormalizeEmail lowercases and trims an email for lookups and claims.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
