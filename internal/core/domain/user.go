package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Role is a ranked access tier: user < moderator < admin.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ReservedUsername is taken by the self-service endpoint (/users/me).
const ReservedUsername = "me"

const (
	maxUsernameLen = 150
	maxEmailLen    = 254
	maxNameLen     = 150
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

func (r Role) rank() int {
	switch r {
	case RoleUser:
		return 1
	case RoleModerator:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r.rank() > 0 }

// AtLeast reports whether r ranks at or above min.
func (r Role) AtLeast(min Role) bool {
	return r.Valid() && r.rank() >= min.rank()
}

// ParseRole converts s to a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", NewValidationError("role", "must be one of: user, moderator, admin")
	}
	return r, nil
}

// User models an account that can act on the API.
type User struct {
	ID          int64     `json:"-"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Bio         string    `json:"bio"`
	Role        Role      `json:"role"`
	IsStaff     bool      `json:"-"`
	IsSuperuser bool      `json:"-"`
	Confirmed   bool      `json:"-"`
	CreatedAt   time.Time `json:"-"`
}

// EffectiveRole folds the staff and superuser flags into the role ranking.
func (u *User) EffectiveRole() Role {
	if u.IsSuperuser || u.IsStaff {
		return RoleAdmin
	}
	return u.Role
}

func (u *User) IsAdmin() bool { return u.EffectiveRole().AtLeast(RoleAdmin) }

func (u *User) IsModerator() bool { return u.EffectiveRole().AtLeast(RoleModerator) }

// ValidateUsername checks format and the reserved "me" literal.
func ValidateUsername(username string) error {
	if username == ReservedUsername {
		return NewValidationError("username", "%q is reserved, choose another username", ReservedUsername)
	}
	if username == "" {
		return NewValidationError("username", "is required")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return NewValidationError("username", "must be at most %d characters", maxUsernameLen)
	}
	if !usernamePattern.MatchString(username) {
		return NewValidationError("username", "may contain only letters, digits and @/./+/-/_")
	}
	return nil
}

// ValidateProfile checks the length limits of free-form profile fields.
func (u *User) ValidateProfile() error {
	if utf8.RuneCountInString(u.Email) > maxEmailLen {
		return NewValidationError("email", "must be at most %d characters", maxEmailLen)
	}
	if utf8.RuneCountInString(u.FirstName) > maxNameLen {
		return NewValidationError("first_name", "must be at most %d characters", maxNameLen)
	}
	if utf8.RuneCountInString(u.LastName) > maxNameLen {
		return NewValidationError("last_name", "must be at most %d characters", maxNameLen)
	}
	return nil
}
