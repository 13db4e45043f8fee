package identity

import (
	"strings"

	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// User is an operator of the system. Credentials are stored as a bcrypt hash;
// hashing itself happens in the application layer.
type User struct {
	shared.BaseEntity
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	RoleIDs      []uuid.UUID
}

// NewUser creates a new user
func NewUser(firstName, lastName, email, passwordHash string) (*User, error) {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "User name cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
		RoleIDs:      make([]uuid.UUID, 0),
	}, nil
}

// UpdateProfile changes the user's name and email
func (u *User) UpdateProfile(firstName, lastName, email string) error {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return shared.NewDomainError("INVALID_NAME", "User name cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}

	u.FirstName = firstName
	u.LastName = lastName
	u.Email = email
	u.Touch()
	return nil
}

// ChangePassword replaces the stored credential hash
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	u.PasswordHash = passwordHash
	u.Touch()
	return nil
}

// AssignRoles replaces the user's role set
func (u *User) AssignRoles(roleIDs []uuid.UUID) {
	seen := make(map[uuid.UUID]struct{}, len(roleIDs))
	unique := make([]uuid.UUID, 0, len(roleIDs))
	for _, id := range roleIDs {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	u.RoleIDs = unique
	u.Touch()
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Role names a set of permissions granted to users
type Role struct {
	shared.BaseEntity
	Name string
}

// NewRole creates a new role
func NewRole(name string) (*Role, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Role name cannot be empty")
	}
	return &Role{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// Rename changes the role name
func (r *Role) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Role name cannot be empty")
	}
	r.Name = name
	r.Touch()
	return nil
}
