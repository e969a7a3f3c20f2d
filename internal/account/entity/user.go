package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the account role. Values are stored as integers in the
// ApplicationUsers table (Admin=0, User=1, Trainer=2).
type Role int

const (
	RoleAdmin Role = iota
	RoleUser
	RoleTrainer
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleUser:
		return "User"
	case RoleTrainer:
		return "Trainer"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ParseRole maps a role name back to its value.
func ParseRole(s string) (Role, error) {
	switch s {
	case "Admin":
		return RoleAdmin, nil
	case "User":
		return RoleUser, nil
	case "Trainer":
		return RoleTrainer, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	v, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// User represents a row in the ApplicationUsers table.
// Password holds whatever the configured hasher produced; with the default
// plaintext hasher that is the password itself.
type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Role      Role      `json:"role"`
}

// NewUser builds a record with a fresh identity and the default role.
func NewUser(firstName, lastName, email, password string) *User {
	return &User{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
		Role:      RoleUser,
	}
}
