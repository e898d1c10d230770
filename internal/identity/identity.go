// Package identity models who is using a storefront session and how they sign in.
package identity

import (
	"fmt"
)

type Role int

const (
	RoleCustomer Role = iota
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

func (r Role) MarshalText() ([]byte, error) {
	switch r {
	case RoleCustomer, RoleAdmin:
		return []byte(r.String()), nil
	default:
		return nil, fmt.Errorf("unknown role %d", int(r))
	}
}

func (r *Role) UnmarshalText(text []byte) error {
	switch string(text) {
	case "customer":
		*r = RoleCustomer
	case "admin":
		*r = RoleAdmin
	default:
		return fmt.Errorf("unknown role %q", text)
	}
	return nil
}

type Identity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

// Kind discriminates the session State.
type Kind int

const (
	KindGuest Kind = iota
	KindAuthenticated
)

func (k Kind) String() string {
	switch k {
	case KindGuest:
		return "guest"
	case KindAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// State is either Guest or Authenticated with exactly one Identity.
// The zero value is Guest.
type State struct {
	kind     Kind
	identity Identity
}

func Guest() State {
	return State{kind: KindGuest}
}

func Authenticated(id Identity) State {
	return State{kind: KindAuthenticated, identity: id}
}

func (s State) Kind() Kind {
	return s.kind
}

// Identity returns the signed in identity, false for guests.
func (s State) Identity() (Identity, bool) {
	if s.kind != KindAuthenticated {
		return Identity{}, false
	}
	return s.identity, true
}

// HasRole reports whether the state is authenticated with role r.
func (s State) HasRole(r Role) bool {
	id, ok := s.Identity()
	return ok && id.Role == r
}
