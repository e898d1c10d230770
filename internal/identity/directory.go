package identity

import (
	"fmt"

	"github.com/abgdnv/storefront/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// Account is a credential entry of the Directory.
type Account struct {
	Identity Identity
	Password string
}

// DemoAccounts are the two built in accounts of the storefront.
func DemoAccounts() []Account {
	return []Account{
		{
			Identity: Identity{ID: "admin-1", Email: "admin@hotwheels.com", FullName: "Admin User", Role: RoleAdmin},
			Password: "Admin@1234",
		},
		{
			Identity: Identity{ID: "customer-1", Email: "customer@example.com", FullName: "John Customer", Role: RoleCustomer},
			Password: "Customer123",
		},
	}
}

type credential struct {
	hash     []byte
	identity Identity
}

// Directory verifies email and password pairs. Only bcrypt hashes are kept in memory.
type Directory struct {
	byEmail map[string]credential
}

// NewDirectory hashes the given accounts with the bcrypt cost.
func NewDirectory(cost int, accounts ...Account) (*Directory, error) {
	d := &Directory{byEmail: make(map[string]credential, len(accounts))}
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", a.Identity.Email, err)
		}
		d.byEmail[a.Identity.Email] = credential{hash: hash, identity: a.Identity}
	}
	return d, nil
}

// Authenticate returns the identity owning the credentials or ErrInvalidCredentials.
func (d *Directory) Authenticate(email, password string) (Identity, error) {
	c, ok := d.byEmail[email]
	if !ok {
		return Identity{}, errors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(c.hash, []byte(password)); err != nil {
		return Identity{}, errors.ErrInvalidCredentials
	}
	return c.identity, nil
}
