package identity

import (
	"encoding/json"
	"testing"

	"github.com/abgdnv/storefront/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDemoStore(t *testing.T) *Store {
	t.Helper()
	dir, err := NewDirectory(bcrypt.MinCost, DemoAccounts()...)
	require.NoError(t, err)
	return NewStore(dir)
}

func TestStore_Login(t *testing.T) {
	testCases := []struct {
		name         string
		email        string
		password     string
		expectedErr  error
		expectedRole Role
	}{
		{name: "admin", email: "admin@hotwheels.com", password: "Admin@1234", expectedRole: RoleAdmin},
		{name: "customer", email: "customer@example.com", password: "Customer123", expectedRole: RoleCustomer},
		{name: "wrong password", email: "admin@hotwheels.com", password: "admin123", expectedErr: errors.ErrInvalidCredentials},
		{name: "unknown email", email: "someone@example.com", password: "Admin@1234", expectedErr: errors.ErrInvalidCredentials},
		{name: "email is case sensitive", email: "Admin@hotwheels.com", password: "Admin@1234", expectedErr: errors.ErrInvalidCredentials},
		{name: "empty", expectedErr: errors.ErrInvalidCredentials},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			store := newDemoStore(t)

			// when
			id, err := store.Login(tc.email, tc.password)

			// then
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Equal(t, KindGuest, store.State().Kind())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedRole, id.Role)
			assert.Equal(t, KindAuthenticated, store.State().Kind())
			assert.True(t, store.State().HasRole(tc.expectedRole))
		})
	}
}

func TestStore_FailedLoginKeepsCurrentIdentity(t *testing.T) {
	// given
	store := newDemoStore(t)
	_, err := store.Login("customer@example.com", "Customer123")
	require.NoError(t, err)

	// when
	_, err = store.Login("admin@hotwheels.com", "guess")

	// then
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
	id, ok := store.State().Identity()
	require.True(t, ok)
	assert.Equal(t, "customer-1", id.ID)
}

func TestStore_SignupAndLogout(t *testing.T) {
	// given
	store := newDemoStore(t)

	// when
	first := store.Signup("new@example.com", "pw", "New Buyer")
	second := store.Signup("new@example.com", "pw", "New Buyer")

	// then
	assert.Equal(t, RoleCustomer, first.Role)
	assert.Contains(t, first.ID, "user-")
	assert.NotEqual(t, first.ID, second.ID, "every signup gets a fresh id")
	current, ok := store.State().Identity()
	require.True(t, ok)
	assert.Equal(t, second, current)

	// when
	store.Logout()
	store.Logout()

	// then
	assert.Equal(t, KindGuest, store.State().Kind())
	_, ok = store.State().Identity()
	assert.False(t, ok)
}

func TestState_ZeroValueIsGuest(t *testing.T) {
	var s State
	assert.Equal(t, KindGuest, s.Kind())
	assert.False(t, s.HasRole(RoleCustomer))
	assert.Equal(t, Guest(), s)
}

func TestRole_JSON(t *testing.T) {
	data, err := json.Marshal(Identity{ID: "admin-1", Role: RoleAdmin})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"admin-1","email":"","fullName":"","role":"admin"}`, string(data))

	var decoded Identity
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, RoleAdmin, decoded.Role)

	var r Role
	assert.Error(t, r.UnmarshalText([]byte("root")))
}
