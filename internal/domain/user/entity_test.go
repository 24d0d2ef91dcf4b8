package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("  mariam ", " Mariam@Shop.CM ", "supersecret", RoleSeller)
	require.NoError(t, err)

	assert.Equal(t, "mariam", u.Username)
	assert.Equal(t, "mariam@shop.cm", u.Email)
	assert.True(t, u.IsActive)
	assert.True(t, u.IsSeller())
	assert.NotEqual(t, "supersecret", u.Password)
	assert.True(t, u.CheckPassword("supersecret"))
	assert.False(t, u.CheckPassword("wrong-password"))
}

func TestNewUser_Validation(t *testing.T) {
	_, err := NewUser("", "a@b.c", "supersecret", RoleCustomer)
	assert.ErrorIs(t, err, ErrEmptyUsername)

	_, err = NewUser("joe", "a@b.c", "short", RoleCustomer)
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = NewUser("joe", "a@b.c", "supersecret", Role("root"))
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUser_FullName(t *testing.T) {
	u := &User{Username: "joe"}
	assert.Equal(t, "joe", u.FullName())

	u.FirstName, u.LastName = "Joe", "Nkem"
	assert.Equal(t, "Joe Nkem", u.FullName())
}
