package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApiIntegrationToggle(t *testing.T) {
	tests := []struct {
		from, to string
	}{
		{StatusEnabled, StatusDisabled},
		{StatusDisabled, StatusEnabled},
		{StatusError, StatusEnabled},
	}
	for _, tt := range tests {
		i := &ApiIntegration{Status: tt.from}
		i.Toggle()
		assert.Equal(t, tt.to, i.Status, "toggle from %s", tt.from)
	}

	// Repeated toggles never land on error.
	i := &ApiIntegration{Status: StatusError}
	for n := 0; n < 5; n++ {
		i.Toggle()
		assert.NotEqual(t, StatusError, i.Status)
	}
}

func TestApiIntegrationRetest(t *testing.T) {
	i := &ApiIntegration{Status: StatusError}
	assert.True(t, i.Retest())
	assert.Equal(t, StatusEnabled, i.Status)

	for _, s := range []string{StatusEnabled, StatusDisabled} {
		i := &ApiIntegration{Status: s}
		assert.False(t, i.Retest())
		assert.Equal(t, s, i.Status)
	}
}

func TestUserHasRole(t *testing.T) {
	var nobody *User
	assert.Equal(t, "", nobody.RoleName())

	u := &User{}
	assert.False(t, u.HasRole(RoleAdmin))

	u.Role = &Role{Name: RoleDeveloper}
	assert.True(t, u.HasRole(RoleAdmin, RoleDeveloper))
	assert.False(t, u.HasRole(RoleOperator))
}
