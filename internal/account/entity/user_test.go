package entity

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleString(t *testing.T) {
	assert.Equal(t, "Admin", RoleAdmin.String())
	assert.Equal(t, "User", RoleUser.String())
	assert.Equal(t, "Trainer", RoleTrainer.String())
	assert.Equal(t, "Role(7)", Role(7).String())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("Trainer")
	require.NoError(t, err)
	assert.Equal(t, RoleTrainer, r)

	_, err = ParseRole("root")
	assert.Error(t, err)
}

func TestNewUser_DefaultsToUserRole(t *testing.T) {
	u := NewUser("Ada", "Lovelace", "ada@example.com", "secret")
	assert.Equal(t, RoleUser, u.Role)
	assert.NotEqual(t, uuid.Nil, u.ID)
}

func TestUserJSON_RoleAsName(t *testing.T) {
	u := NewUser("Ada", "Lovelace", "ada@example.com", "secret")
	u.Role = RoleAdmin

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"role":"Admin"`)

	var back User
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, *u, back)
}
