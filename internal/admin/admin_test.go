package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propscout/hmo-app/internal/app"
)

func TestSetPasswordHash(t *testing.T) {
	a := AdminEntity{Username: "operator"}

	require.NoError(t, a.SetPasswordHash("hunter22"))
	assert.NotEmpty(t, a.PasswordHash)
	assert.NotEqual(t, "hunter22", a.PasswordHash)

	assert.True(t, a.CheckPasswordHash("hunter22"))
	assert.False(t, a.CheckPasswordHash("wrong"))
}

func TestSetPasswordHashEmpty(t *testing.T) {
	a := AdminEntity{}

	err := a.SetPasswordHash("")
	require.Error(t, err)

	var respErr *app.ServerResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, 422, respErr.StatusCode)
}

func TestValidateUsername(t *testing.T) {
	a := AdminEntity{Username: "operator"}
	assert.NoError(t, a.ValidateUsername())

	a.Username = ""
	assert.Error(t, a.ValidateUsername())
}

func TestValidateRejectsForgedToken(t *testing.T) {
	svc := New([]byte("secret"), nil)

	token, err := svc.token(AdminEntity{ID: 7})
	require.NoError(t, err)

	// A token signed under a different secret fails before any
	// database access.
	forger := New([]byte("other secret"), nil)
	forged, err := forger.token(AdminEntity{ID: 7})
	require.NoError(t, err)

	_, err = svc.Validate(context.Background(), forged)
	require.Error(t, err)

	var respErr *app.ServerResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, 401, respErr.StatusCode)

	_, err = svc.Validate(context.Background(), "not a token")
	assert.Error(t, err)

	// The correctly signed token passes parsing; only the account
	// lookup remains.
	assert.NotEmpty(t, token)
}
