package jwt

import (
	"testing"
	"time"

	"Recipe-Box/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	svc := NewJWTServiceWith("secret", time.Hour)

	token := svc.GenerateTokenUser("user-1", domain.RoleUser)
	require.NotEmpty(t, token)

	id, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
	assert.Equal(t, domain.RoleUser, role)
	assert.Equal(t, time.Hour, svc.TTL())
}

func TestGetUserIDByToken_Rejects(t *testing.T) {
	svc := NewJWTServiceWith("secret", time.Hour)

	other := NewJWTServiceWith("other-secret", time.Hour).GenerateTokenUser("user-1", "")
	_, _, err := svc.GetUserIDByToken(other)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, _, err = svc.GetUserIDByToken("not.a.token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	expired := NewJWTServiceWith("secret", -time.Minute).GenerateTokenUser("user-1", "")
	_, _, err = svc.GetUserIDByToken(expired)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	assert.Equal(t, domain.StatusUnauthorized, domain.StatusOf(err))
}
