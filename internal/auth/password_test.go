package auth_test

import (
	"testing"

	"github.com/dukerupert/tabletab/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, auth.VerifyPassword("correct horse", hash))
	assert.ErrorIs(t, auth.VerifyPassword("wrong horse", hash), auth.ErrPasswordMismatch)

	err = auth.VerifyPassword("anything", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrPasswordMismatch)
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := auth.HashPassword("short")
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
}
