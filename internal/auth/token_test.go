package auth_test

import (
	"testing"
	"time"

	"github.com/dukerupert/tabletab/internal/auth"
	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(&domain.User{Username: "cashier1", Role: domain.RoleCashier})
	require.NoError(t, err)

	p, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "cashier1", p.Username)
	assert.Equal(t, domain.RoleCashier, p.Role)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	user := &domain.User{Username: "captain", Role: domain.RoleCaptain}

	other, err := auth.NewTokenIssuer("other-secret", time.Hour).Issue(user)
	require.NoError(t, err)
	_, err = issuer.Verify(other)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	expired, err := auth.NewTokenIssuer("test-secret", -time.Minute).Issue(user)
	require.NoError(t, err)
	_, err = issuer.Verify(expired)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = issuer.Verify("garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	badRole, err := issuer.Issue(&domain.User{Username: "x", Role: "WAITER"})
	require.NoError(t, err)
	_, err = issuer.Verify(badRole)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
