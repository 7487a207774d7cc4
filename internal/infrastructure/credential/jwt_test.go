package credential

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer := NewJWTIssuer(testSecret, time.Hour, 24*time.Hour)
	user := &domain.User{ID: 42, Username: "alice", Role: domain.RoleModerator}

	pair, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.NotEqual(t, pair.Access, pair.Refresh)
	assert.WithinDuration(t, time.Now().Add(time.Hour), pair.ExpiresAt, 5*time.Second)

	got, err := issuer.Parse(pair.Access, ports.TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, &ports.TokenClaims{UserID: 42, Username: "alice", Role: domain.RoleModerator, Type: ports.TokenAccess}, got)

	_, err = issuer.Parse(pair.Refresh, ports.TokenRefresh)
	require.NoError(t, err)
}

func TestJWTIssuer_Rejects(t *testing.T) {
	issuer := NewJWTIssuer(testSecret, time.Hour, 24*time.Hour)
	user := &domain.User{ID: 1, Username: "bob", Role: domain.RoleUser}
	pair, err := issuer.Issue(user)
	require.NoError(t, err)

	expired := NewJWTIssuer(testSecret, time.Hour, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue(user)
	require.NoError(t, err)

	other, err := NewJWTIssuer("another-secret-another-secret-xx", time.Hour, time.Hour).Issue(user)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"uid": 1, "typ": "access"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		typ   ports.TokenType
	}{
		{"refresh used as access", pair.Refresh, ports.TokenAccess},
		{"access used as refresh", pair.Access, ports.TokenRefresh},
		{"expired", old.Access, ports.TokenAccess},
		{"wrong secret", other.Access, ports.TokenAccess},
		{"unsigned", none, ports.TokenAccess},
		{"garbage", "not.a.token", ports.TokenAccess},
		{"empty", "", ports.TokenAccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Parse(tt.token, tt.typ)
			assert.ErrorIs(t, err, domain.ErrInvalidCredential)
		})
	}
}
