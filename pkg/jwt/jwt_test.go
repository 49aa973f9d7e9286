package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("secret", "go-erp-api", time.Hour)
	id := uuid.New()

	token, err := m.GenerateToken(id, "alice", "v1")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "v1", claims.TokenVersion)
	assert.Equal(t, id.String(), claims.Subject)
}

func TestValidateToken_Rejects(t *testing.T) {
	m := NewManager("secret", "go-erp-api", time.Hour)
	good, err := m.GenerateToken(uuid.New(), "alice", "v1")
	require.NoError(t, err)

	expired := NewManager("secret", "go-erp-api", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateToken(uuid.New(), "alice", "v1")
	require.NoError(t, err)

	other, err := NewManager("other", "go-erp-api", time.Hour).GenerateToken(uuid.New(), "alice", "v1")
	require.NoError(t, err)

	foreign, err := NewManager("secret", "someone-else", time.Hour).GenerateToken(uuid.New(), "alice", "v1")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.New()}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", ErrMissingToken},
		{"garbage", "not-a-token", ErrInvalidToken},
		{"tampered", good + "x", ErrInvalidToken},
		{"expired", old, ErrInvalidToken},
		{"wrong secret", other, ErrInvalidToken},
		{"wrong issuer", foreign, ErrInvalidToken},
		{"alg none", none, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
