package auth

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"coursehub/internal/domain"
	"coursehub/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims models.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func newTestVerifier(t *testing.T) JWTVerifier {
	t.Helper()
	v, err := NewHMACVerifier(testSecret, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return v
}

func TestHMACVerifier_VerifyToken(t *testing.T) {
	valid := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: models.RoleAdmin,
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	noSubject := valid
	noSubject.Subject = ""

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{name: "valid token", token: sign(t, jwt.SigningMethodHS256, []byte(testSecret), valid)},
		{name: "expired token", token: sign(t, jwt.SigningMethodHS256, []byte(testSecret), expired), wantErr: true},
		{name: "missing subject", token: sign(t, jwt.SigningMethodHS256, []byte(testSecret), noSubject), wantErr: true},
		{name: "wrong secret", token: sign(t, jwt.SigningMethodHS256, []byte("other"), valid), wantErr: true},
		{name: "unexpected algorithm", token: sign(t, jwt.SigningMethodHS512, []byte(testSecret), valid), wantErr: true},
		{name: "garbage", token: "not-a-token", wantErr: true},
	}

	v := newTestVerifier(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := v.VerifyToken(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "user-1", claims.GetUserID())

			actor := models.ActorFromClaims(claims)
			assert.True(t, actor.IsAdmin())
		})
	}
}

func TestNewHMACVerifier_RequiresSecret(t *testing.T) {
	_, err := NewHMACVerifier("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestNewJWKSVerifier_RequiresURL(t *testing.T) {
	_, err := NewJWKSVerifier("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
