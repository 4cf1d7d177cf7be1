package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-ipl-stats/internal/storage"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	s, err := NewService(db, "test-secret", time.Hour)
	require.NoError(t, err)
	return s
}

func TestValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "first.last+tag@sub.domain.co", "A_B%c@x.io"}
	for _, e := range valid {
		assert.True(t, ValidEmail(e), e)
	}
	invalid := []string{"", "invalid-email", "a@b", "a@b.c", "a@b.toolongtld", "a b@c.com", "test@example.com trailing"}
	for _, e := range invalid {
		assert.False(t, ValidEmail(e), e)
	}
}

func TestPasswordHash(t *testing.T) {
	h, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", h)
	assert.True(t, CheckPassword(h, "s3cret"))
	assert.False(t, CheckPassword(h, "wrong"))
}

func TestNewServiceValidates(t *testing.T) {
	_, err := NewService(nil, "", time.Hour)
	assert.Error(t, err)
	_, err = NewService(nil, "x", 0)
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	u, err := s.Register(ctx, "New User", "new@example.com", "newpassword")
	require.NoError(t, err)
	assert.Equal(t, "New User", u.Name)
	assert.NotEqual(t, "newpassword", u.PasswordHash)

	_, err = s.Register(ctx, "Again", "new@example.com", "pw")
	assert.ErrorIs(t, err, storage.ErrUserExists)

	_, err = s.Register(ctx, "Invalid Email", "invalid-email", "password")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = s.Register(ctx, "", "x@example.com", "pw")
	assert.ErrorIs(t, err, ErrIncompleteForm)
	_, err = s.Register(ctx, "X", "x@example.com", "")
	assert.ErrorIs(t, err, ErrIncompleteForm)
}

func TestLoginAndParse(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	_, err := s.Register(ctx, "Test", "test@example.com", "testpassword")
	require.NoError(t, err)

	tok, u, err := s.Login(ctx, "test@example.com", "testpassword")
	require.NoError(t, err)
	assert.Equal(t, "Test", u.Name)

	claims, err := s.ParseToken(tok)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
	assert.Equal(t, "test@example.com", claims.Email)

	_, _, err = s.Login(ctx, "test@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = s.Login(ctx, "nobody@example.com", "testpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = s.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrIncompleteForm)
}

func TestParseTokenRejects(t *testing.T) {
	s := newService(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	tok, err := s.IssueToken(&storage.User{ID: 7, Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	_, err = s.ParseToken(tok)
	require.NoError(t, err)

	s.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, err = s.ParseToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")

	s.now = func() time.Time { return base }
	other, err := NewService(nil, "other-secret", time.Hour)
	require.NoError(t, err)
	forged, err := other.IssueToken(&storage.User{ID: 7})
	require.NoError(t, err)
	_, err = s.ParseToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong key")

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "7", "iss": issuer}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.ParseToken(none)
	assert.ErrorIs(t, err, ErrInvalidToken, "alg none")

	_, err = s.ParseToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
