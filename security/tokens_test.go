package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, now time.Time) *TokenManager {
	t.Helper()
	m, err := NewTokenManager("test-secret", 0, "wisewallet")
	require.NoError(t, err)
	m.SetClock(func() time.Time { return now })
	return m
}

func TestIssueAndParse(t *testing.T) {
	issued := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	m := newTestManager(t, issued)

	token, expiresAt, err := m.Issue("user-a")
	require.NoError(t, err)
	assert.Equal(t, issued.Add(7*24*time.Hour), expiresAt)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-a", claims.UID)
	assert.Equal(t, "user-a", claims.Subject)
}

func TestParseExpired(t *testing.T) {
	issued := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	m := newTestManager(t, issued)
	token, _, err := m.Issue("user-a")
	require.NoError(t, err)

	m.SetClock(func() time.Time { return issued.Add(7*24*time.Hour + time.Minute) })
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	m.SetClock(func() time.Time { return issued.Add(6 * 24 * time.Hour) })
	_, err = m.Parse(token)
	assert.NoError(t, err)
}

func TestParseRejectsTampering(t *testing.T) {
	now := time.Now()
	m := newTestManager(t, now)
	token, _, err := m.Issue("user-a")
	require.NoError(t, err)

	other, err := NewTokenManager("another-secret", 0, "wisewallet")
	require.NoError(t, err)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	_, err = m.Parse(parts[0] + "." + parts[1] + ".c2lnbmF0dXJl")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	m := newTestManager(t, time.Now())
	claims := &Claims{
		UID: "user-a",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "wisewallet",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Parse(unsigned)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestIssueRequiresUID(t *testing.T) {
	m := newTestManager(t, time.Now())
	_, _, err := m.Issue("")
	assert.ErrorIs(t, err, ErrMissingUID)

	_, err = NewTokenManager("", time.Hour, "")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, CheckPassword(hash, "hunter22"))
	assert.ErrorIs(t, CheckPassword(hash, "hunter23"), ErrPasswordMismatch)
}
