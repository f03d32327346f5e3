package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"wisewallet/backend/database"
	"wisewallet/backend/migrations"
)

func newLocalIdentity(t *testing.T) *LocalIdentity {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.RunMigrations(db))
	return NewLocalIdentity(database.NewCredentialRepository(db), bcrypt.MinCost)
}

func TestLocalIdentity(t *testing.T) {
	p := newLocalIdentity(t)
	ctx := context.Background()

	acct, err := p.CreateAccount(ctx, "ann@uni.edu", "secret1", "Ann")
	require.NoError(t, err)
	assert.NotEmpty(t, acct.UID)

	_, err = p.CreateAccount(ctx, "ANN@uni.edu", "other1", "Ann")
	assert.ErrorIs(t, err, ErrEmailTaken)

	got, err := p.VerifyPassword(ctx, "ann@uni.edu", "secret1")
	require.NoError(t, err)
	assert.Equal(t, acct.UID, got.UID)

	_, err = p.VerifyPassword(ctx, "ann@uni.edu", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = p.VerifyPassword(ctx, "nobody@uni.edu", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.GetAccount(ctx, acct.UID)
	require.NoError(t, err)

	require.NoError(t, p.DeleteAccount(ctx, acct.UID))
	_, err = p.GetAccount(ctx, acct.UID)
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.ErrorIs(t, p.DeleteAccount(ctx, acct.UID), ErrAccountNotFound)
}
