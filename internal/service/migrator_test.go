package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "dashdeck/internal/errors"
	"dashdeck/internal/model"
	"dashdeck/internal/password"
)

func TestMigratorRehashesPlaintextRows(t *testing.T) {
	repo := new(MockUserRepository)
	hasher := password.NewHasher()
	migrator := NewMigrator(repo, hasher, testLogger())

	alreadyHashed, err := hasher.Hash("password1")
	require.NoError(t, err)

	repo.On("List", mock.Anything).Return([]model.User{
		{ID: 1, Email: "legacy@b.com", PasswordHash: "plaintext-secret"},
		{ID: 2, Email: "modern@b.com", PasswordHash: alreadyHashed},
	}, nil)

	var written string
	repo.On("UpdatePasswordHash", mock.Anything, uint(1), mock.MatchedBy(func(h string) bool {
		written = h
		return hasher.LooksHashed(h)
	})).Return(nil)

	require.NoError(t, migrator.Run(context.Background()))

	// The legacy row is upgraded in place and still verifies against the
	// original plaintext. The hashed row is left alone.
	ok, err := hasher.Verify("plaintext-secret", written)
	require.NoError(t, err)
	assert.True(t, ok)
	repo.AssertNumberOfCalls(t, "UpdatePasswordHash", 1)
}

func TestMigratorSkipsFailingRowAndContinues(t *testing.T) {
	repo := new(MockUserRepository)
	hasher := password.NewHasher()
	migrator := NewMigrator(repo, hasher, testLogger())

	repo.On("List", mock.Anything).Return([]model.User{
		{ID: 1, Email: "first@b.com", PasswordHash: "plain-one"},
		{ID: 2, Email: "second@b.com", PasswordHash: "plain-two"},
	}, nil)

	repo.On("UpdatePasswordHash", mock.Anything, uint(1), mock.Anything).
		Return(apperrors.NewStorageError("update password hash", errors.New("row locked")))
	repo.On("UpdatePasswordHash", mock.Anything, uint(2), mock.Anything).Return(nil)

	// One bad row must not abort the pass.
	require.NoError(t, migrator.Run(context.Background()))
	repo.AssertNumberOfCalls(t, "UpdatePasswordHash", 2)
}

func TestMigratorReportsListFailure(t *testing.T) {
	repo := new(MockUserRepository)
	migrator := NewMigrator(repo, password.NewHasher(), testLogger())

	listErr := apperrors.NewStorageError("list users", errors.New("connection refused"))
	repo.On("List", mock.Anything).Return(nil, listErr)

	err := migrator.Run(context.Background())
	assert.Error(t, err)
}
