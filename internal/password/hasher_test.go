package password

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "dashdeck/internal/errors"
)

func TestHashIsSaltedAndVerifiable(t *testing.T) {
	hasher := NewHasher()

	first, err := hasher.Hash("password1")
	require.NoError(t, err)
	second, err := hasher.Hash("password1")
	require.NoError(t, err)

	// Fresh salt per call: same plaintext, different hashes.
	assert.NotEqual(t, first, second)

	for _, hash := range []string{first, second} {
		ok, err := hasher.Verify("password1", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestVerifyWrongPasswordIsNotAnError(t *testing.T) {
	hasher := NewHasher()

	hash, err := hasher.Hash("password1")
	require.NoError(t, err)

	ok, err := hasher.Verify("wrongpass", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyMalformedHash(t *testing.T) {
	hasher := NewHasher()

	ok, err := hasher.Verify("password1", "not-a-bcrypt-hash")
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrMalformedHash))
}

func TestLooksHashed(t *testing.T) {
	hasher := NewHasher()

	hash, err := hasher.Hash("password1")
	require.NoError(t, err)
	assert.True(t, hasher.LooksHashed(hash))

	assert.True(t, hasher.LooksHashed("$2a$10$abcdefghijklmnopqrstuv"))
	assert.True(t, hasher.LooksHashed("$2y$10$abcdefghijklmnopqrstuv"))

	assert.False(t, hasher.LooksHashed("password1"))
	assert.False(t, hasher.LooksHashed(""))
	assert.False(t, hasher.LooksHashed("$1$legacy-md5-crypt"))
}
