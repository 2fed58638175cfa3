package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := hasher.Hash("secret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", hash)

	assert.NoError(t, hasher.Compare(hash, "secret-password"))
	assert.Error(t, hasher.Compare(hash, "wrong-password"))
}

func TestBcryptHasherDistinctSalts(t *testing.T) {
	hasher := BcryptHasher{Cost: bcrypt.MinCost}

	a, err := hasher.Hash("same-input")
	require.NoError(t, err)
	b, err := hasher.Hash("same-input")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
