package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBcryptHasherHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher()

	hashed, err := hasher.Hash("password")

	assert.NoError(t, err)
	assert.NotEmpty(t, hashed)
	assert.NotEqual(t, "password", hashed)
	assert.True(t, strings.HasPrefix(hashed, "$2a$"))

	assert.NoError(t, hasher.Compare(hashed, "password"))
	assert.Error(t, hasher.Compare(hashed, "wrong-password"))
}

func TestBcryptHasherHashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasher()

	first, err := hasher.Hash("password")
	assert.NoError(t, err)
	second, err := hasher.Hash("password")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasherCompareRejectsGarbageHash(t *testing.T) {
	hasher := NewBcryptHasher()

	assert.Error(t, hasher.Compare("not-a-bcrypt-hash", "password"))
}
