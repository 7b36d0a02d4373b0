package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("1234aA")
	require.NoError(t, err)

	assert.NotEqual(t, "1234aA", hash)
	assert.True(t, CheckPassword("1234aA", hash))
	assert.False(t, CheckPassword("1234aa", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("Secret1")
	require.NoError(t, err)
	b, err := HashPassword("Secret1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("aA1", 30))
	require.Error(t, err)
	assert.True(t, errors.Is(err, bcrypt.ErrPasswordTooLong))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("1234aA", "not-a-hash"))
}

func TestRandomPassword(t *testing.T) {
	a, err := RandomPassword()
	require.NoError(t, err)
	b, err := RandomPassword()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
