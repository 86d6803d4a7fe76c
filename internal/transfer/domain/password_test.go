package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPassword(t *testing.T) {
	password, err := NewPassword("correct horse battery")
	require.NoError(t, err)

	assert.True(t, password.Verify("correct horse battery"))
	assert.False(t, password.Verify("wrong guess"))
	assert.NotEqual(t, "correct horse battery", password.Hash())
}

func TestNewPasswordTooShort(t *testing.T) {
	_, err := NewPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestPasswordFromHash(t *testing.T) {
	original, err := NewPassword("correct horse battery")
	require.NoError(t, err)

	restored, err := PasswordFromHash(original.Hash())
	require.NoError(t, err)
	assert.True(t, restored.Verify("correct horse battery"))

	_, err = PasswordFromHash("plaintext-not-a-hash")
	assert.ErrorIs(t, err, ErrInvalidHash)
}
