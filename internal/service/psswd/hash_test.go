package psswd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	var h PasswordHash

	hash, err := h.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hash)

	require.True(t, h.ComparePassword("correct horse battery staple", hash))
	require.False(t, h.ComparePassword("wrong password", hash))
	require.False(t, h.ComparePassword("correct horse battery staple", "not a hash"))
}
