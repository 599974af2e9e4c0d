//go:build unit || !integration

package idgen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidJobID(t *testing.T) {
	require.True(t, IsValidJobID(NewJobID()))
	require.True(t, IsValidJobID("8f14e45f-ceea-4e17-abf5-8a6e4b1f0d11"))

	require.False(t, IsValidJobID(""))
	require.False(t, IsValidJobID("not-a-guid"))
	require.False(t, IsValidJobID("8f14e45f-ceea-4e17-abf5"))
}

func TestNormalizeJobID(t *testing.T) {
	valid := NewJobID()
	require.Equal(t, valid, NormalizeJobID(valid))

	minted := NormalizeJobID("")
	require.True(t, IsValidJobID(minted))
	require.NotEqual(t, minted, NormalizeJobID(""), "each normalization of a missing id is fresh")

	replaced := NormalizeJobID("not-a-guid")
	require.True(t, IsValidJobID(replaced))
}
