package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidSize(t *testing.T) {
	require.True(t, Latin.ValidSize(2))
	require.True(t, Latin.ValidSize(7))
	require.False(t, Latin.ValidSize(8))
	require.False(t, Latin.ValidSize(1))

	// no Graeco-Latin squares of orders 2 and 6
	require.False(t, Orthogonal.ValidSize(2))
	require.False(t, Orthogonal.ValidSize(6))
	require.True(t, Orthogonal.ValidSize(5))
	require.True(t, Orthogonal.ValidSize(7))
}

func TestParseRoundTrips(t *testing.T) {
	for _, f := range []Family{Latin, Orthogonal, Jigsaw, Pyramid} {
		got, err := ParseFamily(f.String())
		require.NoError(t, err)
		require.Equal(t, f, got)
	}
	_, err := ParseFamily("kakuro")
	require.ErrorIs(t, err, ErrUnknownFamily)

	for _, d := range []Difficulty{Easy, Medium, Hard, Expert} {
		got, err := ParseDifficulty(d.String())
		require.NoError(t, err)
		require.Equal(t, d, got)
	}
}
