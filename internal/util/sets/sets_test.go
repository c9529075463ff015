package sets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	s := New("a", "b")
	require.True(t, s.Has("a"))
	require.False(t, s.Has("c"))

	require.True(t, s.Insert("c"))
	require.False(t, s.Insert("c"))
	require.Len(t, s, 3)
}
