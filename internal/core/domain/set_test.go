package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stencil/internal/core/domain"
)

func TestSet_Basics(t *testing.T) {
	s := domain.NewSet("b", "a", "b")

	assert.Len(t, s, 2)
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))

	s.Add("c")
	s.Remove("a")
	assert.Equal(t, []string{"b", "c"}, s.Sorted())
}

func TestSet_Equal(t *testing.T) {
	assert.True(t, domain.NewSet("a", "b").Equal(domain.NewSet("b", "a")))
	assert.False(t, domain.NewSet("a").Equal(domain.NewSet("a", "b")))
	assert.False(t, domain.NewSet("a", "c").Equal(domain.NewSet("a", "b")))
	assert.True(t, domain.NewSet().Equal(domain.NewSet()))
}

func TestSet_Clone(t *testing.T) {
	s := domain.NewSet("a")
	c := s.Clone()
	c.Add("b")

	assert.False(t, s.Has("b"))
	assert.True(t, c.Has("b"))
}

func TestSet_JSON(t *testing.T) {
	data, err := json.Marshal(domain.NewSet("zsh", "bash", "fish"))
	require.NoError(t, err)
	assert.Equal(t, `["bash","fish","zsh"]`, string(data))

	var s domain.Set
	require.NoError(t, json.Unmarshal([]byte(`["b","a","b"]`), &s))
	assert.Equal(t, []string{"a", "b"}, s.Sorted())
}
