package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexMapCompiledReusesCache(t *testing.T) {
	m := RegexMap{"flur": `^\d+$`}
	compiled1, err := m.Compiled()
	require.NoError(t, err)
	compiled2, err := m.Compiled()
	require.NoError(t, err)
	assert.Same(t, compiled1["flur"], compiled2["flur"])
	assert.True(t, compiled1["flur"].MatchString("123"))
}

func TestRegexMapCompiledRejectsInvalidPattern(t *testing.T) {
	m := RegexMap{"bad": `(`}
	_, err := m.Compiled()
	assert.Error(t, err)
}

func TestContentHashStableForEqualInputs(t *testing.T) {
	a := contentHash("fn", "source", RegexMap{"x": "y"}, []string{"a", "b"})
	b := contentHash("fn", "source", RegexMap{"x": "y"}, []string{"a", "b"})
	assert.Equal(t, a, b)
}

func TestContentHashDiffersOnInputChange(t *testing.T) {
	a := contentHash("fn", "source", "input1")
	b := contentHash("fn", "source", "input2")
	assert.NotEqual(t, a, b)
}

func TestCacheStoreLoadRoundtrip(t *testing.T) {
	cacheStore("roundtrip-key", 42)
	v, ok := cacheLoad("roundtrip-key")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}
