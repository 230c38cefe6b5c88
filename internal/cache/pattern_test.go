package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePatternSingleLetter(t *testing.T) {
	drives, err := ResolvePattern("c")
	require.NoError(t, err)
	assert.Equal(t, []byte{'C'}, drives)
}

func TestResolvePatternConcatenatedLetters(t *testing.T) {
	drives, err := ResolvePattern("CD")
	require.NoError(t, err)
	assert.Equal(t, []byte{'C', 'D'}, drives)
}

func TestResolvePatternCommaSeparatedList(t *testing.T) {
	drives, err := ResolvePattern("C, D, e")
	require.NoError(t, err)
	assert.Equal(t, []byte{'C', 'D', 'E'}, drives)
}

func TestResolvePatternWhitespaceSeparatedList(t *testing.T) {
	drives, err := ResolvePattern("C D E")
	require.NoError(t, err)
	assert.Equal(t, []byte{'C', 'D', 'E'}, drives)
}

func TestResolvePatternDeduplicates(t *testing.T) {
	drives, err := ResolvePattern("C,C,c")
	require.NoError(t, err)
	assert.Equal(t, []byte{'C'}, drives)
}

func TestResolvePatternRejectsInvalidCharacters(t *testing.T) {
	_, err := ResolvePattern("C1")
	assert.Error(t, err)
}

func TestResolvePatternRejectsEmpty(t *testing.T) {
	_, err := ResolvePattern("")
	assert.ErrorIs(t, err, ErrNoDrivesMatched)
}
