package provisioning

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomPasswordGenerator(t *testing.T) {
	g := NewRandomPasswordGenerator(DefaultPasswordLength)
	seen := map[string]bool{}

	for i := 0; i < 200; i++ {
		pw, err := g.Generate()
		require.NoError(t, err)
		assert.Len(t, pw, DefaultPasswordLength)

		for _, r := range pw {
			assert.True(t, strings.ContainsRune(PasswordCharset, r), "unexpected character %q", r)
		}
		assert.True(t, strings.ContainsAny(pw, lowerChars))
		assert.True(t, strings.ContainsAny(pw, upperChars))
		assert.True(t, strings.ContainsAny(pw, digitChars))
		assert.True(t, strings.ContainsAny(pw, symbolChars))

		assert.False(t, seen[pw], "duplicate password")
		seen[pw] = true
	}
}

func TestRandomPasswordGenerator_Length(t *testing.T) {
	pw, err := NewRandomPasswordGenerator(0).Generate()
	require.NoError(t, err)
	assert.Len(t, pw, DefaultPasswordLength)

	_, err = (&RandomPasswordGenerator{Length: 3}).Generate()
	assert.Error(t, err)
}
