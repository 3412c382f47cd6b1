package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		_, err := New(Config{})
		assert.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		g, err := New(Config{APIKey: "test-key"})
		require.NoError(t, err)
		assert.Equal(t, "openai/gpt-4o-mini", g.Name())
	})

	t.Run("explicit model", func(t *testing.T) {
		g, err := New(Config{APIKey: "test-key", Model: "gpt-4o"})
		require.NoError(t, err)
		assert.Equal(t, "openai/gpt-4o", g.Name())
	})
}
