package runtime

import (
	"testing"

	"cloudcodeid/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidDefaultStyle(t *testing.T) {
	t.Setenv("DEFAULT_STYLE", "vscode")

	_, err := New(Options{ClientToken: "secret"})
	assert.ErrorIs(t, err, identity.ErrInvalidStyle)
}

func TestNew_RequiresClientToken(t *testing.T) {
	t.Setenv("DEFAULT_STYLE", "")

	_, err := New(Options{})
	assert.Error(t, err)
}

func TestNew_UsesDefaultRegistry(t *testing.T) {
	t.Setenv("DEFAULT_STYLE", "gemini-cli")
	t.Setenv("GIN_MODE", "test")

	rt, err := New(Options{ClientToken: "secret"})
	require.NoError(t, err)
	assert.Same(t, identity.DefaultVersions, rt.Generator().Versions())
}
