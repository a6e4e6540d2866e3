package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateDialects gives the test an empty registry and restores the
// global one afterwards.
func isolateDialects(t *testing.T) {
	t.Helper()
	dialectsMu.Lock()
	saved := dialects
	dialects = map[string]Dialect{}
	dialectsMu.Unlock()
	t.Cleanup(func() {
		dialectsMu.Lock()
		dialects = saved
		dialectsMu.Unlock()
	})
}

func TestDialectRegistry(t *testing.T) {
	isolateDialects(t)

	RegisterDialect("gemini", &mockDialect{name: "gemini"})
	RegisterDialect("anthropic", &mockDialect{name: "anthropic"})

	d, err := GetDialect("gemini")
	require.NoError(t, err)
	assert.Equal(t, "gemini", d.Name())
	assert.Equal(t, []string{"anthropic", "gemini"}, Dialects())

	RegisterDialect("gemini", &mockDialect{name: "gemini-v2"})
	d, err = GetDialect("gemini")
	require.NoError(t, err)
	assert.Equal(t, "gemini-v2", d.Name(), "later registration replaces earlier")
}

func TestGetDialectUnknown(t *testing.T) {
	isolateDialects(t)

	_, err := GetDialect("ollama")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"ollama"`)
	assert.Empty(t, Dialects())
}
