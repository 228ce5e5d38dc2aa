package utils

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "charts", "a.json")
	require.NoError(t, SafeWriteFile(path, []byte("x")))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(b))
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, WriteJSON(path, map[string]int{"b": 2, "a": 1}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": 2\n}\n", string(b))
}

func TestPrettyJSONError(t *testing.T) {
	_, err := PrettyJSON(math.Inf(1))
	assert.Error(t, err)
}
