package hyprkeys

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGolden walks testdata/{case}/ directories. Each holds a hyprland.conf
// and the golden.json tree it must parse to. The tree is checked both
// straight from the parser and after a round trip through the database.
func TestGolden(t *testing.T) {
	caseDirs, err := os.ReadDir("testdata")
	if err != nil {
		t.Skip("no testdata directory found")
	}

	for _, dir := range caseDirs {
		if !dir.IsDir() {
			continue
		}
		confPath := filepath.Join("testdata", dir.Name(), "hyprland.conf")
		goldenPath := filepath.Join("testdata", dir.Name(), "golden.json")
		if _, err := os.Stat(goldenPath); err != nil {
			continue
		}

		t.Run(dir.Name(), func(t *testing.T) {
			runGoldenTest(t, confPath, goldenPath)
		})
	}
}

func runGoldenTest(t *testing.T, confPath, goldenPath string) {
	t.Helper()
	ctx := context.Background()

	goldenData, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	var golden []Section
	require.NoError(t, json.Unmarshal(goldenData, &golden))

	t.Run("parse", func(t *testing.T) {
		e, err := NewParser()
		require.NoError(t, err)
		got, err := e.ParseFile(ctx, confPath)
		require.NoError(t, err)
		assertSameJSON(t, golden, got)
	})

	t.Run("index", func(t *testing.T) {
		e, err := New(filepath.Join(t.TempDir(), "golden.db"))
		require.NoError(t, err)
		defer e.Close()

		n, err := e.IndexFiles(ctx, []string{confPath})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		got, err := e.Query().Sections(confPath)
		require.NoError(t, err)
		assertSameJSON(t, golden, got)
	})
}

// assertSameJSON compares the serialized forms, so nil and empty slices
// are told apart the way consumers of the JSON see them.
func assertSameJSON(t *testing.T, want, got []Section) {
	t.Helper()
	wantJSON, err := json.Marshal(want)
	require.NoError(t, err)
	gotJSON, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(wantJSON), string(gotJSON))
}
