package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/patview/cmd/patview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints help without arguments", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		m := &main.Main{DBPath: filepath.Join(t.TempDir(), "test.db")}

		err := m.Run(context.Background(), nil, stdout, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "patview")
	})

	t.Run("help succeeds", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		m := &main.Main{DBPath: filepath.Join(t.TempDir(), "test.db")}

		err := m.Run(context.Background(), []string{"help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "import")
	})

	t.Run("show does not open the database", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		dir := filepath.Join(t.TempDir(), "missing-dir")
		m := &main.Main{DBPath: filepath.Join(dir, "test.db")}

		err := m.Run(context.Background(), []string{"show", "--compact", sampleXML}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Nil(t, m.DB)
		assert.NoDirExists(t, dir)
		assert.Contains(t, stdout.String(), `"publicationNumber":"2020-123456"`)
	})

	t.Run("imports lists and fetches publications", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "test.db")
		dir := sampleBundle(t)

		stdout := &bytes.Buffer{}
		other := &main.Main{DBPath: filepath.Join(t.TempDir(), "other.db")}
		err := other.Run(context.Background(), []string{"--db", dbPath, "import", dir}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "1 imported, 0 skipped, 0 failed")

		stdout.Reset()
		err = (&main.Main{DBPath: dbPath}).Run(context.Background(), []string{"import", dir}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "0 imported, 1 skipped, 0 failed")

		stdout.Reset()
		err = (&main.Main{DBPath: dbPath}).Run(context.Background(), []string{"list"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		fields := strings.Fields(stdout.String())
		require.Len(t, fields, 3)
		assert.Equal(t, "2020-123456", fields[1])

		stdout.Reset()
		err = (&main.Main{DBPath: dbPath}).Run(context.Background(), []string{"get", fields[0]}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"inventionTitle": "画像処理装置"`)
	})

	t.Run("creates the database directory for archive commands", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "archive")
		m := &main.Main{DBPath: filepath.Join(dir, "test.db")}

		err := m.Run(context.Background(), []string{"list"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		assert.DirExists(t, dir)
	})

	t.Run("rejects unknown commands", func(t *testing.T) {
		t.Parallel()

		m := &main.Main{DBPath: filepath.Join(t.TempDir(), "test.db")}

		err := m.Run(context.Background(), []string{"frobnicate"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})
}

func TestNewMain_DoesNotCreateDirectories(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PATVIEW_DB", "")

	m := main.NewMain()

	assert.Equal(t, filepath.Join(home, ".patview", "patview.db"), m.DBPath)
	_, err := os.Stat(filepath.Join(home, ".patview"))
	assert.True(t, os.IsNotExist(err))
}
