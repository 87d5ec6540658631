package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gxhighlight/pkg/fsutil"
)

func TestBackup(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".gxhighlight.yml")
	require.NoError(t, os.WriteFile(path, []byte("color: never\n"), 0o600))

	backupPath, err := fsutil.Backup(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path+".bak", backupPath)
	assert.Equal(t, fsutil.BackupPath(path), backupPath)

	got, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, "color: never\n", string(got))

	info, err := os.Stat(backupPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestBackup_MissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	backupPath, err := fsutil.Backup(context.Background(), filepath.Join(dir, "none.yml"))
	require.NoError(t, err)
	assert.Empty(t, backupPath)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBackup_Directory(t *testing.T) {
	t.Parallel()

	_, err := fsutil.Backup(context.Background(), t.TempDir())
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)
}
