package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gxhighlight/pkg/fsutil"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadInput(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "SELECT 1\n")

	tests := []struct {
		name    string
		path    string
		maxSize int64
		want    string
		wantErr error
	}{
		{name: "no limit", path: path, want: "SELECT 1\n"},
		{name: "within limit", path: path, maxSize: 9, want: "SELECT 1\n"},
		{name: "over limit", path: path, maxSize: 8, wantErr: fsutil.ErrTooLarge},
		{name: "missing", path: path + ".missing", wantErr: fsutil.ErrNotFound},
		{name: "directory", path: filepath.Dir(path), wantErr: fsutil.ErrIsDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fsutil.ReadInput(context.Background(), tt.path, tt.maxSize)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestReadInput_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fsutil.ReadInput(ctx, writeFile(t, "x"), 0)
	require.ErrorIs(t, err, context.Canceled)
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		maxSize int64
		wantErr bool
	}{
		{name: "no limit", input: strings.Repeat("a", 100)},
		{name: "exactly the limit", input: "abcd", maxSize: 4},
		{name: "over the limit", input: "abcde", maxSize: 4, wantErr: true},
		{name: "empty", input: "", maxSize: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fsutil.ReadAll(context.Background(), strings.NewReader(tt.input), tt.maxSize)
			if tt.wantErr {
				require.ErrorIs(t, err, fsutil.ErrTooLarge)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, string(got))
		})
	}
}
