// Package runner highlights many files concurrently.
package runner

import (
	"github.com/charmbracelet/log"
)

// Options controls a multi-file highlighting run.
type Options struct {
	// Paths are the files or directories to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions (lowercase, with leading dot) select files found while
	// walking directories. Explicitly named files are always processed.
	// Empty means every extension the registry knows.
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths, relative to WorkingDir.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Language forces one language for every file instead of detecting it.
	Language string

	// MaxFileSize skips files larger than this many bytes. 0 means no limit.
	MaxFileSize int64

	// Logger receives per-file debug messages. Nil disables logging.
	Logger *log.Logger
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
