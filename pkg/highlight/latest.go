package highlight

import (
	"context"
	"sync/atomic"

	"github.com/yaklabco/gxhighlight/pkg/token"
)

// Result is a completed scan delivered by Latest.
type Result struct {
	// Generation identifies the submission that produced this result.
	Generation uint64
	Tokens     []token.Token
}

// Latest runs scans in the background and delivers only the newest result.
//
// A scan is never interrupted. When a newer Submit happens before an older
// scan finishes, the older result is discarded and its channel is closed
// without a value. This suits editors that re-highlight on every keystroke.
type Latest struct {
	generation atomic.Uint64
}

// Submit scans text with scanner in a new goroutine.
// The returned channel receives at most one Result and is then closed.
// If ctx is done before the scan finishes, the result is discarded.
func (l *Latest) Submit(ctx context.Context, scanner Scanner, text string) <-chan Result {
	gen := l.generation.Add(1)
	out := make(chan Result, 1)

	go func() {
		defer close(out)

		tokens := scanner.Scan(text)

		if ctx.Err() != nil || l.generation.Load() != gen {
			return
		}
		out <- Result{Generation: gen, Tokens: tokens}
	}()

	return out
}

// Current returns the generation of the most recent submission.
func (l *Latest) Current() uint64 {
	return l.generation.Load()
}

// Stale reports whether gen has been superseded by a newer submission.
func (l *Latest) Stale(gen uint64) bool {
	return l.generation.Load() != gen
}
