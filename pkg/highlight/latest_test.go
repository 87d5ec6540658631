package highlight_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gxhighlight/pkg/highlight"
	"github.com/yaklabco/gxhighlight/pkg/token"
)

func TestLatest_DeliversResult(t *testing.T) {
	t.Parallel()

	var latest highlight.Latest
	results := latest.Submit(context.Background(), highlight.PlainScanner, "abc")

	select {
	case res, ok := <-results:
		require.True(t, ok)
		assert.Equal(t, uint64(1), res.Generation)
		assert.Equal(t, []token.Token{{Text: "abc", Kind: token.Normal}}, res.Tokens)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for result")
	}
}

func TestLatest_DiscardsSupersededResult(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	slow := highlight.ScannerFunc(func(text string) []token.Token {
		<-release
		return highlight.Plain(text)
	})

	var latest highlight.Latest
	stale := latest.Submit(context.Background(), slow, "old")
	fresh := latest.Submit(context.Background(), highlight.PlainScanner, "new")

	select {
	case res, ok := <-fresh:
		require.True(t, ok)
		assert.Equal(t, "new", token.Join(res.Tokens))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for fresh result")
	}

	close(release)

	select {
	case _, ok := <-stale:
		assert.False(t, ok, "superseded scan must not deliver a result")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for stale channel to close")
	}

	assert.True(t, latest.Stale(1))
	assert.False(t, latest.Stale(latest.Current()))
}

func TestLatest_CancelledContextDiscardsResult(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var latest highlight.Latest
	_, ok := <-latest.Submit(ctx, highlight.PlainScanner, "abc")
	assert.False(t, ok)
}
