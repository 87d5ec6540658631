package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gxhighlight/internal/logging"
	"github.com/yaklabco/gxhighlight/pkg/fsutil"
)

// stdinName names standard input in output and for language detection.
const stdinName = "<stdin>"

// pipedStdin returns the command's standard input unless it is a terminal.
func pipedStdin(cmd *cobra.Command) (io.Reader, bool) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, false
	}
	return in, true
}

// readNamedInput reads path, or standard input when path is "" or "-".
// It returns the name to report the input under.
func (s *session) readNamedInput(cmd *cobra.Command, path string) (string, []byte, error) {
	if path == "" || path == "-" {
		in, ok := pipedStdin(cmd)
		if !ok {
			return "", nil, usageError("no input: pass a file or pipe text on stdin")
		}
		content, err := fsutil.ReadAll(s.ctx, in, s.cfg.MaxFileSize)
		if err != nil {
			return stdinName, nil, withExitCode(ExitIOError, err)
		}
		return stdinName, content, nil
	}

	content, err := fsutil.ReadInput(s.ctx, path, s.cfg.MaxFileSize)
	if err != nil {
		return path, nil, withExitCode(ExitIOError, err)
	}
	return path, content, nil
}

// output is the destination of a command's main output: the command's
// stdout, or a buffer written atomically to a file by commit.
type output struct {
	path   string
	buffer bytes.Buffer
	writer io.Writer
}

func newOutput(cmd *cobra.Command, path string) *output {
	out := &output{path: path}
	if path == "" {
		out.writer = cmd.OutOrStdout()
	} else {
		out.writer = &out.buffer
	}
	return out
}

// Writer returns where output should be written.
func (o *output) Writer() io.Writer {
	return o.writer
}

// commit writes buffered output to its file. It is a no-op for stdout.
func (o *output) commit(ctx context.Context, s *session) error {
	if o.path == "" {
		return nil
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, o.path, o.buffer.Bytes(), 0)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return withExitCode(ExitIOError, fmt.Errorf("write %s: %w", o.path, err))
	}

	if written {
		s.logger.Debug("wrote output", logging.FieldOutput, o.path)
	} else {
		s.logger.Debug("output unchanged", logging.FieldOutput, o.path)
	}
	return nil
}
