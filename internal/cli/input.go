package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdxor/pkg/fsutil"
)

// stdinName is the display path used for documents read from standard input.
const stdinName = "<stdin>"

// readInput reads the single document named by args, or standard input when
// args is empty or "-".
func readInput(ctx context.Context, cmd *cobra.Command, args []string) (string, []byte, error) {
	if len(args) == 0 || args[0] == "-" {
		content, err := fsutil.ReadAll(cmd.InOrStdin(), fsutil.DefaultMaxSize)
		if err != nil {
			return "", nil, err
		}
		return stdinName, content, nil
	}

	path := args[0]
	content, err := fsutil.ReadSource(ctx, path, fsutil.DefaultMaxSize)
	if err != nil {
		return "", nil, err
	}
	return path, content, nil
}

// outputTarget returns the writer for command output. When path is set the
// output is buffered and commit writes it atomically; otherwise output goes
// straight to the command's stdout and commit is a no-op.
func outputTarget(ctx context.Context, cmd *cobra.Command, path string) (io.Writer, func() error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }
	}

	var buf bytes.Buffer
	return &buf, func() error {
		if err := fsutil.WriteAtomic(ctx, path, buf.Bytes(), fsutil.DefaultFileMode); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	}
}
