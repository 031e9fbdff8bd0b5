package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"pitchside/internal/config"
	"pitchside/internal/services"
)

const stdinArg = "-"

// readCommentary loads commentary from a file argument, or from stdin when
// the argument is "-" or omitted. It returns the text and a source label.
func readCommentary(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == stdinArg {
		in := cmd.InOrStdin()
		if file, ok := in.(*os.File); ok && len(args) == 0 && isatty.IsTerminal(file.Fd()) {
			return "", "", services.Wrap(services.ErrValidation, "input", "read", "no input: pass a file or pipe commentary on stdin", nil)
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}

	path, err := config.ExpandPath(strings.TrimSpace(args[0]))
	if err != nil {
		return "", "", services.Wrap(services.ErrValidation, "input", "resolve path", "", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", services.Wrap(services.ErrValidation, "input", "read file", path, err)
	}
	return string(data), filepath.Base(path), nil
}
