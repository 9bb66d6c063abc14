package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const defaultLogFile = "~/.arcade/breakout.log"

// annotationTUI marks commands that take over the terminal; their logs go to
// the log file instead of stderr.
const annotationTUI = "tui"

var (
	logger  = newLogger(os.Stderr, log.InfoLevel)
	logFile *os.File
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "breakout",
		Level:           level,
	})
}

// setupLogger configures the global logger for cmd from the log flags.
func setupLogger(cmd *cobra.Command) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w := cmd.ErrOrStderr()
	if _, ok := cmd.Annotations[annotationTUI]; ok {
		f, err := openLogFile(flagLogFile)
		if err != nil {
			// Writing to stderr would corrupt the alternate screen.
			w = io.Discard
		} else {
			w = f
			logFile = f
		}
	}

	logger = newLogger(w, level)
	return nil
}

func openLogFile(path string) (*os.File, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

func closeLogger() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
