package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogging routes the global logger to a file. The terminal owns
// stdout and stderr while the editor runs, so logs can never go there.
// The returned closer flushes and detaches the file.
func InitLogging(path string, debug bool) (func(), error) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	if path == "" {
		log.Logger = zerolog.New(io.Discard)
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	log.Logger = zerolog.New(f).Level(level).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}
