// Package logging configures podkeeper's zerolog output: a console writer
// on stderr plus an append-only file under the XDG state directory.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvStateDir overrides the directory holding podkeeper.log
const EnvStateDir = "PODKEEPER_STATE_DIR"

const logFileName = "podkeeper.log"

// levels is indexed by the -v count. Counts past the end mean trace.
var levels = []zerolog.Level{
	zerolog.WarnLevel,
	zerolog.InfoLevel,
	zerolog.DebugLevel,
	zerolog.TraceLevel,
}

func levelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return levels[0]
	case verbosity >= len(levels):
		return zerolog.TraceLevel
	default:
		return levels[verbosity]
	}
}

// SetupLogger installs the global logger for a -v count. Warnings and
// errors always reach stderr; the log file receives the same events.
func SetupLogger(verbosity int) {
	zerolog.SetGlobalLevel(levelFor(verbosity))

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}

	path := LogFilePath()
	file, fileErr := openLogFile(path)

	var out zerolog.LevelWriter = zerolog.MultiLevelWriter(console)
	if fileErr == nil {
		out = zerolog.MultiLevelWriter(console, file)
	}

	ctx := zerolog.New(out).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("Log file unavailable, logging to stderr only")
	}
	log.Debug().Int("verbosity", verbosity).Str("log_file", path).Msg("Logger initialized")
}

// GetLogger returns the global logger tagged with a component name
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// LogFilePath returns where SetupLogger appends. PODKEEPER_STATE_DIR wins
// over $XDG_STATE_HOME/podkeeper.
func LogFilePath() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return filepath.Join(dir, logFileName)
	}
	xdg.Reload()
	return filepath.Join(xdg.StateHome, "podkeeper", logFileName)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

// Timed logs operation at debug level and returns a func that logs its
// duration when called.
func Timed(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")
	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
