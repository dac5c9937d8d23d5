package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultFile = "composition_extraction.log"
	EnvLogLevel = "XPTOOLS_LOG_LEVEL"

	fileTimeFormat = "2006-01-02 15:04:05"
)

// Config captures options for configuring the global logger.
type Config struct {
	Verbose bool      // debug level when set, info otherwise
	Level   string    // explicit level; wins over Verbose and the environment
	File    string    // optional log file, truncated on Configure
	Console io.Writer // optional human-readable sink (usually os.Stderr)
}

var (
	mu   sync.Mutex
	sink *os.File
)

// Configure replaces the global zerolog logger. With neither File nor Console
// set every entry is discarded.
func Configure(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if err := closeLocked(); err != nil {
		return err
	}

	zerolog.SetGlobalLevel(resolveLevel(cfg))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		return filepath.Base(file) + ":" + strconv.Itoa(line)
	}

	var writers []io.Writer
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file '%s': %w", cfg.File, err)
		}
		sink = f
		writers = append(writers, fileWriter(f))
	}
	if cfg.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: cfg.Console, TimeFormat: time.Kitchen})
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	log.Logger = zerolog.New(out).With().Timestamp().Caller().Logger()
	return nil
}

// fileWriter renders entries as "time | LEVEL | caller | message fields".
func fileWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: fileTimeFormat,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		},
		FormatLevel: func(i any) string {
			return fmt.Sprintf("| %s |", strings.ToUpper(fmt.Sprint(i)))
		},
		FormatCaller: func(i any) string {
			return fmt.Sprintf("%s |", i)
		},
	}
}

func resolveLevel(cfg Config) zerolog.Level {
	if cfg.Level != "" {
		if lvl, err := zerolog.ParseLevel(cfg.Level); err == nil {
			return lvl
		}
	}
	if cfg.Verbose {
		return zerolog.DebugLevel
	}
	if env := os.Getenv(EnvLogLevel); env != "" {
		if lvl, err := zerolog.ParseLevel(env); err == nil {
			return lvl
		}
	}
	return zerolog.InfoLevel
}

// WithComponent returns a child of the global logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}

// Close flushes and releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	if sink == nil {
		return nil
	}
	err := sink.Close()
	sink = nil
	log.Logger = zerolog.Nop()
	if err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}
