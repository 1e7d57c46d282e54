package logger

import (
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"

	"fwwatch/internal/common/errorwrapper"
	"fwwatch/internal/config"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a zerolog logger from the log configuration. Console output is
// always enabled; file output with rotation is added when a log file is set.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Logger{}, err
	}

	format := parseFormat(cfg.LogFormat)

	writers := []io.Writer{newConsoleWriter(format)}
	if cfg.LogFile != "" {
		fileWriter, err := newFileWriter(cfg, format)
		if err != nil {
			return zerolog.Logger{}, err
		}
		writers = append(writers, fileWriter)
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	logger := zerolog.New(multiWriter).
		Level(level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(level)
	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)

	return logger, nil
}

func parseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "fatal":
		return zerolog.FatalLevel, nil
	case "panic":
		return zerolog.PanicLevel, nil
	default:
		return zerolog.NoLevel, errorwrapper.NewValidationError("log_level", level, "unknown log level")
	}
}

func newFileWriter(cfg config.LogConfig, format LogFormat) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create log directory")
	}

	maxSize := cfg.MaxLogSizeMB
	if maxSize <= 0 {
		maxSize = config.DefaultMaxLogSizeMB
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    maxSize,
		LocalTime:  true,
		MaxBackups: cfg.MaxLogBackups,
	}

	// Console colors make no sense in a file
	if format == FormatConsole {
		return newWriter(FormatText, rotator), nil
	}
	return newWriter(format, rotator), nil
}
