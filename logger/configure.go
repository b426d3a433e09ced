package logger

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"

	"battlecats-savior/config"
)

type noopCloser struct{}

func (noopCloser) Close() error {
	return nil
}

const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
)

// Configure points the global logger at stderr and, when a log file is configured, at a rotated
// file as well. The returned closer flushes that file.
func Configure(config *config.Config) (io.Closer, error) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "logger.Configure error")
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339Nano,
	}
	writers := []io.Writer{console}

	var closer io.Closer = noopCloser{}
	if config.LogFile != "" {
		file := &lumberjack.Logger{
			Filename:   config.LogFile,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
		}
		writers = append(writers, file)
		closer = file
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger().
		Level(level)

	return closer, nil
}
