package monitoring

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
)

// Options configures the process logger.
type Options struct {
	Level   string    // trace|debug|info|warn|error
	Out     io.Writer // console output, os.Stderr when nil
	NoColor bool
	Graylog string // GELF UDP address (host:port); empty disables shipping
}

// ParseLevel maps a level name onto zerolog. Unknown names fall back to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup builds the process logger and points Logf at it. The returned closer
// releases the Graylog connection, if one was opened.
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    opts.NoColor,
		},
	}

	var closer io.Closer = nopCloser{}
	if opts.Graylog != "" {
		gw, err := gelf.NewWriter(opts.Graylog)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open graylog writer: %w", err)
		}
		writers = append(writers, gw)
		closer = gw
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(opts.Level)).
		With().Timestamp().Logger()

	SetLogger(func(format string, v ...interface{}) {
		logger.Info().Msgf(format, v...)
	})

	logger.Debug().Str("loglevel", logger.GetLevel().String()).Msg("logging set up")
	return logger, closer, nil
}
