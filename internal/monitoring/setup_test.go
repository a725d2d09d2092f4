package monitoring

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" info ":  zerolog.InfoLevel,
		"Warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"verbose": zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestSetupRoutesLogf(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var buf bytes.Buffer
	logger, closer, err := Setup(Options{Level: "info", Out: &buf, NoColor: true})
	require.NoError(t, err)
	defer closer.Close()

	Logf("lost track of target %d", 3)
	assert.Contains(t, buf.String(), "lost track of target 3")

	logger.Debug().Msg("hidden")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestSetupWithGraylog(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var buf bytes.Buffer
	// UDP dial does not need a listener
	_, closer, err := Setup(Options{Out: &buf, Graylog: "127.0.0.1:12201"})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
}
