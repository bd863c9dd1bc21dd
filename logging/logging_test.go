package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plus3/tessel/config"
	"github.com/plus3/tessel/logging"
)

func TestNew(t *testing.T) {
	log, err := logging.New(config.Log{Level: "warn", Encoding: "json"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.InfoLevel))
	assert.True(t, log.Core().Enabled(zap.WarnLevel))

	log, err = logging.New(config.Log{Level: "debug", Encoding: "console", Development: true})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))
}

func TestNewErrors(t *testing.T) {
	_, err := logging.New(config.Log{Level: "loud", Encoding: "json"})
	assert.Error(t, err)

	_, err = logging.New(config.Log{Level: "info", Encoding: "xml"})
	assert.Error(t, err)
}
