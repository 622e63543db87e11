package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForServiceBeforeInit(t *testing.T) {
	// Services are constructed before Init in tests and some commands;
	// the logger they get must be usable, never nil.
	saved := structuredLogger
	structuredLogger = nil
	t.Cleanup(func() { structuredLogger = saved })

	logger := ForService("pricing")
	require.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Info("service started", "component", "test")
	})
}

func TestForServiceAfterInit(t *testing.T) {
	Init()
	logger := ForService("web")
	require.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Debug("request handled")
	})
}
