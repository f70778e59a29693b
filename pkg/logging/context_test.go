package logging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/whitelink/pkg/logging"
)

func TestWithFields(t *testing.T) {
	testLogger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)

	ctx = logging.WithFields(ctx, map[string]any{
		"remote":  "Steve",
		"attempt": 2,
		"role":    true,
		"error":   errors.New("boom"),
	})
	logging.FromContext(ctx).Warn().Msg("with fields")

	assert.True(t, testLogger.Contains(`"remote":"Steve"`))
	assert.True(t, testLogger.Contains(`"attempt":2`))
	assert.True(t, testLogger.Contains(`"role":true`))
	assert.True(t, testLogger.Contains(`"error":"boom"`))
	assert.Len(t, testLogger.Lines(), 1)
}

func TestWithLoggerNil(t *testing.T) {
	ctx := logging.WithLogger(context.Background(), nil)
	assert.Equal(t, logging.Default(), logging.FromContext(ctx))
}
