package errors_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/agentstation/whitelink/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	err := pkgerrors.NewNotFoundError("link", "1234")
	assert.Equal(t, "link with ID 1234 not found", err.Error())
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.True(t, pkgerrors.IsNotFound(errors.Join(errors.New("failed"), err)))
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("username", "ab", "must be 3-16 chars")
		assert.Equal(t, "validation failed for field username: must be 3-16 chars", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "bad input"}
		assert.Equal(t, "validation failed: bad input", err.Error())
	})
}

func TestTransportError(t *testing.T) {
	t.Run("with command", func(t *testing.T) {
		err := pkgerrors.NewTransportError("execute", "localhost:25575", "whitelist add Steve", io.EOF)
		assert.Contains(t, err.Error(), "localhost:25575")
		assert.Contains(t, err.Error(), "whitelist add Steve")
		assert.True(t, pkgerrors.IsTransport(err))
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("dial", func(t *testing.T) {
		err := pkgerrors.NewTransportError("dial", "mc:25575", "", io.ErrUnexpectedEOF)
		assert.Equal(t, "rcon dial mc:25575: unexpected EOF", err.Error())
	})

	t.Run("wrap nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapTransport("dial", "x", "", nil))
	})
}

func TestPersistenceError(t *testing.T) {
	base := errors.New("disk full")
	err := pkgerrors.WrapPersistence("write", "/tmp/whitelist.json", base)
	assert.True(t, pkgerrors.IsPersistence(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "link table write failed for /tmp/whitelist.json: disk full", err.Error())
	assert.False(t, pkgerrors.IsTransport(err))
}

func TestPermissionError(t *testing.T) {
	err := pkgerrors.NewPermissionError("add_role", "42", "777", "member not found", nil)
	assert.Equal(t, "add_role for member 42 (role 777): member not found", err.Error())
	assert.True(t, pkgerrors.IsPermission(err))
}

func TestConfigError(t *testing.T) {
	base := errors.New("missing")
	err := pkgerrors.NewConfigError("discord", "DISCORD_TOKEN is required", base)
	assert.Equal(t, "configuration error in discord: DISCORD_TOKEN is required", err.Error())
	assert.ErrorIs(t, err, base)
	assert.True(t, pkgerrors.IsConfigError(fmt.Errorf("startup: %w", err)))
	assert.False(t, pkgerrors.IsConfigError(base))
}

func TestResourceError(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapResource("load", "config", "", nil))
	err := pkgerrors.WrapResource("open", "session", "discord", io.EOF)
	assert.Equal(t, "failed to open session discord: EOF", err.Error())
}

func TestIsCanceled(t *testing.T) {
	assert.True(t, pkgerrors.IsCanceled(pkgerrors.ErrCanceled))
	assert.True(t, pkgerrors.IsCanceled(fmt.Errorf("bot: %w", context.Canceled)))
	assert.False(t, pkgerrors.IsCanceled(context.DeadlineExceeded))
	assert.False(t, pkgerrors.IsCanceled(nil))
}
