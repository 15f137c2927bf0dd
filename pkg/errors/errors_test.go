// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/podkeeper/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "entry not found",
			wantStr: "[NOT_FOUND] entry not found",
		},
		{
			name:    "spec_invalid_error",
			code:    errors.ErrSpecInvalid,
			message: "library name is required",
			wantStr: "[SPEC_INVALID] library name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrToolMissing, "%s not found on PATH", "pod")
	assert.Equal(t, "[TOOL_MISSING] pod not found on PATH", err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("wraps_cause", func(t *testing.T) {
		cause := stderrors.New("disk full")
		err := errors.Wrap(cause, errors.ErrLedgerWrite, "failed to write ledger")

		require.Error(t, err)
		assert.Equal(t, "[LEDGER_WRITE] failed to write ledger: disk full", err.Error())
		assert.True(t, stderrors.Is(err, cause))
		assert.Equal(t, errors.ErrLedgerWrite, errors.GetErrorCode(err))
	})

	t.Run("nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "nothing"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "nothing %d", 1))
	})

	t.Run("wrapf_formats_message", func(t *testing.T) {
		err := errors.Wrapf(stderrors.New("exit status 1"), errors.ErrInstallerFailed, "%s failed", "pod install")
		assert.Equal(t, "[INSTALLER_FAILED] pod install failed: exit status 1", err.Error())
	})
}

func TestIs(t *testing.T) {
	err := errors.New(errors.ErrManifestWrite, "write failed")
	assert.True(t, stderrors.Is(err, errors.New(errors.ErrManifestWrite, "other message")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrLedgerWrite, "write failed")))
}

func TestDetails(t *testing.T) {
	err := errors.New(errors.ErrVariableUnbound, "missing variable").
		WithDetail("variable", "AF_VERSION").
		WithDetail("plugin", "cordova-plugin-net")

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "AF_VERSION", details["variable"])
	assert.Equal(t, "cordova-plugin-net", details["plugin"])

	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestGetErrorCode(t *testing.T) {
	assert.Empty(t, errors.GetErrorCode(stderrors.New("plain")))
	assert.Empty(t, errors.GetErrorCode(nil))
	assert.Equal(t, errors.ErrToolMissing, errors.GetErrorCode(fmt.Errorf("ctx: %w", errors.New(errors.ErrToolMissing, "no pod"))))

	wrapped := errors.Wrap(errors.New(errors.ErrToolMissing, "no pod"), errors.ErrInternal, "outer")
	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrInternal))
	assert.False(t, errors.IsErrorCode(wrapped, errors.ErrToolMissing))
}

func TestIsFatalPersistence(t *testing.T) {
	tests := []struct {
		code errors.ErrorCode
		want bool
	}{
		{errors.ErrLedgerRead, true},
		{errors.ErrLedgerWrite, true},
		{errors.ErrManifestRead, true},
		{errors.ErrManifestWrite, true},
		{errors.ErrInstallerFailed, false},
		{errors.ErrSpecInvalid, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, errors.IsFatalPersistence(errors.New(tt.code, "x")))
		})
	}
}

func TestWithCause(t *testing.T) {
	cause := stderrors.New("exit status 2")
	err := errors.New(errors.ErrInstallerFailed, "'pod install' failed").
		WithDetail("stderr", "boom").
		WithCause(cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, "[INSTALLER_FAILED] 'pod install' failed: exit status 2", err.Error())
	assert.Equal(t, "boom", errors.GetErrorDetails(err)["stderr"])
}
