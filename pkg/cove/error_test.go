package cove

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorStringWithHint(t *testing.T) {
	err := New(CodeTimeout, "request timed out", "retry with a longer deadline")
	assert.Equal(t, "timeout: request timed out (retry with a longer deadline)", err.Error())
}

func TestErrorStringWithoutHint(t *testing.T) {
	err := New(CodeConfiguration, "missing db path", "")
	assert.Equal(t, "configuration: missing db path", err.Error())
}

func TestWrapUnwrapsToCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(cause, CodeDisconnected, "lost connection to device", "check the device is powered on")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}
