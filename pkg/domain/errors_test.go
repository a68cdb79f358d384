package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsumerErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &ConsumerError{Consumer: "gcode", EventIndex: 41, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "gcode")
	assert.Contains(t, err.Error(), "41")
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, (&DegeneratePathError{PathID: "p7"}).Error(), "p7")

	err := &StrategyParameterError{Strategy: "skip", Reason: "skip base distance must be at least 2, got 1"}
	assert.Contains(t, err.Error(), "skip")
	assert.Contains(t, err.Error(), "at least 2")
}
