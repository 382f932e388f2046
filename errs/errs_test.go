package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapReturnsNilForNilCause(t *testing.T) {
	assert.Nil(t, Wrap(InvalidInput, "op", nil))
}

func TestWrapPreservesCauseAndKind(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(SamplerFailure, "gauss.New", cause)
	assert.True(t, Is(err, SamplerFailure))
	assert.False(t, Is(err, InvalidInput))
	assert.ErrorIs(t, err, cause)
}

func TestNewHasNoCause(t *testing.T) {
	err := New(NumericInstability, "polyz.XGCD")
	var e *Error
	assert.True(t, errors.As(err, &e))
	assert.Nil(t, e.Err)
	assert.Contains(t, err.Error(), "numeric instability")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "invalid parameter", InvalidParameter.String())
	assert.Equal(t, "unknown", Kind(999).String())
}
