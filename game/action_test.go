package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRaiseRejectsNonPositiveAmounts(t *testing.T) {
	_, err := NewRaise(0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewRaise(-5)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	action, err := NewRaise(20)
	assert.NoError(t, err)
	assert.Equal(t, ActionRaise, action.Kind)
	assert.Equal(t, 20.0, action.Amount)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "fold", NewAction(ActionFold).String())

	raise, err := NewRaise(25)
	assert.NoError(t, err)
	assert.Equal(t, "raise 25", raise.String())
}
