package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPinCode_Presentation(t *testing.T) {
	t.Run("unused pin is open to anyone but claimed by no one", func(t *testing.T) {
		pin := PinCode{Code: "123456"}

		assert.True(t, pin.CanBePresentedBy("S1234567A"))
		assert.True(t, pin.CanBePresentedBy("S7654321B"))
		assert.False(t, pin.IsClaimedBy("S1234567A"))
	})

	t.Run("used pin only answers to its linked nric", func(t *testing.T) {
		pin := PinCode{Code: "123456", IsUsed: true, LinkedNRIC: "S1234567A"}

		assert.True(t, pin.CanBePresentedBy("S1234567A"))
		assert.True(t, pin.IsClaimedBy("S1234567A"))
		assert.False(t, pin.CanBePresentedBy("S7654321B"))
		assert.False(t, pin.IsClaimedBy("S7654321B"))
	})
}
