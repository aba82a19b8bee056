package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(SwapStatusPending, SwapStatusAccepted))
	assert.True(t, CanTransition(SwapStatusPending, SwapStatusDeclined))

	// decided swaps are terminal
	assert.False(t, CanTransition(SwapStatusAccepted, SwapStatusDeclined))
	assert.False(t, CanTransition(SwapStatusAccepted, SwapStatusPending))
	assert.False(t, CanTransition(SwapStatusDeclined, SwapStatusAccepted))

	// nothing drives completion yet
	assert.False(t, CanTransition(SwapStatusPending, SwapStatusComplete))
	assert.False(t, CanTransition(SwapStatusAccepted, SwapStatusComplete))
}

func TestValidSwapStatus(t *testing.T) {
	for _, s := range []SwapStatus{SwapStatusPending, SwapStatusAccepted, SwapStatusDeclined, SwapStatusComplete} {
		assert.True(t, ValidSwapStatus(s))
	}
	assert.False(t, ValidSwapStatus("cancelled"))
	assert.False(t, ValidSwapStatus(""))
}

func TestSwapIsPointsOnly(t *testing.T) {
	itemID := uint(4)
	assert.True(t, (&Swap{}).IsPointsOnly())
	assert.False(t, (&Swap{RequesterItemID: &itemID}).IsPointsOnly())
}
