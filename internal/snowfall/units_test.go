package snowfall

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCmToInches(t *testing.T) {
	assert.InDelta(t, 1.0, CmToInches(2.54), 0.1)
	assert.InDelta(t, 3.9, Round1(CmToInches(10)), 0.05)
	assert.Zero(t, CmToInches(0))
}

func TestMmToInches(t *testing.T) {
	assert.InDelta(t, 1.0, MmToInches(25.4), 0.1)
	// 40mm of hourly increments for one day ≈ 1.6"
	assert.InDelta(t, 1.6, Round1(MmToInches(10+15+5+10)), 0.05)
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 1.6, Round1(1.5748))
	assert.Equal(t, 0.0, Round1(0.04))
	assert.Equal(t, 2.0, Round1(1.95))
}
