package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 3.07, RoundFloat(178.50-175.43, 2))
	assert.Equal(t, 1.75, RoundFloat(3.07/175.43*100, 2))
	assert.Equal(t, -3.07, RoundFloat(175.43-178.50, 2))
	assert.Equal(t, 0.0, RoundFloat(0, 2))
	assert.Equal(t, 1.24, RoundFloat(1.236, 2))
}

func TestToPointer(t *testing.T) {
	p := ToPointer(178.50)
	assert.Equal(t, 178.50, *p)
}
