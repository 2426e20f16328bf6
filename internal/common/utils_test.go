package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsAnyFold(t *testing.T) {
	assert.True(t, ContainsAnyFold("Patchy Light RAIN", "rain"))
	assert.True(t, ContainsAnyFold("Thundery outbreaks", "snow", "thunder"))
	assert.False(t, ContainsAnyFold("Sunny", "cloud", "rain"))
	assert.False(t, ContainsAnyFold("Sunny"))
}
