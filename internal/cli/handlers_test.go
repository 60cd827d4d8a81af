package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBatchSize(t *testing.T) {
	assert.Equal(t, 10000, resolveBatchSize(0, false, 10000),
		"unset flag falls back to the configured default")
	assert.Equal(t, 500, resolveBatchSize(500, true, 10000))
	assert.Equal(t, 0, resolveBatchSize(0, true, 10000),
		"an explicit zero must reach validation, not the default")
	assert.Equal(t, -5, resolveBatchSize(-5, true, 10000))
}
