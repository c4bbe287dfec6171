package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "gamepulse:analysis:620", cacheKey(620))
	assert.Equal(t, "gamepulse:analysis:0", cacheKey(0))
}
