package category

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfpinhal/extrato/internal/statement"
)

func TestPatternCache_TTL(t *testing.T) {
	now := time.Now()

	c := newPatternCache(5 * time.Second)
	c.now = func() time.Time { return now }

	key := cacheKey{bank: statement.BankCGD, workspaceID: 1}
	c.put(key, []compiledPattern{})

	_, ok := c.get(key)
	require.True(t, ok)

	now = now.Add(4 * time.Second)
	_, ok = c.get(key)
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok = c.get(key)
	assert.False(t, ok)
}

func TestPatternCache_InvalidateClearsEverything(t *testing.T) {
	c := newPatternCache(time.Minute)

	c.put(cacheKey{bank: statement.BankCGD, workspaceID: 1}, []compiledPattern{})
	c.put(cacheKey{bank: statement.BankBCP, workspaceID: 2}, []compiledPattern{})

	c.invalidate()

	_, ok := c.get(cacheKey{bank: statement.BankCGD, workspaceID: 1})
	assert.False(t, ok)

	_, ok = c.get(cacheKey{bank: statement.BankBCP, workspaceID: 2})
	assert.False(t, ok)
}

func TestPatternCache_KeysAreIndependent(t *testing.T) {
	c := newPatternCache(time.Minute)

	c.put(cacheKey{bank: statement.BankCGD, workspaceID: 1}, []compiledPattern{})

	_, ok := c.get(cacheKey{bank: statement.BankCGD, workspaceID: 2})
	assert.False(t, ok)
}
