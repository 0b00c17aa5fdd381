package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockKey(t *testing.T) {
	assert.Equal(t, "lock:checkout:u1", LockKey("checkout", "u1"))
	assert.Equal(t, "lock:order:o1:approve", LockKey("order", "o1", "approve"))
	assert.Equal(t, "lock", LockKey())
}
