package system

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_V7Ordenable(t *testing.T) {
	gen := UUIDGenerator{}
	prev := gen.NewID()
	for i := 0; i < 100; i++ {
		next := gen.NewID()
		assert.Less(t, prev, next, "los UUIDv7 deben crecer")
		prev = next
	}

	parsed, err := uuid.Parse(prev)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestClock_UTC(t *testing.T) {
	assert.Equal(t, time.UTC, Clock{}.Now().Location())
}
