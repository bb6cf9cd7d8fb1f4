package idgen

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestULIDGenerator_Unique(t *testing.T) {
	g := NewULIDGenerator()
	seen := make(map[string]bool)
	for range 1000 {
		id := g.Generate()
		_, err := ulid.ParseStrict(id)
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestUUIDGenerator_Valid(t *testing.T) {
	id := NewUUIDGenerator().Generate()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestNew(t *testing.T) {
	g, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &ULIDGenerator{}, g)

	g, err = New("uuid")
	require.NoError(t, err)
	assert.IsType(t, &UUIDGenerator{}, g)

	_, err = New("snowflake")
	assert.Error(t, err)
}
