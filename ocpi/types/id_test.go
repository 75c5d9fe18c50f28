package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocationId(t *testing.T) {
	id, err := ParseLocationId("  LOC-1  ")
	require.NoError(t, err)
	assert.Equal(t, "LOC-1", id.String())

	_, err = ParseLocationId("   ")
	assert.Error(t, err)

	_, err = ParseLocationId("")
	assert.Error(t, err)
}

func TestTryParseEvseUid(t *testing.T) {
	uid, ok := TryParseEvseUid("EVSE-42")
	require.True(t, ok)
	assert.Equal(t, "EVSE-42", uid.String())

	_, ok = TryParseEvseUid(" ")
	assert.False(t, ok)
}

func TestIdentifierEqualityIsCaseInsensitive(t *testing.T) {
	a, _ := TryParseLocationId("Pool-One")
	b, _ := TryParseLocationId("POOL-ONE")
	c, _ := TryParseLocationId("pool-two")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	// original casing is preserved for output
	assert.Equal(t, "Pool-One", a.String())
	assert.Equal(t, "POOL-ONE", b.String())
}

func TestIdentifierOrdering(t *testing.T) {
	a, _ := TryParseConnectorId("alpha")
	b, _ := TryParseConnectorId("BETA")

	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.False(t, a.Less(a))
}
