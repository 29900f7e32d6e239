package record

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest(t *testing.T) {
	a, err := Digest(Record{"name": "alpha", "size": 1.0})
	require.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := Digest(Record{"size": 1, "name": "alpha"})
	require.NoError(t, err)
	assert.Equal(t, a, b, "key order and number type must not matter")

	c, err := Digest(Record{"name": "alpha", "size": 2.0})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestDigest_DomainSeparated(t *testing.T) {
	rec := Record{"a": "b"}
	canonical, err := MarshalCanonical(rec)
	require.NoError(t, err)

	d, err := Digest(rec)
	require.NoError(t, err)
	assert.NotEqual(t, hashWithDomain("other/v1", canonical), d)
	assert.Equal(t, hashWithDomain(DomainRecord, canonical), d)
}

func TestDigest_Unencodable(t *testing.T) {
	_, err := Digest(Record{"n": math.NaN()})
	assert.Error(t, err)
}
