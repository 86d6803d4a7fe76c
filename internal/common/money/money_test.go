package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmetic(t *testing.T) {
	a := FromCents(1000)
	b := FromCents(250)

	assert.Equal(t, int64(1250), a.Add(b).Cents())
	assert.Equal(t, int64(750), a.Subtract(b).Cents())
	assert.Equal(t, int64(-750), b.Subtract(a).Cents())

	// Receivers are untouched
	assert.Equal(t, int64(1000), a.Cents())
	assert.Equal(t, int64(250), b.Cents())
}

func TestComparisons(t *testing.T) {
	small := FromCents(100)
	large := FromCents(200)

	assert.True(t, small.LessThan(large))
	assert.True(t, small.LessThanOrEqual(small))
	assert.True(t, large.GreaterThan(small))
	assert.True(t, large.GreaterThanOrEqual(large))
	assert.True(t, small.Equal(FromCents(100)))
	assert.False(t, small.Equal(large))
}

func TestSignPredicates(t *testing.T) {
	assert.True(t, Zero().IsZero())
	assert.True(t, FromCents(1).IsPositive())
	assert.True(t, FromCents(-1).IsNegative())
	assert.False(t, Zero().IsPositive())
	assert.False(t, Zero().IsNegative())
}

func TestString(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{123456, "1234.56"},
		{-250, "-2.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FromCents(tt.cents).String())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(FromCents(4299))
	require.NoError(t, err)
	assert.Equal(t, "4299", string(data))

	var m Money
	require.NoError(t, json.Unmarshal([]byte("4299"), &m))
	assert.Equal(t, int64(4299), m.Cents())

	assert.Error(t, json.Unmarshal([]byte(`"42.99"`), &m))
}

func TestScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan(int64(777)))
	assert.Equal(t, int64(777), m.Cents())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan("777"))
}

func TestValue(t *testing.T) {
	v, err := FromCents(321).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(321), v)
}
