package filter

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBloomFilter_AddAndCheck(t *testing.T) {
	bloom, err := NewBloomFilter(10000, 3)
	require.NoError(t, err)

	bloom.Add("apple")
	bloom.Add("banana")

	assert.True(t, bloom.Check("apple"))
	assert.True(t, bloom.Check("banana"))
	assert.False(t, bloom.Check("cherry"))
	assert.Equal(t, 2, bloom.Added())
}

func TestBloomFilter_EmptyRejectsEverything(t *testing.T) {
	bloom, err := NewBloomFilter(DefaultBloomSize, DefaultBloomHashes)
	require.NoError(t, err)

	assert.False(t, bloom.Check(""))
	assert.False(t, bloom.Check("High"))
	assert.Equal(t, float64(0), bloom.FalsePositiveRate())
}

func TestBloomFilter_NoFalseNegatives(t *testing.T) {
	bloom, err := NewBloomFilter(64, 4)
	require.NoError(t, err)

	items := make([]string, 0, 500)
	for i := 0; i < 500; i++ {
		item := fmt.Sprintf("item-%d", i)
		items = append(items, item)
		bloom.Add(item)
	}

	for _, item := range items {
		assert.True(t, bloom.Check(item), item)
	}
}

func TestBloomFilter_FalsePositiveRate(t *testing.T) {
	bloom, err := NewBloomFilter(1000, 3)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		bloom.Add(fmt.Sprintf("v%d", i))
	}
	low := bloom.FalsePositiveRate()

	for i := 10; i < 300; i++ {
		bloom.Add(fmt.Sprintf("v%d", i))
	}
	high := bloom.FalsePositiveRate()

	assert.Greater(t, low, 0.0)
	assert.Greater(t, high, low)
	assert.Less(t, high, 1.0)
}

func TestNewBloomFilter_InvalidParameters(t *testing.T) {
	_, err := NewBloomFilter(0, 3)
	assert.ErrorIs(t, err, ErrInvalidBloomParameters)

	_, err = NewBloomFilter(100, 0)
	assert.ErrorIs(t, err, ErrInvalidBloomParameters)

	bloom, err := NewBloomFilter(1, 1)
	require.NoError(t, err)
	bloom.Add("only")
	assert.True(t, bloom.Check("anything"))
	assert.Equal(t, 1, bloom.Size())
	assert.Equal(t, 1, bloom.NumHashes())
}

func TestStringify(t *testing.T) {
	tests := []struct {
		value interface{}
		want  string
	}{
		{"High", "High"},
		{true, "True"},
		{false, "False"},
		{"true", "true"},
		{5, "5"},
		{float64(5), "5"},
		{float64(1000000), "1000000"},
		{2.5, "2.5"},
		{float32(0.5), "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Stringify(tt.value))
		})
	}

	assert.Equal(t, Stringify(true), Stringify("True"))
	assert.NotEqual(t, Stringify(true), Stringify("true"))
}
