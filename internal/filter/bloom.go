package filter

import (
	"fmt"
	"math"
	"strconv"

	"github.com/bits-and-blooms/bloom/v3"
)

// BloomFilter is a fixed-size probabilistic set of strings. Check never
// returns false for an added item; it may return true for an item that was
// never added.
type BloomFilter struct {
	size      int
	numHashes int
	bits      *bloom.BloomFilter
	added     int
}

// NewBloomFilter creates an empty filter of size bits using numHashes probes per item
func NewBloomFilter(size, numHashes int) (*BloomFilter, error) {
	if size < 1 || numHashes < 1 {
		return nil, fmt.Errorf("%w: size=%d num_hashes=%d", ErrInvalidBloomParameters, size, numHashes)
	}
	return &BloomFilter{
		size:      size,
		numHashes: numHashes,
		bits:      bloom.New(uint(size), uint(numHashes)),
	}, nil
}

// Add inserts item
func (b *BloomFilter) Add(item string) {
	b.bits.AddString(item)
	b.added++
}

// Check reports whether item may have been added
func (b *BloomFilter) Check(item string) bool {
	return b.bits.TestString(item)
}

// Size returns the bit-array length
func (b *BloomFilter) Size() int { return b.size }

// NumHashes returns the number of probes per item
func (b *BloomFilter) NumHashes() int { return b.numHashes }

// Added returns how many Add calls the filter has seen
func (b *BloomFilter) Added() int { return b.added }

// FalsePositiveRate estimates the probability that Check returns true for an
// item never added, given the items inserted so far: (1 - e^(-kn/m))^k.
func (b *BloomFilter) FalsePositiveRate() float64 {
	if b.added == 0 {
		return 0
	}
	k := float64(b.numHashes)
	exponent := -k * float64(b.added) / float64(b.size)
	return math.Pow(1-math.Exp(exponent), k)
}

// Stringify renders a value the way it is hashed into a Bloom filter. The
// same value must go through Stringify on both the insert and the check side.
// Booleans render as "True" and "False", so a bool true and the string "True"
// collide while the string "true" does not. Floats are printed without
// exponent or trailing zeros so a JSON 5 and a YAML 5 agree.
func Stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "True"
		}
		return "False"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}
