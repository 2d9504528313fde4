package filter

import (
	"fmt"

	"notification-router/internal/fields"
)

const (
	// DefaultBloomSize is the per-field Bloom filter length in bits
	DefaultBloomSize = 1000
	// DefaultBloomHashes is the number of probes per value
	DefaultBloomHashes = 3
)

// Options tunes the Bloom filters created by a FilterIndex
type Options struct {
	BloomSize   int
	BloomHashes int
}

// DefaultOptions returns size=1000, hashes=3
func DefaultOptions() Options {
	return Options{BloomSize: DefaultBloomSize, BloomHashes: DefaultBloomHashes}
}

// Validate checks that both Bloom parameters are positive
func (o Options) Validate() error {
	if o.BloomSize < 1 || o.BloomHashes < 1 {
		return fmt.Errorf("%w: size=%d num_hashes=%d", ErrInvalidBloomParameters, o.BloomSize, o.BloomHashes)
	}
	return nil
}

type comparator struct {
	op    Operator
	value interface{}
}

type fieldFilter struct {
	bloom       *BloomFilter
	comparators []comparator
}

// FilterIndex holds the conditions of one destination. Membership values
// (equals, in) of a field share one Bloom filter and are ORed; comparators
// (not_equals, not_in) are ANDed; fields are ANDed.
type FilterIndex struct {
	registry *fields.Registry
	enabled  bool
	opts     Options
	filters  map[string]*fieldFilter
	order    []string
}

// NewFilterIndex creates an empty index. A disabled index is treated as a
// catch-all by the store.
func NewFilterIndex(registry *fields.Registry, enabled bool, opts Options) *FilterIndex {
	return &FilterIndex{
		registry: registry,
		enabled:  enabled,
		opts:     opts,
		filters:  make(map[string]*fieldFilter),
	}
}

// Enabled reports whether the index filters at all
func (fi *FilterIndex) Enabled() bool {
	return fi.enabled
}

// Fields returns the constrained fields in the order they were first added
func (fi *FilterIndex) Fields() []string {
	out := make([]string, len(fi.order))
	copy(out, fi.order)
	return out
}

type preparedFilter struct {
	field string
	op    Operator
	value interface{}
}

// prepare validates one condition without touching the index
func (fi *FilterIndex) prepare(field, operator string, value interface{}) (preparedFilter, error) {
	if !fi.registry.Has(field) {
		return preparedFilter{}, fmt.Errorf("%w: '%s'", ErrUnregisteredField, field)
	}
	op, err := ParseOperator(operator)
	if err != nil {
		return preparedFilter{}, err
	}
	if err := op.ValidateValue(value); err != nil {
		return preparedFilter{}, err
	}
	return preparedFilter{field: field, op: op, value: value}, nil
}

func (fi *FilterIndex) apply(pf preparedFilter) error {
	ff, exists := fi.filters[pf.field]
	if !exists {
		ff = &fieldFilter{}
	}

	if pf.op.IsMembership() {
		if ff.bloom == nil {
			bloom, err := NewBloomFilter(fi.opts.BloomSize, fi.opts.BloomHashes)
			if err != nil {
				return err
			}
			ff.bloom = bloom
		}
		if items, ok := listValues(pf.value); ok {
			for _, item := range items {
				ff.bloom.Add(Stringify(item))
			}
		} else {
			ff.bloom.Add(Stringify(pf.value))
		}
	} else {
		ff.comparators = append(ff.comparators, comparator{op: pf.op, value: pf.value})
	}

	if !exists {
		fi.filters[pf.field] = ff
		fi.order = append(fi.order, pf.field)
	}
	return nil
}

// AddFilter registers one condition. Unknown fields, unknown operators and
// non-list values for in/not_in are rejected before the index changes.
func (fi *FilterIndex) AddFilter(field, operator string, value interface{}) error {
	pf, err := fi.prepare(field, operator, value)
	if err != nil {
		return err
	}
	return fi.apply(pf)
}

// CheckPayload reports whether payload satisfies every constrained field.
// A field that resolves to nil never matches.
func (fi *FilterIndex) CheckPayload(payload map[string]interface{}) bool {
	for _, field := range fi.order {
		ff := fi.filters[field]

		value, err := fi.registry.GetFieldValue(payload, field)
		if err != nil || value == nil {
			return false
		}

		if ff.bloom != nil && !ff.bloom.Check(Stringify(value)) {
			return false
		}

		for _, c := range ff.comparators {
			ok, err := c.op.Apply(value, c.value)
			if err != nil || !ok {
				return false
			}
		}
	}
	return true
}
