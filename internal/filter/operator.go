package filter

import (
	"fmt"
	"reflect"
)

// Operator is a comparison between an extracted field value and a configured value
type Operator int

const (
	Equals Operator = iota + 1
	NotEquals
	In
	NotIn
)

var operatorNames = map[string]Operator{
	"equals":     Equals,
	"not_equals": NotEquals,
	"in":         In,
	"not_in":     NotIn,
}

// ParseOperator resolves a configured operator name. Names are case sensitive.
func ParseOperator(name string) (Operator, error) {
	if op, ok := operatorNames[name]; ok {
		return op, nil
	}
	return 0, fmt.Errorf("%w: '%s', valid operators are %v", ErrInvalidOperator, name, ValidOperators())
}

// ValidOperators lists the accepted operator names
func ValidOperators() []string {
	return []string{"equals", "not_equals", "in", "not_in"}
}

// String returns the configuration name of the operator
func (o Operator) String() string {
	switch o {
	case Equals:
		return "equals"
	case NotEquals:
		return "not_equals"
	case In:
		return "in"
	case NotIn:
		return "not_in"
	default:
		return fmt.Sprintf("operator(%d)", int(o))
	}
}

// IsMembership reports whether the operator is served by a Bloom filter
func (o Operator) IsMembership() bool {
	return o == Equals || o == In
}

// RequiresList reports whether the configured value must be a list
func (o Operator) RequiresList() bool {
	return o == In || o == NotIn
}

// ValidateValue checks the configured value shape for this operator
func (o Operator) ValidateValue(value interface{}) error {
	if !o.RequiresList() {
		return nil
	}
	if _, ok := listValues(value); !ok {
		return fmt.Errorf("%w: operator '%s' requires a list as value, but got %T", ErrInvalidOperatorValue, o, value)
	}
	return nil
}

// Apply compares fieldValue with target. Values are compared as given; no
// string coercion or case folding happens here.
func (o Operator) Apply(fieldValue, target interface{}) (bool, error) {
	switch o {
	case Equals:
		return valuesEqual(fieldValue, target), nil
	case NotEquals:
		return !valuesEqual(fieldValue, target), nil
	case In, NotIn:
		items, ok := listValues(target)
		if !ok {
			return false, fmt.Errorf("%w: operator '%s' requires a list as value, but got %T", ErrInvalidOperatorValue, o, target)
		}
		found := false
		for _, item := range items {
			if valuesEqual(fieldValue, item) {
				found = true
				break
			}
		}
		if o == In {
			return found, nil
		}
		return !found, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrInvalidOperator, o)
	}
}

// valuesEqual is structural equality where numbers of different Go types
// compare by value, so a YAML int matches a JSON float64.
func valuesEqual(a, b interface{}) bool {
	if fa, ok := toFloat64(a); ok {
		if fb, ok := toFloat64(b); ok {
			return fa == fb
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// listValues flattens any slice or array into its elements
func listValues(value interface{}) ([]interface{}, bool) {
	switch v := value.(type) {
	case []interface{}:
		return v, true
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case nil:
		return nil, false
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
