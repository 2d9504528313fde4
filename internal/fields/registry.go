package fields

import (
	"fmt"
	"strings"
)

// Extractor returns the value of one field, or nil when the payload lacks it
type Extractor func(payload map[string]interface{}) interface{}

// Registry maps field names to extractors
type Registry struct {
	extractors map[string]Extractor
	order      []string
}

// NewRegistry builds a registry from defs, resolving computed fields through funcs
func NewRegistry(defs []Definition, funcs map[string]ComputeFunc) (*Registry, error) {
	r := &Registry{
		extractors: make(map[string]Extractor, len(defs)),
		order:      make([]string, 0, len(defs)),
	}

	for _, def := range defs {
		extractor, err := buildExtractor(def, funcs)
		if err != nil {
			return nil, err
		}
		if _, exists := r.extractors[def.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate field '%s'", ErrInvalidDefinition, def.Name)
		}
		r.Register(def.Name, extractor)
	}

	return r, nil
}

func buildExtractor(def Definition, funcs map[string]ComputeFunc) (Extractor, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("%w: field name is required", ErrInvalidDefinition)
	}

	switch def.Kind {
	case KindDirect:
		if def.Path == "" {
			return nil, fmt.Errorf("%w: field '%s' has an empty path", ErrInvalidDefinition, def.Name)
		}
		path := def.Path
		return func(payload map[string]interface{}) interface{} {
			return lookupPath(payload, path)
		}, nil

	case KindMapPath:
		if def.Container == "" || def.Key == "" {
			return nil, fmt.Errorf("%w: field '%s' needs a container and a key", ErrInvalidDefinition, def.Name)
		}
		container, key := def.Container, def.Key
		return func(payload map[string]interface{}) interface{} {
			return lookupMapKey(payload, container, key)
		}, nil

	case KindComputed:
		fn, ok := funcs[def.Func]
		if !ok || fn == nil {
			return nil, fmt.Errorf("%w: function '%s' for field '%s'", ErrUnknownComputeFunction, def.Func, def.Name)
		}
		return Extractor(fn), nil

	default:
		return nil, fmt.Errorf("%w: field '%s' has unknown kind %d", ErrInvalidDefinition, def.Name, def.Kind)
	}
}

// Register adds or replaces the extractor for name. It must not be called
// once the registry is shared with evaluators.
func (r *Registry) Register(name string, extractor Extractor) {
	if _, exists := r.extractors[name]; !exists {
		r.order = append(r.order, name)
	}
	r.extractors[name] = extractor
}

// GetFieldValue resolves name against payload
func (r *Registry) GetFieldValue(payload map[string]interface{}, name string) (interface{}, error) {
	extractor, ok := r.extractors[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnregisteredField, name)
	}
	if payload == nil {
		return nil, nil
	}
	return extractor(payload), nil
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.extractors[name]
	return ok
}

// ListFields returns registered names in registration order
func (r *Registry) ListFields() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// lookupPath prefers a literal flattened key, then walks the dotted segments
func lookupPath(payload map[string]interface{}, path string) interface{} {
	if value, ok := payload[path]; ok {
		return value
	}

	var current interface{} = payload
	for _, segment := range strings.Split(path, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil
		}
		if current, ok = m[segment]; !ok {
			return nil
		}
	}
	return current
}

func lookupMapKey(payload map[string]interface{}, container, key string) interface{} {
	resolved := lookupPath(payload, container)
	if resolved == nil {
		return payload[container+"."+key]
	}

	m, ok := asMap(resolved)
	if !ok {
		return nil
	}
	return m[key]
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[string]string:
		out := make(map[string]interface{}, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}
