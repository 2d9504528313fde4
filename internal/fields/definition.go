package fields

// Kind identifies the extraction strategy of a Definition
type Kind int

const (
	KindDirect Kind = iota
	KindMapPath
	KindComputed
)

// String returns the configuration name of the kind
func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindMapPath:
		return "map_path"
	case KindComputed:
		return "computed"
	default:
		return "unknown"
	}
}

// Definition describes how one logical field is extracted from a payload.
// Only the members relevant to Kind are set.
type Definition struct {
	Name      string
	Kind      Kind
	Path      string // KindDirect
	Container string // KindMapPath
	Key       string // KindMapPath
	Func      string // KindComputed
}

// Direct defines a field read from a dotted path
func Direct(name, path string) Definition {
	return Definition{Name: name, Kind: KindDirect, Path: path}
}

// MapPath defines a field read from key inside the sub-map at container
func MapPath(name, container, key string) Definition {
	return Definition{Name: name, Kind: KindMapPath, Container: container, Key: key}
}

// Computed defines a field produced by the compute function named fn
func Computed(name, fn string) Definition {
	return Definition{Name: name, Kind: KindComputed, Func: fn}
}

// ComputeFunc derives a value from the whole payload
type ComputeFunc func(payload map[string]interface{}) interface{}

// ComputeImpactSLO names the function behind the impactsSLO field
const ComputeImpactSLO = "compute_impact_slo"

// DefaultDefinitions returns the fields understood by root-cause notifications
func DefaultDefinitions() []Definition {
	return []Definition{
		Direct("severity", "severity"),
		Direct("name", "name"),
		Direct("type", "type"),
		Direct("entity.type", "entity.type"),
		Direct("entity.name", "entity.name"),
		MapPath("labels.k8s.cluster.name", "labels", "k8s.cluster.name"),
		MapPath("labels.k8s.namespace.name", "labels", "k8s.namespace.name"),
		Computed("impactsSLO", ComputeImpactSLO),
	}
}

// DefaultComputeFuncs returns the function table used by DefaultDefinitions
func DefaultComputeFuncs() map[string]ComputeFunc {
	return map[string]ComputeFunc{
		ComputeImpactSLO: impactsSLO,
	}
}

// impactsSLO reports whether the payload carries an slos entry, whatever its content
func impactsSLO(payload map[string]interface{}) interface{} {
	_, ok := payload["slos"]
	return ok
}
