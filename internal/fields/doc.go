// Package fields resolves logical field names against notification payloads.
//
// A Registry is built once from a fixed list of Definitions. Each definition
// binds a name to one extraction strategy:
//
//   - Direct: a dotted path such as "entity.type". A top-level key equal to
//     the whole dotted string wins; otherwise the path is walked through
//     nested maps.
//   - MapPath: a key inside a sub-map such as labels. The container is
//     resolved like a Direct path; when it is missing the flattened key
//     "<container>.<key>" is tried at the top level.
//   - Computed: a named function of the whole payload, looked up in an
//     explicit function table when the registry is built.
//
// Example:
//
//	registry, err := fields.NewRegistry(fields.DefaultDefinitions(), fields.DefaultComputeFuncs())
//	if err != nil {
//		return err
//	}
//	value, err := registry.GetFieldValue(payload, "labels.k8s.cluster.name")
//
// A Registry is read-only after construction and safe for concurrent use.
package fields
