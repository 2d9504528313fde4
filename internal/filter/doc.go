// Package filter decides which destinations receive a notification payload.
//
// Each destination owns a FilterIndex built from {field, operator, value}
// conditions:
//
//   - equals and in add values to a per-field Bloom filter. Several
//     membership conditions on one field widen the accepted set.
//   - not_equals and not_in are kept as exact comparators and must all hold.
//   - every constrained field must pass; a field missing from the payload
//     fails the destination.
//
// WebhookFilterStore holds the indexes in registration order:
//
//	store, _ := filter.NewWebhookFilterStore(registry, filter.DefaultOptions())
//	_ = store.AddWebhookFilters("pager", []filter.FilterCondition{
//		{Field: "severity", Operator: "in", Value: []interface{}{"High", "Critical"}},
//	}, true)
//	matches := store.FilterPayload(payload)
//
// Configuration errors (ErrInvalidOperator, ErrInvalidOperatorValue,
// ErrUnregisteredField) surface from AddWebhookFilters. Evaluation never
// fails: a payload either matches a destination or it does not.
package filter
