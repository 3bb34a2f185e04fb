// Package objects exposes the reconciliation engine over HTTP.
//
// A Declaration names an object type, its desired state, optional match
// fields and the field values. Declarations arrive as JSON request bodies or
// as YAML documents read by the CLI; both are decoded with mapstructure so a
// comma separated string is accepted wherever a list of match fields is.
//
// # Routes
//
//	GET  /objects                     registered object types
//	GET  /objects/:type               normalized existing objects
//	POST /objects/:type/reconcile     plan and apply one declaration (?check=true plans only)
//	GET  /history                     recorded changes, newest first (?type=&limit=)
//
// Validation failures answer 422, unknown object types 404 and appliance API
// failures 502.
package objects
