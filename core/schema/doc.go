// Package schema describes object types as static field tables.
//
// A Table knows, for every field of an object type, its user facing name, the
// name the appliance uses on the wire, its kind and its defaults. From that one
// table it derives the three translations every table driven object type needs:
//
//   - Desired: user declaration -> typed Record (aliases resolved, defaults applied)
//   - Normalize: raw appliance entry -> Record comparable with a declaration
//   - Payload: Record -> body of an add or set call
//
// Tables are built once at startup and never modified.
package schema
