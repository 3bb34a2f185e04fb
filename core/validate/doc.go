// Package validate holds the checks run on a declaration before reconciliation.
//
// Checks never coerce: a value either passes or produces a message naming the field and
// the offending value. Messages are accumulated with a Builder and returned together as a
// *ValidationError, which unwraps to ErrValidationFailed. Validation always completes
// before any API mutation is attempted.
package validate
