// Package errs provides the error types shared by the roboshop domain, application
// and adapter layers.
//
// Each error type follows the same pattern:
//   - a sentinel (ErrValueIsRequired, ErrObjectNotFound, ...) usable with errors.Is
//   - a struct carrying details (parameter name, offending value, optional cause)
//   - New... and New...WithCause constructors
//   - Unwrap returning the sentinel
//
// The HTTP adapter maps sentinels to status codes, so callers only need to pick the
// right type: invalid input is ValueIs*, missing rows are ObjectNotFound, lost
// optimistic-lock races are VersionIsInvalid, duplicates are AlreadyExists, and the
// access checks return Unauthorized or Forbidden.
package errs
