// Package diagnostic provides the typed errors and warnings produced while
// loading, validating and compiling a data mixture.
//
// Key capabilities:
//   - A closed error taxonomy (Kind) shared by every phase
//   - Errors that carry the offending key and "did you mean" suggestions
//   - Warning collection for input that is accepted but suspicious
package diagnostic
