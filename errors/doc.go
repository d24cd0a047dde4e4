// Package errors provides structured error types for the scene runtime.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the field path, the asset and symbol involved, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRelocate, errors.KindMissingSymbol).
//		Asset("box").
//		Symbol("glFooBar").
//		Detail("reference to unknown function").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MissingSymbol("box", "glFooBar")
//	err := errors.OutOfBounds(errors.PhaseRelocate, path, 10, 5)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
