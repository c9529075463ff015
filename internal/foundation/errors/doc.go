// Package errors provides the classified error primitives used across doxconf.
//
// Every user-visible failure carries a category (what went wrong), a severity (how
// bad it is) and optional structured context. The CLI adapter turns a category into
// a process exit code.
//
//	err := errors.ValidationError("suppression pattern must not be empty").
//		WithContext("index", i).
//		Build()
package errors
