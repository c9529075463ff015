// Package diagnostics decides which diagnostics emitted by the documentation
// toolchain are known-benign and must not reach the user.
//
// A RuleSet is built once, never mutated, and handed to whatever emits
// diagnostics: the line filter used for the external generator's output
// (Stream), and the slog handler decorator used for doxconf's own logging
// (Handler). A diagnostic is dropped when any rule matches it.
package diagnostics
