// Package tasks implements the build tool's operations: develop, build,
// regenerate, serve, publish and the watch supervisor. Every operation is one
// independent invocation with no state carried between runs; a failure is
// terminal and its exit status propagates to the shell.
//
// Runner wraps an operation with timing, outcome classification and
// best-effort reporting to the run history, metrics and the notify channel.
// The reporting never changes the operation's own result.
package tasks
