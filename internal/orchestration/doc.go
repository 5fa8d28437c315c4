// Package orchestration bridges the synchronous evaluation engine to
// context-aware callers and pluggable progress and result sinks. It
// decouples business logic from presentation via the ProgressReporter
// and ResultPresenter interfaces.
package orchestration
