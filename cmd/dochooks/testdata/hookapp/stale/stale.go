// Package stale no longer has annotated methods.
package stale

// Worker works.
type Worker struct{}

// Work works.
func (Worker) Work() {}
