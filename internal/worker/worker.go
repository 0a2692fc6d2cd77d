// Package worker runs long-lived stream consumers under a common lifecycle.
package worker

import "context"

// Worker is a stream consumer. Start blocks until Stop is called or ctx ends.
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}
