package domain

import "context"

// Transactor runs fn inside a single storage transaction. Repositories called with the
// context passed to fn take part in that transaction. Nested calls join the outer one.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
