package coach

import "context"

// Repository describes coach persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Coach, error)
	GetByID(ctx context.Context, id string) (Coach, bool, error)
	GetByDocument(ctx context.Context, document string) (Coach, bool, error)
	// Create yields ErrDuplicateDocument when the document is taken.
	Create(ctx context.Context, c Coach) error
}
