package canvas

import "context"

// Store persists canvas objects. Implementations own identifier
// generation for inserted objects and must be safe for concurrent use;
// cross-plan races on the same object are resolved here, not by callers.
type Store interface {
	Insert(ctx context.Context, obj *Object) error
	Get(ctx context.Context, canvasID, id string) (*Object, error)
	List(ctx context.Context, canvasID string) ([]*Object, error)
	Update(ctx context.Context, obj *Object) error
	Delete(ctx context.Context, canvasID, id string) error
	Clear(ctx context.Context, canvasID string) (int, error)
}
