package status

import "context"

// Reporter posts and lists liveness checks against the backend.
type Reporter interface {
	// PostStatus registers or refreshes the check for clientName.
	PostStatus(ctx context.Context, clientName string) (*Check, error)
	// ListStatus returns every known check.
	ListStatus(ctx context.Context) ([]*Check, error)
}
