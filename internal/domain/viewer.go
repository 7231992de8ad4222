package domain

import "context"

type viewerKey struct{}

// Viewer is the authenticated user a search runs on behalf of.
// Identity resolution happens upstream; the transport puts the resolved
// viewer into the context before calling the service.
type Viewer struct {
	ID string
}

// ContextWithViewer returns a context carrying v.
func ContextWithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

// ViewerFromContext extracts the viewer. ok is false when none was set or the ID is empty.
func ViewerFromContext(ctx context.Context) (Viewer, bool) {
	v, ok := ctx.Value(viewerKey{}).(Viewer)
	return v, ok && v.ID != ""
}
