package curl

import "context"

type specContextKey struct{}

// WithSpec returns a copy of ctx carrying spec, so that a transport further
// down the chain can log the exact description the caller used.
func WithSpec(ctx context.Context, spec Spec) context.Context {
	return context.WithValue(ctx, specContextKey{}, spec)
}

// SpecFromContext returns the request description stored by WithSpec.
func SpecFromContext(ctx context.Context) (Spec, bool) {
	spec, ok := ctx.Value(specContextKey{}).(Spec)

	return spec, ok
}
