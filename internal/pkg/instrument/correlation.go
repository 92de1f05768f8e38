package instrument

import "context"

type correlationIDKey struct{}

// SetCorrelationID returns a copy of ctx carrying id.
func SetCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// GetCorrelationID returns the id stored by SetCorrelationID, or "" when absent.
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}
