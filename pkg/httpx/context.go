package httpx

import "context"

type ctxKey struct{}

// ContextWithUserID records the caller so transport concerns such as per-user
// rate limiting can key on it without importing the service layer.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

func UserIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKey{}).(string)
	return v
}
