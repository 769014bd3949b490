package auth

import "context"

type tokenKey struct{}

// ContextWithToken stores the caller's raw session token so outgoing calls
// made on the caller's behalf can forward it
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the session token stored by ContextWithToken
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}
