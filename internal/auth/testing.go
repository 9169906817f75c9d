package auth

import "context"

// SetGameIDForTest injects a session's game ID into the context for testing purposes.
func SetGameIDForTest(ctx context.Context, gameID string) context.Context {
	return context.WithValue(ctx, gameIDKey, gameID)
}
