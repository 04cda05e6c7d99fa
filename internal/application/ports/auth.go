package ports

import "context"

type Auth interface {
	// Connect exchanges a Basic Authorization header for a fresh
	// session token.
	Connect(ctx context.Context, authorization string) (string, error)
	// Disconnect drops the session; deleting an absent token is not an
	// error.
	Disconnect(ctx context.Context, token string) error
	// Resolve returns the owning user id hex, or "" when the token is
	// absent or expired.
	Resolve(ctx context.Context, token string) (string, error)
}
