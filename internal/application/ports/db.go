package ports

import "context"

// DBPinger reports document store liveness for the status endpoint.
type DBPinger interface {
	Ping(ctx context.Context) error
}
