package inspect

import (
	"log/slog"
	"net/http"
)

// ServerBuilderOption is a functional option for configuring a Server via NewServer.
type ServerBuilderOption func(*server)

// WithLogger sets the logger. The server adds its own component attribute.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - ServerBuilderOption: a function that applies the logger to a server
func WithLogger(logger *slog.Logger) ServerBuilderOption {
	return func(s *server) {
		s.logger = logger
	}
}

// WithAllowedOrigin replaces the websocket origin check. The default only accepts same-host
// origins.
//
// Parameters:
//   - check: returns true for origins that may subscribe to frame stats
//
// Returns:
//   - ServerBuilderOption: a function that applies the origin check to a server
func WithAllowedOrigin(check func(origin string) bool) ServerBuilderOption {
	return func(s *server) {
		s.upgrader.CheckOrigin = func(r *http.Request) bool {
			return check(r.Header.Get("Origin"))
		}
	}
}
