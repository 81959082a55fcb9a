package pgproxy

import "log/slog"

// OptionFn customizes a Server constructed with NewServer.
type OptionFn func(*Server)

// WithLogger overrides the server's default (slog.Default) logger.
func WithLogger(logger *slog.Logger) OptionFn {
	return func(srv *Server) {
		srv.logger = logger
	}
}
