package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/authgate/internal/middleware"
	"github.com/mmynk/authgate/pkg/authrpc"
)

// Handler returns the mount path and the HTTP handler for the service with
// logging, metrics and authentication interceptors installed. Register and
// Login are reachable without a token.
func (s *AuthService) Handler() (string, http.Handler) {
	return authrpc.NewAuthServiceHandler(s,
		connect.WithInterceptors(
			middleware.LoggingInterceptor(s.logger),
			middleware.MetricsInterceptor(s.metrics),
			middleware.RequireAuth(s.sessions, authrpc.PublicProcedures...),
		),
	)
}
