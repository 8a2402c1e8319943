package main

import (
	"fmt"
	"net"
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/netutil"
)

func setupServer(services *Services, config *Config) *http.Server {
	mux := http.NewServeMux()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	// Register gateway WebSocket and state routes
	services.Gateway.RegisterRoutes(mux)

	// Add health check endpoint
	setupHealthCheck(mux)

	// Wrap with CORS
	handler := c.Handler(mux)

	addr := config.Gateway.Addr
	if addr == "" {
		addr = fmt.Sprintf(":%s", getEnv("PORT", "8080"))
	}

	return &http.Server{
		Addr:    addr,
		Handler: handler,
	}
}

// serveWithLimit listens with a hard cap on concurrent connections so a
// WebSocket stampede cannot exhaust file descriptors.
func serveWithLimit(server *http.Server, maxConnections int) error {
	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", server.Addr, err)
	}

	if maxConnections > 0 {
		listener = netutil.LimitListener(listener, maxConnections)
		log.Info().Int("max_connections", maxConnections).Msg("connection limit enabled")
	}

	log.Info().Str("addr", server.Addr).Msg("http server listening")
	return server.Serve(listener)
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})
}
