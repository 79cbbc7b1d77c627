package httpserver

import (
	"net/http"
	"time"
)

// New builds the registry's HTTP server. Handler-level timeouts live in the
// router middleware; these guard the connection itself.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
