package donor

import (
	"log/slog"

	"github.com/Rishov2004/Blood-Donation/internal/donor/handler"
	"github.com/Rishov2004/Blood-Donation/internal/donor/service"
	"github.com/Rishov2004/Blood-Donation/internal/donor/store"
)

// Service exposes donor registration and proximity matching.
type Service = service.Service

// Handler wires HTTP endpoints to the donor service.
type Handler = handler.Handler

// NewService constructs the donor service with required dependencies.
func NewService(donors store.Store, opts ...service.Option) *Service {
	return service.New(donors, opts...)
}

// NewHandler constructs an HTTP handler for the donor routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
