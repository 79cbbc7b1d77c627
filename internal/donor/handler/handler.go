package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rishov2004/Blood-Donation/internal/donor/models"
	"github.com/Rishov2004/Blood-Donation/internal/donor/service"
	"github.com/Rishov2004/Blood-Donation/internal/proximity"
	dErrors "github.com/Rishov2004/Blood-Donation/pkg/domain-errors"
	"github.com/Rishov2004/Blood-Donation/pkg/platform/httputil"
	"github.com/Rishov2004/Blood-Donation/pkg/requestcontext"
)

// Service defines the interface for donor operations.
type Service interface {
	Register(ctx context.Context, in service.RegisterInput) (*models.Donor, error)
	Search(ctx context.Context, in service.SearchInput) ([]proximity.Match, error)
	ListByBloodGroup(ctx context.Context, bloodGroup string) ([]models.Donor, error)
}

// Handler handles donor-related endpoints.
type Handler struct {
	logger *slog.Logger
	donors Service
}

// New creates a new donor Handler.
func New(donors Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		donors: donors,
	}
}

// Register registers the donor routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/donors", h.handleRegisterDonor)
	r.Get("/donors/nearby", h.handleSearchNearby)
	r.Get("/donors", h.handleListByGroup)
}

// handleRegisterDonor creates a donor. A duplicate phone number is a 409
// regardless of which of two racing requests committed first.
func (h *Handler) handleRegisterDonor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	donor, err := h.donors.Register(ctx, req.ToInput())
	if err != nil {
		h.writeServiceError(ctx, w, "failed to register donor", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, donorResponse(*donor))
}

// handleSearchNearby returns donors of the requested group within the search
// radius, closest first.
func (h *Handler) handleSearchNearby(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	in, err := parseSearchQuery(r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid search query",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	matches, err := h.donors.Search(ctx, in)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to search donors", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, searchResponse(matches))
}

// handleListByGroup returns every donor with the requested blood group.
func (h *Handler) handleListByGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	group := r.URL.Query().Get("blood_group")
	if group == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "blood_group query parameter is required"))
		return
	}

	donors, err := h.donors.ListByBloodGroup(ctx, group)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list donors", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, listResponse(donors))
}

// writeServiceError logs at a level matching blame and writes the envelope.
// Client mistakes are warnings; infrastructure trouble is an error.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	requestID := requestcontext.RequestID(ctx)

	switch dErrors.CodeOf(err) {
	case dErrors.CodeValidation, dErrors.CodeBadRequest, dErrors.CodeInvalidInput, dErrors.CodeConflict:
		h.logger.WarnContext(ctx, msg,
			"request_id", requestID,
			"error", err.Error(),
		)
	default:
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestID,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
