package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Rishov2004/Blood-Donation/internal/donor/metrics"
	"github.com/Rishov2004/Blood-Donation/internal/donor/models"
	"github.com/Rishov2004/Blood-Donation/internal/donor/store"
	"github.com/Rishov2004/Blood-Donation/internal/proximity"
	dErrors "github.com/Rishov2004/Blood-Donation/pkg/domain-errors"
	"github.com/Rishov2004/Blood-Donation/pkg/platform/audit"
	"github.com/Rishov2004/Blood-Donation/pkg/platform/sentinel"
	"github.com/Rishov2004/Blood-Donation/pkg/requestcontext"
)

var tracer = otel.Tracer("donor/service")

// GroupCache caches the donor roster per blood group. Optional; a nil cache
// means every lookup hits storage.
type GroupCache interface {
	Get(ctx context.Context, group models.BloodGroup) ([]models.Donor, bool, error)
	Set(ctx context.Context, group models.BloodGroup, donors []models.Donor) error
	Invalidate(ctx context.Context, group models.BloodGroup) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// RegisterInput carries the fields of a registration request. BloodGroup is
// the raw label; the service canonicalizes it.
type RegisterInput struct {
	Name       string
	Age        int
	BloodGroup string
	Phone      string
	Email      string
	Address    string
	Latitude   float64
	Longitude  float64
}

// SearchInput carries the parameters of a proximity search. A zero RadiusKm
// falls back to the service's configured default.
type SearchInput struct {
	BloodGroup string
	Latitude   float64
	Longitude  float64
	RadiusKm   float64
}

// Service orchestrates donor registration, group listing, and proximity
// matching.
type Service struct {
	donors          store.Store
	cache           GroupCache
	logger          *slog.Logger
	auditPublisher  AuditPublisher
	metrics         *metrics.Metrics
	defaultRadiusKm float64
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithGroupCache(cache GroupCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithDefaultRadius overrides the search radius applied when a request does
// not name one.
func WithDefaultRadius(km float64) Option {
	return func(s *Service) {
		if km > 0 {
			s.defaultRadiusKm = km
		}
	}
}

// New constructs a Service.
func New(donors store.Store, opts ...Option) *Service {
	s := &Service{
		donors:          donors,
		defaultRadiusKm: 15,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates and stores a new donor. The phone number must be unused;
// a duplicate surfaces as a conflict regardless of which request won the race.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Donor, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "donor.Register",
		trace.WithAttributes(attribute.String("blood_group", in.BloodGroup)))
	defer span.End()

	group, err := models.ParseBloodGroup(in.BloodGroup)
	if err != nil {
		return nil, err
	}

	donor, err := models.NewDonor(
		in.Name, in.Age, group, in.Phone,
		in.Email, in.Address, in.Latitude, in.Longitude,
		requestcontext.Now(ctx),
	)
	if err != nil {
		// Convert invariant violations to validation errors for API response,
		// keeping only the message so the inner code does not leak to clients.
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
		}
		return nil, err
	}

	if err := s.donors.Create(ctx, donor); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			s.incrementRegisterConflicts()
			s.logAudit(ctx, audit.Event{
				Action:     string(audit.EventRegistrationRejected),
				BloodGroup: string(group),
				Outcome:    "conflict",
				Reason:     "duplicate phone",
			})
			return nil, dErrors.New(dErrors.CodeConflict, "phone number already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "donor storage unavailable")
	}

	s.invalidateGroup(ctx, group)
	s.logAudit(ctx, audit.Event{
		Action:     string(audit.EventDonorRegistered),
		DonorID:    donor.ID,
		BloodGroup: string(group),
		Outcome:    "created",
	})
	s.incrementDonorsRegistered()
	s.observeRegister(start)

	return donor, nil
}

// ListByBloodGroup returns every donor with the given group, in registration
// order.
func (s *Service) ListByBloodGroup(ctx context.Context, bloodGroup string) ([]models.Donor, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "donor.ListByBloodGroup",
		trace.WithAttributes(attribute.String("blood_group", bloodGroup)))
	defer span.End()

	group, err := models.ParseBloodGroup(bloodGroup)
	if err != nil {
		return nil, err
	}

	donors, err := s.donorsForGroup(ctx, group)
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.Event{
		Action:     string(audit.EventGroupListed),
		BloodGroup: string(group),
		ResultSize: len(donors),
	})
	s.observeListByGroup(start)

	return donors, nil
}

// Search returns donors of the requested group within the radius, closest
// first. Only donors strictly inside the radius qualify.
func (s *Service) Search(ctx context.Context, in SearchInput) ([]proximity.Match, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "donor.Search",
		trace.WithAttributes(
			attribute.String("blood_group", in.BloodGroup),
			attribute.Float64("radius_km", in.RadiusKm),
		))
	defer span.End()

	group, err := models.ParseBloodGroup(in.BloodGroup)
	if err != nil {
		return nil, err
	}

	origin := proximity.Point{Latitude: in.Latitude, Longitude: in.Longitude}
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	radius := in.RadiusKm
	if radius == 0 {
		radius = s.defaultRadiusKm
	}
	if radius <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "search radius must be positive")
	}

	candidates, err := s.donorsForGroup(ctx, group)
	if err != nil {
		return nil, err
	}

	matches, err := proximity.Nearest(origin, candidates, radius)
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.Event{
		Action:     string(audit.EventDonorSearch),
		BloodGroup: string(group),
		ResultSize: len(matches),
	})
	s.observeSearch(start, len(matches))

	return matches, nil
}

// donorsForGroup reads through the cache when one is wired. Cache failures
// fall back to storage; a broken cache must not take lookups down with it.
func (s *Service) donorsForGroup(ctx context.Context, group models.BloodGroup) ([]models.Donor, error) {
	if s.cache != nil {
		donors, ok, err := s.cache.Get(ctx, group)
		if err != nil {
			s.logWarn(ctx, "group cache read failed", "blood_group", string(group), "error", err)
		} else if ok {
			return donors, nil
		}
	}

	donors, err := s.donors.FindByBloodGroup(ctx, group)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "donor storage unavailable")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, group, donors); err != nil {
			s.logWarn(ctx, "group cache write failed", "blood_group", string(group), "error", err)
		}
	}
	return donors, nil
}

func (s *Service) invalidateGroup(ctx context.Context, group models.BloodGroup) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, group); err != nil {
		s.logWarn(ctx, "group cache invalidation failed", "blood_group", string(group), "error", err)
	}
}

// logAudit records the event in the structured log and hands it to the audit
// publisher. Audit emission is fail-open.
func (s *Service) logAudit(ctx context.Context, event audit.Event) {
	event.RequestID = requestcontext.RequestID(ctx)
	event.ClientIP = requestcontext.ClientIP(ctx)

	if s.logger != nil {
		s.logger.InfoContext(ctx, event.Action,
			"event", event.Action,
			"blood_group", event.BloodGroup,
			"request_id", event.RequestID,
			"log_type", "audit",
		)
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logWarn(ctx, "audit emission failed", "event", event.Action, "error", err)
	}
}

func (s *Service) logWarn(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.WarnContext(ctx, msg, args...)
	}
}

func (s *Service) incrementDonorsRegistered() {
	if s.metrics != nil {
		s.metrics.IncrementDonorsRegistered()
	}
}

func (s *Service) incrementRegisterConflicts() {
	if s.metrics != nil {
		s.metrics.IncrementRegisterConflicts()
	}
}

func (s *Service) observeRegister(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveRegister(start)
	}
}

func (s *Service) observeSearch(start time.Time, matches int) {
	if s.metrics != nil {
		s.metrics.ObserveSearch(start, matches)
	}
}

func (s *Service) observeListByGroup(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveListByGroup(start)
	}
}
