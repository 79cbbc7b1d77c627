// Package audit defines the event model for the registry's audit trail.
// Events are emitted from domain logic and fanned out to whichever sinks
// the deployment has wired (in-memory, Kafka).
package audit

import (
	"time"

	id "github.com/Rishov2004/Blood-Donation/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal/regulatory significance.
	// Donor registrations fall here: health data handling requires a
	// durable record of who entered the registry and when.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers events useful for debugging and operational
	// visibility. These can be sampled or aggregated with shorter retention.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID         string        `json:"id"`
	Category   EventCategory `json:"category"`
	Timestamp  time.Time     `json:"timestamp"`
	Action     string        `json:"action"`
	DonorID    id.DonorID    `json:"donor_id,omitempty"`
	BloodGroup string        `json:"blood_group,omitempty"`
	Outcome    string        `json:"outcome,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	RequestID  string        `json:"request_id,omitempty"`
	ClientIP   string        `json:"client_ip,omitempty"`
	ResultSize int           `json:"result_size,omitempty"`
}

type AuditEvent string

const (
	EventDonorRegistered      AuditEvent = "donor_registered"
	EventRegistrationRejected AuditEvent = "registration_rejected"
	EventDonorSearch          AuditEvent = "donor_search"
	EventGroupListed          AuditEvent = "group_listed"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	EventDonorRegistered:      CategoryCompliance,
	EventRegistrationRejected: CategoryCompliance,

	EventDonorSearch: CategoryOperations,
	EventGroupListed: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
