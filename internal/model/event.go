package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventStaffCreated          EventType = "staff.created"
	EventStaffUpdated          EventType = "staff.updated"
	EventStaffDeleted          EventType = "staff.deleted"
	EventHospitalUpdated       EventType = "hospital.updated"
	EventLabTestStarted        EventType = "laboratory.test_started"
	EventLabTestCompleted      EventType = "laboratory.test_completed"
	EventPrescriptionDispensed EventType = "pharmacy.prescription_dispensed"
	EventLowStock              EventType = "pharmacy.low_stock"
	EventPatientDischarged     EventType = "inpatient.discharged"
	EventChatPosted            EventType = "chat.posted"
	EventSessionStarted        EventType = "session.started"
	EventSessionEnded          EventType = "session.ended"
)

// Event is a domain event published to the message broker.
type Event struct {
	ID         uuid.UUID       `json:"id"`
	Type       EventType       `json:"type"`
	ActorID    string          `json:"actorId,omitempty"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurredAt"`
}
