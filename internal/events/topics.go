// Package events carries workflow transitions to and from Kafka.
package events

// Source identifies this service in CloudEvent envelopes.
const Source = "service-adoption"

// DefaultTopic receives every adoption transition event.
const DefaultTopic = "adoption.events"

// CloudEvent types, one per entity.
const (
	PetStatusChanged     = "adoption.pet.status_changed"
	RequestStatusChanged = "adoption.request.status_changed"
)
