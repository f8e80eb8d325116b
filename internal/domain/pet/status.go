package pet

import (
	"fmt"
	"strings"
)

// Status represents a pet's availability for adoption.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusAdopted   Status = "adopted"
)

// workflowTransitions is the state machine driven by adoption requests.
// Administrative edits bypass it.
var workflowTransitions = map[Status][]Status{
	StatusAvailable: {StatusPending},
	StatusPending:   {StatusAdopted, StatusAvailable},
	StatusAdopted:   {},
}

// IsValid returns true if the status is a recognized pet status.
func (s Status) IsValid() bool {
	_, exists := workflowTransitions[s]
	return exists
}

// CanTransitionTo reports whether the adoption workflow may move a pet from s to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range workflowTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, ignoring case.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid pet status: %s", s)
	}
	return status, nil
}
