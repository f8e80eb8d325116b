package adoption

import (
	"fmt"
	"strings"
)

// Status represents the lifecycle state of an adoption request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// validTransitions is forward-only: approved and rejected are terminal.
var validTransitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {},
	StatusRejected: {},
}

func (s Status) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, ignoring case.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid adoption request status: %s", s)
	}
	return status, nil
}
