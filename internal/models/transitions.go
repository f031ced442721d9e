package models

import "fmt"

// applicationTransitions is the strict status table. Withdrawal is handled separately
// because it is reachable from every non-terminal state.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationSubmitted:   {ApplicationScreening},
	ApplicationScreening:   {ApplicationApproved, ApplicationRejected},
	ApplicationApproved:    {ApplicationConditional},
	ApplicationConditional: {},
	ApplicationRejected:    {},
	ApplicationWithdrawn:   {},
}

// IsTerminal reports whether no transition leaves the status
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationRejected || s == ApplicationWithdrawn
}

// ValidateTransition returns ErrInvalidTransition unless from -> to is allowed
func ValidateTransition(from, to ApplicationStatus) error {
	if to == ApplicationWithdrawn && !from.IsTerminal() {
		return nil
	}
	for _, next := range applicationTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// CanConvert reports whether an application in this status may become a tenant
func (s ApplicationStatus) CanConvert() bool {
	return s == ApplicationApproved || s == ApplicationConditional
}
