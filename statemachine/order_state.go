package statemachine

import (
	"pharmacy-api/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "courier", "customer", "system"
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Courier takes a pending order
	{From: models.StatusPending, To: models.StatusAssigned, Actor: "courier"},
	// Courier finishes or abandons an assigned delivery
	{From: models.StatusAssigned, To: models.StatusDelivered, Actor: "courier"},
	{From: models.StatusAssigned, To: models.StatusCancelled, Actor: "courier"},
	// Customer can cancel until the order is delivered
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "customer"},
	{From: models.StatusAssigned, To: models.StatusCancelled, Actor: "customer"},
	// System-side cancellation (admin override, cleanup)
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "system"},
	{From: models.StatusAssigned, To: models.StatusCancelled, Actor: "system"},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// TransitionError reports a disallowed state change.
type TransitionError struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

func (e *TransitionError) Error() string {
	return "invalid transition: " + string(e.From) + " -> " + string(e.To) +
		" is not allowed for actor '" + e.Actor + "'. " +
		"Valid transitions from " + string(e.From) + " are: " + describeValidFrom(e.From)
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return &TransitionError{From: from, To: to, Actor: actor}
}

// IsTerminal reports whether no transition leads out of the given state
func IsTerminal(status models.OrderStatus) bool {
	return len(ValidTransitionsFrom(status)) == 0
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
