package services

import "kds-backend/internal/models"

// LineAction is one of the three lifecycle actions a display can apply.
type LineAction string

const (
	ActionStart  LineAction = "start"
	ActionFinish LineAction = "finish"
	ActionServe  LineAction = "serve"
)

// transitionPlan is the resolved effect of an action on a line in a given
// status. NoOp means the action already happened: duplicate taps and
// retries succeed without touching the store.
type transitionPlan struct {
	From       models.PrepStatus
	To         models.PrepStatus
	StampStart bool
	StampReady bool
	NoOp       bool
}

// planTransition is the whole state machine: pending -> preparing -> ready
// -> served, nothing else. With autoServe, finish lands directly on served
// (ready is skipped, not visited) while still stamping ready_at for
// elapsed-time accounting.
func planTransition(current models.PrepStatus, action LineAction, autoServe bool) (transitionPlan, error) {
	switch action {
	case ActionStart:
		switch current {
		case models.StatusPending:
			return transitionPlan{From: models.StatusPending, To: models.StatusPreparing, StampStart: true}, nil
		case models.StatusPreparing:
			return transitionPlan{NoOp: true}, nil
		}
	case ActionFinish:
		switch current {
		case models.StatusPreparing:
			to := models.StatusReady
			if autoServe {
				to = models.StatusServed
			}
			return transitionPlan{From: models.StatusPreparing, To: to, StampReady: true}, nil
		case models.StatusReady, models.StatusServed:
			return transitionPlan{NoOp: true}, nil
		}
	case ActionServe:
		switch current {
		case models.StatusReady:
			return transitionPlan{From: models.StatusReady, To: models.StatusServed}, nil
		case models.StatusServed:
			return transitionPlan{NoOp: true}, nil
		}
	}
	return transitionPlan{}, &models.InvalidTransitionError{From: current, Action: string(action)}
}
