package services

import (
	"errors"
	"testing"

	"kds-backend/internal/models"
)

func TestPlanTransition_ForwardOnly(t *testing.T) {
	cases := []struct {
		name       string
		current    models.PrepStatus
		action     LineAction
		autoServe  bool
		wantTo     models.PrepStatus
		wantStart  bool
		wantReady  bool
		wantNoOp   bool
		wantReject bool
	}{
		{name: "start pending", current: models.StatusPending, action: ActionStart, wantTo: models.StatusPreparing, wantStart: true},
		{name: "start again", current: models.StatusPreparing, action: ActionStart, wantNoOp: true},
		{name: "start ready", current: models.StatusReady, action: ActionStart, wantReject: true},
		{name: "finish preparing", current: models.StatusPreparing, action: ActionFinish, wantTo: models.StatusReady, wantReady: true},
		{name: "finish with auto-serve", current: models.StatusPreparing, action: ActionFinish, autoServe: true, wantTo: models.StatusServed, wantReady: true},
		{name: "finish ready", current: models.StatusReady, action: ActionFinish, wantNoOp: true},
		{name: "finish served", current: models.StatusServed, action: ActionFinish, wantNoOp: true},
		{name: "finish pending", current: models.StatusPending, action: ActionFinish, wantReject: true},
		{name: "serve ready", current: models.StatusReady, action: ActionServe, wantTo: models.StatusServed},
		{name: "serve served", current: models.StatusServed, action: ActionServe, wantNoOp: true},
		{name: "serve pending", current: models.StatusPending, action: ActionServe, wantReject: true},
		{name: "serve preparing", current: models.StatusPreparing, action: ActionServe, wantReject: true},
	}

	for _, tc := range cases {
		plan, err := planTransition(tc.current, tc.action, tc.autoServe)
		if tc.wantReject {
			var transitionErr *models.InvalidTransitionError
			if !errors.As(err, &transitionErr) {
				t.Fatalf("%s: expected InvalidTransitionError, got %v", tc.name, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if plan.NoOp != tc.wantNoOp {
			t.Fatalf("%s: NoOp = %v, want %v", tc.name, plan.NoOp, tc.wantNoOp)
		}
		if plan.NoOp {
			continue
		}
		if plan.To != tc.wantTo {
			t.Fatalf("%s: To = %s, want %s", tc.name, plan.To, tc.wantTo)
		}
		if plan.StampStart != tc.wantStart {
			t.Fatalf("%s: StampStart = %v, want %v", tc.name, plan.StampStart, tc.wantStart)
		}
		if plan.StampReady != tc.wantReady {
			t.Fatalf("%s: StampReady = %v, want %v", tc.name, plan.StampReady, tc.wantReady)
		}
	}
}

func TestPlanTransition_AutoServeStampsReady(t *testing.T) {
	// Auto-serve skips ready as a visited state but the ready stamp must
	// still be recorded for elapsed-time accounting.
	plan, err := planTransition(models.StatusPreparing, ActionFinish, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.To != models.StatusServed {
		t.Fatalf("To = %s, want served", plan.To)
	}
	if !plan.StampReady {
		t.Fatal("StampReady = false, want true")
	}
	if plan.StampStart {
		t.Fatal("StampStart = true, want false")
	}
}
