package transferService

import (
	"errors"
	"testing"
)

func TestSwapTeamRolesRunsInOrder(t *testing.T) {
	var calls []string

	err := swapTeamRoles(
		func() error { calls = append(calls, "remove"); return nil },
		func() error { calls = append(calls, "add"); return nil },
	)
	if err != nil {
		t.Fatalf("swapTeamRoles failed: %v", err)
	}
	if len(calls) != 2 || calls[0] != "remove" || calls[1] != "add" {
		t.Errorf("expected remove then add, got %v", calls)
	}
}

func TestSwapTeamRolesStopsOnRemoveFailure(t *testing.T) {
	addCalled := false

	err := swapTeamRoles(
		func() error { return errors.New("missing permissions") },
		func() error { addCalled = true; return nil },
	)
	if err == nil {
		t.Fatal("expected an error when the remove fails")
	}
	if addCalled {
		t.Error("expected the add to be skipped; the player would hold both team roles")
	}
}

func TestSwapTeamRolesReportsAddFailure(t *testing.T) {
	err := swapTeamRoles(
		func() error { return nil },
		func() error { return errors.New("role above bot") },
	)
	if err == nil {
		t.Fatal("expected an error when the add fails")
	}
}
