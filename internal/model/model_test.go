package model

import (
	"strings"
	"testing"
)

func TestNewClaimID(t *testing.T) {
	id := NewClaimID()
	if !strings.HasPrefix(id, "CLM-") {
		t.Errorf("expected CLM- prefix, got %s", id)
	}
	if len(id) != 12 {
		t.Errorf("expected 12 characters, got %d (%s)", len(id), id)
	}
	if id == NewClaimID() {
		t.Error("consecutive ids should differ")
	}
}

func TestClaimStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from ClaimStatus
		to   ClaimStatus
		want bool
	}{
		{"pending to processing", StatusPending, StatusProcessing, true},
		{"pending to failed", StatusPending, StatusFailed, true},
		{"pending to open", StatusPending, StatusOpen, false},
		{"processing to open", StatusProcessing, StatusOpen, true},
		{"processing to closed", StatusProcessing, StatusClosed, true},
		{"processing to needs_review", StatusProcessing, StatusNeedsReview, true},
		{"processing to failed", StatusProcessing, StatusFailed, true},
		{"processing to pending", StatusProcessing, StatusPending, false},
		{"open reenters processing", StatusOpen, StatusProcessing, true},
		{"failed reenters processing", StatusFailed, StatusProcessing, true},
		{"open to closed directly", StatusOpen, StatusClosed, false},
		{"invalid target", StatusProcessing, ClaimStatus("bogus"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestClaimEmpty(t *testing.T) {
	if !(Claim{}).Empty() {
		t.Error("zero claim should be empty")
	}
	if (Claim{VIN: "VIN1"}).Empty() {
		t.Error("claim with VIN should not be empty")
	}
	amount := 100.0
	if (Claim{EstimatedDamage: &amount}).Empty() {
		t.Error("claim with estimate should not be empty")
	}
}

func TestParseIncidentDate(t *testing.T) {
	if _, err := ParseIncidentDate("2024-03-01"); err != nil {
		t.Errorf("valid date should parse: %v", err)
	}
	if _, err := ParseIncidentDate(" 2024-03-01 "); err != nil {
		t.Errorf("padded date should parse: %v", err)
	}
	if _, err := ParseIncidentDate("03/01/2024"); err == nil {
		t.Error("wrong format should fail")
	}
	if _, err := ParseIncidentDate(""); err == nil {
		t.Error("empty date should fail")
	}
}

func TestClaimInputRoundTrip(t *testing.T) {
	amount := 4200.0
	input := ClaimInput{
		PolicyNumber:        "POL-001",
		VIN:                 "VIN1",
		VehicleYear:         2021,
		VehicleMake:         "Honda",
		VehicleModel:        "Accord",
		IncidentDate:        "2024-03-01",
		IncidentDescription: "rear ended",
		DamageDescription:   "bumper dent",
		EstimatedDamage:     &amount,
	}

	claim := FromInput(input)
	if claim.Status != StatusPending {
		t.Errorf("new claim status = %s, want pending", claim.Status)
	}
	if got := claim.Input(); got != input {
		t.Errorf("Input() round trip mismatch: %+v != %+v", got, input)
	}
}
