// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ClaimIDPrefix prefixes every generated claim identifier.
const ClaimIDPrefix = "CLM"

// IncidentDateLayout is the calendar-date format used on claim records.
const IncidentDateLayout = "2006-01-02"

// ClaimType is the workflow a claim is routed to after classification.
type ClaimType string

// Claim type constants.
const (
	TypeNew         ClaimType = "new"
	TypeDuplicate   ClaimType = "duplicate"
	TypeTotalLoss   ClaimType = "total_loss"
	TypeFraud       ClaimType = "fraud"
	TypePartialLoss ClaimType = "partial_loss"
)

// ClaimTypes lists every recognized claim type.
var ClaimTypes = []ClaimType{TypeNew, TypeDuplicate, TypeTotalLoss, TypeFraud, TypePartialLoss}

// Valid reports whether t is a recognized claim type.
func (t ClaimType) Valid() bool {
	switch t {
	case TypeNew, TypeDuplicate, TypeTotalLoss, TypeFraud, TypePartialLoss:
		return true
	}
	return false
}

// ClaimInput is the caller-supplied payload for creating a claim.
type ClaimInput struct {
	PolicyNumber        string   `json:"policy_number" validate:"required"`
	VIN                 string   `json:"vin" validate:"required"`
	VehicleYear         int      `json:"vehicle_year" validate:"gte=0"`
	VehicleMake         string   `json:"vehicle_make"`
	VehicleModel        string   `json:"vehicle_model"`
	IncidentDate        string   `json:"incident_date" validate:"required"`
	IncidentDescription string   `json:"incident_description" validate:"required"`
	DamageDescription   string   `json:"damage_description" validate:"required"`
	EstimatedDamage     *float64 `json:"estimated_damage,omitempty" validate:"omitempty,gte=0"`
}

// Claim is a single insurance loss report tracked through its lifecycle.
type Claim struct {
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
	EstimatedDamage     *float64    `json:"estimated_damage,omitempty"`
	PayoutAmount        *float64    `json:"payout_amount,omitempty"`
	ID                  string      `json:"id"`
	PolicyNumber        string      `json:"policy_number"`
	VIN                 string      `json:"vin"`
	VehicleMake         string      `json:"vehicle_make"`
	VehicleModel        string      `json:"vehicle_model"`
	IncidentDate        string      `json:"incident_date"`
	IncidentDescription string      `json:"incident_description"`
	DamageDescription   string      `json:"damage_description"`
	ClaimType           ClaimType   `json:"claim_type,omitempty"`
	Status              ClaimStatus `json:"status"`
	VehicleYear         int         `json:"vehicle_year"`
}

// NewClaimID generates a claim identifier of the form CLM-XXXXXXXX.
func NewClaimID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s-%s", ClaimIDPrefix, strings.ToUpper(hex[:8]))
}

// ParseIncidentDate parses a claim's incident date string.
func ParseIncidentDate(s string) (time.Time, error) {
	return time.Parse(IncidentDateLayout, strings.TrimSpace(s))
}

// Empty reports whether the claim carries no usable data. Decision-core
// functions treat empty claims as "no signal" rather than an error.
func (c Claim) Empty() bool {
	return c.ID == "" &&
		strings.TrimSpace(c.PolicyNumber) == "" &&
		strings.TrimSpace(c.VIN) == "" &&
		strings.TrimSpace(c.IncidentDescription) == "" &&
		strings.TrimSpace(c.DamageDescription) == "" &&
		c.EstimatedDamage == nil
}

// CombinedText returns the incident and damage descriptions joined for
// lexical scans.
func (c Claim) CombinedText() string {
	return strings.TrimSpace(c.IncidentDescription + " " + c.DamageDescription)
}

// FromInput builds an unsaved Claim from validated input.
func FromInput(in ClaimInput) Claim {
	return Claim{
		PolicyNumber:        in.PolicyNumber,
		VIN:                 in.VIN,
		VehicleYear:         in.VehicleYear,
		VehicleMake:         in.VehicleMake,
		VehicleModel:        in.VehicleModel,
		IncidentDate:        in.IncidentDate,
		IncidentDescription: in.IncidentDescription,
		DamageDescription:   in.DamageDescription,
		EstimatedDamage:     in.EstimatedDamage,
		Status:              StatusPending,
	}
}

// Input converts a stored claim back to its input form, for reprocessing.
func (c Claim) Input() ClaimInput {
	return ClaimInput{
		PolicyNumber:        c.PolicyNumber,
		VIN:                 c.VIN,
		VehicleYear:         c.VehicleYear,
		VehicleMake:         c.VehicleMake,
		VehicleModel:        c.VehicleModel,
		IncidentDate:        c.IncidentDate,
		IncidentDescription: c.IncidentDescription,
		DamageDescription:   c.DamageDescription,
		EstimatedDamage:     c.EstimatedDamage,
	}
}
