// This file defines the job and workflow metadata consumed by the VHC
// dashboard status resolver.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Job is the workshop job card metadata relevant to the VHC dashboard.
// Status is free-form text; the resolver matches it by keyword rather than
// by enum because it evolves independently in the booking system.
type Job struct {
	ID         uuid.UUID
	VehicleReg string
	Status     string

	VhcRequired    bool
	VhcSentAt      *time.Time
	VhcCompletedAt *time.Time

	VhcChecksCount     int
	AuthorizationCount int
	DeclinationCount   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Workflow is the job's position in the workshop workflow board. Its
// status string and check count evolve independently of the job card.
type Workflow struct {
	Status      string
	ChecksCount int
}
