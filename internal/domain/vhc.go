// Package domain contains core business types and interfaces.
//
// This file defines the Vehicle Health Check record types handed to the
// summarization and financial-aggregation engine by the persistence layer.
package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Approval Status
// =============================================================================

// ApprovalStatus records the customer's decision on one inspection item's
// recommended work.
type ApprovalStatus string

const (
	// ApprovalPending indicates the item is awaiting a customer decision.
	// This is the default status for newly raised items.
	ApprovalPending ApprovalStatus = "pending"

	// ApprovalAuthorized indicates the customer approved the work.
	ApprovalAuthorized ApprovalStatus = "authorized"

	// ApprovalDeclined indicates the customer declined the work.
	ApprovalDeclined ApprovalStatus = "declined"
)

// String returns the string representation of the status.
func (s ApprovalStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a recognized value.
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalPending, ApprovalAuthorized, ApprovalDeclined:
		return true
	}
	return false
}

// =============================================================================
// Check Record
// =============================================================================

// CheckSectionChecksheet tags the one distinguished check record whose
// payload is the technician's structured checksheet. All other records on
// a job are per-item approval rows.
const CheckSectionChecksheet = "VHC_CHECKSHEET"

// CheckRecord is one row of a job's VHC checks.
//
// The checksheet record carries the raw technician payload in Data (or,
// for legacy rows, IssueDescription) as a JSON string or an already-decoded
// object. Approval rows carry the per-item decision fields instead.
type CheckRecord struct {
	ID      uuid.UUID
	JobID   uuid.UUID
	Section string

	// Checksheet payload (checksheet record only)
	Data             any
	IssueDescription any

	// Per-item approval fields (approval rows only)
	VhcID          string         // Inspection-item identifier, the join key
	ApprovalStatus ApprovalStatus // Customer decision
	DisplayStatus  string         // Optional override of the computed bucket
	LabourHours    float64        // Estimated labour for the recommended work
	PartsCost      float64        // Parts cost recorded on the approval row

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsChecksheet returns true if this record holds the technician payload.
func (r CheckRecord) IsChecksheet() bool {
	return r.Section == CheckSectionChecksheet
}

// =============================================================================
// Parts Line Item
// =============================================================================

// PartRef carries the pricing fields of a joined parts record.
type PartRef struct {
	UnitPrice *float64
}

// PartsLineItem is one ordered-parts row against an inspection item.
type PartsLineItem struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	VhcItemID string // Inspection-item identifier, the join key

	// QuantityRequested defaults to 1 when it is not a positive number.
	QuantityRequested float64

	// UnitPrice on the line item itself; Part and PartsCatalog are the
	// two nested fallbacks consulted in order when it is absent.
	UnitPrice    *float64
	Part         *PartRef
	PartsCatalog *PartRef

	LabourHours float64

	CreatedAt time.Time
}

// Quantity returns the requested quantity, defaulting to 1 when the
// recorded value is not a positive number.
func (li PartsLineItem) Quantity() float64 {
	if li.QuantityRequested > 0 {
		return li.QuantityRequested
	}
	return 1
}

// ResolveUnitPrice returns the first finite unit price among the line
// item's own price and the two nested fallbacks. Non-finite candidates are
// skipped; ok is false when no usable price exists.
func (li PartsLineItem) ResolveUnitPrice() (price float64, ok bool) {
	candidates := []*float64{li.UnitPrice}
	if li.Part != nil {
		candidates = append(candidates, li.Part.UnitPrice)
	}
	if li.PartsCatalog != nil {
		candidates = append(candidates, li.PartsCatalog.UnitPrice)
	}
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if math.IsNaN(*c) || math.IsInf(*c, 0) {
			continue
		}
		return *c, true
	}
	return 0, false
}
