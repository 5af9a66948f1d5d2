// This file implements the financial aggregator: it joins the normalized
// summary against approval records and ordered-parts line items to compute
// authorized and declined monetary totals.
package vhc

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/torquehq/torque/internal/domain"
)

// DefaultLabourRate is the hourly labour rate applied when no rate is
// configured.
const DefaultLabourRate = 150.0

// FinancialTotals are the authorized and declined monetary totals derived
// for one job's VHC.
type FinancialTotals struct {
	Authorized float64 `json:"authorized"`
	Declined   float64 `json:"declined"`
}

// FinancialCalculator computes FinancialTotals from a job's check records
// and parts line items. The labour rate is injected so it can be varied
// per installation without touching the aggregation logic.
type FinancialCalculator struct {
	labourRate float64
	logger     *slog.Logger
}

// NewFinancialCalculator creates a FinancialCalculator. A non-positive
// labour rate falls back to DefaultLabourRate; a nil logger falls back to
// the process default.
func NewFinancialCalculator(labourRate float64, logger *slog.Logger) *FinancialCalculator {
	if labourRate <= 0 {
		labourRate = DefaultLabourRate
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FinancialCalculator{
		labourRate: labourRate,
		logger:     logger,
	}
}

// Totals computes the authorized and declined totals for one job.
//
// Failure degrades to "no financial data": a missing or unparseable
// checksheet returns zero totals, and any unexpected panic inside the
// computation is recovered, logged, and likewise reported as zero totals.
// The caller decides how to present the zeros.
func (c *FinancialCalculator) Totals(checks []domain.CheckRecord, parts []domain.PartsLineItem) (totals FinancialTotals) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("vhc financial aggregation panicked", "panic", r)
			totals = FinancialTotals{}
		}
	}()

	payload, ok := BuilderPayload(checks)
	if !ok {
		return FinancialTotals{}
	}
	summary := Summarise(payload)

	// Approval rows keyed by inspection-item id. Rows without an id are
	// unjoinable and skipped.
	approvals := make(map[string]domain.CheckRecord)
	for _, rec := range checks {
		if rec.VhcID != "" {
			approvals[rec.VhcID] = rec
		}
	}

	// Parts cost and labour hours per item. Labour is the max of the
	// approval row's estimate and any line-item override.
	partsCost := make(map[string]float64)
	costed := make(map[string]bool)
	labour := make(map[string]float64)
	for _, li := range parts {
		if li.VhcItemID == "" {
			continue
		}
		if price, ok := li.ResolveUnitPrice(); ok {
			partsCost[li.VhcItemID] += li.Quantity() * price
			costed[li.VhcItemID] = true
		}
		if li.LabourHours > labour[li.VhcItemID] {
			labour[li.VhcItemID] = li.LabourHours
		}
	}
	for id, rec := range approvals {
		if rec.LabourHours > labour[id] {
			labour[id] = rec.LabourHours
		}
	}

	for _, item := range summary.RedAmberItems() {
		if item.ID == "" {
			continue
		}
		approval, hasApproval := approvals[item.ID]

		cost := partsCost[item.ID]
		if !costed[item.ID] && hasApproval {
			cost = approval.PartsCost
		}
		row := cost + labour[item.ID]*c.labourRate
		if row <= 0 {
			continue
		}

		// Bucket #1: the display-derived bucket. The display status, when
		// present, overrides the item's computed severity.
		bucket := strings.ToLower(string(item.Status.Severity))
		if hasApproval && strings.TrimSpace(approval.DisplayStatus) != "" {
			bucket = strings.ToLower(strings.TrimSpace(approval.DisplayStatus))
		}
		switch bucket {
		case "authorized", "authorised":
			totals.Authorized += row
		case "declined":
			totals.Declined += row
		}

		// Bucket #2: the approval-status field, checked independently of
		// the display bucket. An item matching on both checks is counted
		// twice; that mirrors the established dashboard figures and must
		// not be collapsed without a product decision.
		if hasApproval {
			switch approval.ApprovalStatus {
			case domain.ApprovalAuthorized:
				totals.Authorized += row
			case domain.ApprovalDeclined:
				totals.Declined += row
			}
		}
	}

	return totals
}

// BuilderPayload locates the checksheet record among a job's checks and
// decodes its payload. The payload may be stored as an already-decoded
// object or as a JSON string; ok is false when no checksheet record exists
// or its payload does not parse.
func BuilderPayload(checks []domain.CheckRecord) (Payload, bool) {
	for _, rec := range checks {
		if !rec.IsChecksheet() {
			continue
		}
		raw := rec.Data
		if raw == nil {
			raw = rec.IssueDescription
		}
		return decodePayload(raw)
	}
	return nil, false
}

// decodePayload coerces the stored checksheet payload into a Payload map.
func decodePayload(raw any) (Payload, bool) {
	switch t := raw.(type) {
	case map[string]any:
		return Payload(t), true
	case Payload:
		return t, true
	case string:
		return unmarshalPayload([]byte(t))
	case []byte:
		return unmarshalPayload(t)
	case json.RawMessage:
		return unmarshalPayload(t)
	}
	return nil, false
}

func unmarshalPayload(data []byte) (Payload, bool) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return nil, false
	}
	return Payload(m), true
}
