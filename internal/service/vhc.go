// Package service contains the business logic layer.
//
// This file implements the VHC service: it loads a job's raw records and
// runs the summarization engine, the financial aggregator and the
// dashboard status resolver over them. Every result is a fresh derivation
// from the current records; nothing is cached (two dashboard requests for
// the same job recompute independently).
package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/torquehq/torque/internal/domain"
	"github.com/torquehq/torque/internal/metrics"
	"github.com/torquehq/torque/internal/repository"
	"github.com/torquehq/torque/internal/vhc"
)

// =============================================================================
// Interface Definition
// =============================================================================

// VhcStore is the subset of repository access the VHC service needs.
type VhcStore interface {
	// GetJobByID retrieves a job with its derived VHC counts.
	// Returns sql.ErrNoRows if the job does not exist.
	GetJobByID(ctx context.Context, id uuid.UUID) (repository.JobRow, error)

	// ListChecksByJobID retrieves all VHC check records for a job.
	ListChecksByJobID(ctx context.Context, jobID uuid.UUID) ([]domain.CheckRecord, error)

	// ListPartsByJobID retrieves the ordered-parts line items for a job.
	ListPartsByJobID(ctx context.Context, jobID uuid.UUID) ([]domain.PartsLineItem, error)
}

// VhcService defines the VHC read operations consumed by the dashboard.
type VhcService interface {
	// Summary computes the normalized severity summary for a job's
	// checksheet. A job without a checksheet yields an empty summary,
	// not an error.
	// Returns domain.ENOTFOUND if the job does not exist.
	Summary(ctx context.Context, jobID uuid.UUID) (vhc.Summary, error)

	// FinancialTotals computes the authorized and declined totals for a
	// job. Missing or malformed checksheet data degrades to zero totals.
	// Returns domain.ENOTFOUND if the job does not exist.
	FinancialTotals(ctx context.Context, jobID uuid.UUID) (vhc.FinancialTotals, error)

	// DashboardStatus derives the job's canonical VHC workflow state.
	// Returns the zero status when no determination is possible.
	// Returns domain.ENOTFOUND if the job does not exist.
	DashboardStatus(ctx context.Context, jobID uuid.UUID) (vhc.DashboardStatus, error)
}

// =============================================================================
// Implementation
// =============================================================================

// vhcService implements the VhcService interface.
type vhcService struct {
	store  VhcStore
	calc   *vhc.FinancialCalculator
	logger *slog.Logger
}

// NewVhcService creates a new VhcService.
func NewVhcService(store VhcStore, calc *vhc.FinancialCalculator, logger *slog.Logger) VhcService {
	return &vhcService{
		store:  store,
		calc:   calc,
		logger: logger,
	}
}

// Summary computes the normalized severity summary for a job.
func (s *vhcService) Summary(ctx context.Context, jobID uuid.UUID) (vhc.Summary, error) {
	const op = "vhc.summary"

	checks, err := s.loadChecks(ctx, op, jobID)
	if err != nil {
		return vhc.Summary{}, err
	}

	payload, ok := vhc.BuilderPayload(checks)
	if !ok {
		// No checksheet yet; an empty summary is a well-defined state.
		return vhc.Summary{}, nil
	}

	summary := vhc.Summarise(payload)

	metrics.VhcSummariesComputed.Inc()
	metrics.VhcSummaryItems.Observe(float64(summary.ItemCount))
	s.logger.Debug("vhc summary computed",
		"job_id", jobID,
		"sections", len(summary.Sections),
		"items", summary.ItemCount,
		"red", summary.Totals.Red,
		"amber", summary.Totals.Amber,
	)

	return summary, nil
}

// FinancialTotals computes the authorized and declined totals for a job.
func (s *vhcService) FinancialTotals(ctx context.Context, jobID uuid.UUID) (vhc.FinancialTotals, error) {
	const op = "vhc.financial_totals"

	checks, err := s.loadChecks(ctx, op, jobID)
	if err != nil {
		return vhc.FinancialTotals{}, err
	}
	parts, err := s.store.ListPartsByJobID(ctx, jobID)
	if err != nil {
		return vhc.FinancialTotals{}, domain.Internal(err, op, "failed to load parts line items")
	}

	totals := s.calc.Totals(checks, parts)

	status := "ok"
	if _, ok := vhc.BuilderPayload(checks); !ok {
		status = "empty"
	}
	metrics.VhcFinancialCalculations.WithLabelValues(status).Inc()
	s.logger.Debug("vhc financial totals computed",
		"job_id", jobID,
		"authorized", totals.Authorized,
		"declined", totals.Declined,
	)

	return totals, nil
}

// DashboardStatus derives the job's canonical VHC workflow state.
func (s *vhcService) DashboardStatus(ctx context.Context, jobID uuid.UUID) (vhc.DashboardStatus, error) {
	const op = "vhc.dashboard_status"

	row, err := s.store.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.NotFound(op, "job", jobID.String())
		}
		return "", domain.Internal(err, op, "failed to get job")
	}

	workflow := domain.Workflow{
		Status:      row.WorkflowStatus,
		ChecksCount: row.Job.VhcChecksCount,
	}
	status := vhc.DeriveDashboardStatus(row.Job, workflow, row.Job.VhcChecksCount > 0)

	label := status.String()
	if label == "" {
		label = "none"
	}
	metrics.VhcDashboardLookups.WithLabelValues(label).Inc()

	return status, nil
}

// loadChecks fetches a job's check records, mapping a missing job to
// domain.ENOTFOUND.
func (s *vhcService) loadChecks(ctx context.Context, op string, jobID uuid.UUID) ([]domain.CheckRecord, error) {
	if _, err := s.store.GetJobByID(ctx, jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "job", jobID.String())
		}
		return nil, domain.Internal(err, op, "failed to get job")
	}
	checks, err := s.store.ListChecksByJobID(ctx, jobID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load check records")
	}
	return checks, nil
}
