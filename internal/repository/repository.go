// Package repository provides database access for jobs, VHC check records
// and parts line items.
//
// Queries are hand-written against database/sql using the pgx stdlib
// driver. Rows are mapped straight onto domain types; JSON checksheet
// payloads are handed to the caller undecoded (as strings) because the
// VHC engine owns payload parsing and its failure semantics.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/torquehq/torque/internal/domain"
)

// Queries provides access to the Torque database.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance backed by the given database handle.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

const getJobByID = `
SELECT
    j.id,
    j.vehicle_reg,
    j.status,
    j.vhc_required,
    j.vhc_sent_at,
    j.vhc_completed_at,
    j.workflow_status,
    (SELECT COUNT(*) FROM vhc_checks c WHERE c.job_id = j.id) AS vhc_checks_count,
    (SELECT COUNT(*) FROM vhc_checks c WHERE c.job_id = j.id AND c.approval_status = 'authorized') AS authorization_count,
    (SELECT COUNT(*) FROM vhc_checks c WHERE c.job_id = j.id AND c.approval_status = 'declined') AS declination_count,
    j.created_at,
    j.updated_at
FROM jobs j
WHERE j.id = $1
`

// JobRow is a job with its VHC counts and workflow position.
type JobRow struct {
	Job            domain.Job
	WorkflowStatus string
}

// GetJobByID retrieves a job with its derived VHC counts.
// Returns sql.ErrNoRows if the job does not exist.
func (q *Queries) GetJobByID(ctx context.Context, id uuid.UUID) (JobRow, error) {
	var (
		row            JobRow
		vehicleReg     sql.NullString
		sentAt         sql.NullTime
		completedAt    sql.NullTime
		workflowStatus sql.NullString
		createdAt      sql.NullTime
		updatedAt      sql.NullTime
	)
	err := q.db.QueryRowContext(ctx, getJobByID, id).Scan(
		&row.Job.ID,
		&vehicleReg,
		&row.Job.Status,
		&row.Job.VhcRequired,
		&sentAt,
		&completedAt,
		&workflowStatus,
		&row.Job.VhcChecksCount,
		&row.Job.AuthorizationCount,
		&row.Job.DeclinationCount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return JobRow{}, err
	}
	row.Job.VehicleReg = vehicleReg.String
	if sentAt.Valid {
		t := sentAt.Time
		row.Job.VhcSentAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		row.Job.VhcCompletedAt = &t
	}
	row.WorkflowStatus = workflowStatus.String
	if createdAt.Valid {
		row.Job.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		row.Job.UpdatedAt = updatedAt.Time
	}
	return row, nil
}

const listChecksByJobID = `
SELECT
    id,
    job_id,
    section,
    data,
    issue_description,
    vhc_id,
    approval_status,
    display_status,
    labour_hours,
    parts_cost,
    created_at,
    updated_at
FROM vhc_checks
WHERE job_id = $1
ORDER BY created_at, id
`

// ListChecksByJobID retrieves all VHC check records for a job: the
// checksheet record plus the per-item approval rows.
func (q *Queries) ListChecksByJobID(ctx context.Context, jobID uuid.UUID) ([]domain.CheckRecord, error) {
	rows, err := q.db.QueryContext(ctx, listChecksByJobID, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checks []domain.CheckRecord
	for rows.Next() {
		var (
			rec              domain.CheckRecord
			data             sql.NullString
			issueDescription sql.NullString
			vhcID            sql.NullString
			approvalStatus   sql.NullString
			displayStatus    sql.NullString
			labourHours      sql.NullFloat64
			partsCost        sql.NullFloat64
			createdAt        sql.NullTime
			updatedAt        sql.NullTime
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.JobID,
			&rec.Section,
			&data,
			&issueDescription,
			&vhcID,
			&approvalStatus,
			&displayStatus,
			&labourHours,
			&partsCost,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, err
		}
		if data.Valid {
			rec.Data = data.String
		}
		if issueDescription.Valid {
			rec.IssueDescription = issueDescription.String
		}
		rec.VhcID = vhcID.String
		rec.ApprovalStatus = domain.ApprovalStatus(approvalStatus.String)
		rec.DisplayStatus = displayStatus.String
		rec.LabourHours = labourHours.Float64
		rec.PartsCost = partsCost.Float64
		if createdAt.Valid {
			rec.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			rec.UpdatedAt = updatedAt.Time
		}
		checks = append(checks, rec)
	}
	return checks, rows.Err()
}

const listPartsByJobID = `
SELECT
    i.id,
    i.job_id,
    i.vhc_item_id,
    i.quantity_requested,
    i.unit_price,
    i.labour_hours,
    p.unit_price AS catalog_unit_price,
    i.created_at
FROM parts_job_items i
LEFT JOIN parts_catalog p ON p.id = i.part_id
WHERE i.job_id = $1
ORDER BY i.created_at, i.id
`

// ListPartsByJobID retrieves the ordered-parts line items for a job, with
// the catalog unit price joined in as the pricing fallback.
func (q *Queries) ListPartsByJobID(ctx context.Context, jobID uuid.UUID) ([]domain.PartsLineItem, error) {
	rows, err := q.db.QueryContext(ctx, listPartsByJobID, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.PartsLineItem
	for rows.Next() {
		var (
			item         domain.PartsLineItem
			vhcItemID    sql.NullString
			quantity     sql.NullFloat64
			unitPrice    sql.NullFloat64
			labourHours  sql.NullFloat64
			catalogPrice sql.NullFloat64
			createdAt    sql.NullTime
		)
		if err := rows.Scan(
			&item.ID,
			&item.JobID,
			&vhcItemID,
			&quantity,
			&unitPrice,
			&labourHours,
			&catalogPrice,
			&createdAt,
		); err != nil {
			return nil, err
		}
		item.VhcItemID = vhcItemID.String
		item.QuantityRequested = quantity.Float64
		if unitPrice.Valid {
			price := unitPrice.Float64
			item.UnitPrice = &price
		}
		item.LabourHours = labourHours.Float64
		if catalogPrice.Valid {
			price := catalogPrice.Float64
			item.PartsCatalog = &domain.PartRef{UnitPrice: &price}
		}
		if createdAt.Valid {
			item.CreatedAt = createdAt.Time
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
