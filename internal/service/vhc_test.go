package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torquehq/torque/internal/domain"
	"github.com/torquehq/torque/internal/repository"
	"github.com/torquehq/torque/internal/vhc"
)

// stubStore is an in-memory VhcStore for exercising the service layer.
type stubStore struct {
	row      repository.JobRow
	rowErr   error
	checks   []domain.CheckRecord
	checkErr error
	parts    []domain.PartsLineItem
	partsErr error
}

func (s *stubStore) GetJobByID(_ context.Context, _ uuid.UUID) (repository.JobRow, error) {
	return s.row, s.rowErr
}

func (s *stubStore) ListChecksByJobID(_ context.Context, _ uuid.UUID) ([]domain.CheckRecord, error) {
	return s.checks, s.checkErr
}

func (s *stubStore) ListPartsByJobID(_ context.Context, _ uuid.UUID) ([]domain.PartsLineItem, error) {
	return s.parts, s.partsErr
}

func newTestService(store *stubStore) VhcService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewVhcService(store, vhc.NewFinancialCalculator(vhc.DefaultLabourRate, logger), logger)
}

const checksheetJSON = `{
	"wheelsTyres": {
		"frontLeft": {
			"treadDepth": {"outer": "2", "middle": "2", "inner": "2"}
		}
	},
	"externalInspection": [
		{
			"heading": "Windscreen",
			"concerns": [{"status": "amber", "text": "Chip in driver's eyeline", "id": "item-1"}]
		}
	]
}`

func TestVhcService_Summary(t *testing.T) {
	store := &stubStore{
		checks: []domain.CheckRecord{
			{Section: domain.CheckSectionChecksheet, Data: checksheetJSON},
		},
	}
	svc := newTestService(store)

	summary, err := svc.Summary(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ItemCount)
	assert.Equal(t, 1, summary.Totals.Red)
	assert.Equal(t, 1, summary.Totals.Amber)
	require.Len(t, summary.Sections, 2)
	assert.Equal(t, "Wheels & tyres", summary.Sections[0].Title)
}

func TestVhcService_Summary_NoChecksheet(t *testing.T) {
	svc := newTestService(&stubStore{})

	summary, err := svc.Summary(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, vhc.Summary{}, summary)
}

func TestVhcService_Summary_JobNotFound(t *testing.T) {
	svc := newTestService(&stubStore{rowErr: sql.ErrNoRows})

	_, err := svc.Summary(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestVhcService_Summary_StoreFailure(t *testing.T) {
	svc := newTestService(&stubStore{checkErr: errors.New("connection reset")})

	_, err := svc.Summary(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(err))
}

func TestVhcService_FinancialTotals(t *testing.T) {
	price := 40.0
	store := &stubStore{
		checks: []domain.CheckRecord{
			{Section: domain.CheckSectionChecksheet, Data: checksheetJSON},
			{VhcID: "item-1", ApprovalStatus: domain.ApprovalAuthorized, LabourHours: 1},
		},
		parts: []domain.PartsLineItem{
			{VhcItemID: "item-1", QuantityRequested: 1, UnitPrice: &price},
		},
	}
	svc := newTestService(store)

	totals, err := svc.FinancialTotals(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, vhc.FinancialTotals{Authorized: 190}, totals)
}

func TestVhcService_FinancialTotals_NoChecksheet(t *testing.T) {
	svc := newTestService(&stubStore{})

	totals, err := svc.FinancialTotals(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, vhc.FinancialTotals{}, totals)
}

func TestVhcService_FinancialTotals_PartsFailure(t *testing.T) {
	svc := newTestService(&stubStore{partsErr: errors.New("connection reset")})

	_, err := svc.FinancialTotals(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(err))
}

func TestVhcService_DashboardStatus(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		row  repository.JobRow
		want vhc.DashboardStatus
	}{
		{
			name: "completed job",
			row: repository.JobRow{
				Job: domain.Job{VhcCompletedAt: &now},
			},
			want: vhc.DashboardCompleted,
		},
		{
			name: "workflow keyword",
			row: repository.JobRow{
				Job:            domain.Job{VhcChecksCount: 3},
				WorkflowStatus: "vhc_awaiting_approval",
			},
			want: vhc.DashboardAwaitingApproval,
		},
		{
			name: "checks imply in progress",
			row: repository.JobRow{
				Job: domain.Job{VhcChecksCount: 2},
			},
			want: vhc.DashboardInProgress,
		},
		{
			name: "nothing to go on",
			row:  repository.JobRow{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&stubStore{row: tt.row})

			status, err := svc.DashboardStatus(context.Background(), uuid.New())
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestVhcService_DashboardStatus_JobNotFound(t *testing.T) {
	svc := newTestService(&stubStore{rowErr: sql.ErrNoRows})

	_, err := svc.DashboardStatus(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}
