package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torquehq/torque/internal/domain"
	"github.com/torquehq/torque/internal/vhc"
)

// stubVhcService returns canned results for each operation.
type stubVhcService struct {
	summary   vhc.Summary
	totals    vhc.FinancialTotals
	status    vhc.DashboardStatus
	err       error
}

func (s *stubVhcService) Summary(_ context.Context, _ uuid.UUID) (vhc.Summary, error) {
	return s.summary, s.err
}

func (s *stubVhcService) FinancialTotals(_ context.Context, _ uuid.UUID) (vhc.FinancialTotals, error) {
	return s.totals, s.err
}

func (s *stubVhcService) DashboardStatus(_ context.Context, _ uuid.UUID) (vhc.DashboardStatus, error) {
	return s.status, s.err
}

func newTestMux(svc *stubVhcService) *http.ServeMux {
	h := NewVhcHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

func TestGetFinancials(t *testing.T) {
	mux := newTestMux(&stubVhcService{
		totals: vhc.FinancialTotals{Authorized: 380, Declined: 150},
	})

	req := httptest.NewRequest(http.MethodGet, "/jobs/"+uuid.NewString()+"/vhc/financials", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"authorized": 380, "declined": 150}`, rec.Body.String())
}

func TestGetStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   vhc.DashboardStatus
		wantBody string
	}{
		{
			name:     "determined state",
			status:   vhc.DashboardAwaitingApproval,
			wantBody: `{"status": "Awaiting approval"}`,
		},
		{
			name:     "no determination",
			status:   "",
			wantBody: `{"status": null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newTestMux(&stubVhcService{status: tt.status})

			req := httptest.NewRequest(http.MethodGet, "/jobs/"+uuid.NewString()+"/vhc/status", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestGetSummary_InvalidJobID(t *testing.T) {
	mux := newTestMux(&stubVhcService{})

	req := httptest.NewRequest(http.MethodGet, "/jobs/not-a-uuid/vhc/summary", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "error")
}

func TestGetSummary_JobNotFound(t *testing.T) {
	mux := newTestMux(&stubVhcService{
		err: domain.NotFound("vhc.summary", "job", uuid.NewString()),
	})

	req := httptest.NewRequest(http.MethodGet, "/jobs/"+uuid.NewString()+"/vhc/summary", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
