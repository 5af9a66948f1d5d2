// This file implements the dashboard status resolver: a precedence-ordered
// classifier that maps job and workflow metadata onto one of eight
// canonical VHC workflow states.
package vhc

import (
	"strings"

	"github.com/torquehq/torque/internal/domain"
)

// DashboardStatus is one of the eight canonical VHC workflow states shown
// on the job dashboard. The zero value means no determination is possible.
type DashboardStatus string

const (
	DashboardCompleted        DashboardStatus = "Completed"
	DashboardDeclined         DashboardStatus = "Declined"
	DashboardApproved         DashboardStatus = "Approved"
	DashboardWaitingForParts  DashboardStatus = "Waiting for parts"
	DashboardSentToCustomer   DashboardStatus = "Sent to customer"
	DashboardAwaitingApproval DashboardStatus = "Awaiting approval"
	DashboardInProgress       DashboardStatus = "In progress"
	DashboardNotStarted       DashboardStatus = "VHC not started"
)

// String returns the string representation of the status.
func (s DashboardStatus) String() string {
	return string(s)
}

// dashboardKeywords maps free-form status strings onto dashboard states by
// case-insensitive substring match. Sets are checked in declaration order;
// the first matching set wins.
var dashboardKeywords = []struct {
	status   DashboardStatus
	keywords []string
}{
	{DashboardCompleted, []string{"completed", "complete"}},
	{DashboardDeclined, []string{"declined"}},
	{DashboardApproved, []string{"approved", "authorised", "authorized"}},
	{DashboardWaitingForParts, []string{"parts"}},
	{DashboardSentToCustomer, []string{"sent"}},
	{DashboardAwaitingApproval, []string{"awaiting", "approval"}},
	{DashboardInProgress, []string{"progress"}},
}

// statusFromKeywords classifies a free-form status string, returning the
// zero status when no keyword set matches.
func statusFromKeywords(raw string) DashboardStatus {
	s := strings.ToLower(raw)
	if s == "" {
		return ""
	}
	for _, set := range dashboardKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(s, kw) {
				return set.status
			}
		}
	}
	return ""
}

// DeriveDashboardStatus classifies where a job's VHC stands. It is a pure
// function of its inputs and is re-evaluated on every call, never cached.
//
// Precedence is strict and first-match-wins: an explicit completion
// timestamp beats every keyword match, the workflow status beats the
// recorded decision counts, and the decision counts beat the job status.
func DeriveDashboardStatus(job domain.Job, workflow domain.Workflow, hasChecks bool) DashboardStatus {
	if job.VhcCompletedAt != nil {
		return DashboardCompleted
	}
	if st := statusFromKeywords(workflow.Status); st != "" {
		return st
	}
	if job.DeclinationCount > 0 {
		return DashboardDeclined
	}
	if job.AuthorizationCount > 0 {
		return DashboardApproved
	}
	if st := statusFromKeywords(job.Status); st != "" {
		return st
	}
	if job.VhcSentAt != nil {
		return DashboardAwaitingApproval
	}
	if job.VhcChecksCount > 0 || workflow.ChecksCount > 0 || hasChecks {
		return DashboardInProgress
	}
	if job.VhcRequired {
		return DashboardNotStarted
	}
	return ""
}
