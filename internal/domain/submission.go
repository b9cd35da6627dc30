package domain

import (
	"fmt"
	"time"
)

// SubmissionStatus is the outcome of one attempt to submit a lead to the
// partner activation portal.
type SubmissionStatus string

const (
	SubmissionStatusPending SubmissionStatus = "pending"
	SubmissionStatusSuccess SubmissionStatus = "success"
	SubmissionStatusFailed  SubmissionStatus = "failed"
	SubmissionStatusRetry   SubmissionStatus = "retry"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusSuccess,
		SubmissionStatusFailed, SubmissionStatusRetry:
		return true
	}
	return false
}

func (s SubmissionStatus) Display() string {
	return capitalize(string(s))
}

// Submission records one attempt by the automation to push a lead to the
// partner portal. The lead reference is informational; it is not enforced as
// a foreign key by the aggregation or export code.
type Submission struct {
	ID           int              `json:"id"`
	LeadID       int              `json:"lead_id"`
	Reference    string           `json:"reference"`
	Status       SubmissionStatus `json:"status"`
	ResponseCode *string          `json:"response_code"`
	RetryCount   int              `json:"retry_count"`
	ErrorMessage *string          `json:"error_message"`
	ResponseBody *string          `json:"response_body"`
	CreatedAt    time.Time        `json:"created_at"`
}

// LeadLabel returns the owning lead's display name, falling back to a
// synthetic label when the lead is unknown or nameless.
func (s *Submission) LeadLabel(leadsByID map[int]*Lead) string {
	if lead, ok := leadsByID[s.LeadID]; ok && lead.CustomerName != nil && *lead.CustomerName != "" {
		return *lead.CustomerName
	}
	return fmt.Sprintf("Lead #%d", s.LeadID)
}
