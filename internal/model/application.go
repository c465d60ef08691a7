package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplicationStatus is the lifecycle status of a loan application.
type ApplicationStatus string

const (
	ApplicationDraft       ApplicationStatus = "draft"
	ApplicationSubmitted   ApplicationStatus = "submitted"
	ApplicationUnderReview ApplicationStatus = "under_review"
	ApplicationApproved    ApplicationStatus = "approved"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationCompleted   ApplicationStatus = "completed"
)

// Valid reports whether s belongs to the declared status set.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationDraft, ApplicationSubmitted, ApplicationUnderReview,
		ApplicationApproved, ApplicationRejected, ApplicationCompleted:
		return true
	}
	return false
}

// InFlightApplicationStatuses is the status subset counted as "active" on the
// dashboard. Both validation and aggregation reference this single constant
// set; it is never restated inline.
var InFlightApplicationStatuses = []ApplicationStatus{
	ApplicationSubmitted,
	ApplicationUnderReview,
}

// Application is a loan application belonging to exactly one client and owned
// by that client's broker.
type Application struct {
	ID                string            `json:"id"`
	ClientID          string            `json:"client_id"`
	BrokerID          string            `json:"broker_id"`
	LoanAmount        decimal.Decimal   `json:"loan_amount"`
	PropertyValue     decimal.Decimal   `json:"property_value"`
	PropertyAddress   string            `json:"property_address"`
	LoanType          string            `json:"loan_type,omitempty"`
	Status            ApplicationStatus `json:"status"`
	Progress          int               `json:"progress"`
	SubmittedDate     *time.Time        `json:"submitted_date,omitempty"`
	ExpectedCloseDate *time.Time        `json:"expected_close_date,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}
