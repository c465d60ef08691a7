package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mortgauge/internal/apperr"
	"mortgauge/internal/model"
	"mortgauge/internal/notify"
	"mortgauge/internal/repository"
	"mortgauge/internal/scope"
)

// CreateApplicationParams is the write payload for a new loan application.
type CreateApplicationParams struct {
	ClientID          string          `json:"client_id"`
	LoanAmount        decimal.Decimal `json:"loan_amount"`
	PropertyValue     decimal.Decimal `json:"property_value"`
	PropertyAddress   string          `json:"property_address"`
	LoanType          string          `json:"loan_type"`
	Status            string          `json:"status"`
	Progress          *int            `json:"progress"`
	SubmittedDate     *time.Time      `json:"submitted_date"`
	ExpectedCloseDate *time.Time      `json:"expected_close_date"`
	Notes             string          `json:"notes"`
}

// UpdateApplicationParams carries a partial update; nil fields are left
// untouched.
type UpdateApplicationParams struct {
	LoanAmount        *decimal.Decimal `json:"loan_amount"`
	PropertyValue     *decimal.Decimal `json:"property_value"`
	PropertyAddress   *string          `json:"property_address"`
	LoanType          *string          `json:"loan_type"`
	Status            *string          `json:"status"`
	Progress          *int             `json:"progress"`
	SubmittedDate     *time.Time       `json:"submitted_date"`
	ExpectedCloseDate *time.Time       `json:"expected_close_date"`
	Notes             *string          `json:"notes"`
}

// ApplicationService defines the use cases for managing loan applications.
type ApplicationService interface {
	Create(ctx context.Context, principal string, p CreateApplicationParams) (*model.Application, error)
	Get(ctx context.Context, principal, id string) (*model.Application, error)
	List(ctx context.Context, principal string, lq repository.ListQuery) (*ListResult[model.Application], error)
	Update(ctx context.Context, principal, id string, p UpdateApplicationParams) (*model.Application, error)
	// UpdateStatus transitions the application status, stamping submitted_date
	// on the first transition into submitted.
	UpdateStatus(ctx context.Context, principal, id, status string, progress *int) (*model.Application, error)
	Delete(ctx context.Context, principal, id string) error
}

type applicationService struct {
	repo     repository.ApplicationRepository
	clients  repository.ClientRepository
	scoper   *scope.Scoper
	notifier notify.Notifier
}

// NewApplicationService constructs a new ApplicationService.
func NewApplicationService(repo repository.ApplicationRepository, clients repository.ClientRepository, scoper *scope.Scoper, notifier notify.Notifier) ApplicationService {
	return &applicationService{repo: repo, clients: clients, scoper: scoper, notifier: notifier}
}

func (s *applicationService) Create(ctx context.Context, principal string, p CreateApplicationParams) (*model.Application, error) {
	if p.ClientID == "" {
		return nil, apperr.Validation("client_id", "is required")
	}
	if p.LoanAmount.IsNegative() {
		return nil, apperr.Validation("loan_amount", "must not be negative")
	}
	if p.PropertyValue.IsNegative() {
		return nil, apperr.Validation("property_value", "must not be negative")
	}
	status := model.ApplicationDraft
	if p.Status != "" {
		status = model.ApplicationStatus(p.Status)
		if !status.Valid() {
			return nil, apperr.Validation("status", "unknown application status")
		}
	}
	progress := 0
	if p.Progress != nil {
		if *p.Progress < 0 || *p.Progress > 100 {
			return nil, apperr.Validation("progress", "must be between 0 and 100")
		}
		progress = *p.Progress
	}

	// Ownership of the application follows the client, so the scoped client
	// lookup is also the authorization check.
	clientScope, err := s.scoper.For(principal, scope.KindClient)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.FindByID(ctx, clientScope, p.ClientID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	submitted := p.SubmittedDate
	if submitted == nil && statusIn(status, model.InFlightApplicationStatuses) {
		submitted = &now
	}
	a := &model.Application{
		ID:                uuid.New().String(),
		ClientID:          client.ID,
		BrokerID:          client.BrokerID,
		LoanAmount:        p.LoanAmount,
		PropertyValue:     p.PropertyValue,
		PropertyAddress:   p.PropertyAddress,
		LoanType:          p.LoanType,
		Status:            status,
		Progress:          progress,
		SubmittedDate:     submitted,
		ExpectedCloseDate: p.ExpectedCloseDate,
		Notes:             p.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	stored, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, stored.BrokerID, notify.Event{
		Entity: "application",
		ID:     stored.ID,
		Action: notify.ActionCreated,
		Title:  stored.PropertyAddress,
	})
	return stored, nil
}

func (s *applicationService) Get(ctx context.Context, principal, id string) (*model.Application, error) {
	if id == "" {
		return nil, apperr.Validation("id", "is required")
	}
	sc, err := s.scoper.For(principal, scope.KindApplication)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, sc, id)
}

func (s *applicationService) List(ctx context.Context, principal string, lq repository.ListQuery) (*ListResult[model.Application], error) {
	sc, err := s.scoper.For(principal, scope.KindApplication)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.List(ctx, sc, lq)
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Application]{Items: res.Items, Total: res.Total}, nil
}

func (s *applicationService) Update(ctx context.Context, principal, id string, p UpdateApplicationParams) (*model.Application, error) {
	sc, err := s.scoper.For(principal, scope.KindApplication)
	if err != nil {
		return nil, err
	}
	a, err := s.repo.FindByID(ctx, sc, id)
	if err != nil {
		return nil, err
	}

	if p.LoanAmount != nil {
		if p.LoanAmount.IsNegative() {
			return nil, apperr.Validation("loan_amount", "must not be negative")
		}
		a.LoanAmount = *p.LoanAmount
	}
	if p.PropertyValue != nil {
		if p.PropertyValue.IsNegative() {
			return nil, apperr.Validation("property_value", "must not be negative")
		}
		a.PropertyValue = *p.PropertyValue
	}
	if p.PropertyAddress != nil {
		a.PropertyAddress = *p.PropertyAddress
	}
	if p.LoanType != nil {
		a.LoanType = *p.LoanType
	}
	if p.Status != nil {
		if err := s.applyStatus(a, *p.Status); err != nil {
			return nil, err
		}
	}
	if p.Progress != nil {
		if *p.Progress < 0 || *p.Progress > 100 {
			return nil, apperr.Validation("progress", "must be between 0 and 100")
		}
		a.Progress = *p.Progress
	}
	if p.SubmittedDate != nil {
		a.SubmittedDate = p.SubmittedDate
	}
	if p.ExpectedCloseDate != nil {
		a.ExpectedCloseDate = p.ExpectedCloseDate
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
	a.UpdatedAt = time.Now().UTC()

	stored, err := s.repo.Update(ctx, a)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, stored.BrokerID, notify.Event{
		Entity: "application",
		ID:     stored.ID,
		Action: notify.ActionUpdated,
		Title:  stored.PropertyAddress,
	})
	return stored, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, principal, id, status string, progress *int) (*model.Application, error) {
	return s.Update(ctx, principal, id, UpdateApplicationParams{Status: &status, Progress: progress})
}

func (s *applicationService) Delete(ctx context.Context, principal, id string) error {
	sc, err := s.scoper.For(principal, scope.KindApplication)
	if err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, sc, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *applicationService) applyStatus(a *model.Application, raw string) error {
	status := model.ApplicationStatus(raw)
	if !status.Valid() {
		return apperr.Validation("status", "unknown application status")
	}
	if a.SubmittedDate == nil && statusIn(status, model.InFlightApplicationStatuses) {
		now := time.Now().UTC()
		a.SubmittedDate = &now
	}
	a.Status = status
	return nil
}

func statusIn(s model.ApplicationStatus, set []model.ApplicationStatus) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}
