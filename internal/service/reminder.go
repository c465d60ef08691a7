package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"mortgauge/internal/apperr"
	"mortgauge/internal/model"
	"mortgauge/internal/notify"
	"mortgauge/internal/repository"
	"mortgauge/internal/scope"
)

// CreateReminderParams is the write payload for a new reminder.
type CreateReminderParams struct {
	ClientID      *string   `json:"client_id"`
	ApplicationID *string   `json:"application_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	DueDate       time.Time `json:"due_date"`
	ReminderType  string    `json:"reminder_type"`
}

// UpdateReminderParams carries a partial update; nil fields are left untouched.
type UpdateReminderParams struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	DueDate      *time.Time `json:"due_date"`
	ReminderType *string    `json:"reminder_type"`
	IsCompleted  *bool      `json:"is_completed"`
}

// ReminderService defines the use cases for managing broker reminders.
type ReminderService interface {
	Create(ctx context.Context, principal string, p CreateReminderParams) (*model.Reminder, error)
	Get(ctx context.Context, principal, id string) (*model.Reminder, error)
	List(ctx context.Context, principal string, lq repository.ListQuery) (*ListResult[model.Reminder], error)
	Update(ctx context.Context, principal, id string, p UpdateReminderParams) (*model.Reminder, error)
	Delete(ctx context.Context, principal, id string) error
}

type reminderService struct {
	repo     repository.ReminderRepository
	clients  repository.ClientRepository
	apps     repository.ApplicationRepository
	scoper   *scope.Scoper
	notifier notify.Notifier
}

// NewReminderService constructs a new ReminderService.
func NewReminderService(repo repository.ReminderRepository, clients repository.ClientRepository, apps repository.ApplicationRepository, scoper *scope.Scoper, notifier notify.Notifier) ReminderService {
	return &reminderService{repo: repo, clients: clients, apps: apps, scoper: scoper, notifier: notifier}
}

func (s *reminderService) Create(ctx context.Context, principal string, p CreateReminderParams) (*model.Reminder, error) {
	if principal == scope.Anonymous {
		return nil, apperr.Forbidden("reminder")
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, apperr.Validation("title", "is required")
	}
	if p.DueDate.IsZero() {
		return nil, apperr.Validation("due_date", "is required")
	}
	rt := model.ReminderType(p.ReminderType)
	if !rt.Valid() {
		return nil, apperr.Validation("reminder_type", "must be one of call, meeting, document, follow_up")
	}
	clientID, appID, err := s.resolveLinks(ctx, principal, p.ClientID, p.ApplicationID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r := &model.Reminder{
		ID:            uuid.New().String(),
		BrokerID:      principal,
		ClientID:      clientID,
		ApplicationID: appID,
		Title:         p.Title,
		Description:   p.Description,
		DueDate:       p.DueDate,
		ReminderType:  rt,
		IsCompleted:   false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	stored, err := s.repo.Create(ctx, r)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, stored.BrokerID, notify.Event{
		Entity: "reminder",
		ID:     stored.ID,
		Action: notify.ActionCreated,
		Title:  stored.Title,
	})
	return stored, nil
}

func (s *reminderService) Get(ctx context.Context, principal, id string) (*model.Reminder, error) {
	if id == "" {
		return nil, apperr.Validation("id", "is required")
	}
	sc, err := s.scoper.For(principal, scope.KindReminder)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, sc, id)
}

func (s *reminderService) List(ctx context.Context, principal string, lq repository.ListQuery) (*ListResult[model.Reminder], error) {
	sc, err := s.scoper.For(principal, scope.KindReminder)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.List(ctx, sc, lq)
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Reminder]{Items: res.Items, Total: res.Total}, nil
}

func (s *reminderService) Update(ctx context.Context, principal, id string, p UpdateReminderParams) (*model.Reminder, error) {
	sc, err := s.scoper.For(principal, scope.KindReminder)
	if err != nil {
		return nil, err
	}
	r, err := s.repo.FindByID(ctx, sc, id)
	if err != nil {
		return nil, err
	}

	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return nil, apperr.Validation("title", "must not be empty")
		}
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.DueDate != nil {
		if p.DueDate.IsZero() {
			return nil, apperr.Validation("due_date", "must not be empty")
		}
		r.DueDate = *p.DueDate
	}
	if p.ReminderType != nil {
		rt := model.ReminderType(*p.ReminderType)
		if !rt.Valid() {
			return nil, apperr.Validation("reminder_type", "must be one of call, meeting, document, follow_up")
		}
		r.ReminderType = rt
	}
	if p.IsCompleted != nil {
		r.IsCompleted = *p.IsCompleted
	}
	r.UpdatedAt = time.Now().UTC()

	stored, err := s.repo.Update(ctx, r)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, stored.BrokerID, notify.Event{
		Entity: "reminder",
		ID:     stored.ID,
		Action: notify.ActionUpdated,
		Title:  stored.Title,
	})
	return stored, nil
}

func (s *reminderService) Delete(ctx context.Context, principal, id string) error {
	sc, err := s.scoper.For(principal, scope.KindReminder)
	if err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, sc, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *reminderService) resolveLinks(ctx context.Context, principal string, clientID, appID *string) (*string, *string, error) {
	if clientID != nil && *clientID == "" {
		clientID = nil
	}
	if appID != nil && *appID == "" {
		appID = nil
	}
	if clientID != nil {
		clientScope, err := s.scoper.For(principal, scope.KindClient)
		if err != nil {
			return nil, nil, err
		}
		if _, err := s.clients.FindByID(ctx, clientScope, *clientID); err != nil {
			return nil, nil, err
		}
	}
	if appID != nil {
		appScope, err := s.scoper.For(principal, scope.KindApplication)
		if err != nil {
			return nil, nil, err
		}
		app, err := s.apps.FindByID(ctx, appScope, *appID)
		if err != nil {
			return nil, nil, err
		}
		if clientID != nil && app.ClientID != *clientID {
			return nil, nil, apperr.Validation("application_id", "application belongs to a different client")
		}
	}
	return clientID, appID, nil
}
