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

// CreateTaskParams is the write payload for a new task.
type CreateTaskParams struct {
	ClientID      *string    `json:"client_id"`
	ApplicationID *string    `json:"application_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	DueDate       time.Time  `json:"due_date"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
}

// UpdateTaskParams carries a partial update; nil fields are left untouched.
type UpdateTaskParams struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
}

// TaskService defines the use cases for managing broker tasks. It owns the
// completed_at invariant: the timestamp is set exactly when a task enters the
// completed status and cleared when it leaves it.
type TaskService interface {
	Create(ctx context.Context, principal string, p CreateTaskParams) (*model.Task, error)
	Get(ctx context.Context, principal, id string) (*model.Task, error)
	List(ctx context.Context, principal string, lq repository.ListQuery) (*ListResult[model.Task], error)
	Update(ctx context.Context, principal, id string, p UpdateTaskParams) (*model.Task, error)
	Delete(ctx context.Context, principal, id string) error
}

type taskService struct {
	repo     repository.TaskRepository
	clients  repository.ClientRepository
	apps     repository.ApplicationRepository
	scoper   *scope.Scoper
	notifier notify.Notifier
}

// NewTaskService constructs a new TaskService.
func NewTaskService(repo repository.TaskRepository, clients repository.ClientRepository, apps repository.ApplicationRepository, scoper *scope.Scoper, notifier notify.Notifier) TaskService {
	return &taskService{repo: repo, clients: clients, apps: apps, scoper: scoper, notifier: notifier}
}

func (s *taskService) Create(ctx context.Context, principal string, p CreateTaskParams) (*model.Task, error) {
	if principal == scope.Anonymous {
		return nil, apperr.Forbidden("task")
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, apperr.Validation("title", "is required")
	}
	if p.DueDate.IsZero() {
		return nil, apperr.Validation("due_date", "is required")
	}
	priority := model.TaskMedium
	if p.Priority != "" {
		priority = model.TaskPriority(p.Priority)
		if !priority.Valid() {
			return nil, apperr.Validation("priority", "must be one of low, medium, high")
		}
	}
	status := model.TaskPending
	if p.Status != "" {
		status = model.TaskStatus(p.Status)
		if !status.Valid() {
			return nil, apperr.Validation("status", "must be one of pending, in_progress, completed")
		}
	}
	clientID, appID, err := s.resolveLinks(ctx, principal, p.ClientID, p.ApplicationID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &model.Task{
		ID:            uuid.New().String(),
		BrokerID:      principal,
		ClientID:      clientID,
		ApplicationID: appID,
		Title:         p.Title,
		Description:   p.Description,
		DueDate:       p.DueDate,
		Priority:      priority,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if status == model.TaskCompleted {
		t.CompletedAt = &now
	}
	stored, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, stored.BrokerID, notify.Event{
		Entity: "task",
		ID:     stored.ID,
		Action: notify.ActionCreated,
		Title:  stored.Title,
	})
	return stored, nil
}

func (s *taskService) Get(ctx context.Context, principal, id string) (*model.Task, error) {
	if id == "" {
		return nil, apperr.Validation("id", "is required")
	}
	sc, err := s.scoper.For(principal, scope.KindTask)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, sc, id)
}

func (s *taskService) List(ctx context.Context, principal string, lq repository.ListQuery) (*ListResult[model.Task], error) {
	sc, err := s.scoper.For(principal, scope.KindTask)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.List(ctx, sc, lq)
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Task]{Items: res.Items, Total: res.Total}, nil
}

func (s *taskService) Update(ctx context.Context, principal, id string, p UpdateTaskParams) (*model.Task, error) {
	sc, err := s.scoper.For(principal, scope.KindTask)
	if err != nil {
		return nil, err
	}
	t, err := s.repo.FindByID(ctx, sc, id)
	if err != nil {
		return nil, err
	}

	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return nil, apperr.Validation("title", "must not be empty")
		}
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		if p.DueDate.IsZero() {
			return nil, apperr.Validation("due_date", "must not be empty")
		}
		t.DueDate = *p.DueDate
	}
	if p.Priority != nil {
		priority := model.TaskPriority(*p.Priority)
		if !priority.Valid() {
			return nil, apperr.Validation("priority", "must be one of low, medium, high")
		}
		t.Priority = priority
	}
	now := time.Now().UTC()
	if p.Status != nil {
		status := model.TaskStatus(*p.Status)
		if !status.Valid() {
			return nil, apperr.Validation("status", "must be one of pending, in_progress, completed")
		}
		switch {
		case status == model.TaskCompleted && t.Status != model.TaskCompleted:
			t.CompletedAt = &now
		case status != model.TaskCompleted:
			t.CompletedAt = nil
		}
		t.Status = status
	}
	t.UpdatedAt = now

	stored, err := s.repo.Update(ctx, t)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, stored.BrokerID, notify.Event{
		Entity: "task",
		ID:     stored.ID,
		Action: notify.ActionUpdated,
		Title:  stored.Title,
	})
	return stored, nil
}

func (s *taskService) Delete(ctx context.Context, principal, id string) error {
	sc, err := s.scoper.For(principal, scope.KindTask)
	if err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, sc, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// resolveLinks validates the optional client and application references,
// enforcing that both are visible to the principal and consistent with each
// other.
func (s *taskService) resolveLinks(ctx context.Context, principal string, clientID, appID *string) (*string, *string, error) {
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
