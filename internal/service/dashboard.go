package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mortgauge/internal/apperr"
	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/scope"
)

// DefaultActivityLimit bounds each list in the activity feed.
const DefaultActivityLimit = 5

// DashboardSummary is the counter block shown on the broker's home screen.
// Degraded is set when the store could not be reached and the counts are
// zero-filled placeholders rather than real values.
type DashboardSummary struct {
	TotalClients       int  `json:"total_clients"`
	ActiveApplications int  `json:"active_applications"`
	PendingTasks       int  `json:"pending_tasks"`
	UpcomingReminders  int  `json:"upcoming_reminders"`
	Degraded           bool `json:"degraded,omitempty"`
}

// DashboardActivity is the recent-activity feed.
type DashboardActivity struct {
	RecentApplications []model.Application `json:"recent_applications"`
	RecentTasks        []model.Task        `json:"recent_tasks"`
}

// DashboardService aggregates scoped data for the dashboard endpoints.
type DashboardService interface {
	// Summary returns the four dashboard counters. A transient store failure
	// degrades to zero counts instead of failing the whole dashboard.
	Summary(ctx context.Context, principal string) (*DashboardSummary, error)
	Activity(ctx context.Context, principal string, limit int) (*DashboardActivity, error)
	UpcomingReminders(ctx context.Context, principal string) ([]model.Reminder, error)
	OpenTasks(ctx context.Context, principal string) ([]model.Task, error)
}

type dashboardService struct {
	repo   repository.DashboardRepository
	scoper *scope.Scoper
	log    *zap.Logger
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(repo repository.DashboardRepository, scoper *scope.Scoper, log *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, scoper: scoper, log: log}
}

func (s *dashboardService) Summary(ctx context.Context, principal string) (*DashboardSummary, error) {
	sc, err := s.scoper.For(principal, scope.KindClient)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.Summary(ctx, sc)
	if err != nil {
		if apperr.IsTransient(err) {
			s.log.Warn("dashboard summary degraded", zap.Error(err))
			return &DashboardSummary{Degraded: true}, nil
		}
		return nil, err
	}
	return &DashboardSummary{
		TotalClients:       counts.TotalClients,
		ActiveApplications: counts.ActiveApplications,
		PendingTasks:       counts.PendingTasks,
		UpcomingReminders:  counts.UpcomingReminders,
	}, nil
}

func (s *dashboardService) Activity(ctx context.Context, principal string, limit int) (*DashboardActivity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	sc, err := s.scoper.For(principal, scope.KindClient)
	if err != nil {
		return nil, err
	}
	apps, err := s.repo.RecentApplications(ctx, sc, limit)
	if err != nil {
		return nil, err
	}
	tasks, err := s.repo.RecentTasks(ctx, sc, limit)
	if err != nil {
		return nil, err
	}
	return &DashboardActivity{RecentApplications: apps, RecentTasks: tasks}, nil
}

func (s *dashboardService) UpcomingReminders(ctx context.Context, principal string) ([]model.Reminder, error) {
	sc, err := s.scoper.For(principal, scope.KindReminder)
	if err != nil {
		return nil, err
	}
	return s.repo.UpcomingReminders(ctx, sc, time.Now().UTC())
}

func (s *dashboardService) OpenTasks(ctx context.Context, principal string) ([]model.Task, error) {
	sc, err := s.scoper.For(principal, scope.KindTask)
	if err != nil {
		return nil, err
	}
	return s.repo.OpenTasks(ctx, sc)
}
