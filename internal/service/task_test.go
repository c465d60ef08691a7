package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mortgauge/internal/apperr"
	"mortgauge/internal/model"
	"mortgauge/internal/notify"
	repoMocks "mortgauge/internal/repository/mocks"
	"mortgauge/internal/scope"
)

// recordingNotifier captures events for assertions in place of Redis.
type recordingNotifier struct {
	mu      sync.Mutex
	brokers []string
	events  []notify.Event
}

func (r *recordingNotifier) Notify(_ context.Context, brokerID string, ev notify.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.brokers = append(r.brokers, brokerID)
	r.events = append(r.events, ev)
}

func (r *recordingNotifier) Close() error { return nil }

func TestTaskService_CreateSetsCompletedAtForCompletedStatus(t *testing.T) {
	ctx := context.Background()
	scoper := scope.New(true)

	mRepo := new(repoMocks.MockTaskRepository)
	notifier := &recordingNotifier{}
	svc := NewTaskService(mRepo, nil, nil, scoper, notifier)

	due := time.Now().UTC().Add(24 * time.Hour)
	mRepo.On("Create", ctx, mock.MatchedBy(func(task *model.Task) bool {
		return task.Status == model.TaskCompleted && task.CompletedAt != nil
	})).Return(&model.Task{ID: "task-1", BrokerID: "broker-1", Title: "Call Jane"}, nil)

	stored, err := svc.Create(ctx, "broker-1", CreateTaskParams{
		Title:   "Call Jane",
		DueDate: due,
		Status:  "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, "task-1", stored.ID)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, "broker-1", notifier.brokers[0])
	assert.Equal(t, "task", notifier.events[0].Entity)
	assert.Equal(t, notify.ActionCreated, notifier.events[0].Action)
	mRepo.AssertExpectations(t)
}

func TestTaskService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	scoper := scope.New(true)
	due := time.Now().UTC()

	tests := []struct {
		name      string
		principal string
		params    CreateTaskParams
		wantAuthz bool
	}{
		{name: "anonymous", principal: "", params: CreateTaskParams{Title: "x", DueDate: due}, wantAuthz: true},
		{name: "missing title", principal: "broker-1", params: CreateTaskParams{DueDate: due}},
		{name: "missing due date", principal: "broker-1", params: CreateTaskParams{Title: "x"}},
		{name: "bad priority", principal: "broker-1", params: CreateTaskParams{Title: "x", DueDate: due, Priority: "urgent"}},
		{name: "bad status", principal: "broker-1", params: CreateTaskParams{Title: "x", DueDate: due, Status: "done"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockTaskRepository)
			svc := NewTaskService(mRepo, nil, nil, scoper, notify.Noop{})

			_, err := svc.Create(ctx, tt.principal, tt.params)
			if tt.wantAuthz {
				assert.True(t, apperr.IsAuthorization(err))
			} else {
				assert.True(t, apperr.IsValidation(err))
			}
			mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestTaskService_UpdateMaintainsCompletedAt(t *testing.T) {
	ctx := context.Background()
	scoper := scope.New(true)
	brokerScope := scope.Scope{BrokerID: "broker-1"}

	t.Run("completing stamps the timestamp", func(t *testing.T) {
		mRepo := new(repoMocks.MockTaskRepository)
		svc := NewTaskService(mRepo, nil, nil, scoper, notify.Noop{})

		existing := &model.Task{ID: "task-1", BrokerID: "broker-1", Status: model.TaskPending}
		mRepo.On("FindByID", ctx, brokerScope, "task-1").Return(existing, nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(task *model.Task) bool {
			return task.Status == model.TaskCompleted && task.CompletedAt != nil
		})).Return(existing, nil)

		status := "completed"
		_, err := svc.Update(ctx, "broker-1", "task-1", UpdateTaskParams{Status: &status})
		assert.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	t.Run("reopening clears the timestamp", func(t *testing.T) {
		mRepo := new(repoMocks.MockTaskRepository)
		svc := NewTaskService(mRepo, nil, nil, scoper, notify.Noop{})

		done := time.Now().UTC()
		existing := &model.Task{
			ID: "task-1", BrokerID: "broker-1",
			Status: model.TaskCompleted, CompletedAt: &done,
		}
		mRepo.On("FindByID", ctx, brokerScope, "task-1").Return(existing, nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(task *model.Task) bool {
			return task.Status == model.TaskInProgress && task.CompletedAt == nil
		})).Return(existing, nil)

		status := "in_progress"
		_, err := svc.Update(ctx, "broker-1", "task-1", UpdateTaskParams{Status: &status})
		assert.NoError(t, err)
		mRepo.AssertExpectations(t)
	})
}

func TestTaskService_CreateVerifiesLinkedClient(t *testing.T) {
	ctx := context.Background()
	scoper := scope.New(true)
	brokerScope := scope.Scope{BrokerID: "broker-1"}

	mRepo := new(repoMocks.MockTaskRepository)
	mClients := new(repoMocks.MockClientRepository)
	svc := NewTaskService(mRepo, mClients, nil, scoper, notify.Noop{})

	mClients.On("FindByID", ctx, brokerScope, "client-9").
		Return(nil, apperr.Forbidden("client"))

	clientID := "client-9"
	_, err := svc.Create(ctx, "broker-1", CreateTaskParams{
		Title:    "Chase docs",
		DueDate:  time.Now().UTC(),
		ClientID: &clientID,
	})
	assert.True(t, apperr.IsAuthorization(err))
	mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
