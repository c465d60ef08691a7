package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mortgauge/internal/apperr"
	"mortgauge/internal/model"
	"mortgauge/internal/notify"
	"mortgauge/internal/repository/mocks"
	"mortgauge/internal/scope"
)

func newReminderService(repo *mocks.MockReminderRepository, clients *mocks.MockClientRepository, apps *mocks.MockApplicationRepository, n notify.Notifier) ReminderService {
	return NewReminderService(repo, clients, apps, scope.New(true), n)
}

func TestCreateReminder(t *testing.T) {
	repo := new(mocks.MockReminderRepository)
	clients := new(mocks.MockClientRepository)
	apps := new(mocks.MockApplicationRepository)
	rec := &recordingNotifier{}
	svc := newReminderService(repo, clients, apps, rec)

	due := time.Now().UTC().Add(48 * time.Hour)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Reminder) bool {
		return r.BrokerID == "broker-1" &&
			r.Title == "Chase payslips" &&
			r.ReminderType == model.ReminderDocument &&
			!r.IsCompleted
	})).Return(&model.Reminder{ID: "rem-1", BrokerID: "broker-1", Title: "Chase payslips"}, nil).Once()

	got, err := svc.Create(context.Background(), "broker-1", CreateReminderParams{
		Title:        "Chase payslips",
		DueDate:      due,
		ReminderType: "document",
	})
	require.NoError(t, err)
	assert.Equal(t, "rem-1", got.ID)

	require.Len(t, rec.events, 1)
	assert.Equal(t, "broker-1", rec.brokers[0])
	assert.Equal(t, "reminder", rec.events[0].Entity)
	assert.Equal(t, notify.ActionCreated, rec.events[0].Action)
	repo.AssertExpectations(t)
}

func TestCreateReminderValidation(t *testing.T) {
	due := time.Now().UTC().Add(time.Hour)
	tests := []struct {
		name      string
		principal string
		params    CreateReminderParams
		check     func(error) bool
	}{
		{"anonymous", scope.Anonymous, CreateReminderParams{Title: "x", DueDate: due, ReminderType: "call"}, apperr.IsAuthorization},
		{"missing title", "broker-1", CreateReminderParams{DueDate: due, ReminderType: "call"}, apperr.IsValidation},
		{"missing due date", "broker-1", CreateReminderParams{Title: "x", ReminderType: "call"}, apperr.IsValidation},
		{"unknown type", "broker-1", CreateReminderParams{Title: "x", DueDate: due, ReminderType: "carrier_pigeon"}, apperr.IsValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newReminderService(new(mocks.MockReminderRepository), new(mocks.MockClientRepository), new(mocks.MockApplicationRepository), notify.Noop{})
			_, err := svc.Create(context.Background(), tt.principal, tt.params)
			assert.True(t, tt.check(err), "got %v", err)
		})
	}
}

func TestCreateReminderVerifiesLinkedClient(t *testing.T) {
	repo := new(mocks.MockReminderRepository)
	clients := new(mocks.MockClientRepository)
	svc := newReminderService(repo, clients, new(mocks.MockApplicationRepository), notify.Noop{})

	clients.On("FindByID", mock.Anything, scope.Scope{BrokerID: "broker-1"}, "client-9").
		Return(nil, apperr.Forbidden("client")).Once()

	_, err := svc.Create(context.Background(), "broker-1", CreateReminderParams{
		Title:        "Call client",
		DueDate:      time.Now().UTC().Add(time.Hour),
		ReminderType: "call",
		ClientID:     strPtr("client-9"),
	})
	assert.True(t, apperr.IsAuthorization(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateReminderCompletionToggle(t *testing.T) {
	repo := new(mocks.MockReminderRepository)
	rec := &recordingNotifier{}
	svc := newReminderService(repo, new(mocks.MockClientRepository), new(mocks.MockApplicationRepository), rec)

	existing := &model.Reminder{
		ID:           "rem-1",
		BrokerID:     "broker-1",
		Title:        "Chase payslips",
		ReminderType: model.ReminderDocument,
		DueDate:      time.Now().UTC(),
	}
	repo.On("FindByID", mock.Anything, scope.Scope{BrokerID: "broker-1"}, "rem-1").
		Return(existing, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(r *model.Reminder) bool {
		return r.IsCompleted
	})).Return(existing, nil).Once()

	done := true
	_, err := svc.Update(context.Background(), "broker-1", "rem-1", UpdateReminderParams{IsCompleted: &done})
	require.NoError(t, err)

	require.Len(t, rec.events, 1)
	assert.Equal(t, notify.ActionUpdated, rec.events[0].Action)
	repo.AssertExpectations(t)
}

func TestDeleteReminderChecksOwnershipFirst(t *testing.T) {
	repo := new(mocks.MockReminderRepository)
	svc := newReminderService(repo, new(mocks.MockClientRepository), new(mocks.MockApplicationRepository), notify.Noop{})

	repo.On("FindByID", mock.Anything, scope.Scope{BrokerID: "broker-1"}, "rem-9").
		Return(nil, apperr.Forbidden("reminder")).Once()

	err := svc.Delete(context.Background(), "broker-1", "rem-9")
	assert.True(t, apperr.IsAuthorization(err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
