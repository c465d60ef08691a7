package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mortgauge/internal/apperr"
	"mortgauge/internal/config"
	"mortgauge/internal/http/middleware"
	"mortgauge/internal/model"
	"mortgauge/internal/repository"
	"mortgauge/internal/service"
	serviceMocks "mortgauge/internal/service/mocks"
)

var testHTTPConfig = config.HTTPConfig{DefaultPageSize: 20, MaxPageSize: 100}

func newTestApp(h Handlers) *fiber.App {
	h.HTTP = testHTTPConfig
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})
	app.Use(middleware.RequestID())
	app.Use(middleware.Principal())
	RegisterRoutes(app, h)
	return app
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := newTestApp(Handlers{DB: db})

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})

	t.Run("liveness probe", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestListClients(t *testing.T) {
	t.Run("passes principal and parsed query to the service", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockClientService)
		app := newTestApp(Handlers{Clients: mockSvc})

		expected := &service.ListResult[model.Client]{
			Items: []model.Client{{ID: uuid.New().String(), Name: "Jane"}},
			Total: 1,
		}
		mockSvc.On("List", mock.Anything, "broker-1", repository.ListQuery{
			Filters: map[string]string{"status": "active"},
			Limit:   20,
		}).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/clients?status=active", nil)
		req.Header.Set(middleware.PrincipalHeader, "broker-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.ListResult[model.Client]
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown query parameter is rejected", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockClientService)
		app := newTestApp(Handlers{Clients: mockSvc})

		req := httptest.NewRequest(http.MethodGet, "/api/clients?owner=me", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		mockSvc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("limit is capped at the configured maximum", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockClientService)
		app := newTestApp(Handlers{Clients: mockSvc})

		mockSvc.On("List", mock.Anything, "", repository.ListQuery{
			Filters: map[string]string{},
			Limit:   100,
		}).Return(&service.ListResult[model.Client]{Items: []model.Client{}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/clients?limit=5000", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("search endpoint maps q to the search term", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockClientService)
		app := newTestApp(Handlers{Clients: mockSvc})

		mockSvc.On("List", mock.Anything, "broker-1", repository.ListQuery{
			Filters: map[string]string{},
			Search:  "jane",
			Limit:   20,
		}).Return(&service.ListResult[model.Client]{Items: []model.Client{}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/clients/search?q=jane", nil)
		req.Header.Set(middleware.PrincipalHeader, "broker-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetClient(t *testing.T) {
	t.Run("foreign row reads as not found", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockClientService)
		app := newTestApp(Handlers{Clients: mockSvc})

		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, "broker-1", id).
			Return(nil, apperr.Forbidden("client")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/clients/"+id, nil)
		req.Header.Set(middleware.PrincipalHeader, "broker-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "NOT_FOUND", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockClientService)
		app := newTestApp(Handlers{Clients: mockSvc})

		req := httptest.NewRequest(http.MethodGet, "/api/clients/not-a-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_ID", body.Error.Code)
	})
}

func TestCreateClient(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockClientService)
		app := newTestApp(Handlers{Clients: mockSvc})

		created := &model.Client{ID: uuid.New().String(), Name: "Jane"}
		mockSvc.On("Create", mock.Anything, "broker-1", service.CreateClientParams{
			Name:  "Jane",
			Email: "jane@example.com",
		}).Return(created, nil).Once()

		payload, _ := json.Marshal(map[string]string{"name": "Jane", "email": "jane@example.com"})
		req := httptest.NewRequest(http.MethodPost, "/api/clients", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.PrincipalHeader, "broker-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("validation error surfaces as 400", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockClientService)
		app := newTestApp(Handlers{Clients: mockSvc})

		mockSvc.On("Create", mock.Anything, "broker-1", mock.Anything).
			Return(nil, apperr.Validation("status", "must be one of active, pending, completed, inactive")).Once()

		payload, _ := json.Marshal(map[string]string{"name": "Jane", "email": "j@e.com", "status": "archived"})
		req := httptest.NewRequest(http.MethodPost, "/api/clients", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.PrincipalHeader, "broker-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		assert.Contains(t, body.Error.Message, "status")
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteClient(t *testing.T) {
	t.Run("foreign row deletes as forbidden", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockClientService)
		app := newTestApp(Handlers{Clients: mockSvc})

		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, "broker-1", id).
			Return(apperr.Forbidden("client")).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/clients/"+id, nil)
		req.Header.Set(middleware.PrincipalHeader, "broker-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "FORBIDDEN", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no content on success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockClientService)
		app := newTestApp(Handlers{Clients: mockSvc})

		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, "", id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/clients/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestTaskOrderingParam(t *testing.T) {
	mockSvc := new(serviceMocks.MockTaskService)
	app := newTestApp(Handlers{Tasks: mockSvc})

	mockSvc.On("List", mock.Anything, "broker-1", repository.ListQuery{
		Filters: map[string]string{},
		Sort: []repository.SortKey{
			{Field: "due_date", Desc: true},
			{Field: "created_at"},
		},
		Limit: 20,
	}).Return(&service.ListResult[model.Task]{Items: []model.Task{}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/tasks?ordering=-due_date,created_at", nil)
	req.Header.Set(middleware.PrincipalHeader, "broker-1")
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestUpdateApplicationStatus(t *testing.T) {
	t.Run("patches the status", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := newTestApp(Handlers{Applications: mockSvc})

		id := uuid.New().String()
		updated := &model.Application{ID: id, Status: model.ApplicationSubmitted}
		mockSvc.On("UpdateStatus", mock.Anything, "broker-1", id, "submitted", (*int)(nil)).
			Return(updated, nil).Once()

		payload, _ := json.Marshal(map[string]string{"status": "submitted"})
		req := httptest.NewRequest(http.MethodPatch, "/api/applications/"+id+"/status", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.PrincipalHeader, "broker-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.Application
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, model.ApplicationSubmitted, result.Status)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown status surfaces as 400", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := newTestApp(Handlers{Applications: mockSvc})

		id := uuid.New().String()
		mockSvc.On("UpdateStatus", mock.Anything, "broker-1", id, "escalated", (*int)(nil)).
			Return(nil, apperr.Validation("status", "unknown application status")).Once()

		payload, _ := json.Marshal(map[string]string{"status": "escalated"})
		req := httptest.NewRequest(http.MethodPatch, "/api/applications/"+id+"/status", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.PrincipalHeader, "broker-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestUploadDocument(t *testing.T) {
	t.Run("multipart upload with metadata", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockDocumentService)
		app := newTestApp(Handlers{Documents: mockSvc})

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		writer.WriteField("client_id", "client-1")
		writer.WriteField("title", "Payslip")
		writer.WriteField("document_type", "income")
		part, _ := writer.CreateFormFile("file", "payslip.pdf")
		part.Write([]byte("hello world"))
		writer.Close()

		expectedDoc := &model.Document{ID: uuid.New().String(), Title: "Payslip"}
		mockSvc.On("Upload", mock.Anything, "broker-1", mock.Anything, mock.MatchedBy(func(p service.UploadDocumentParams) bool {
			return p.ClientID == "client-1" &&
				p.Title == "Payslip" &&
				p.DocumentType == "income" &&
				p.Filename == "payslip.pdf"
		})).Return(expectedDoc, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set(middleware.PrincipalHeader, "broker-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockDocumentService)
		app := newTestApp(Handlers{Documents: mockSvc})

		req := httptest.NewRequest(http.MethodPost, "/api/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})
}

func TestDownloadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := newTestApp(Handlers{Documents: mockSvc})

	id := uuid.New().String()
	mockSvc.On("DownloadURL", mock.Anything, "broker-1", id).
		Return("https://minio.local/presigned", nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/documents/"+id+"/download", nil)
	req.Header.Set(middleware.PrincipalHeader, "broker-1")
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://minio.local/presigned", resp.Header.Get("Location"))
	mockSvc.AssertExpectations(t)
}

func TestDashboardSummary(t *testing.T) {
	mockSvc := new(serviceMocks.MockDashboardService)
	app := newTestApp(Handlers{Dashboard: mockSvc})

	mockSvc.On("Summary", mock.Anything, "broker-1").
		Return(&service.DashboardSummary{
			TotalClients:       3,
			ActiveApplications: 1,
			PendingTasks:       2,
		}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/summary", nil)
	req.Header.Set(middleware.PrincipalHeader, "broker-1")
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body service.DashboardSummary
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, 3, body.TotalClients)
	assert.False(t, body.Degraded)
	mockSvc.AssertExpectations(t)
}

func TestRouting(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	app := newTestApp(Handlers{DB: db})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})
}
