package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatewaylabs/gateway-api/internal/domain"
	"github.com/gatewaylabs/gateway-api/internal/store"
)

func TestRequestTaskHandler(t *testing.T) {
	tests := []struct {
		name       string
		principal  string
		tokenID    string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "successful request",
			principal:  "bob",
			tokenID:    "0",
			body:       `{"input":"render frame 1"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing principal",
			principal:  "",
			tokenID:    "0",
			body:       `{"input":"x"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non-decimal token id",
			principal:  "bob",
			tokenID:    "abc",
			body:       `{"input":"x"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing input",
			principal:  "bob",
			tokenID:    "0",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "token not found",
			principal:  "bob",
			tokenID:    "42",
			body:       `{"input":"x"}`,
			serviceErr: store.ErrTokenNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "token without extension",
			principal:  "bob",
			tokenID:    "0",
			body:       `{"input":"x"}`,
			serviceErr: domain.ErrExtensionMissing,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubTaskService{taskID: "3", err: tt.serviceErr}
			handler := NewTaskHandler(svc, slog.Default())

			req := newRequest(http.MethodPost, "/api/tokens/"+tt.tokenID+"/tasks",
				tt.principal, tt.body, map[string]string{"id": tt.tokenID})
			rec := httptest.NewRecorder()

			handler.RequestTask(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp RequestTaskResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "3", resp.TaskID)
				assert.Equal(t, tt.principal, svc.gotCaller)
				assert.Equal(t, "render frame 1", svc.gotInput)
			}
		})
	}
}

func TestRespondTaskHandler(t *testing.T) {
	tests := []struct {
		name       string
		principal  string
		taskID     string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "successful response",
			principal:  "operator",
			taskID:     "0",
			body:       `{"output":"frame data"}`,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "non-operator caller",
			principal:  "mallory",
			taskID:     "0",
			body:       `{"output":"x"}`,
			serviceErr: domain.ErrUnauthorized,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "task already fulfilled",
			principal:  "operator",
			taskID:     "0",
			body:       `{"output":"x"}`,
			serviceErr: domain.ErrTaskFulfilled,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "task not found",
			principal:  "operator",
			taskID:     "9",
			body:       `{"output":"x"}`,
			serviceErr: domain.ErrTaskNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "non-decimal task id",
			principal:  "operator",
			taskID:     "first",
			body:       `{"output":"x"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing output",
			principal:  "operator",
			taskID:     "0",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubTaskService{err: tt.serviceErr}
			handler := NewTaskHandler(svc, slog.Default())

			req := newRequest(http.MethodPut, "/api/tokens/0/tasks/"+tt.taskID+"/output",
				tt.principal, tt.body, map[string]string{"id": "0", "taskID": tt.taskID})
			rec := httptest.NewRecorder()

			handler.RespondTask(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, "0", svc.gotToken)
				assert.Equal(t, tt.taskID, svc.gotTask)
				assert.Equal(t, "frame data", svc.gotOutput)
			}
		})
	}
}

func TestRemainingTasksHandler(t *testing.T) {
	t.Run("returns pending ids", func(t *testing.T) {
		svc := &stubTaskService{remaining: []string{"0", "2"}}
		handler := NewTaskHandler(svc, slog.Default())

		req := newRequest(http.MethodGet, "/api/tokens/0/tasks/remaining",
			"", "", map[string]string{"id": "0"})
		rec := httptest.NewRecorder()

		handler.RemainingTasks(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp RemainingTasksResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, []string{"0", "2"}, resp.TaskIDs)
	})

	t.Run("empty list serializes as empty array", func(t *testing.T) {
		svc := &stubTaskService{remaining: []string{}}
		handler := NewTaskHandler(svc, slog.Default())

		req := newRequest(http.MethodGet, "/api/tokens/0/tasks/remaining",
			"", "", map[string]string{"id": "0"})
		rec := httptest.NewRecorder()

		handler.RemainingTasks(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"task_ids":[]}`, rec.Body.String())
	})

	t.Run("token not found", func(t *testing.T) {
		svc := &stubTaskService{err: store.ErrTokenNotFound}
		handler := NewTaskHandler(svc, slog.Default())

		req := newRequest(http.MethodGet, "/api/tokens/42/tasks/remaining",
			"", "", map[string]string{"id": "42"})
		rec := httptest.NewRecorder()

		handler.RemainingTasks(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
