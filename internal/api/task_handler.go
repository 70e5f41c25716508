package api

import (
	"log/slog"
	"net/http"

	"github.com/gatewaylabs/gateway-api/internal/api/shared"
	"github.com/gatewaylabs/gateway-api/internal/platform/logger"
	"github.com/gatewaylabs/gateway-api/internal/redact"
	"github.com/gatewaylabs/gateway-api/internal/service"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// RequestTask handles POST /tokens/{id}/tasks requests. Queueing a
// computation is open to any authenticated principal.
func (h *TaskHandler) RequestTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, tokenID, ok := handlePrincipalAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	var req RequestTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("token_id", tokenID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("token_id", tokenID))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	taskID, err := h.taskService.RequestTask(r.Context(), principal, tokenID, req.Input)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to request task")
		return
	}

	log.Debug("task requested",
		slog.String("token_id", tokenID),
		slog.String("task_id", taskID),
		slog.String("requester", principal))
	shared.RespondWithJSON(w, r, http.StatusCreated, RequestTaskResponse{TaskID: taskID})
}

// RespondTask handles PUT /tokens/{id}/tasks/{taskID}/output requests.
// Only the operator principal may record a task's output.
func (h *TaskHandler) RespondTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, tokenID, ok := handlePrincipalAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	taskID, err := getPathID(r, "taskID")
	if err != nil {
		log.Warn("invalid task id", slog.String("token_id", tokenID))
		HandleAPIError(w, r, err, "")
		return
	}

	var req RespondTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("token_id", tokenID),
			slog.String("task_id", taskID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("token_id", tokenID),
			slog.String("task_id", taskID))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	if err := h.taskService.RespondTask(r.Context(), principal, tokenID, taskID, req.Output); err != nil {
		HandleAPIError(w, r, err, "Failed to record task output")
		return
	}

	log.Debug("task output recorded",
		slog.String("token_id", tokenID),
		slog.String("task_id", taskID))
	w.WriteHeader(http.StatusNoContent)
}

// RemainingTasks handles GET /tokens/{id}/tasks/remaining requests. The
// query is public; a token with no tasks yields an empty list.
func (h *TaskHandler) RemainingTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	tokenID, err := getPathID(r, "id")
	if err != nil {
		log.Warn("invalid token id")
		HandleAPIError(w, r, err, "")
		return
	}

	taskIDs, err := h.taskService.RemainingTasks(r.Context(), tokenID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to query remaining tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RemainingTasksResponse{TaskIDs: taskIDs})
}
