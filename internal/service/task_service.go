package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/gatewaylabs/gateway-api/internal/domain"
	"github.com/gatewaylabs/gateway-api/internal/events"
	"github.com/gatewaylabs/gateway-api/internal/platform/logger"
	"github.com/gatewaylabs/gateway-api/internal/store"
)

// TaskService manages a token's append-only task list: any caller may
// request a computation, only the operator may record its result, and
// anyone may ask which tasks are still pending.
type TaskService interface {
	// RequestTask appends a new pending task for the given input and
	// returns the assigned task id. Open to any caller.
	RequestTask(ctx context.Context, requester, tokenID, input string) (string, error)

	// RespondTask records the output of a pending task. Only the
	// operator principal may call it; outputs are write-once.
	RespondTask(ctx context.Context, caller, tokenID, taskID, output string) error

	// RemainingTasks returns the ids of the token's unfulfilled tasks in
	// list order. A token without an extension or tasks yields an empty
	// list, never an error.
	RemainingTasks(ctx context.Context, tokenID string) ([]string, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tokenRepo TokenRepository
	emitter   events.Emitter
	operator  string
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService. The operator is the single
// principal authorized to fulfill tasks.
// It returns an error if any of the required dependencies are missing.
func NewTaskService(
	tokenRepo TokenRepository,
	emitter events.Emitter,
	operator string,
	logger *slog.Logger,
) (TaskService, error) {
	if tokenRepo == nil {
		return nil, domain.NewValidationError("tokenRepo", "cannot be nil", domain.ErrValidation)
	}
	if emitter == nil {
		return nil, domain.NewValidationError("emitter", "cannot be nil", domain.ErrValidation)
	}
	if operator == "" {
		return nil, domain.NewValidationError("operator", "cannot be empty", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tokenRepo: tokenRepo,
		emitter:   emitter,
		operator:  operator,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// RequestTask implements TaskService.RequestTask
func (s *taskServiceImpl) RequestTask(
	ctx context.Context,
	requester, tokenID, input string,
) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var taskID string
	err := store.RunInTransaction(ctx, s.tokenRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txTokenRepo := s.tokenRepo.WithTx(tx)

		token, err := txTokenRepo.GetByID(ctx, tokenID)
		if err != nil {
			return err
		}

		if token.Extension == nil {
			return domain.ErrExtensionMissing
		}

		taskID = token.Extension.AppendTask(input)

		return txTokenRepo.Save(ctx, token)
	})
	if err != nil {
		log.Warn("task request failed",
			slog.String("error", err.Error()),
			slog.String("token_id", tokenID),
			slog.String("requester", requester))
		return "", err
	}

	log.Info("task requested",
		slog.String("token_id", tokenID),
		slog.String("task_id", taskID),
		slog.String("requester", requester))

	s.emitAudit(ctx, events.ActionRequest, map[string]string{
		"requester": requester,
		"token_id":  tokenID,
		"task_id":   taskID,
	})

	return taskID, nil
}

// RespondTask implements TaskService.RespondTask
func (s *taskServiceImpl) RespondTask(
	ctx context.Context,
	caller, tokenID, taskID, output string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if caller != s.operator {
		log.Warn("task response rejected for non-operator caller",
			slog.String("caller", caller),
			slog.String("token_id", tokenID))
		return domain.ErrUnauthorized
	}

	err := store.RunInTransaction(ctx, s.tokenRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txTokenRepo := s.tokenRepo.WithTx(tx)

		token, err := txTokenRepo.GetByID(ctx, tokenID)
		if err != nil {
			return err
		}

		if token.Extension == nil {
			return domain.ErrExtensionMissing
		}
		if token.Extension.Tasks == nil {
			return domain.ErrTasksMissing
		}

		if err := token.Extension.FulfillTask(taskID, output); err != nil {
			return err
		}

		return txTokenRepo.Save(ctx, token)
	})
	if err != nil {
		log.Warn("task response failed",
			slog.String("error", err.Error()),
			slog.String("token_id", tokenID),
			slog.String("task_id", taskID))
		return err
	}

	log.Info("task fulfilled",
		slog.String("token_id", tokenID),
		slog.String("task_id", taskID))

	s.emitAudit(ctx, events.ActionResponse, map[string]string{
		"token_id": tokenID,
		"task_id":  taskID,
	})

	return nil
}

// RemainingTasks implements TaskService.RemainingTasks
func (s *taskServiceImpl) RemainingTasks(ctx context.Context, tokenID string) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	token, err := s.tokenRepo.GetByID(ctx, tokenID)
	if err != nil {
		log.Debug("remaining-tasks lookup failed",
			slog.String("error", err.Error()),
			slog.String("token_id", tokenID))
		return nil, err
	}

	if token.Extension == nil {
		return []string{}, nil
	}

	return token.Extension.PendingTaskIDs(), nil
}

// emitAudit publishes an audit event after a committed operation.
func (s *taskServiceImpl) emitAudit(ctx context.Context, action string, attrs map[string]string) {
	if err := s.emitter.EmitEvent(ctx, events.NewAuditEvent(action, attrs)); err != nil {
		s.logger.Error("failed to emit audit event",
			slog.String("action", action),
			slog.String("error", err.Error()))
	}
}
