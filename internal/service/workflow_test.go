package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatewaylabs/gateway-api/internal/domain"
)

// TestProjectLifecycle walks a token through the full workflow: mint with
// partial metadata, request a computation, record its result, then
// complete the metadata and watch the token leave the incomplete index.
func TestProjectLifecycle(t *testing.T) {
	ctx := context.Background()

	tokenRepo := newFakeTokenRepo()
	counterRepo := &fakeCounterRepo{}
	indexRepo := &fakeIndexRepo{}
	emitter := &capturingEmitter{}

	mintSvc, err := NewMintService(tokenRepo, counterRepo, indexRepo, emitter, nil)
	require.NoError(t, err)
	taskSvc, err := NewTaskService(tokenRepo, emitter, testOperator, nil)
	require.NoError(t, err)
	metaSvc, err := NewMetadataService(tokenRepo, indexRepo, emitter, testOperator, nil)
	require.NoError(t, err)

	// Mint with a description but no title; the token must enter the
	// incomplete index under id "0".
	tokenID, err := mintSvc.MintToken(ctx, "alice", "alice", nil, &domain.Extension{
		Description: strPtr("a generative art project"),
		Code:        "fn render() {}",
	})
	require.NoError(t, err)
	assert.Equal(t, "0", tokenID)

	incomplete, err := metaSvc.IncompleteProjects(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, incomplete)

	// Any caller may queue a computation.
	taskID, err := taskSvc.RequestTask(ctx, "bob", tokenID, "render frame 1")
	require.NoError(t, err)
	assert.Equal(t, "0", taskID)

	remaining, err := taskSvc.RemainingTasks(ctx, tokenID)
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, remaining)

	// Only the operator may answer.
	err = taskSvc.RespondTask(ctx, "bob", tokenID, taskID, "frame data")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = taskSvc.RespondTask(ctx, testOperator, tokenID, taskID, "frame data")
	require.NoError(t, err)

	remaining, err = taskSvc.RemainingTasks(ctx, tokenID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// Completing metadata fills only the missing title and clears the
	// index entry.
	err = metaSvc.UpdateMetadata(ctx, testOperator, tokenID, "Renders", "ignored")
	require.NoError(t, err)

	token, err := tokenRepo.GetByID(ctx, tokenID)
	require.NoError(t, err)
	assert.Equal(t, "Renders", *token.Extension.Title)
	assert.Equal(t, "a generative art project", *token.Extension.Description)

	incomplete, err = metaSvc.IncompleteProjects(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, incomplete)

	// A second completion attempt is terminal.
	err = metaSvc.UpdateMetadata(ctx, testOperator, tokenID, "again", "again")
	assert.ErrorIs(t, err, domain.ErrMetadataComplete)

	// The audit trail mirrors the workflow.
	actions := make([]string, 0, len(emitter.events))
	for _, event := range emitter.events {
		actions = append(actions, event.Action)
	}
	assert.Equal(t, []string{"mint", "request", "response", "update"}, actions)
}
