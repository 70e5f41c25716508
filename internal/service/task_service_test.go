package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatewaylabs/gateway-api/internal/domain"
	"github.com/gatewaylabs/gateway-api/internal/events"
	"github.com/gatewaylabs/gateway-api/internal/store"
)

const testOperator = "operator"

func newTaskFixture() (*fakeTokenRepo, *capturingEmitter, TaskService) {
	tokenRepo := newFakeTokenRepo()
	emitter := &capturingEmitter{}
	svc, err := NewTaskService(tokenRepo, emitter, testOperator, nil)
	if err != nil {
		panic(err)
	}
	return tokenRepo, emitter, svc
}

// seedToken inserts a token directly into the fake repository.
func seedToken(t *testing.T, repo *fakeTokenRepo, id string, ext *domain.Extension) {
	t.Helper()
	token, err := domain.NewToken("alice", nil, nil)
	require.NoError(t, err)
	token.ID = id
	token.Extension = ext
	require.NoError(t, repo.Create(context.Background(), token))
}

func TestNewTaskService(t *testing.T) {
	tokenRepo := newFakeTokenRepo()
	emitter := &capturingEmitter{}

	tests := []struct {
		name        string
		build       func() (TaskService, error)
		expectError bool
	}{
		{
			name: "nil tokenRepo",
			build: func() (TaskService, error) {
				return NewTaskService(nil, emitter, testOperator, nil)
			},
			expectError: true,
		},
		{
			name: "nil emitter",
			build: func() (TaskService, error) {
				return NewTaskService(tokenRepo, nil, testOperator, nil)
			},
			expectError: true,
		},
		{
			name: "empty operator",
			build: func() (TaskService, error) {
				return NewTaskService(tokenRepo, emitter, "", nil)
			},
			expectError: true,
		},
		{
			name: "all dependencies provided",
			build: func() (TaskService, error) {
				return NewTaskService(tokenRepo, emitter, testOperator, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := tt.build()
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestRequestTask(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns positional ids", func(t *testing.T) {
		tokenRepo, emitter, svc := newTaskFixture()
		seedToken(t, tokenRepo, "0", &domain.Extension{})

		for want := 0; want < 3; want++ {
			taskID, err := svc.RequestTask(ctx, "bob", "0", "compute something")
			require.NoError(t, err)
			assert.Equal(t, []string{"0", "1", "2"}[want], taskID)
		}

		token, err := tokenRepo.GetByID(ctx, "0")
		require.NoError(t, err)
		require.Len(t, token.Extension.Tasks, 3)
		assert.Equal(t, "compute something", token.Extension.Tasks[0].Input)
		assert.Nil(t, token.Extension.Tasks[0].Output)

		assert.Equal(t, events.ActionRequest, emitter.lastAction())
		assert.Equal(t, "bob", emitter.events[0].Attributes["requester"])
		assert.Equal(t, "0", emitter.events[0].Attributes["token_id"])
	})

	t.Run("unknown token", func(t *testing.T) {
		_, emitter, svc := newTaskFixture()

		_, err := svc.RequestTask(ctx, "bob", "42", "input")
		assert.ErrorIs(t, err, store.ErrTokenNotFound)
		assert.Empty(t, emitter.events)
	})

	t.Run("token without extension", func(t *testing.T) {
		tokenRepo, emitter, svc := newTaskFixture()
		seedToken(t, tokenRepo, "0", nil)

		_, err := svc.RequestTask(ctx, "bob", "0", "input")
		assert.ErrorIs(t, err, domain.ErrExtensionMissing)
		assert.Empty(t, emitter.events)
	})

	t.Run("open to any caller", func(t *testing.T) {
		tokenRepo, _, svc := newTaskFixture()
		seedToken(t, tokenRepo, "0", &domain.Extension{})

		_, err := svc.RequestTask(ctx, "definitely-not-the-operator", "0", "input")
		assert.NoError(t, err)
	})
}

func TestRespondTask(t *testing.T) {
	ctx := context.Background()

	t.Run("records output once", func(t *testing.T) {
		tokenRepo, emitter, svc := newTaskFixture()
		seedToken(t, tokenRepo, "0", &domain.Extension{
			Tasks: []domain.Task{{TaskID: "0", Input: "question"}},
		})

		err := svc.RespondTask(ctx, testOperator, "0", "0", "answer")
		require.NoError(t, err)

		token, err := tokenRepo.GetByID(ctx, "0")
		require.NoError(t, err)
		require.NotNil(t, token.Extension.Tasks[0].Output)
		assert.Equal(t, "answer", *token.Extension.Tasks[0].Output)

		assert.Equal(t, events.ActionResponse, emitter.lastAction())
		assert.Equal(t, "0", emitter.events[0].Attributes["task_id"])
	})

	t.Run("rejects non-operator", func(t *testing.T) {
		tokenRepo, emitter, svc := newTaskFixture()
		seedToken(t, tokenRepo, "0", &domain.Extension{
			Tasks: []domain.Task{{TaskID: "0", Input: "question"}},
		})

		err := svc.RespondTask(ctx, "mallory", "0", "0", "answer")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)

		// The task must remain untouched.
		token, getErr := tokenRepo.GetByID(ctx, "0")
		require.NoError(t, getErr)
		assert.Nil(t, token.Extension.Tasks[0].Output)
		assert.Empty(t, emitter.events)
	})

	t.Run("rejects refulfillment", func(t *testing.T) {
		tokenRepo, _, svc := newTaskFixture()
		output := "first answer"
		seedToken(t, tokenRepo, "0", &domain.Extension{
			Tasks: []domain.Task{{TaskID: "0", Input: "question", Output: &output}},
		})

		err := svc.RespondTask(ctx, testOperator, "0", "0", "second answer")
		assert.ErrorIs(t, err, domain.ErrTaskFulfilled)

		token, getErr := tokenRepo.GetByID(ctx, "0")
		require.NoError(t, getErr)
		assert.Equal(t, "first answer", *token.Extension.Tasks[0].Output)
	})

	t.Run("unknown task", func(t *testing.T) {
		tokenRepo, _, svc := newTaskFixture()
		seedToken(t, tokenRepo, "0", &domain.Extension{
			Tasks: []domain.Task{{TaskID: "0", Input: "question"}},
		})

		err := svc.RespondTask(ctx, testOperator, "0", "7", "answer")
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("token without extension", func(t *testing.T) {
		tokenRepo, _, svc := newTaskFixture()
		seedToken(t, tokenRepo, "0", nil)

		err := svc.RespondTask(ctx, testOperator, "0", "0", "answer")
		assert.ErrorIs(t, err, domain.ErrExtensionMissing)
	})

	t.Run("extension without tasks", func(t *testing.T) {
		tokenRepo, _, svc := newTaskFixture()
		seedToken(t, tokenRepo, "0", &domain.Extension{})

		err := svc.RespondTask(ctx, testOperator, "0", "0", "answer")
		assert.ErrorIs(t, err, domain.ErrTasksMissing)
	})
}

func TestRemainingTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("pending ids in list order", func(t *testing.T) {
		tokenRepo, _, svc := newTaskFixture()
		done := "done"
		seedToken(t, tokenRepo, "0", &domain.Extension{
			Tasks: []domain.Task{
				{TaskID: "0", Input: "a"},
				{TaskID: "1", Input: "b", Output: &done},
				{TaskID: "2", Input: "c"},
			},
		})

		remaining, err := svc.RemainingTasks(ctx, "0")
		require.NoError(t, err)
		assert.Equal(t, []string{"0", "2"}, remaining)
	})

	t.Run("no extension yields empty list", func(t *testing.T) {
		tokenRepo, _, svc := newTaskFixture()
		seedToken(t, tokenRepo, "0", nil)

		remaining, err := svc.RemainingTasks(ctx, "0")
		require.NoError(t, err)
		assert.NotNil(t, remaining)
		assert.Empty(t, remaining)
	})

	t.Run("no tasks yields empty list", func(t *testing.T) {
		tokenRepo, _, svc := newTaskFixture()
		seedToken(t, tokenRepo, "0", &domain.Extension{})

		remaining, err := svc.RemainingTasks(ctx, "0")
		require.NoError(t, err)
		assert.NotNil(t, remaining)
		assert.Empty(t, remaining)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, _, svc := newTaskFixture()

		_, err := svc.RemainingTasks(ctx, "42")
		assert.ErrorIs(t, err, store.ErrTokenNotFound)
	})
}
