package domain

import (
	"errors"
	"strconv"
	"time"
)

// Token-specific validation errors
var (
	// ErrTokenOwnerEmpty is returned when a token's owner is empty.
	ErrTokenOwnerEmpty = errors.New("token owner cannot be empty")

	// ErrTokenIDInvalid is returned when a token id is not a decimal string.
	ErrTokenIDInvalid = errors.New("token ID must be a decimal string")

	// ErrMintWithTasks is returned when a mint supplies an extension that
	// already carries tasks. Tasks are only ever appended through requests.
	ErrMintWithTasks = errors.New("minted extension cannot carry tasks")
)

// Token represents a single ledger entry. The id is a decimal string
// assigned sequentially by the ledger counter and never reused. The
// extension record, when present, holds the token's descriptive metadata
// and its append-only task list.
type Token struct {
	ID        string     `json:"id"`
	Owner     string     `json:"owner"`
	TokenURI  *string    `json:"token_uri,omitempty"`
	Extension *Extension `json:"extension,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Extension is the per-token metadata record. Title and description are
// write-once: they transition unset to set at most one time each.
// Destination is part of the stored schema but reserved; no operation
// reads or writes it.
type Extension struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Destination *string `json:"destination,omitempty"`
	Code        string  `json:"code"`
	Tasks       []Task  `json:"tasks,omitempty"`
}

// Task is a single request/response pair in a token's task list. The task
// id equals the task's zero-based position at creation time, rendered as a
// decimal string; it is unique per token only. Output is write-once.
type Task struct {
	TaskID string  `json:"task_id"`
	Input  string  `json:"input"`
	Output *string `json:"output,omitempty"`
}

// Fulfilled reports whether the task's output has been set.
func (t Task) Fulfilled() bool {
	return t.Output != nil
}

// NewToken creates a Token with the given owner, optional URI and optional
// extension. The id is left empty; the store assigns it from the ledger
// counter at mint time. Returns an error if validation fails.
func NewToken(owner string, tokenURI *string, extension *Extension) (*Token, error) {
	token := &Token{
		Owner:     owner,
		TokenURI:  tokenURI,
		Extension: extension,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := token.Validate(); err != nil {
		return nil, err
	}

	return token, nil
}

// Validate checks that the token has valid data. A minted token must not
// arrive with tasks already attached; the task list grows only through
// request operations.
func (t *Token) Validate() error {
	if t.Owner == "" {
		return ErrTokenOwnerEmpty
	}

	if t.ID != "" {
		if _, err := strconv.ParseUint(t.ID, 10, 64); err != nil {
			return ErrTokenIDInvalid
		}
	}

	if t.Extension != nil && len(t.Extension.Tasks) > 0 {
		return ErrMintWithTasks
	}

	return nil
}

// Complete reports whether both metadata fields have been filled in.
func (e *Extension) Complete() bool {
	return e.Title != nil && e.Description != nil
}

// AppendTask appends a new pending task for the given input and returns
// its id. Task ids are the zero-based append position as a decimal string,
// so after N appends the ids are exactly "0" through "N-1" in order.
func (e *Extension) AppendTask(input string) string {
	taskID := strconv.Itoa(len(e.Tasks))
	e.Tasks = append(e.Tasks, Task{
		TaskID: taskID,
		Input:  input,
	})
	return taskID
}

// FindTask returns a pointer to the task with the given id, or nil if no
// such task exists.
func (e *Extension) FindTask(taskID string) *Task {
	for i := range e.Tasks {
		if e.Tasks[i].TaskID == taskID {
			return &e.Tasks[i]
		}
	}
	return nil
}

// PendingTaskIDs returns the ids of every task whose output is still
// absent, in list order. The result is never nil.
func (e *Extension) PendingTaskIDs() []string {
	taskIDs := []string{}
	for _, task := range e.Tasks {
		if !task.Fulfilled() {
			taskIDs = append(taskIDs, task.TaskID)
		}
	}
	return taskIDs
}

// FulfillTask sets the output of the task with the given id. Returns
// ErrTaskNotFound if the id does not exist and ErrTaskFulfilled if the
// task's output was already set; outputs never change once written.
func (e *Extension) FulfillTask(taskID, output string) error {
	task := e.FindTask(taskID)
	if task == nil {
		return ErrTaskNotFound
	}
	if task.Fulfilled() {
		return ErrTaskFulfilled
	}
	task.Output = &output
	return nil
}

// FillMetadata assigns title and description to whichever of the two
// fields is still unset, leaving already-set fields untouched. Returns
// ErrMetadataComplete when both fields are already filled; after a
// successful call both fields are always set.
func (e *Extension) FillMetadata(title, description string) error {
	if e.Complete() {
		return ErrMetadataComplete
	}
	if e.Title == nil {
		e.Title = &title
	}
	if e.Description == nil {
		e.Description = &description
	}
	return nil
}
