package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"

	"github.com/gatewaylabs/gateway-api/internal/domain"
	"github.com/gatewaylabs/gateway-api/internal/events"
	"github.com/gatewaylabs/gateway-api/internal/store"
)

// stubDriver is a minimal database/sql driver whose transactions always
// succeed. It lets the transaction plumbing run in unit tests while the
// fake repositories below hold the actual state in memory.
type stubDriver struct{}

type stubConn struct{}

type stubTx struct{}

func (stubDriver) Open(name string) (driver.Conn, error) { return stubConn{}, nil }

func (stubConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("stub driver does not prepare statements")
}
func (stubConn) Close() error              { return nil }
func (stubConn) Begin() (driver.Tx, error) { return stubTx{}, nil }

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

var registerStubDriver sync.Once

// newStubDB returns a *sql.DB whose BeginTx/Commit/Rollback succeed
// without a real database behind them.
func newStubDB() *sql.DB {
	registerStubDriver.Do(func() {
		sql.Register("servicetest", stubDriver{})
	})
	db, err := sql.Open("servicetest", "")
	if err != nil {
		panic(err)
	}
	return db
}

// fakeTokenRepo is an in-memory TokenRepository.
type fakeTokenRepo struct {
	db     *sql.DB
	tokens map[string]*domain.Token

	createErr error
	getErr    error
	saveErr   error
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{
		db:     newStubDB(),
		tokens: make(map[string]*domain.Token),
	}
}

func (r *fakeTokenRepo) Create(ctx context.Context, token *domain.Token) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.tokens[token.ID]; exists {
		return store.ErrTokenExists
	}
	copied := *token
	r.tokens[token.ID] = &copied
	return nil
}

func (r *fakeTokenRepo) GetByID(ctx context.Context, id string) (*domain.Token, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	token, ok := r.tokens[id]
	if !ok {
		return nil, store.ErrTokenNotFound
	}
	copied := *token
	if token.Extension != nil {
		ext := *token.Extension
		ext.Tasks = append([]domain.Task(nil), token.Extension.Tasks...)
		copied.Extension = &ext
	}
	return &copied, nil
}

func (r *fakeTokenRepo) Save(ctx context.Context, token *domain.Token) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.tokens[token.ID]; !ok {
		return store.ErrTokenNotFound
	}
	copied := *token
	r.tokens[token.ID] = &copied
	return nil
}

func (r *fakeTokenRepo) WithTx(tx *sql.Tx) TokenRepository { return r }
func (r *fakeTokenRepo) DB() *sql.DB                       { return r.db }

// fakeCounterRepo is an in-memory CounterRepository.
type fakeCounterRepo struct {
	count        uint64
	currentErr   error
	incrementErr error
}

func (r *fakeCounterRepo) Current(ctx context.Context) (uint64, error) {
	if r.currentErr != nil {
		return 0, r.currentErr
	}
	return r.count, nil
}

func (r *fakeCounterRepo) Increment(ctx context.Context) error {
	if r.incrementErr != nil {
		return r.incrementErr
	}
	r.count++
	return nil
}

func (r *fakeCounterRepo) WithTx(tx *sql.Tx) CounterRepository { return r }

// fakeIndexRepo is an in-memory IndexRepository.
type fakeIndexRepo struct {
	ids       []string
	appendErr error
	removeErr error
	snapErr   error
}

func (r *fakeIndexRepo) Snapshot(ctx context.Context, limit int) ([]string, error) {
	if r.snapErr != nil {
		return nil, r.snapErr
	}
	snapshot := append([]string{}, r.ids...)
	if limit > 0 && len(snapshot) > limit {
		snapshot = snapshot[:limit]
	}
	return snapshot, nil
}

func (r *fakeIndexRepo) Append(ctx context.Context, tokenID string) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.ids = append(r.ids, tokenID)
	return nil
}

func (r *fakeIndexRepo) Remove(ctx context.Context, tokenID string) error {
	if r.removeErr != nil {
		return r.removeErr
	}
	filtered := r.ids[:0]
	for _, id := range r.ids {
		if id != tokenID {
			filtered = append(filtered, id)
		}
	}
	r.ids = filtered
	return nil
}

func (r *fakeIndexRepo) WithTx(tx *sql.Tx) IndexRepository { return r }

// capturingEmitter records emitted audit events.
type capturingEmitter struct {
	events []*events.AuditEvent
}

func (e *capturingEmitter) EmitEvent(ctx context.Context, event *events.AuditEvent) error {
	e.events = append(e.events, event)
	return nil
}

func (e *capturingEmitter) lastAction() string {
	if len(e.events) == 0 {
		return ""
	}
	return e.events[len(e.events)-1].Action
}
