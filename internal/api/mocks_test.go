package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gatewaylabs/gateway-api/internal/api/shared"
	"github.com/gatewaylabs/gateway-api/internal/domain"
	"github.com/gatewaylabs/gateway-api/internal/service/auth"
)

// stubMintService returns canned results for MintToken and records the
// arguments it was called with.
type stubMintService struct {
	tokenID string
	err     error

	gotMinter    string
	gotOwner     string
	gotExtension *domain.Extension
}

func (s *stubMintService) MintToken(
	ctx context.Context,
	minter string,
	owner string,
	tokenURI *string,
	extension *domain.Extension,
) (string, error) {
	s.gotMinter = minter
	s.gotOwner = owner
	s.gotExtension = extension
	if s.err != nil {
		return "", s.err
	}
	return s.tokenID, nil
}

// stubTaskService returns canned results for the task operations.
type stubTaskService struct {
	taskID    string
	remaining []string
	err       error

	gotCaller string
	gotToken  string
	gotTask   string
	gotInput  string
	gotOutput string
}

func (s *stubTaskService) RequestTask(ctx context.Context, requester, tokenID, input string) (string, error) {
	s.gotCaller = requester
	s.gotToken = tokenID
	s.gotInput = input
	if s.err != nil {
		return "", s.err
	}
	return s.taskID, nil
}

func (s *stubTaskService) RespondTask(ctx context.Context, caller, tokenID, taskID, output string) error {
	s.gotCaller = caller
	s.gotToken = tokenID
	s.gotTask = taskID
	s.gotOutput = output
	return s.err
}

func (s *stubTaskService) RemainingTasks(ctx context.Context, tokenID string) ([]string, error) {
	s.gotToken = tokenID
	if s.err != nil {
		return nil, s.err
	}
	return s.remaining, nil
}

// stubMetadataService returns canned results for the metadata operations.
type stubMetadataService struct {
	incomplete []string
	err        error

	gotCaller      string
	gotToken       string
	gotTitle       string
	gotDescription string
	gotLimit       int
}

func (s *stubMetadataService) UpdateMetadata(ctx context.Context, caller, tokenID, title, description string) error {
	s.gotCaller = caller
	s.gotToken = tokenID
	s.gotTitle = title
	s.gotDescription = description
	return s.err
}

func (s *stubMetadataService) IncompleteProjects(ctx context.Context, limit int) ([]string, error) {
	s.gotLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.incomplete, nil
}

// stubJWTService issues and validates canned tokens.
type stubJWTService struct {
	token string
	err   error

	gotPrincipal string
}

func (s *stubJWTService) GenerateToken(ctx context.Context, principal string) (string, error) {
	s.gotPrincipal = principal
	if s.err != nil {
		return "", s.err
	}
	return s.token, nil
}

func (s *stubJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return nil, auth.ErrInvalidToken
}

// newRequest builds a request carrying the given principal and chi route
// parameters, mirroring what the middleware chain provides in production.
func newRequest(method, target, principal, body string, routeParams map[string]string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	ctx := req.Context()
	if principal != "" {
		ctx = context.WithValue(ctx, shared.PrincipalContextKey, principal)
	}

	if len(routeParams) > 0 {
		routeCtx := chi.NewRouteContext()
		for key, value := range routeParams {
			routeCtx.URLParams.Add(key, value)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	}

	return req.WithContext(ctx)
}
