package api

// Common request/response structures

// IssueTokenRequest defines the payload for the auth token endpoint. The
// secret is only consulted when the principal is the configured operator.
type IssueTokenRequest struct {
	Principal string `json:"principal" validate:"required,min=1,max=256"`
	Secret    string `json:"secret,omitempty"`
}

// IssueTokenResponse defines the successful response for the auth token
// endpoint.
type IssueTokenResponse struct {
	// Token is the JWT identifying the caller on subsequent requests
	Token string `json:"token"`

	// ExpiresAt is the ISO 8601 timestamp when the token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// ExtensionPayload carries a token's metadata record at mint time. Tasks
// are intentionally absent: the task list only grows through task requests.
type ExtensionPayload struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Destination *string `json:"destination,omitempty"`
	Code        string  `json:"code"`
}

// MintTokenRequest defines the payload for the mint endpoint.
type MintTokenRequest struct {
	Owner     string            `json:"owner" validate:"required,min=1,max=256"`
	TokenURI  *string           `json:"token_uri,omitempty"`
	Extension *ExtensionPayload `json:"extension,omitempty"`
}

// MintTokenResponse defines the successful response for the mint endpoint.
type MintTokenResponse struct {
	TokenID string `json:"token_id"`
}

// RequestTaskRequest defines the payload for the task request endpoint.
type RequestTaskRequest struct {
	Input string `json:"input" validate:"required"`
}

// RequestTaskResponse defines the successful response for the task request
// endpoint.
type RequestTaskResponse struct {
	TaskID string `json:"task_id"`
}

// RespondTaskRequest defines the payload for the task output endpoint.
type RespondTaskRequest struct {
	Output string `json:"output" validate:"required"`
}

// UpdateMetadataRequest defines the payload for the metadata completion
// endpoint. Both fields are required; whichever of the two is still unset
// on the token is filled, the other is ignored.
type UpdateMetadataRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// RemainingTasksResponse lists the ids of a token's unfulfilled tasks.
type RemainingTasksResponse struct {
	TaskIDs []string `json:"task_ids"`
}

// IncompleteProjectsResponse lists the ids of tokens still missing
// metadata, in mint order.
type IncompleteProjectsResponse struct {
	TokenIDs []string `json:"token_ids"`
}
