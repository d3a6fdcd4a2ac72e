// Package api implements the REST client for the remote task service.
// It maps HTTP failures onto domain errors so callers never see transport
// details.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// Ensure Client implements the domain ports.
var (
	_ domain.AuthAPI = (*Client)(nil)
	_ domain.TaskAPI = (*Client)(nil)
)

// Client talks to the task service over HTTP with a bearer credential
// attached per request. It is safe for concurrent use.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewClient creates a Client for the given base URL (no trailing slash).
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			req.SetHeader("X-Request-ID", uuid.NewString())
			return nil
		})

	return &Client{http: httpClient, logger: logger}
}

// tokenResponse is the body of POST /auth/token/.
type tokenResponse struct {
	Access string `json:"access"`
}

// googleResponse is the body of POST /auth/google/.
type googleResponse struct {
	Access string          `json:"access"`
	User   domain.Identity `json:"user"`
}

// Authenticate exchanges credentials for a bearer token.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		Post("/auth/token/")
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	if resp.IsError() {
		if resp.StatusCode() >= 400 && resp.StatusCode() < 500 {
			return "", domain.ErrInvalidCredentials
		}
		return "", serverError(resp)
	}

	var body tokenResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil || body.Access == "" {
		return "", domain.ErrInvalidResponse
	}
	return body.Access, nil
}

// FetchIdentity resolves the profile of the token's owner.
func (c *Client) FetchIdentity(ctx context.Context, token string) (domain.Identity, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get("/auth/me/")
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	if resp.IsError() {
		return domain.Identity{}, statusError(resp)
	}

	var identity domain.Identity
	if err := json.Unmarshal(resp.Body(), &identity); err != nil {
		return domain.Identity{}, domain.ErrInvalidResponse
	}
	return identity, nil
}

// Register creates a new account. Duplicate identifiers surface as a
// ConflictError carrying the server's field-specific message.
func (c *Client) Register(ctx context.Context, in domain.RegisterInput) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"username":   in.Username,
			"email":      in.Email,
			"password":   in.Password,
			"first_name": in.Name,
		}).
		Post("/auth/register/")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	if resp.IsError() {
		if resp.StatusCode() >= 500 {
			return serverError(resp)
		}
		return registrationError(resp.Body())
	}
	return nil
}

// ExchangeGoogleToken trades a Google ID token for a session. Both the
// credential and the identity must be present in the response.
func (c *Client) ExchangeGoogleToken(ctx context.Context, idToken string) (domain.Session, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"id_token": idToken}).
		Post("/auth/google/")
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	if resp.IsError() {
		if resp.StatusCode() >= 500 {
			return domain.Session{}, serverError(resp)
		}
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	var body googleResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return domain.Session{}, domain.ErrInvalidResponse
	}
	if body.Access == "" || body.User.IsZero() {
		return domain.Session{}, domain.ErrInvalidResponse
	}
	return domain.Session{Token: body.Access, Identity: body.User}, nil
}

// listResponse covers the service's paginated form of GET /tasks/.
type listResponse struct {
	Results []*domain.Task `json:"results"`
}

// List retrieves the task set, accepting both the plain-array and the
// paginated {results} response shapes.
func (c *Client) List(ctx context.Context, token string, opts domain.ListOptions) ([]*domain.Task, error) {
	req := c.http.R().SetContext(ctx).SetAuthToken(token)
	if opts.Status != "" {
		req.SetQueryParam("status", string(opts.Status))
	}
	if opts.Priority != "" {
		req.SetQueryParam("priority", string(opts.Priority))
	}
	if opts.Search != "" {
		req.SetQueryParam("search", opts.Search)
	}
	if opts.Ordering != "" {
		req.SetQueryParam("ordering", opts.Ordering)
	}
	if opts.Page > 0 {
		req.SetQueryParam("page", strconv.Itoa(opts.Page))
	}

	resp, err := req.Get("/tasks/")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}

	var tasks []*domain.Task
	if err := json.Unmarshal(resp.Body(), &tasks); err == nil {
		return tasks, nil
	}
	var paginated listResponse
	if err := json.Unmarshal(resp.Body(), &paginated); err != nil {
		return nil, domain.ErrInvalidResponse
	}
	return paginated.Results, nil
}

// Create submits a draft and returns the server's echo with assigned ID.
func (c *Client) Create(ctx context.Context, token string, draft domain.TaskDraft) (*domain.Task, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(draft).
		Post("/tasks/")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return decodeTask(resp.Body())
}

// Update sends a partial patch (PATCH).
func (c *Client) Update(ctx context.Context, token string, id int, patch domain.TaskPatch) (*domain.Task, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(patch).
		Patch(taskPath(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return decodeTask(resp.Body())
}

// Replace sends the full record (PUT).
func (c *Client) Replace(ctx context.Context, token string, id int, draft domain.TaskDraft) (*domain.Task, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(draft).
		Put(taskPath(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	if resp.IsError() {
		return nil, statusError(resp)
	}
	return decodeTask(resp.Body())
}

// Delete removes a task. DELETE returns no body on success.
func (c *Client) Delete(ctx context.Context, token string, id int) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		Delete(taskPath(id))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	if resp.IsError() {
		return statusError(resp)
	}
	return nil
}

func taskPath(id int) string {
	return "/tasks/" + strconv.Itoa(id) + "/"
}

func decodeTask(body []byte) (*domain.Task, error) {
	var task domain.Task
	if err := json.Unmarshal(body, &task); err != nil {
		return nil, domain.ErrInvalidResponse
	}
	return &task, nil
}

// statusError maps an HTTP failure status to a domain error.
func statusError(resp *resty.Response) error {
	switch {
	case resp.StatusCode() == 401 || resp.StatusCode() == 403:
		return domain.ErrNotAuthenticated
	case resp.StatusCode() == 404:
		return domain.ErrTaskNotFound
	case resp.StatusCode() == 400:
		return fieldErrors(resp.Body())
	default:
		return serverError(resp)
	}
}

func serverError(resp *resty.Response) error {
	return fmt.Errorf("%w: status %d", domain.ErrServer, resp.StatusCode())
}

// fieldErrors decodes the service's field-keyed error body
// ({"field": ["message", ...], ...}) into a ValidationError.
func fieldErrors(body []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("%w: status 400", domain.ErrServer)
	}

	verr := domain.NewValidationError()
	for field, msg := range raw {
		verr.Add(field, firstMessage(msg))
	}
	if !verr.HasErrors() {
		return fmt.Errorf("%w: status 400", domain.ErrServer)
	}
	return verr
}

// registrationError prefers a ConflictError when the failure names the
// username or email field, matching how duplicate accounts are reported.
func registrationError(body []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return &domain.ConflictError{Message: "registration failed"}
	}

	for _, field := range []string{"email", "username"} {
		if msg, ok := raw[field]; ok {
			return &domain.ConflictError{Field: field, Message: firstMessage(msg)}
		}
	}

	verr := domain.NewValidationError()
	for field, msg := range raw {
		verr.Add(field, firstMessage(msg))
	}
	if verr.HasErrors() {
		return verr
	}
	return &domain.ConflictError{Message: "registration failed"}
}

// firstMessage extracts the first string from either a JSON array of strings
// or a plain string value.
func firstMessage(raw json.RawMessage) string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
