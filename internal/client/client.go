// Package client provides a typed HTTP client for the CivicPulse API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"time"

	"civicpulse/internal/dto"
	"civicpulse/internal/lifecycle"
)

// DefaultTimeout bounds every request when no http.Client is supplied.
const DefaultTimeout = 15 * time.Second

// APIError is returned for any non-2xx response.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsRejection reports whether err is a 4xx answer from the server. Such
// answers are authoritative; anything else means the server could not be
// reached or failed.
func IsRejection(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500
}

// Client talks to the CivicPulse REST API under <baseURL>/api.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a new API client. A nil httpClient gets DefaultTimeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/api",
		httpClient: httpClient,
	}
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// send executes req and decodes the envelope's data into T.
func send[T any](c *Client, req *http.Request) (T, error) {
	var zero T

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return zero, decodeError(resp)
	}

	var envelope dto.Envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return zero, fmt.Errorf("decoding %s response: %w", req.URL.Path, err)
	}
	return envelope.Data, nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body dto.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		apiErr.Message = text
	}
	return apiErr
}

func do[T any](ctx context.Context, c *Client, method, path string, payload any) (T, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			var zero T
			return zero, fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		var zero T
		return zero, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return send[T](c, req)
}

func seg(s string) string { return url.PathEscape(s) }

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email string, role lifecycle.Role) (*dto.AuthResponse, error) {
	resp, err := do[dto.AuthResponse](ctx, c, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Role: role})
	if err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// Register creates an account and stores the returned token on the client.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	resp, err := do[dto.AuthResponse](ctx, c, http.MethodPost, "/auth/register", req)
	if err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// ListUsers returns every user.
func (c *Client) ListUsers(ctx context.Context) ([]dto.User, error) {
	return do[[]dto.User](ctx, c, http.MethodGet, "/users", nil)
}

// ListUsersByRole returns users holding role.
func (c *Client) ListUsersByRole(ctx context.Context, role lifecycle.Role) ([]dto.User, error) {
	return do[[]dto.User](ctx, c, http.MethodGet, "/users/role/"+seg(string(role)), nil)
}

// GetUser returns one user.
func (c *Client) GetUser(ctx context.Context, id string) (*dto.User, error) {
	u, err := do[dto.User](ctx, c, http.MethodGet, "/users/"+seg(id), nil)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateGrievance submits a grievance.
func (c *Client) CreateGrievance(ctx context.Context, req dto.CreateGrievanceRequest) (*dto.Grievance, error) {
	g, err := do[dto.Grievance](ctx, c, http.MethodPost, "/grievances", req)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ListGrievances returns every grievance.
func (c *Client) ListGrievances(ctx context.Context) ([]dto.Grievance, error) {
	return do[[]dto.Grievance](ctx, c, http.MethodGet, "/grievances", nil)
}

// GetGrievance returns one grievance by code.
func (c *Client) GetGrievance(ctx context.Context, id string) (*dto.Grievance, error) {
	g, err := do[dto.Grievance](ctx, c, http.MethodGet, "/grievances/"+seg(id), nil)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ListByUser returns the grievances a citizen submitted.
func (c *Client) ListByUser(ctx context.Context, userID string) ([]dto.Grievance, error) {
	return do[[]dto.Grievance](ctx, c, http.MethodGet, "/grievances/user/"+seg(userID), nil)
}

// ListByOfficer returns the grievances assigned to an officer.
func (c *Client) ListByOfficer(ctx context.Context, officerID string) ([]dto.Grievance, error) {
	return do[[]dto.Grievance](ctx, c, http.MethodGet, "/grievances/officer/"+seg(officerID), nil)
}

// ListByStatus returns the grievances in status.
func (c *Client) ListByStatus(ctx context.Context, status lifecycle.Status) ([]dto.Grievance, error) {
	return do[[]dto.Grievance](ctx, c, http.MethodGet, "/grievances/status/"+seg(string(status)), nil)
}

// UpdateGrievance applies a partial update.
func (c *Client) UpdateGrievance(ctx context.Context, id string, req dto.UpdateGrievanceRequest) (*dto.Grievance, error) {
	g, err := do[dto.Grievance](ctx, c, http.MethodPatch, "/grievances/"+seg(id), req)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// SubmitFeedback rates a resolved grievance.
func (c *Client) SubmitFeedback(ctx context.Context, id string, req dto.FeedbackRequest) (*dto.Feedback, error) {
	f, err := do[dto.Feedback](ctx, c, http.MethodPost, "/grievances/"+seg(id)+"/feedback", req)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListFeedback returns the feedback on a grievance.
func (c *Client) ListFeedback(ctx context.Context, id string) ([]dto.Feedback, error) {
	return do[[]dto.Feedback](ctx, c, http.MethodGet, "/grievances/"+seg(id)+"/feedback", nil)
}

// UploadImage sends an image as multipart form data under the "file" field.
func (c *Client) UploadImage(ctx context.Context, id, filename, contentType string, r io.Reader) (*dto.UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("creating form part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/grievances/"+seg(id)+"/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	res, err := send[dto.UploadResult](c, req)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Analytics returns the city-wide summary.
func (c *Client) Analytics(ctx context.Context) (*dto.AnalyticsData, error) {
	return ptr[dto.AnalyticsData](do[dto.AnalyticsData](ctx, c, http.MethodGet, "/grievances/analytics/all", nil))
}

// OfficerAnalytics returns the summary for one officer.
func (c *Client) OfficerAnalytics(ctx context.Context, officerID string) (*dto.AnalyticsData, error) {
	return ptr[dto.AnalyticsData](do[dto.AnalyticsData](ctx, c, http.MethodGet, "/grievances/analytics/officer/"+seg(officerID), nil))
}

// CompleteAnalytics returns every analytics view.
func (c *Client) CompleteAnalytics(ctx context.Context) (*dto.ComplaintAnalytics, error) {
	return ptr[dto.ComplaintAnalytics](do[dto.ComplaintAnalytics](ctx, c, http.MethodGet, "/grievances/analytics/complete", nil))
}

// ZoneAnalytics returns per-zone counts.
func (c *Client) ZoneAnalytics(ctx context.Context) ([]dto.ZoneAnalytics, error) {
	return do[[]dto.ZoneAnalytics](ctx, c, http.MethodGet, "/grievances/analytics/zones", nil)
}

// SLAMetrics returns city-wide deadline performance.
func (c *Client) SLAMetrics(ctx context.Context) (*dto.SLAMetrics, error) {
	return ptr[dto.SLAMetrics](do[dto.SLAMetrics](ctx, c, http.MethodGet, "/grievances/analytics/sla", nil))
}

// OfficerSLAMetrics returns deadline performance for one officer.
func (c *Client) OfficerSLAMetrics(ctx context.Context, officerID string) (*dto.SLAMetrics, error) {
	return ptr[dto.SLAMetrics](do[dto.SLAMetrics](ctx, c, http.MethodGet, "/grievances/analytics/sla/officer/"+seg(officerID), nil))
}

// HeatMap returns the complaint heat map.
func (c *Client) HeatMap(ctx context.Context) ([]dto.HeatMapPoint, error) {
	return do[[]dto.HeatMapPoint](ctx, c, http.MethodGet, "/grievances/analytics/heatmap", nil)
}

// GrievanceAnalysis returns the detailed breakdown.
func (c *Client) GrievanceAnalysis(ctx context.Context) (*dto.GrievanceAnalysis, error) {
	return ptr[dto.GrievanceAnalysis](do[dto.GrievanceAnalysis](ctx, c, http.MethodGet, "/grievances/analytics/grievance-analysis", nil))
}

// OfficerGrievanceAnalysis returns the detailed breakdown for one officer.
func (c *Client) OfficerGrievanceAnalysis(ctx context.Context, officerID string) (*dto.GrievanceAnalysis, error) {
	return ptr[dto.GrievanceAnalysis](do[dto.GrievanceAnalysis](ctx, c, http.MethodGet, "/grievances/analytics/grievance-analysis/officer/"+seg(officerID), nil))
}

func ptr[T any](v T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	return &v, nil
}
