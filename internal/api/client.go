package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnavailable indicates the server could not be reached at all. Callers
// use it to decide whether to fall back to the local store.
var ErrUnavailable = errors.New("server unavailable")

// Error is a rejection the server itself produced (success=false envelope).
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Client is a typed HTTP client for the event-manager REST API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewClient returns a Client for the given base URL, e.g.
// "http://127.0.0.1:8080/api".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs the access token sent as a Bearer credential on
// subsequent requests. An empty string clears it.
func (c *Client) SetToken(token string) {
	c.token = token
}

// do issues one request and decodes the enveloped response into out. The
// envelope's success flag is authoritative: a false value becomes an *Error
// even on HTTP 200.
func (c *Client) do(ctx context.Context, method, path string, body any, out interface {
	envelope() *BaseResponse
}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && ctx.Err() == nil {
			return fmt.Errorf("%w: %s", ErrUnavailable, urlErr.Err)
		}
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if env := out.envelope(); !env.Success {
		return &Error{StatusCode: resp.StatusCode, Message: env.Message}
	}
	return nil
}

func (b *BaseResponse) envelope() *BaseResponse { return b }

// ---------- auth ----------

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (*BaseResponse, error) {
	var out BaseResponse
	if err := c.do(ctx, http.MethodPost, "/auth/forgot-password/", ForgotPasswordRequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*BaseResponse, error) {
	var out BaseResponse
	if err := c.do(ctx, http.MethodPost, "/auth/verify-otp/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*BaseResponse, error) {
	var out BaseResponse
	if err := c.do(ctx, http.MethodPost, "/auth/reset-password/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Profile(ctx context.Context) (*ProfileResponse, error) {
	var out ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/auth/profile/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) (*BaseResponse, error) {
	var out BaseResponse
	if err := c.do(ctx, http.MethodPost, "/auth/change-password/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------- events ----------

func (c *Client) Events(ctx context.Context) (*EventListResponse, error) {
	var out EventListResponse
	if err := c.do(ctx, http.MethodGet, "/events/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EventDetail(ctx context.Context, eventID string) (*EventDetailResponse, error) {
	var out EventDetailResponse
	if err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(eventID)+"/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (*EventDetailResponse, error) {
	var out EventDetailResponse
	if err := c.do(ctx, http.MethodPost, "/events/create/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEvent(ctx context.Context, eventID string, req CreateEventRequest) (*EventDetailResponse, error) {
	var out EventDetailResponse
	if err := c.do(ctx, http.MethodPut, "/events/"+url.PathEscape(eventID)+"/update/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEvent(ctx context.Context, eventID string) (*BaseResponse, error) {
	var out BaseResponse
	if err := c.do(ctx, http.MethodDelete, "/events/"+url.PathEscape(eventID)+"/delete/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------- registrations ----------

func (c *Client) RegisterForEvent(ctx context.Context, eventID string, req EventRegistrationRequest) (*RegistrationResponse, error) {
	var out RegistrationResponse
	if err := c.do(ctx, http.MethodPost, "/events/"+url.PathEscape(eventID)+"/register/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelRegistration(ctx context.Context, eventID string) (*BaseResponse, error) {
	var out BaseResponse
	if err := c.do(ctx, http.MethodDelete, "/events/"+url.PathEscape(eventID)+"/cancel-registration/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyRegistrations(ctx context.Context) (*MyRegistrationsResponse, error) {
	var out MyRegistrationsResponse
	if err := c.do(ctx, http.MethodGet, "/registrations/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------- reminders ----------

func (c *Client) SetReminder(ctx context.Context, eventID string) (*ReminderResponse, error) {
	var out ReminderResponse
	if err := c.do(ctx, http.MethodPost, "/events/"+url.PathEscape(eventID)+"/set-reminder/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelReminder(ctx context.Context, eventID string) (*BaseResponse, error) {
	var out BaseResponse
	if err := c.do(ctx, http.MethodDelete, "/events/"+url.PathEscape(eventID)+"/cancel-reminder/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyReminders(ctx context.Context) (*MyRemindersResponse, error) {
	var out MyRemindersResponse
	if err := c.do(ctx, http.MethodGet, "/reminders/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------- dashboards ----------

func (c *Client) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	var out DashboardResponse
	if err := c.do(ctx, http.MethodGet, "/dashboard/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminDashboard(ctx context.Context) (*AdminDashboardResponse, error) {
	var out AdminDashboardResponse
	if err := c.do(ctx, http.MethodGet, "/admin/dashboard/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
