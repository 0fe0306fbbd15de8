// Package manager is a client for the API Manager REST API. It is the
// organization resource the console's sidebar talks to.
package manager

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/apiman/apiman-ui/internal/metrics"
	"github.com/apiman/apiman-ui/internal/orgs"
)

const defaultTimeout = 30 * time.Second

const maxErrorMessageLen = 300

// Client calls the API Manager. The cookie jar keeps the manager's session
// cookie between calls so the bearer token is only validated once.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// APIError is a non-2xx response from the API Manager.
type APIError struct {
	Operation  string
	StatusCode int
	Status     string
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Operation, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Status)
}

// NotFound reports a 404 from the manager.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsNotFound reports whether err wraps a 404 APIError.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}

// New creates a client for baseURL. A zero timeout uses the default.
func New(baseURL, token string, timeout time.Duration) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, errors.New("manager API URL is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("manager API URL: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	return &Client{
		BaseURL: base,
		Token:   strings.TrimSpace(token),
		HTTP:    &http.Client{Timeout: timeout, Jar: jar},
	}, nil
}

// GetOrganization fetches one organization.
func (c *Client) GetOrganization(ctx context.Context, orgID string) (orgs.Organization, error) {
	var out orgs.Organization
	err := c.do(ctx, "get_organization", http.MethodGet, "/organizations/"+url.PathEscape(orgID), nil, &out)
	return out, err
}

// ListUserOrganizations lists the organizations username is a member of.
func (c *Client) ListUserOrganizations(ctx context.Context, username string) ([]orgs.Organization, error) {
	var out []orgs.Organization
	if err := c.do(ctx, "list_user_organizations", http.MethodGet, "/users/"+url.PathEscape(username)+"/organizations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateOrganization replaces the mutable fields of an organization.
func (c *Client) UpdateOrganization(ctx context.Context, orgID string, body orgs.UpdateOrganization) error {
	return c.do(ctx, "update_organization", http.MethodPut, "/organizations/"+url.PathEscape(orgID), body, nil)
}

// DeleteOrganization removes an organization and everything it owns.
func (c *Client) DeleteOrganization(ctx context.Context, orgID string) error {
	return c.do(ctx, "delete_organization", http.MethodDelete, "/organizations/"+url.PathEscape(orgID), nil, nil)
}

// Update implements orgs.Resource.
func (c *Client) Update(ctx context.Context, orgID string, body orgs.UpdateOrganization) error {
	return c.UpdateOrganization(ctx, orgID, body)
}

// Remove implements orgs.Resource.
func (c *Client) Remove(ctx context.Context, orgID string) error {
	return c.DeleteOrganization(ctx, orgID)
}

func (c *Client) httpClient() (*http.Client, error) {
	if c.BaseURL == "" {
		return nil, errors.New("manager API URL is required")
	}
	if c.HTTP == nil {
		return &http.Client{Timeout: defaultTimeout}, nil
	}
	return c.HTTP, nil
}

func (c *Client) do(ctx context.Context, operation, method, path string, in, out any) error {
	httpClient, err := c.httpClient()
	if err != nil {
		return err
	}

	start := time.Now()
	status := "error"
	defer func() {
		metrics.ManagerRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
		metrics.ManagerRequestsTotal.WithLabelValues(operation, status).Inc()
	}()

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	reqURL := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	req.Header.Set("User-Agent", "apiman-ui")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	status = strconv.Itoa(resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &APIError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    extractErrorMessage(raw),
			URL:        reqURL,
		}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}

func extractErrorMessage(body []byte) string {
	var payload struct {
		Message   string `json:"message"`
		ErrorCode int    `json:"errorCode"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return ""
	}
	if strings.HasPrefix(msg, "<!DOCTYPE html") || strings.HasPrefix(msg, "<html") {
		return ""
	}
	msg = strings.Join(strings.Fields(msg), " ")
	if len(msg) > maxErrorMessageLen {
		msg = msg[:maxErrorMessageLen] + "…"
	}
	return msg
}
