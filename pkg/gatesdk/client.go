// Package gatesdk is the Go client for the herfa gate service, plus the wire
// types shared between the service handlers and consumers.
package gatesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a thin client for the gate service. Authenticated calls use the
// access token set by Login/VerifySecondFactor or UseToken.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	accessToken string
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// UseToken installs an existing access token, e.g. one restored from a
// stored session record.
func (c *Client) UseToken(accessToken string) {
	c.accessToken = accessToken
}

// Login starts the authentication flow. When the returned session is pending
// a second factor, follow up with VerifySecondFactor.
func (c *Client) Login(ctx context.Context, req LoginRequest) (SessionResponse, error) {
	var out SessionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/login", req, &out); err != nil {
		return SessionResponse{}, err
	}
	if out.AccessToken != "" {
		c.accessToken = out.AccessToken
	}
	return out, nil
}

// VerifySecondFactor completes a pending challenge.
func (c *Client) VerifySecondFactor(ctx context.Context, code string) (SessionResponse, error) {
	var out SessionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/login/verify", VerifyRequest{Code: code}, &out); err != nil {
		return SessionResponse{}, err
	}
	if out.AccessToken != "" {
		c.accessToken = out.AccessToken
	}
	return out, nil
}

// Logout ends the session. Safe to call when already signed out.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/v1/logout", nil, nil)
	c.accessToken = ""
	return err
}

// Me returns the current session.
func (c *Client) Me(ctx context.Context) (SessionResponse, error) {
	var out SessionResponse
	err := c.do(ctx, http.MethodGet, "/v1/me", nil, &out)
	return out, err
}

// ReplaceProfile overwrites the caller's profile fields.
func (c *Client) ReplaceProfile(ctx context.Context, req ProfileUpdateRequest) (UserInfo, error) {
	var out UserInfo
	err := c.do(ctx, http.MethodPut, "/v1/profile", req, &out)
	return out, err
}

// Genders lists the registration reference data.
func (c *Client) Genders(ctx context.Context) ([]GenderInfo, error) {
	var out []GenderInfo
	err := c.do(ctx, http.MethodGet, "/v1/genders", nil, &out)
	return out, err
}

// Overview returns the reporting rollup. Requires the view_reports
// permission or the SUPER_ADMIN role.
func (c *Client) Overview(ctx context.Context) (OverviewResponse, error) {
	var out OverviewResponse
	err := c.do(ctx, http.MethodGet, "/v1/stats/overview", nil, &out)
	return out, err
}

// CanAccess asks the route guard for its verdict on a path.
func (c *Client) CanAccess(ctx context.Context, path string) (CanAccessResponse, error) {
	var out CanAccessResponse
	endpoint := "/v1/authz/can-access?path=" + url.QueryEscape(path)
	err := c.do(ctx, http.MethodGet, endpoint, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := parseErrorResponse(resp, raw); err != nil {
		return err
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
