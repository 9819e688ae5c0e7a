package foreman

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	apiAuthSourceLDAPs = "/api/v2/auth_source_ldaps"
	apiOrganizations   = "/api/v2/organizations"
	apiLocations       = "/api/v2/locations"
	apiUsers           = "/api/v2/users"
)

// Config holds connection settings for the Foreman API
type Config struct {
	BaseURL       string
	Username      string
	Password      string
	Timeout       time.Duration
	SkipTLSVerify bool
}

// Client manages HTTP connections to the Foreman API v2
type Client struct {
	cfg    Config
	logger *zap.Logger
	client *http.Client
}

// NewClient creates a new Foreman API client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	transport := http.DefaultTransport
	if cfg.SkipTLSVerify {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		cfg:    cfg,
		logger: logger.With(zap.String("component", "foreman-client")),
		client: &http.Client{Timeout: cfg.Timeout, Transport: transport},
	}
}

// SearchAuthSourceLDAP looks up an LDAP auth source by exact name. Returns
// nil without error when no source matches.
func (c *Client) SearchAuthSourceLDAP(ctx context.Context, name string) (*AuthSourceLDAP, error) {
	query := url.Values{}
	query.Set("search", fmt.Sprintf("name=%q", name))

	var result authSourcesResponse
	if err := c.do(ctx, http.MethodGet, apiAuthSourceLDAPs, query, nil, &result); err != nil {
		return nil, err
	}

	for i := range result.Results {
		if result.Results[i].Name == name {
			return &result.Results[i], nil
		}
	}
	return nil, nil
}

// GetAuthSourceLDAP fetches the full auth source record, including its
// organization and location assignments, which the search endpoint omits
func (c *Client) GetAuthSourceLDAP(ctx context.Context, id int) (*AuthSourceLDAP, error) {
	var record AuthSourceLDAP
	if err := c.do(ctx, http.MethodGet, apiAuthSourceLDAPs+"/"+strconv.Itoa(id), nil, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateAuthSourceLDAP creates a new LDAP auth source
func (c *Client) CreateAuthSourceLDAP(ctx context.Context, in *AuthSourceLDAPInput) (*AuthSourceLDAP, error) {
	var record AuthSourceLDAP
	if err := c.do(ctx, http.MethodPost, apiAuthSourceLDAPs, nil, authSourceBody{in}, &record); err != nil {
		return nil, err
	}
	c.logger.Debug("auth source created", zap.Int("id", record.ID), zap.String("name", record.Name))
	return &record, nil
}

// UpdateAuthSourceLDAP updates an existing LDAP auth source and returns the
// updated record
func (c *Client) UpdateAuthSourceLDAP(ctx context.Context, id int, in *AuthSourceLDAPInput) (*AuthSourceLDAP, error) {
	var record AuthSourceLDAP
	if err := c.do(ctx, http.MethodPut, apiAuthSourceLDAPs+"/"+strconv.Itoa(id), nil, authSourceBody{in}, &record); err != nil {
		return nil, err
	}
	c.logger.Debug("auth source updated", zap.Int("id", id))
	return &record, nil
}

// DeleteAuthSourceLDAP removes an LDAP auth source by identifier
func (c *Client) DeleteAuthSourceLDAP(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, apiAuthSourceLDAPs+"/"+strconv.Itoa(id), nil, nil, nil); err != nil {
		return err
	}
	c.logger.Debug("auth source deleted", zap.Int("id", id))
	return nil
}

// SearchOrganization looks up an organization by exact name. Returns nil
// without error when no organization matches.
func (c *Client) SearchOrganization(ctx context.Context, name string) (*Organization, error) {
	query := url.Values{}
	query.Set("search", fmt.Sprintf("name=%q", name))

	var result organizationsResponse
	if err := c.do(ctx, http.MethodGet, apiOrganizations, query, nil, &result); err != nil {
		return nil, err
	}

	for i := range result.Results {
		if result.Results[i].Name == name {
			return &result.Results[i], nil
		}
	}
	return nil, nil
}

// SearchLocation looks up a location by exact name. Returns nil without
// error when no location matches.
func (c *Client) SearchLocation(ctx context.Context, name string) (*Location, error) {
	query := url.Values{}
	query.Set("search", fmt.Sprintf("name=%q", name))

	var result locationsResponse
	if err := c.do(ctx, http.MethodGet, apiLocations, query, nil, &result); err != nil {
		return nil, err
	}

	for i := range result.Results {
		if result.Results[i].Name == name {
			return &result.Results[i], nil
		}
	}
	return nil, nil
}

// SearchUser looks up a user by exact login. Returns nil without error when
// no user matches.
func (c *Client) SearchUser(ctx context.Context, login string) (*User, error) {
	query := url.Values{}
	query.Set("search", fmt.Sprintf("login=%q", login))

	var result usersResponse
	if err := c.do(ctx, http.MethodGet, apiUsers, query, nil, &result); err != nil {
		return nil, err
	}

	for i := range result.Results {
		if result.Results[i].Login == login {
			return &result.Results[i], nil
		}
	}
	return nil, nil
}

// do performs a single Foreman API round-trip. Non-2xx responses are turned
// into errors carrying the remote-supplied message verbatim.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("foreman returned %d: %s", resp.StatusCode, remoteMessage(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// remoteMessage extracts the human-readable error message from a Foreman
// error body, falling back to the raw body
func remoteMessage(data []byte) string {
	var apiErr struct {
		Error struct {
			Message      string   `json:"message"`
			FullMessages []string `json:"full_messages"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &apiErr); err == nil {
		if len(apiErr.Error.FullMessages) > 0 {
			return strings.Join(apiErr.Error.FullMessages, "; ")
		}
		if apiErr.Error.Message != "" {
			return apiErr.Error.Message
		}
	}
	return strings.TrimSpace(string(data))
}

// API request/response envelopes

type authSourceBody struct {
	AuthSourceLDAP *AuthSourceLDAPInput `json:"auth_source_ldap"`
}

type authSourcesResponse struct {
	Total   int              `json:"total"`
	Results []AuthSourceLDAP `json:"results"`
}

type organizationsResponse struct {
	Total   int            `json:"total"`
	Results []Organization `json:"results"`
}

type locationsResponse struct {
	Total   int        `json:"total"`
	Results []Location `json:"results"`
}

type usersResponse struct {
	Total   int    `json:"total"`
	Results []User `json:"results"`
}
