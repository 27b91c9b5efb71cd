package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/panelctl/panelctl/internal/app"
)

const defaultTimeout = 15 * time.Second

// Client is a JSON client for the panel API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a panel client for the given base URL and API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// FetchQuota returns the caller's resource entitlement.
func (c *Client) FetchQuota() (Quota, error) {
	var env quotaEnvelope
	if err := c.do(http.MethodGet, "/api/client/account/limits", nil, &env); err != nil {
		return Quota{}, err
	}

	return env.Attributes, nil
}

// FetchEggs returns the catalog of deployable software images.
func (c *Client) FetchEggs() ([]Egg, error) {
	var env eggListEnvelope
	if err := c.do(http.MethodGet, "/api/client/eggs", nil, &env); err != nil {
		return nil, err
	}

	eggs := make([]Egg, 0, len(env.Data))
	for _, item := range env.Data {
		eggs = append(eggs, item.Attributes)
	}

	return eggs, nil
}

// FetchNodes returns the catalog of deployment targets.
func (c *Client) FetchNodes() ([]Node, error) {
	var env nodeListEnvelope
	if err := c.do(http.MethodGet, "/api/client/nodes", nil, &env); err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(env.Data))
	for _, item := range env.Data {
		nodes = append(nodes, item.Attributes)
	}

	return nodes, nil
}

// CreateServer provisions a new server and returns it.
func (c *Client) CreateServer(req CreateServerRequest) (Server, error) {
	var env serverEnvelope
	if err := c.do(http.MethodPost, "/api/client/servers", req, &env); err != nil {
		return Server{}, err
	}

	return env.Attributes, nil
}

// ListServers returns the caller's existing servers.
func (c *Client) ListServers() ([]Server, error) {
	var env serverListEnvelope
	if err := c.do(http.MethodGet, "/api/client/servers", nil, &env); err != nil {
		return nil, err
	}

	servers := make([]Server, 0, len(env.Data))
	for _, item := range env.Data {
		servers = append(servers, item.Attributes)
	}

	return servers, nil
}

// GetServer returns a single server by its identifier.
func (c *Client) GetServer(identifier string) (Server, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return Server{}, fmt.Errorf("server identifier is required")
	}

	var env serverEnvelope
	if err := c.do(http.MethodGet, "/api/client/servers/"+trimmed, nil, &env); err != nil {
		return Server{}, err
	}

	return env.Attributes, nil
}

// CreateNode registers a node in the admin catalog.
func (c *Client) CreateNode(req CreateNodeRequest) (Node, error) {
	var env nodeEnvelope
	if err := c.do(http.MethodPost, "/api/admin/nodes", req, &env); err != nil {
		return Node{}, err
	}

	return env.Attributes, nil
}

// DeleteNode removes a node by its public identifier.
func (c *Client) DeleteNode(nodeID int) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/admin/nodes/%d", nodeID), nil, nil)
}

// CreateEgg publishes an egg to the admin catalog.
func (c *Client) CreateEgg(req CreateEggRequest) (Egg, error) {
	var env eggEnvelope
	if err := c.do(http.MethodPost, "/api/admin/eggs", req, &env); err != nil {
		return Egg{}, err
	}

	return env.Attributes, nil
}

// DeleteEgg removes an egg by its public identifier.
func (c *Client) DeleteEgg(eggID int) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/admin/eggs/%d", eggID), nil, nil)
}

func (c *Client) do(method, path string, payload, target any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}

		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", fmt.Sprintf("panelctl/%s", app.Version))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("panel request failed: %w", err)
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, data)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	return nil
}

func parseAPIError(statusCode int, body []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil || len(apiErr.Errors) == 0 {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > 200 {
			snippet = snippet[:200] + "..."
		}

		if snippet == "" {
			return fmt.Errorf("panel returned HTTP %d (empty response)", statusCode)
		}

		return fmt.Errorf("panel returned HTTP %d: %s", statusCode, snippet)
	}

	apiErr.Status = statusCode
	return &apiErr
}
