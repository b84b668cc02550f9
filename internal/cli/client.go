package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"agentboard/internal/api"
	"agentboard/internal/types"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) ListTasks(status string) (*api.ListTasksResponse, error) {
	endpoint := c.baseURL + "/tasks/list"
	if status != "" {
		endpoint += "?status=" + url.QueryEscape(status)
	}

	var resp api.ListTasksResponse
	if err := c.getJSON(endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetTask(taskID string) (*types.TaskRecord, error) {
	endpoint := c.baseURL + "/tasks/status?task_id=" + url.QueryEscape(taskID)

	var resp api.TaskStatusResponse
	if err := c.getJSON(endpoint, &resp); err != nil {
		return nil, err
	}
	if resp.Task == nil {
		return nil, fmt.Errorf("task %s not found", taskID)
	}
	return resp.Task, nil
}

func (c *Client) GetTerminal(taskID string) (*api.TerminalResponse, error) {
	endpoint := c.baseURL + "/terminal/" + url.PathEscape(taskID)

	var resp api.TerminalResponse
	if err := c.getJSON(endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) StopWorkers() (*types.StopResult, error) {
	resp, err := c.httpClient.Post(c.baseURL+"/stop", "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("post request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result types.StopResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &result, nil
}

func (c *Client) SystemStatus() (*types.SystemStatus, error) {
	var status types.SystemStatus
	if err := c.getJSON(c.baseURL+"/system-status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) ListMilestones(limit int) (*api.MilestonesResponse, error) {
	endpoint := c.baseURL + "/knowledge/milestones"
	if limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(limit)
	}

	var resp api.MilestonesResponse
	if err := c.getJSON(endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) getJSON(endpoint string, out interface{}) error {
	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return fmt.Errorf("get request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
