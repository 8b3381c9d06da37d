// Package decision contains adapters for the external decision-service
// agents. Every call is a single best-effort round trip: no retries and no
// circuit breaking. The supervisor decides at each call site whether a
// failure is tolerable.
package decision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// agentClient is the shared HTTP plumbing for one agent endpoint. The
// client timeout is the only cancellation mechanism on in-flight calls.
type agentClient struct {
	baseURL    string
	httpClient *http.Client
}

func newAgentClient(baseURL string, timeout time.Duration) agentClient {
	return agentClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *agentClient) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("agent returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// probe hits the agent's /health endpoint. A probe never raises: any
// transport or status failure degrades to false.
func (c *agentClient) probe(ctx context.Context) bool {
	var health struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return false
	}
	return health.Status == "healthy"
}

// Agent timestamps come back as ISO 8601, with or without an offset.
func parseAgentTime(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
