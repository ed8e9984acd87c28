//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"testing"
)

// TestHealthz verifies the liveness probe answers without credentials.
func TestHealthz(t *testing.T) {
	resp, err := client.Get(stagingURL + "/healthz")
	if err != nil {
		t.Fatalf("Failed to reach healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

// TestReadyz verifies the readiness probe reports a healthy backing store.
func TestReadyz(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/readyz", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}

	var status struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if status.Status != "ok" {
		t.Errorf("Expected status %q, got %q", "ok", status.Status)
	}
}

// TestMetricsExposed verifies Prometheus metrics are scrapeable.
func TestMetricsExposed(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/metrics", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if len(body) == 0 {
		t.Error("Expected a non-empty metrics payload")
	}
}
