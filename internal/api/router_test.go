package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/omnara-ai/webhook-server/internal/config"
	"go.uber.org/zap"
)

const testAPIKey = "test-key"

var agentIDPattern = regexp.MustCompile(`^agent_\d{8}_\d{6}$`)

// newTestApp builds the full app with rate limits high enough for
// request loops.
func newTestApp() *App {
	cfg := &config.Config{
		APIKey:         testAPIKey,
		Port:           8080,
		AllowedOrigins: []string{"https://omnara.com", "http://localhost:3000"},
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		LogLevel:       "info",
	}
	return NewApp(cfg, zap.NewNop())
}

func doRequest(app *App, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func authed(body string) (string, map[string]string) {
	return body, map[string]string{"X-API-Key": testAPIKey}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("invalid response body %q: %v", rec.Body.String(), err)
	}
	return m
}

func TestWebhook_RequiresAPIKey(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"missing header", nil},
		{"wrong key", map[string]string{"X-API-Key": "wrong"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(app, http.MethodPost, "/webhook", `{"action":"deploy"}`, tt.headers)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			if body := decodeBody(t, rec); body["error"] != "invalid API key" {
				t.Errorf("error = %v, want invalid API key", body["error"])
			}
		})
	}
}

func TestWebhook_UnknownActions(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{"unrecognized action", `{"action":"restart"}`, "Action 'restart' received"},
		{"absent action", `{"data":{"k":"v"}}`, "Action 'unknown' received"},
		{"empty object", `{}`, "Action 'unknown' received"},
		// A JSON null decodes to the zero payload, so it acknowledges
		// like an absent action.
		{"null body", `null`, "Action 'unknown' received"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, headers := authed(tt.body)
			rec := doRequest(app, http.MethodPost, "/webhook", body, headers)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}

			resp := decodeBody(t, rec)
			if resp["status"] != "success" {
				t.Errorf("status = %v, want success", resp["status"])
			}
			if resp["message"] != tt.wantMessage {
				t.Errorf("message = %v, want %q", resp["message"], tt.wantMessage)
			}
		})
	}
}

func TestWebhook_CreateAgent(t *testing.T) {
	app := newTestApp()

	body, headers := authed(`{"action":"create_agent","data":{"name":"x"}}`)
	rec := doRequest(app, http.MethodPost, "/webhook", body, headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeBody(t, rec)
	if resp["status"] != "success" {
		t.Errorf("status = %v, want success", resp["status"])
	}
	agentID, _ := resp["agent_id"].(string)
	if !agentIDPattern.MatchString(agentID) {
		t.Errorf("agent_id = %q, want match for %s", agentID, agentIDPattern)
	}
	config, _ := resp["config"].(map[string]any)
	if config["name"] != "x" {
		t.Errorf("config = %v, want name echoed", resp["config"])
	}
}

func TestWebhook_Deploy(t *testing.T) {
	app := newTestApp()

	body, headers := authed(`{"action":"deploy","data":{"environment":"staging","version":"2.1"}}`)
	rec := doRequest(app, http.MethodPost, "/webhook", body, headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeBody(t, rec)
	want := map[string]any{
		"status":      "success",
		"message":     "Deployment initiated",
		"environment": "staging",
		"version":     "2.1",
	}
	for k, v := range want {
		if resp[k] != v {
			t.Errorf("%s = %v, want %v", k, resp[k], v)
		}
	}
}

func TestWebhook_CodeReview(t *testing.T) {
	app := newTestApp()

	body, headers := authed(`{"action":"code_review","data":{"repository":"r","branch":"dev"}}`)
	rec := doRequest(app, http.MethodPost, "/webhook", body, headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeBody(t, rec)
	want := map[string]any{
		"status":     "success",
		"message":    "Code review initiated",
		"repository": "r",
		"branch":     "dev",
	}
	for k, v := range want {
		if resp[k] != v {
			t.Errorf("%s = %v, want %v", k, resp[k], v)
		}
	}
}

func TestWebhook_MalformedJSON(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name string
		body string
	}{
		{"truncated", `{"action":`},
		{"trailing content", `{"action":"restart"} leftover`},
		{"second document", `{"action":"a"}{"action":"b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, headers := authed(tt.body)
			rec := doRequest(app, http.MethodPost, "/webhook", body, headers)
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
			}
			if resp := decodeBody(t, rec); resp["error"] == "" {
				t.Error("expected error text in body")
			}
		})
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp()

	rec := doRequest(app, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeBody(t, rec)
	if resp["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", resp["status"])
	}
	ts, _ := resp["timestamp"].(string)
	if _, err := time.Parse(time.RFC3339Nano, ts); err != nil {
		t.Errorf("timestamp %q is not RFC 3339: %v", ts, err)
	}
}

func TestRoot(t *testing.T) {
	app := newTestApp()

	rec := doRequest(app, http.MethodGet, "/", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeBody(t, rec)
	if resp["service"] != "Omnara Webhook Server" {
		t.Errorf("service = %v, want Omnara Webhook Server", resp["service"])
	}
	if resp["status"] != "online" {
		t.Errorf("status = %v, want online", resp["status"])
	}
	if resp["version"] != "1.0.0" {
		t.Errorf("version = %v, want 1.0.0", resp["version"])
	}
	endpoints, _ := resp["endpoints"].(map[string]any)
	if endpoints["webhook"] != "/webhook" || endpoints["health"] != "/health" || endpoints["agents"] != "/api/agents" {
		t.Errorf("endpoints = %v", resp["endpoints"])
	}
}

func TestAgents_ListStaticAfterCreates(t *testing.T) {
	app := newTestApp()

	// Create agents both through the webhook and the direct endpoint.
	body, headers := authed(`{"action":"create_agent","data":{"name":"x"}}`)
	for i := 0; i < 2; i++ {
		if rec := doRequest(app, http.MethodPost, "/webhook", body, headers); rec.Code != http.StatusOK {
			t.Fatalf("webhook create %d: status = %d", i, rec.Code)
		}
	}
	if rec := doRequest(app, http.MethodPost, "/api/agents", `{"name":"y"}`, nil); rec.Code != http.StatusOK {
		t.Fatalf("direct create: status = %d", rec.Code)
	}

	rec := doRequest(app, http.MethodGet, "/api/agents", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeBody(t, rec)
	agents, _ := resp["agents"].([]any)
	if len(agents) != 2 {
		t.Fatalf("agents = %v, want the two fixed descriptors", resp["agents"])
	}
	first, _ := agents[0].(map[string]any)
	second, _ := agents[1].(map[string]any)
	if first["id"] != "agent_1" || first["status"] != "running" || first["created"] != "2024-01-01" {
		t.Errorf("first agent = %v", first)
	}
	if second["id"] != "agent_2" || second["status"] != "stopped" || second["created"] != "2024-01-02" {
		t.Errorf("second agent = %v", second)
	}
}

func TestAgents_CreateWithoutAuth(t *testing.T) {
	app := newTestApp()

	rec := doRequest(app, http.MethodPost, "/api/agents", `{"name":"x"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (no auth on direct endpoint)", rec.Code, http.StatusOK)
	}

	resp := decodeBody(t, rec)
	if resp["message"] != "Agent created successfully" {
		t.Errorf("message = %v, want Agent created successfully", resp["message"])
	}
}

func TestWebhook_ConcurrentCreatesUniqueIDs(t *testing.T) {
	app := newTestApp()

	const n = 20
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body, headers := authed(`{"action":"create_agent"}`)
			rec := doRequest(app, http.MethodPost, "/webhook", body, headers)
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
				ids <- ""
				return
			}
			var resp struct {
				AgentID string `json:"agent_id"`
			}
			_ = json.Unmarshal(rec.Body.Bytes(), &resp)
			ids <- resp.AgentID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		if id == "" {
			continue
		}
		if seen[id] {
			t.Fatalf("duplicate agent id issued: %s", id)
		}
		seen[id] = true
	}
}

func TestWebhook_CORSPreflight(t *testing.T) {
	app := newTestApp()

	headers := map[string]string{
		"Origin":                         "https://omnara.com",
		"Access-Control-Request-Method":  http.MethodPost,
		"Access-Control-Request-Headers": "X-API-Key, Content-Type",
	}
	rec := doRequest(app, http.MethodOptions, "/webhook", "", headers)

	// Preflights carry no API key; they must not hit auth.
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://omnara.com" {
		t.Errorf("Allow-Origin = %q, want the request origin", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q, want true", got)
	}
}

func TestMetrics(t *testing.T) {
	app := newTestApp()

	// Generate one request so counters are non-zero.
	doRequest(app, http.MethodGet, "/health", "", nil)

	rec := doRequest(app, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeBody(t, rec)
	count, _ := resp["request_count"].(float64)
	if count < 1 {
		t.Errorf("request_count = %v, want >= 1", resp["request_count"])
	}
	if _, ok := resp["go_version"]; !ok {
		t.Error("expected go_version in metrics")
	}
}
