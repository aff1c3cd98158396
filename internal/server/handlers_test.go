package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"essayqa/config"
	"essayqa/internal/adapter/encoding"
	"essayqa/internal/domain"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Encoder.Provider = "mock"
	cfg.Encoder.Dimension = 16
	return New(cfg, encoding.NewMockEncoder(16))
}

func postAnswers(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/answers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error body %q: %v", rec.Body.String(), err)
	}
	return resp["error"]
}

func TestAnswers_Success(t *testing.T) {
	s := newTestServer(t)

	body := `{"essay": "Title\nThis is the content under the title. This is a sentence.",
	          "queries": ["What is under the title?", "What else?"]}`
	rec := postAnswers(t, s, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Answers []string `json:"answers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Answers) != 2 {
		t.Errorf("expected one answer per query, got %v", resp.Answers)
	}
}

func TestAnswers_Validation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"missing essay", `{"queries": ["q"]}`, "Essay cannot be empty."},
		{"whitespace essay", `{"essay": "   ", "queries": ["q"]}`, "Essay cannot be empty."},
		{"non-string essay", `{"essay": 42, "queries": ["q"]}`, "Essay must be a string."},
		{"null essay", `{"essay": null, "queries": ["q"]}`, "Essay must be a string."},
		{"missing queries", `{"essay": "Some essay text."}`, "Queries list cannot be empty."},
		{"empty queries", `{"essay": "Some essay text.", "queries": []}`, "Queries list cannot be empty."},
		{"non-string query", `{"essay": "Some essay text.", "queries": ["ok", 7]}`, "Queries must be a list of strings."},
		{"null query", `{"essay": "Some essay text.", "queries": [null]}`, "Queries must be a list of strings."},
		{"queries not a list", `{"essay": "Some essay text.", "queries": "q"}`, "Queries must be a list of strings."},
		{"bad mode", `{"essay": "Some essay text.", "queries": ["q"], "mode": "psychic"}`, "Mode must be one of: flat, section, two-tier."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postAnswers(t, s, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if got := decodeError(t, rec); got != tt.wantMsg {
				t.Errorf("expected error %q, got %q", tt.wantMsg, got)
			}
		})
	}
}

func TestAnswers_TwoTierHeadingsOnly(t *testing.T) {
	s := newTestServer(t)

	body := `{"essay": "Subtitle\nSubtitle2\n", "queries": ["anything?"], "mode": "two-tier"}`
	rec := postAnswers(t, s, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Answers []string `json:"answers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Answers) != 0 {
		t.Errorf("expected no answers for a headings-only essay, got %v", resp.Answers)
	}
}

func TestAnswers_Detailed(t *testing.T) {
	s := newTestServer(t)

	body := `{"essay": "Body sentence one. Body sentence two.",
	          "queries": ["a question?"], "detailed": true}`
	rec := postAnswers(t, s, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Answers []domain.RankedAnswer `json:"answers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Answers) != 1 {
		t.Fatalf("expected 1 detailed answer, got %d", len(resp.Answers))
	}
	if resp.Answers[0].Query != "a question?" || resp.Answers[0].Answer == "" {
		t.Errorf("unexpected detailed answer: %+v", resp.Answers[0])
	}
}

func TestAnswers_SectionMode(t *testing.T) {
	s := newTestServer(t)

	body := `{"essay": "One plain paragraph of body text. It has two sentences.",
	          "queries": ["where is this?"], "mode": "section"}`
	rec := postAnswers(t, s, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Answers []string `json:"answers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Answers) != 1 || resp.Answers[0] != "Introduction" {
		t.Errorf("expected [Introduction], got %v", resp.Answers)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("expected body ok, got %q", rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	e := s.Routes()

	// Generate one request so the counters exist.
	req := httptest.NewRequest(http.MethodPost, "/answers",
		strings.NewReader(`{"essay": "Some body text here. And some more.", "queries": ["q"]}`))
	req.Header.Set("Content-Type", "application/json")
	e.ServeHTTP(httptest.NewRecorder(), req)

	metricsReq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, metricsReq)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "essayqa_answer_requests_total") {
		t.Error("expected request counter in metrics output")
	}
}
