package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/veritaslab/veritas/internal/llm"
	"github.com/veritaslab/veritas/internal/model"
	"github.com/veritaslab/veritas/internal/pipeline"
	"github.com/veritaslab/veritas/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	checker := pipeline.NewChecker(llm.NewDemoProvider(), st, pipeline.Options{})
	cfg := model.ServerConfig{
		Host:        "127.0.0.1",
		Port:        0,
		CORSOrigins: []string{"http://localhost:3000"},
	}
	return NewServer(checker, st, cfg, zap.NewNop()), st
}

func doRequest(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHandleCheck_Success(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(t, srv, http.MethodPost, "/check", `{"claim": "The Earth is flat", "session_id": "s1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var rec model.Record
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if rec.Verdict != model.VerdictFalse {
		t.Errorf("expected False verdict, got %s", rec.Verdict)
	}
	if rec.ConfidenceScore < 99 {
		t.Errorf("expected high confidence, got %v", rec.ConfidenceScore)
	}
	if rec.ID != 1 {
		t.Errorf("expected record id 1, got %d", rec.ID)
	}
	if rec.SessionID != "s1" {
		t.Errorf("expected session id echoed, got %q", rec.SessionID)
	}
}

func TestHandleCheck_Validation(t *testing.T) {
	srv, st := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed body", `{not json`},
		{"too short", `{"claim": "hi"}`},
		{"whitespace only", `{"claim": "        "}`},
		{"too long", fmt.Sprintf(`{"claim": %q}`, strings.Repeat("x", 1001))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, srv, http.MethodPost, "/check", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}

	// Rejected claims never reach the store
	records, _ := st.List(context.Background(), 10, 0)
	if len(records) != 0 {
		t.Errorf("expected no stored records, got %d", len(records))
	}
}

func TestHandleHistory_TruncationAndPagination(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()

	long := strings.Repeat("e", 300)
	for i := 0; i < 60; i++ {
		rec := model.Record{
			Claim:       fmt.Sprintf("claim %d", i+1),
			Verdict:     model.VerdictTrue,
			Explanation: long,
			Timestamp:   "2024-01-15T10:30:00Z",
		}
		if err := st.Add(ctx, &rec); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	w := doRequest(t, srv, http.MethodGet, "/history?limit=10&offset=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var entries []historyEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(entries) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(entries))
	}
	if entries[0].ID != 55 || entries[9].ID != 46 {
		t.Errorf("expected ids 55..46, got %d..%d", entries[0].ID, entries[9].ID)
	}
	for _, e := range entries {
		if len(e.Explanation) != historySummaryLen+3 || !strings.HasSuffix(e.Explanation, "...") {
			t.Errorf("expected truncated explanation with ellipsis, got %d chars", len(e.Explanation))
			break
		}
	}
}

func TestHandleHistory_TruncationKeepsRunesIntact(t *testing.T) {
	srv, st := newTestServer(t)

	rec := model.Record{
		Claim:       "bulleted evidence",
		Verdict:     model.VerdictTrue,
		Explanation: strings.Repeat("•", 300),
		Timestamp:   "2024-01-15T10:30:00Z",
	}
	if err := st.Add(context.Background(), &rec); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	w := doRequest(t, srv, http.MethodGet, "/history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var entries []historyEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if !utf8.ValidString(entries[0].Explanation) {
		t.Fatal("truncated explanation is not valid UTF-8")
	}
	if got := len([]rune(entries[0].Explanation)); got != historySummaryLen+3 {
		t.Errorf("expected %d runes, got %d", historySummaryLen+3, got)
	}
}

func TestHandleCheck_LengthCountsRunes(t *testing.T) {
	srv, _ := newTestServer(t)

	// 1000 characters but 2000 bytes; must pass the length check
	w := doRequest(t, srv, http.MethodPost, "/check", fmt.Sprintf(`{"claim": %q}`, strings.Repeat("é", 1000)))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for 1000-character claim, got %d: %s", w.Code, w.Body.String())
	}

	// 4 characters even though 8 bytes; must be rejected
	w = doRequest(t, srv, http.MethodPost, "/check", fmt.Sprintf(`{"claim": %q}`, strings.Repeat("é", 4)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for 4-character claim, got %d", w.Code)
	}
}

func TestHandleHistory_DefaultsAndEmpty(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("expected empty array, got %s", w.Body.String())
	}

	// Bad query values fall back to defaults instead of erroring
	w = doRequest(t, srv, http.MethodGet, "/history?limit=abc&offset=-4", "")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for malformed pagination, got %d", w.Code)
	}
}

func TestHandleStats(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, claim := range []string{"The Earth is flat", "Paris is the capital of France"} {
		w := doRequest(t, srv, http.MethodPost, "/check", fmt.Sprintf(`{"claim": %q}`, claim))
		if w.Code != http.StatusOK {
			t.Fatalf("check failed: %d", w.Code)
		}
	}

	w := doRequest(t, srv, http.MethodGet, "/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var stats model.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if stats.Total != 2 {
		t.Errorf("expected 2 total, got %d", stats.Total)
	}
	if stats.Verdicts[model.VerdictTrue] != 1 || stats.Verdicts[model.VerdictFalse] != 1 {
		t.Errorf("unexpected verdict counts: %v", stats.Verdicts)
	}
}

func TestHandleClearHistory(t *testing.T) {
	srv, st := newTestServer(t)

	w := doRequest(t, srv, http.MethodPost, "/check", `{"claim": "The Earth is flat"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("check failed: %d", w.Code)
	}

	w = doRequest(t, srv, http.MethodDelete, "/history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	records, _ := st.List(context.Background(), 10, 0)
	if len(records) != 0 {
		t.Errorf("expected empty history after clear, got %d", len(records))
	}
}

func TestHandleHealthAndRoot(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"healthy"`) {
		t.Errorf("unexpected health body: %s", w.Body.String())
	}

	w = doRequest(t, srv, http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/check", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("unexpected allow-origin: %q", got)
	}

	// Unlisted origins get no CORS headers
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no allow-origin header, got %q", got)
	}
}
