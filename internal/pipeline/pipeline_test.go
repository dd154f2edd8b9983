package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/veritaslab/veritas/internal/cache"
	"github.com/veritaslab/veritas/internal/llm"
	"github.com/veritaslab/veritas/internal/model"
	"github.com/veritaslab/veritas/internal/store"
)

type fakeProvider struct {
	reply string
	err   error
	calls int
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

func (p *fakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func TestChecker_Check_Success(t *testing.T) {
	provider := &fakeProvider{
		reply: `{"verdict": "False", "confidence_score": 92.5, "explanation": "Too short.", "key_evidence": ["records"]}`,
	}
	st := store.NewMemoryStore()
	checker := NewChecker(provider, st, Options{})

	rec, err := checker.Check(context.Background(), "The Eiffel Tower is taller than 400 meters", "session-1")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if rec.ID != 1 {
		t.Errorf("expected first record id 1, got %d", rec.ID)
	}
	if rec.Verdict != model.VerdictFalse {
		t.Errorf("expected False, got %s", rec.Verdict)
	}
	if rec.ConfidenceScore != 92.5 {
		t.Errorf("expected confidence 92.5, got %v", rec.ConfidenceScore)
	}
	if rec.SessionID != "session-1" {
		t.Errorf("expected session id preserved, got %q", rec.SessionID)
	}
	if rec.Sources == "" {
		t.Error("expected sources filled from category defaults")
	}
	if _, err := time.Parse(time.RFC3339, rec.Timestamp); err != nil {
		t.Errorf("timestamp not RFC 3339: %q", rec.Timestamp)
	}

	records, _ := st.List(context.Background(), 10, 0)
	if len(records) != 1 {
		t.Errorf("expected exactly one stored record, got %d", len(records))
	}
}

func TestChecker_Check_BackendFailureDegrades(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	st := store.NewMemoryStore()
	checker := NewChecker(provider, st, Options{})

	rec, err := checker.Check(context.Background(), "Anything at all really", "")
	if err != nil {
		t.Fatalf("Check must not fail on backend errors: %v", err)
	}
	if rec.Verdict != model.VerdictUnverified {
		t.Errorf("expected Unverified fallback, got %s", rec.Verdict)
	}
	if rec.ConfidenceScore != 30 {
		t.Errorf("expected fallback confidence 30, got %v", rec.ConfidenceScore)
	}
	if !strings.Contains(rec.Explanation, "service unavailability") {
		t.Errorf("expected explanation to mention the failure, got %q", rec.Explanation)
	}

	// Even a failed check appends exactly one record
	records, _ := st.List(context.Background(), 10, 0)
	if len(records) != 1 {
		t.Errorf("expected exactly one stored record, got %d", len(records))
	}
}

func TestChecker_Check_CacheShortCircuits(t *testing.T) {
	provider := &fakeProvider{
		reply: `{"verdict": "True", "confidence_score": 90, "explanation": "Known fact."}`,
	}
	st := store.NewMemoryStore()
	checker := NewChecker(provider, st, Options{Cache: cache.NewResultCache(time.Minute)})
	ctx := context.Background()

	first, err := checker.Check(ctx, "Water boils at 100 celsius", "s1")
	if err != nil {
		t.Fatalf("first Check failed: %v", err)
	}
	second, err := checker.Check(ctx, "Water   boils at 100 celsius", "s2")
	if err != nil {
		t.Fatalf("second Check failed: %v", err)
	}

	if provider.calls != 1 {
		t.Errorf("expected a single backend call, got %d", provider.calls)
	}
	if second.Verdict != first.Verdict || second.ConfidenceScore != first.ConfidenceScore {
		t.Error("cache hit must reuse the cached verdict")
	}
	if second.ID == first.ID {
		t.Error("cache hit must still append a fresh record")
	}
	if second.SessionID != "s2" {
		t.Errorf("cache hit must carry the new session id, got %q", second.SessionID)
	}

	records, _ := st.List(ctx, 10, 0)
	if len(records) != 2 {
		t.Errorf("expected two stored records, got %d", len(records))
	}
}

func TestChecker_Check_CategoryAdjustment(t *testing.T) {
	provider := &fakeProvider{
		reply: `{"verdict": "True", "confidence_score": 100, "explanation": "Arithmetic."}`,
	}
	checker := NewChecker(provider, store.NewMemoryStore(), Options{})

	rec, err := checker.Check(context.Background(), "2 + 2 = 4", "")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	// Live backend replies to mathematical claims are capped at 99.5
	if rec.ConfidenceScore != 99.5 {
		t.Errorf("expected adjusted confidence 99.5, got %v", rec.ConfidenceScore)
	}
}

func TestChecker_Check_DemoConfidenceVerbatim(t *testing.T) {
	checker := NewChecker(llm.NewDemoProvider(), store.NewMemoryStore(), Options{})

	rec, err := checker.Check(context.Background(), "2 + 2 = 4", "")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if rec.Verdict != model.VerdictTrue {
		t.Errorf("expected True, got %s", rec.Verdict)
	}
	// Canned demo replies state their confidence directly; the
	// mathematical cap must not turn 100 into 99.5
	if rec.ConfidenceScore != 100 {
		t.Errorf("expected demo confidence 100, got %v", rec.ConfidenceScore)
	}
}

func TestChecker_Check_FallbackConfidenceVerbatim(t *testing.T) {
	provider := &fakeProvider{err: errors.New("timeout")}
	checker := NewChecker(provider, store.NewMemoryStore(), Options{})

	rec, err := checker.Check(context.Background(), "2 + 2 = 5", "")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	// The fallback's 30 must not be rescaled to 24 for mathematical claims
	if rec.ConfidenceScore != 30 {
		t.Errorf("expected fallback confidence 30, got %v", rec.ConfidenceScore)
	}
}

func TestChecker_Check_GarbageReplyStillRecords(t *testing.T) {
	provider := &fakeProvider{reply: "beep boop no verdict whatsoever"}
	st := store.NewMemoryStore()
	checker := NewChecker(provider, st, Options{})

	rec, err := checker.Check(context.Background(), "Some unparseable situation", "")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if rec.Verdict != model.VerdictUnverified {
		t.Errorf("expected Unverified for unparseable reply, got %s", rec.Verdict)
	}
	if rec.ConfidenceScore != 50 {
		t.Errorf("expected neutral confidence 50, got %v", rec.ConfidenceScore)
	}
}
