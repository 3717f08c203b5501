package memory

import (
	"testing"
	"time"

	"krishisahay-be/pkg/llm"
)

func testResult(answer string) *llm.GenerationResult {
	return &llm.GenerationResult{Answer: answer, Confidence: 0.92}
}

func TestResponseCacheHit(t *testing.T) {
	c := NewResponseCache(time.Minute)
	c.Put("how to control aphids?", testResult("spray neem oil"))

	got, found := c.Get("how to control aphids?")
	if !found {
		t.Fatal("expected hit")
	}
	if got.Answer != "spray neem oil" {
		t.Errorf("Answer = %q", got.Answer)
	}
}

func TestResponseCacheKeyNormalization(t *testing.T) {
	c := NewResponseCache(time.Minute)
	c.Put("How to control APHIDS?", testResult("spray neem oil"))

	// Case and extra whitespace collapse to the same entry.
	if _, found := c.Get("  how to   control aphids?  "); !found {
		t.Error("case/whitespace variant missed the cache")
	}
	if c.Key("How to control APHIDS?") != c.Key("how to control aphids?") {
		t.Error("keys differ for case variants")
	}
	if c.Size() != 1 {
		t.Errorf("Size = %d, want 1", c.Size())
	}
}

func TestResponseCacheExpiry(t *testing.T) {
	c := NewResponseCache(time.Minute)
	current := time.Now()
	c.now = func() time.Time { return current }

	c.Put("query", testResult("answer"))

	current = current.Add(30 * time.Second)
	if _, found := c.Get("query"); !found {
		t.Fatal("entry expired too early")
	}

	current = current.Add(31 * time.Second)
	if _, found := c.Get("query"); found {
		t.Fatal("expired entry returned")
	}

	// Lazy eviction removed the entry on the missed lookup.
	if c.Size() != 0 {
		t.Errorf("Size after expiry = %d, want 0", c.Size())
	}
}

func TestResponseCacheClear(t *testing.T) {
	c := NewResponseCache(time.Minute)
	c.Put("a", testResult("1"))
	c.Put("b", testResult("2"))
	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size after clear = %d, want 0", c.Size())
	}
}
