package search

import (
	"testing"

	"krishisahay-be/pkg/knowledge"
)

func TestScoreAphidScenario(t *testing.T) {
	table := knowledge.DefaultTable()
	query := "How to control aphids in mustard?"
	intent := Classify(query)
	if intent.Type != IntentPestControl {
		t.Fatalf("intent = %q, want pest_control", intent.Type)
	}

	results := Score(Expand(query), intent, table)
	if len(results) == 0 {
		t.Fatal("no results for aphid query")
	}
	if results[0].Entry.Topic != "aphids" {
		t.Errorf("top entry = %q, want aphids", results[0].Entry.Topic)
	}
	// topic +10, mustard +4, boosted by 1.2 for the pest intent
	if results[0].Score < 14*1.2 {
		t.Errorf("top score = %v, want >= %v", results[0].Score, 14*1.2)
	}
}

func TestScoreNoMatches(t *testing.T) {
	table := knowledge.DefaultTable()
	query := "asdkjasdkj nonsense query"
	results := Score(Expand(query), Classify(query), table)
	if len(results) != 0 {
		t.Errorf("expected empty result list, got %d entries", len(results))
	}
}

func TestScoreCapsAtTopK(t *testing.T) {
	table := knowledge.DefaultTable()
	// Touches every pest entry plus tomato-based entries.
	query := "pest control for aphids whitefly fruit borer leaf spot in tomato cotton"
	results := Score(Expand(query), Classify(query), table)
	if len(results) != TopK {
		t.Errorf("result count = %d, want %d", len(results), TopK)
	}
}

func TestScoreDeterministic(t *testing.T) {
	table := knowledge.DefaultTable()
	query := "pest problems in tomato and cotton"
	intent := Classify(query)
	expanded := Expand(query)

	first := Score(expanded, intent, table)
	for i := 0; i < 10; i++ {
		again := Score(expanded, intent, table)
		if len(again) != len(first) {
			t.Fatalf("run %d: length %d, want %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j].Entry.Topic != first[j].Entry.Topic || again[j].Score != first[j].Score {
				t.Fatalf("run %d: order diverged at %d: %q vs %q",
					i, j, again[j].Entry.Topic, first[j].Entry.Topic)
			}
		}
	}
}

func TestScoreTieKeepsInsertionOrder(t *testing.T) {
	table := knowledge.NewTable([]knowledge.Entry{
		{Topic: "alpha blight", Category: knowledge.CategoryDisease, Solution: "spray"},
		{Topic: "beta blight", Category: knowledge.CategoryDisease, Solution: "spray"},
	})

	// Neither topic appears in the query; both score identically via the
	// category keyword.
	results := Score([]string{"disease in field"}, Intent{Type: IntentGeneral}, table)
	if len(results) != 2 {
		t.Fatalf("result count = %d, want 2", len(results))
	}
	if results[0].Entry.Topic != "alpha blight" || results[1].Entry.Topic != "beta blight" {
		t.Errorf("tie order broken: got %q then %q", results[0].Entry.Topic, results[1].Entry.Topic)
	}
}

func TestScoreIntentBoostReorders(t *testing.T) {
	table := knowledge.NewTable([]knowledge.Entry{
		{Topic: "root rot", Category: knowledge.CategoryDisease},
		{Topic: "stem borer", Category: knowledge.CategoryPest},
	})

	intent := Intent{Type: IntentPestControl}
	results := Score([]string{"root rot and stem borer trouble"}, intent, table)
	if len(results) != 2 {
		t.Fatalf("result count = %d, want 2", len(results))
	}
	// Both match their topic for +10; the pest entry is boosted to 12.
	if results[0].Entry.Topic != "stem borer" {
		t.Errorf("boosted entry not first: got %q", results[0].Entry.Topic)
	}
	if results[0].Score != 12 {
		t.Errorf("boosted score = %v, want 12", results[0].Score)
	}
}
