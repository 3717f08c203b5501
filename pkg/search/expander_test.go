package search

import "testing"

func TestExpand(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantFirst    string
		wantContains []string
		wantAbsent   []string
	}{
		{
			name:      "no synonyms returns original only",
			query:     "aphids in mustard",
			wantFirst: "aphids in mustard",
		},
		{
			name:      "pest expands to insect variants",
			query:     "pest attack",
			wantFirst: "pest attack",
			wantContains: []string{
				"insect attack", "bug attack", "parasite attack", "infestation attack",
			},
		},
		{
			name:       "whole word only",
			query:      "pesticide usage",
			wantFirst:  "pesticide usage",
			wantAbsent: []string{"insecticide usage"},
		},
		{
			name:      "normalizes case and whitespace",
			query:     "  Control   PESTS  ",
			wantFirst: "control pests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand(tt.query)
			if len(got) == 0 {
				t.Fatal("Expand returned empty set")
			}
			if got[0] != tt.wantFirst {
				t.Errorf("first element = %q, want %q", got[0], tt.wantFirst)
			}
			set := make(map[string]bool, len(got))
			for _, q := range got {
				set[q] = true
			}
			for _, want := range tt.wantContains {
				if !set[want] {
					t.Errorf("expansion missing %q (got %v)", want, got)
				}
			}
			for _, absent := range tt.wantAbsent {
				if set[absent] {
					t.Errorf("expansion should not contain %q", absent)
				}
			}
		})
	}
}

// Synonym lookup is single-hop: a variant whose only expandable word was
// already replaced yields no further terms, so chains never grow.
func TestExpandSingleHop(t *testing.T) {
	first := Expand("pest problem")
	if len(first) != 5 {
		t.Fatalf("expected 5 expansions, got %d: %v", len(first), first)
	}

	for _, variant := range first[1:] {
		again := Expand(variant)
		if len(again) != 1 || again[0] != variant {
			t.Errorf("variant %q chained further: %v", variant, again)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  How  to control APHIDS?  "); got != "how to control aphids?" {
		t.Errorf("Normalize = %q", got)
	}
}
