package search

import (
	"sort"
	"strings"

	"krishisahay-be/pkg/knowledge"
)

// TopK caps the ranked result list.
const TopK = 3

// intentBoost multiplies the raw score of entries whose category aligns
// with the detected intent, applied once before the final sort.
const intentBoost = 1.2

// ScoredResult pairs a knowledge entry with its relevance for one query.
type ScoredResult struct {
	Entry        knowledge.Entry `json:"entry"`
	Score        float64         `json:"score"`
	MatchedTerms []string        `json:"matched_terms,omitempty"`
}

// Score ranks the knowledge table against the expanded query set and the
// detected intent. Entries scoring zero are excluded; ties keep the table's
// insertion order; the result is capped to TopK. Score is deterministic for
// a given input.
func Score(expanded []string, intent Intent, table *knowledge.Table) []ScoredResult {
	blob := strings.ToLower(strings.Join(expanded, " "))
	blobWords := make(map[string]bool)
	for _, w := range strings.Fields(blob) {
		blobWords[w] = true
	}

	aligned := intent.Type.AlignedCategory()

	var results []ScoredResult
	for _, entry := range table.Entries() {
		score, matched := scoreEntry(blob, blobWords, entry)
		if score <= 0 {
			continue
		}
		if aligned != "" && string(entry.Category) == aligned {
			score *= intentBoost
		}
		results = append(results, ScoredResult{
			Entry:        entry,
			Score:        score,
			MatchedTerms: matched,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > TopK {
		results = results[:TopK]
	}
	return results
}

func scoreEntry(blob string, blobWords map[string]bool, entry knowledge.Entry) (float64, []string) {
	var score float64
	var matched []string

	if strings.Contains(blob, entry.Topic) {
		score += 10
		matched = append(matched, entry.Topic)
	}

	for _, crop := range entry.Crops {
		if strings.Contains(blob, strings.ToLower(crop)) {
			score += 4
			matched = append(matched, crop)
		}
	}

	if strings.Contains(blob, string(entry.Category)) {
		score += 3
		matched = append(matched, string(entry.Category))
	}

	for _, symptom := range entry.Symptoms {
		if strings.Contains(blob, strings.ToLower(symptom)) {
			score += 2
			matched = append(matched, symptom)
		}
	}

	for _, word := range strings.Fields(strings.ToLower(entry.Solution)) {
		if blobWords[strings.Trim(word, ".,()")] {
			score += 0.5
		}
	}

	return score, matched
}
