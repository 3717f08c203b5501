package search

import "strings"

// synonyms is the static single-hop expansion table. Lookups are not
// chained: a synonym's own synonyms are never followed, which bounds the
// expansion size and makes Expand idempotent over its own output.
var synonyms = map[string][]string{
	"pest":       {"insect", "bug", "parasite", "infestation"},
	"disease":    {"infection", "sickness", "ailment", "disorder"},
	"fertilizer": {"nutrient", "manure", "compost", "feed"},
	"crop":       {"plant", "vegetation", "produce", "harvest"},
	"control":    {"manage", "eliminate", "remove", "treat"},
	"organic":    {"natural", "bio", "eco-friendly", "chemical-free"},
	"yield":      {"production", "output", "harvest", "productivity"},
}

// Normalize lowercases a query and collapses runs of whitespace. The same
// form is used for expansion and for response-cache keys.
func Normalize(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// Expand returns the normalized query followed by its single-hop synonym
// variants, deduplicated. The original query is always the first element.
func Expand(query string) []string {
	normalized := Normalize(query)
	expanded := []string{normalized}
	seen := map[string]bool{normalized: true}

	for _, word := range strings.Fields(normalized) {
		variants, ok := synonyms[word]
		if !ok {
			continue
		}
		for _, synonym := range variants {
			variant := replaceWord(normalized, word, synonym)
			if !seen[variant] {
				seen[variant] = true
				expanded = append(expanded, variant)
			}
		}
	}

	return expanded
}

// replaceWord substitutes whole-word occurrences only, so "pesticide" is
// not rewritten when expanding "pest".
func replaceWord(query, word, synonym string) string {
	fields := strings.Fields(query)
	for i, f := range fields {
		if f == word {
			fields[i] = synonym
		}
	}
	return strings.Join(fields, " ")
}
