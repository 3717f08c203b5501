package advisor

import (
	"fmt"

	"krishisahay-be/pkg/search"
)

var followUpsByIntent = map[search.IntentType][]string{
	search.IntentPestControl: {
		"What organic alternatives can I use for pest control?",
		"How do I prevent this pest from coming back?",
		"Which pesticides are safe for beneficial insects?",
	},
	search.IntentDiseaseManagement: {
		"How do I identify this disease in early stages?",
		"What weather conditions favor this disease?",
		"Are there disease-resistant varieties available?",
	},
	search.IntentFertilizerGuidance: {
		"How do I get my soil tested?",
		"What is the right time to apply fertilizer?",
		"Can I use organic manure instead?",
	},
	search.IntentGovernmentScheme: {
		"What documents do I need to apply?",
		"Where is my nearest enrollment center?",
		"Are there other schemes I qualify for?",
	},
	search.IntentCropManagement: {
		"Which crop variety suits my region?",
		"What is the ideal sowing time?",
		"How much seed do I need per acre?",
	},
	search.IntentGeneral: {
		"Tell me about common pests in my area",
		"What government schemes are available for farmers?",
		"How can I improve my soil health?",
	},
}

var relatedTopicsByIntent = map[search.IntentType][]string{
	search.IntentPestControl:        {"integrated pest management", "neem-based pesticides", "pheromone traps"},
	search.IntentDiseaseManagement:  {"fungicide schedules", "crop rotation", "resistant varieties"},
	search.IntentFertilizerGuidance: {"soil testing", "micronutrients", "organic composting"},
	search.IntentGovernmentScheme:   {"crop insurance", "kisan credit card", "subsidy programs"},
	search.IntentCropManagement:     {"seed treatment", "irrigation scheduling", "harvest timing"},
	search.IntentGeneral:            {"seasonal crop calendar", "weather advisories", "market prices"},
}

// FollowUps returns canned follow-up questions for the classified intent.
// Suggestions are fixed lookups so the UI stays stable across retries.
func FollowUps(intent search.IntentType) []string {
	if qs, ok := followUpsByIntent[intent]; ok {
		return qs
	}
	return followUpsByIntent[search.IntentGeneral]
}

// RelatedTopics returns browse-next topics for the classified intent.
func RelatedTopics(intent search.IntentType) []string {
	if ts, ok := relatedTopicsByIntent[intent]; ok {
		return ts
	}
	return relatedTopicsByIntent[search.IntentGeneral]
}

// Suggestions derives search refinements from actual results, used by the
// raw search endpoint rather than the chat pipeline.
func Suggestions(results []search.ScoredResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		e := r.Entry
		if len(e.Crops) > 0 {
			out = append(out, fmt.Sprintf("How to manage %s in %s?", e.Topic, e.Crops[0]))
		} else {
			out = append(out, fmt.Sprintf("Tell me more about %s", e.Topic))
		}
	}
	return out
}
