package advisor

import (
	"fmt"
	"strings"

	"krishisahay-be/pkg/search"
)

// RenderOffline builds the deterministic knowledge-base answer shown in the
// offline column of every response. It never talks to the LLM.
func RenderOffline(results []search.ScoredResult, query string) string {
	if len(results) == 0 {
		return genericAdvice(query)
	}

	var b strings.Builder
	b.WriteString("📚 **Agricultural Knowledge Base Results:**\n\n")
	for i, r := range results {
		e := r.Entry
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, titleCase(e.Topic))
		if len(e.Crops) > 0 {
			fmt.Fprintf(&b, "🌾 Affected crops: %s\n", strings.Join(e.Crops, ", "))
		}
		if len(e.Symptoms) > 0 {
			fmt.Fprintf(&b, "🔍 Symptoms: %s\n", strings.Join(e.Symptoms, ", "))
		}
		fmt.Fprintf(&b, "💊 Solution: %s\n", e.Solution)
		if len(e.Prevention) > 0 {
			fmt.Fprintf(&b, "🛡️ Prevention: %s\n", strings.Join(e.Prevention, ", "))
		}
		if len(e.Eligibility) > 0 {
			fmt.Fprintf(&b, "✅ Eligibility: %s\n", strings.Join(e.Eligibility, ", "))
		}
		if len(e.Benefits) > 0 {
			fmt.Fprintf(&b, "💰 Benefits: %s\n", strings.Join(e.Benefits, ", "))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// genericAdvice is returned when nothing in the knowledge base matched.
func genericAdvice(query string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I couldn't find specific information about \"%s\" in the knowledge base.\n\n", query)
	b.WriteString("🌱 **General Agricultural Guidance:**\n")
	b.WriteString("• Test your soil regularly to understand nutrient levels\n")
	b.WriteString("• Follow recommended irrigation schedules for your crop\n")
	b.WriteString("• Practice crop rotation to maintain soil health\n")
	b.WriteString("• Consult your local Krishi Vigyan Kendra for region-specific advice\n")
	b.WriteString("• Monitor fields weekly for early signs of pests and disease")
	return b.String()
}

// RenderElaborated produces the richer answer used in place of the LLM
// output when the gateway is unavailable. It must read differently from
// RenderOffline so the two columns stay distinguishable.
func RenderElaborated(results []search.ScoredResult, query string, intent search.Intent) string {
	if len(results) == 0 {
		return fallbackNoResults(query)
	}

	var b strings.Builder
	switch intent.Question {
	case search.QuestionExplanation:
		b.WriteString("🔬 **Understanding the Problem:**\n\n")
	case search.QuestionTiming:
		b.WriteString("📅 **Timing Guidance:**\n\n")
	case search.QuestionRecommendation:
		b.WriteString("🎯 **Recommendations:**\n\n")
	default:
		b.WriteString("🌾 **Detailed Agricultural Advice:**\n\n")
	}

	top := results[0].Entry
	fmt.Fprintf(&b, "Based on your query about %s, here is what the agricultural guidelines recommend:\n\n", top.Topic)
	for _, r := range results {
		e := r.Entry
		fmt.Fprintf(&b, "**%s** (%s severity)\n", titleCase(e.Topic), e.Severity)
		fmt.Fprintf(&b, "%s\n", e.Solution)
		if len(e.Prevention) > 0 {
			fmt.Fprintf(&b, "To prevent recurrence: %s\n", strings.Join(e.Prevention, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("💡 **Additional Tips:**\n")
	switch intent.Type {
	case search.IntentPestControl:
		b.WriteString("• Apply treatments early morning or late evening for best results\n")
		b.WriteString("• Rotate pesticide classes to avoid resistance buildup")
	case search.IntentDiseaseManagement:
		b.WriteString("• Remove and destroy infected plant material away from the field\n")
		b.WriteString("• Ensure good air circulation between plants")
	case search.IntentFertilizerGuidance:
		b.WriteString("• Split fertilizer doses across growth stages\n")
		b.WriteString("• Apply after irrigation or light rain for better uptake")
	case search.IntentGovernmentScheme:
		b.WriteString("• Keep land records and Aadhaar details ready before applying\n")
		b.WriteString("• Visit the nearest Common Service Centre for enrollment help")
	default:
		b.WriteString("• Maintain a farm diary to track what works in your conditions\n")
		b.WriteString("• Local agricultural extension officers can verify these recommendations")
	}
	return b.String()
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func fallbackNoResults(query string) string {
	var b strings.Builder
	b.WriteString("⚠️ AI assistant is currently offline. Providing guidance from general agricultural knowledge.\n\n")
	fmt.Fprintf(&b, "Your question about \"%s\" doesn't match our current knowledge base, but here are proven practices:\n\n", query)
	b.WriteString("• **Integrated Pest Management**: combine biological, cultural and chemical controls\n")
	b.WriteString("• **Balanced Nutrition**: apply NPK based on soil test results, not guesswork\n")
	b.WriteString("• **Water Management**: drip irrigation saves water and reduces disease pressure\n")
	b.WriteString("• **Government Support**: check pmkisan.gov.in and your state agriculture portal for active schemes")
	return b.String()
}
