package advisor

import (
	"fmt"
	"strings"

	"krishisahay-be/pkg/search"
	"krishisahay-be/pkg/store"
)

const systemInstruction = `You are an expert agricultural advisor helping Indian farmers. ` +
	`Give practical, actionable advice in simple language. Mention specific products, ` +
	`dosages and timings where relevant. Keep answers focused on the farmer's question.`

// BuildPrompt assembles the instruction, retrieved knowledge and session
// context into the single prompt string sent to the model.
func BuildPrompt(query string, qctx *store.QueryContext, results []search.ScoredResult) string {
	var b strings.Builder
	b.WriteString(systemInstruction)
	b.WriteString("\n\n")

	if len(results) > 0 {
		b.WriteString("Relevant agricultural knowledge:\n")
		for _, r := range results {
			e := r.Entry
			fmt.Fprintf(&b, "- %s: %s", e.Topic, e.Solution)
			if len(e.Crops) > 0 {
				fmt.Fprintf(&b, " (crops: %s)", strings.Join(e.Crops, ", "))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if qctx != nil {
		if qctx.Location != "" {
			fmt.Fprintf(&b, "Farmer location: %s\n", qctx.Location)
		}
		if qctx.Crop != "" {
			fmt.Fprintf(&b, "Farmer's crop: %s\n", qctx.Crop)
		}
		if len(qctx.PreviousQueries) > 0 {
			fmt.Fprintf(&b, "Previous questions in this session: %s\n", strings.Join(qctx.PreviousQueries, "; "))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Farmer's question: %s\n\nAnswer:", query)
	return b.String()
}
