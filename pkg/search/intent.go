package search

import "strings"

// IntentType is the classified purpose of a query.
type IntentType string

const (
	IntentPestControl        IntentType = "pest_control"
	IntentDiseaseManagement  IntentType = "disease_management"
	IntentFertilizerGuidance IntentType = "fertilizer_guidance"
	IntentCropManagement     IntentType = "crop_management"
	IntentGovernmentScheme   IntentType = "government_scheme"
	IntentGeneral            IntentType = "general"
)

// QuestionType tags the form of the question, independent of the intent.
type QuestionType string

const (
	QuestionHowTo          QuestionType = "how_to"
	QuestionInformation    QuestionType = "information"
	QuestionTiming         QuestionType = "timing"
	QuestionExplanation    QuestionType = "explanation"
	QuestionLocation       QuestionType = "location"
	QuestionRecommendation QuestionType = "recommendation"
	QuestionProblem        QuestionType = "problem"
	QuestionGeneral        QuestionType = "general"
)

// Intent is the classification result for one query.
type Intent struct {
	Type       IntentType   `json:"type"`
	Action     string       `json:"action,omitempty"`
	Question   QuestionType `json:"question"`
	Confidence float64      `json:"confidence"`
}

// intentPattern is one ordered category keyword set. The first set with at
// least one matching token wins.
type intentPattern struct {
	intent   IntentType
	keywords []string
}

var intentPatterns = []intentPattern{
	{IntentPestControl, []string{
		"pest", "insect", "bug", "aphid", "aphids", "whitefly", "thrips",
		"mite", "borer", "caterpillar", "infestation",
	}},
	{IntentDiseaseManagement, []string{
		"disease", "infection", "fungus", "virus", "bacterial", "blight",
		"spot", "rot", "wilt", "mildew",
	}},
	{IntentFertilizerGuidance, []string{
		"fertilizer", "nutrient", "npk", "urea", "dap", "nitrogen",
		"phosphorus", "potassium", "deficiency", "manure", "compost",
	}},
	{IntentGovernmentScheme, []string{
		"scheme", "subsidy", "loan", "insurance", "policy", "kisan",
		"government", "yojana",
	}},
	{IntentCropManagement, []string{
		"grow", "cultivate", "plant", "sowing", "irrigation", "watering",
		"drainage", "harvest", "yield",
	}},
}

var actionVerbs = []string{
	"control", "treat", "prevent", "apply", "use", "grow", "plant", "harvest",
}

var questionPatterns = []struct {
	question QuestionType
	words    []string
}{
	{QuestionHowTo, []string{"how", "method", "way", "process"}},
	{QuestionInformation, []string{"what", "which", "define"}},
	{QuestionTiming, []string{"when", "timing", "time"}},
	{QuestionExplanation, []string{"why", "reason", "cause"}},
	{QuestionLocation, []string{"where", "location", "place"}},
	{QuestionRecommendation, []string{"best", "recommend", "suggest"}},
	{QuestionProblem, []string{"problem", "issue", "trouble", "help"}},
}

// Classify maps a raw query to an intent. Empty or whitespace-only input
// yields the general intent with zero confidence; Classify never fails.
func Classify(query string) Intent {
	tokens := tokenize(query)
	intent := Intent{Type: IntentGeneral, Question: QuestionGeneral}
	if len(tokens) == 0 {
		return intent
	}

	present := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		present[tok] = true
	}

	for _, pattern := range intentPatterns {
		matches := 0
		for _, kw := range pattern.keywords {
			if present[kw] {
				matches++
			}
		}
		if matches > 0 {
			intent.Type = pattern.intent
			intent.Confidence = 0.5 + 0.1*float64(matches)
			if intent.Confidence > 1 {
				intent.Confidence = 1
			}
			break
		}
	}

	for _, verb := range actionVerbs {
		if present[verb] {
			intent.Action = verb
			break
		}
	}

	for _, qp := range questionPatterns {
		matched := false
		for _, w := range qp.words {
			if present[w] {
				matched = true
				break
			}
		}
		if matched {
			intent.Question = qp.question
			break
		}
	}

	return intent
}

// AlignedCategory returns the knowledge category an intent type boosts, or
// an empty string when the intent carries no category bias.
func (t IntentType) AlignedCategory() string {
	switch t {
	case IntentPestControl:
		return "pest"
	case IntentDiseaseManagement:
		return "disease"
	case IntentFertilizerGuidance:
		return "nutrition"
	case IntentGovernmentScheme:
		return "scheme"
	}
	return ""
}

func tokenize(query string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return ' '
		}
	}, query)
	return strings.Fields(cleaned)
}
