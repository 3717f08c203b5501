package advisor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishisahay-be/pkg/advisor"
	"krishisahay-be/pkg/knowledge"
	"krishisahay-be/pkg/search"
)

func scoredAphids(t *testing.T) []search.ScoredResult {
	t.Helper()
	table := knowledge.DefaultTable()
	intent := search.Classify("how to control aphids in mustard")
	results := search.Score(search.Expand("how to control aphids in mustard"), intent, table)
	require.NotEmpty(t, results)
	return results
}

func TestRenderOfflineListsMatches(t *testing.T) {
	results := scoredAphids(t)
	out := advisor.RenderOffline(results, "how to control aphids in mustard")

	assert.Contains(t, out, "Agricultural Knowledge Base Results")
	assert.Contains(t, out, "Aphids")
	assert.Contains(t, out, "neem oil")
	assert.Contains(t, out, "mustard")
}

func TestRenderOfflineNoResults(t *testing.T) {
	out := advisor.RenderOffline(nil, "quantum tractor maintenance")

	assert.Contains(t, out, "quantum tractor maintenance")
	assert.Contains(t, out, "General Agricultural Guidance")
}

func TestRenderElaboratedDiffersFromOffline(t *testing.T) {
	results := scoredAphids(t)
	intent := search.Classify("how to control aphids in mustard")

	offline := advisor.RenderOffline(results, "how to control aphids in mustard")
	elaborated := advisor.RenderElaborated(results, "how to control aphids in mustard", intent)

	assert.NotEqual(t, offline, elaborated)
	assert.Contains(t, elaborated, "Additional Tips")
}

func TestRenderElaboratedNoResults(t *testing.T) {
	intent := search.Classify("xyzzy")
	out := advisor.RenderElaborated(nil, "xyzzy", intent)

	assert.Contains(t, out, "offline")
	assert.Contains(t, out, "xyzzy")
}

func TestFollowUpsCoverEveryIntent(t *testing.T) {
	for _, it := range []search.IntentType{
		search.IntentPestControl,
		search.IntentDiseaseManagement,
		search.IntentFertilizerGuidance,
		search.IntentGovernmentScheme,
		search.IntentCropManagement,
		search.IntentGeneral,
	} {
		assert.NotEmpty(t, advisor.FollowUps(it), "intent %s", it)
		assert.NotEmpty(t, advisor.RelatedTopics(it), "intent %s", it)
	}
	assert.Equal(t, advisor.FollowUps(search.IntentGeneral), advisor.FollowUps(search.IntentType("unknown")))
}

func TestSuggestionsFromResults(t *testing.T) {
	results := scoredAphids(t)
	suggestions := advisor.Suggestions(results)

	require.Len(t, suggestions, len(results))
	assert.Contains(t, suggestions[0], "aphids")
}

func TestBuildPromptStructure(t *testing.T) {
	results := scoredAphids(t)
	prompt := advisor.BuildPrompt("how to control aphids", nil, results)

	assert.Contains(t, prompt, "agricultural advisor")
	assert.Contains(t, prompt, "Relevant agricultural knowledge")
	assert.Contains(t, prompt, "aphids")
	assert.Contains(t, prompt, "Farmer's question: how to control aphids")
}
