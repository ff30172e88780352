package sentiment

import (
	"regexp"
	"sort"
	"strings"

	"text2phenotype.com/scribe/types"
)

// confidenceFloor is the classifier confidence below which the affect
// label is not trusted.
const confidenceFloor = 0.70

var intentCues = []struct {
	pattern *regexp.Regexp
	intent  string
}{
	{regexp.MustCompile(`\b(worried|concerned|need to worry|affect me)\b`), "Seeking reassurance"},
	{regexp.MustCompile(`\b(pain|ache|hurt|stiff|discomfort)\b`), "Reporting symptoms"},
	{regexp.MustCompile(`\b(thank you|appreciate)\b`), "Expressing gratitude"},
	{regexp.MustCompile(`\b(do i|should i|can i)\b`), "Asking a question"},
}

const intentDefault = "General conversation"

// MapSentiment folds a binary classifier's (label, confidence) pair into
// the three-way clinical affect label.
func MapSentiment(score types.ModelScore) string {
	if score.Score < confidenceFloor {
		return types.SentimentNeutral
	}
	if strings.EqualFold(score.Label, "NEGATIVE") {
		return types.SentimentAnxious
	}
	return types.SentimentReassured
}

// DetectIntents runs the rule-based intent cues over patient text. The
// result is deduplicated and sorted; with no cue firing it falls back to a
// single general-conversation intent.
func DetectIntents(patientText string) []string {
	lower := strings.ToLower(patientText)

	var intents []string
	for _, cue := range intentCues {
		if cue.pattern.MatchString(lower) {
			intents = append(intents, cue.intent)
		}
	}
	if len(intents) == 0 {
		intents = append(intents, intentDefault)
	}
	sort.Strings(intents)
	return intents
}

// Resolve combines the external classifier output with intent detection.
func Resolve(score types.ModelScore, patientText string) types.SentimentResult {
	return types.SentimentResult{
		Sentiment: MapSentiment(score),
		Model:     score,
		Intents:   DetectIntents(patientText),
	}
}
