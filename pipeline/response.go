package pipeline

import (
	"encoding/json"

	"text2phenotype.com/scribe/types"
)

// Result artifact names, each independently serializable and persisted as
// its own document.
const (
	ArtifactMedicalSummary  = "medical_summary"
	ArtifactModelSummary    = "model_summary"
	ArtifactSoapNote        = "soap_note"
	ArtifactSentimentIntent = "sentiment_intent"
	ArtifactKeywords        = "keywords"
)

var ArtifactNames = []string{
	ArtifactMedicalSummary,
	ArtifactModelSummary,
	ArtifactSoapNote,
	ArtifactSentimentIntent,
	ArtifactKeywords,
}

func buildArtifacts(
	rec types.StructuredRecord,
	note types.SoapNote,
	affect types.SentimentResult,
	keyphrases []string,
	summary string,
) (map[string]string, error) {
	if keyphrases == nil {
		keyphrases = []string{}
	}
	documents := map[string]interface{}{
		ArtifactMedicalSummary:  rec,
		ArtifactSoapNote:        note,
		ArtifactSentimentIntent: affect,
		ArtifactModelSummary: map[string]string{
			"Model_Summary_Text": summary,
		},
		ArtifactKeywords: map[string][]string{
			"keywords": keyphrases,
		},
	}

	artifacts := make(map[string]string, len(documents))
	for name, document := range documents {
		buf, err := json.MarshalIndent(document, "", "  ")
		if err != nil {
			return nil, err
		}
		artifacts[name] = string(buf)
	}
	return artifacts, nil
}

// CombinedJSON folds the artifact documents into one response object for
// the REST API.
func CombinedJSON(artifacts map[string]string) (string, error) {
	combined := make(map[string]json.RawMessage, len(artifacts))
	for name, document := range artifacts {
		combined[name] = json.RawMessage(document)
	}
	buf, err := json.Marshal(combined)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}
