package pipeline

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"text2phenotype.com/scribe/types"
)

const accidentTranscript = "Physician: Good afternoon, Sarah. " +
	"Patient: I was in a car accident, hit from behind, and had neck pain for 4 weeks. " +
	"I did ten physiotherapy sessions."

func runPipeline(t *testing.T, mocks *mockSet, text string) Outcome {
	t.Helper()
	run := New(Params{
		Rules:         types.DefaultRules(),
		KeyphraseTopN: 10,
		Collaborators: mocks.collaborators(),
	})
	select {
	case outcome := <-run(Request{Text: text, Tid: "test-tid"}):
		return outcome
	case <-time.After(5 * time.Second):
		t.Fatal("pipeline did not finish")
		return Outcome{}
	}
}

func decodeArtifact(t *testing.T, outcome Outcome, name string, target interface{}) {
	t.Helper()
	document, ok := outcome.Artifacts[name]
	require.True(t, ok, "missing artifact %q", name)
	require.NoError(t, json.Unmarshal([]byte(document), target))
}

func TestPipelineAccidentTranscript(t *testing.T) {
	mocks := newMockSet()
	mocks.biomedical.entities = []types.RawEntity{
		{Text: "neck pain", Label: "Sign_symptom", Score: 0.95},
		{Text: "whiplash", Label: "Detailed_description", Score: 0.91},
		{Text: "physiotherapy", Label: "Therapeutic_procedure", Score: 0.88},
	}
	mocks.general.entities = []types.RawEntity{
		{Text: "Sarah", Label: "PER", Score: 0.99},
	}

	outcome := runPipeline(t, mocks, accidentTranscript)
	require.NoError(t, outcome.Err)
	assert.Len(t, outcome.Artifacts, len(ArtifactNames))

	var rec types.StructuredRecord
	decodeArtifact(t, outcome, ArtifactMedicalSummary, &rec)

	require.NotNil(t, rec.PatientName)
	assert.Equal(t, "Sarah", *rec.PatientName)
	require.NotNil(t, rec.AccidentDetails.Mechanism)
	assert.Equal(t, "Rear-end collision", *rec.AccidentDetails.Mechanism)
	assert.Contains(t, rec.Symptoms, "Neck pain")
	assert.Contains(t, rec.Treatment, "10 physiotherapy sessions")
	assert.Nil(t, rec.FunctionalImpact.TimeOffWorkDays)
	require.NotNil(t, rec.Diagnosis)
	assert.Equal(t, "Whiplash injury", *rec.Diagnosis)
	assert.Contains(t, rec.HPI, "motor vehicle accident")

	var note types.SoapNote
	decodeArtifact(t, outcome, ArtifactSoapNote, &note)
	assert.Equal(t, rec.HPI, note.Subjective.HistoryOfPresentIllness)
	require.NotNil(t, note.Assessment.Diagnosis)
	assert.Equal(t, *rec.Diagnosis, *note.Assessment.Diagnosis)
	assert.Equal(t, rec.Treatment, note.Plan.Treatment)

	var affect types.SentimentResult
	decodeArtifact(t, outcome, ArtifactSentimentIntent, &affect)
	assert.Equal(t, types.SentimentReassured, affect.Sentiment)
	assert.Equal(t, mocks.sentiment.score, affect.Model)

	var summary map[string]string
	decodeArtifact(t, outcome, ArtifactModelSummary, &summary)
	assert.Equal(t, "model generated summary", summary["Model_Summary_Text"])

	var keywords map[string][]string
	decodeArtifact(t, outcome, ArtifactKeywords, &keywords)
	assert.Equal(t, []string{"neck pain"}, keywords["keywords"])
}

func TestPipelineRoutesSpeakerBlocks(t *testing.T) {
	mocks := newMockSet()

	outcome := runPipeline(t, mocks, accidentTranscript)
	require.NoError(t, outcome.Err)

	assert.Contains(t, mocks.biomedical.gotText, "Good afternoon, Sarah.")
	assert.Contains(t, mocks.biomedical.gotText, "car accident")
	assert.Equal(t, mocks.biomedical.gotText, mocks.general.gotText)

	// The sentiment classifier only sees what the patient said.
	assert.NotContains(t, mocks.sentiment.gotText, "Good afternoon")
	assert.Contains(t, mocks.sentiment.gotText, "car accident")

	assert.Contains(t, mocks.summarizer.gotPrompt, "clinical summary")
	assert.Contains(t, mocks.summarizer.gotPrompt, "car accident")
	assert.Equal(t, 10, mocks.keyphrases.gotTopN)
}

func TestPipelineEmptyTranscript(t *testing.T) {
	mocks := newMockSet()
	mocks.keyphrases.phrases = nil

	outcome := runPipeline(t, mocks, "")
	require.NoError(t, outcome.Err)

	var rec types.StructuredRecord
	decodeArtifact(t, outcome, ArtifactMedicalSummary, &rec)
	assert.Nil(t, rec.PatientName)
	assert.Empty(t, rec.Symptoms)
	assert.Nil(t, rec.AccidentDetails.Mechanism)
	assert.Equal(t, "Improving, intermittent discomfort", rec.CurrentStatus)

	var keywords map[string][]string
	decodeArtifact(t, outcome, ArtifactKeywords, &keywords)
	assert.NotNil(t, keywords["keywords"])
	assert.Empty(t, keywords["keywords"])
}

func TestPipelineCollaboratorFailureAborts(t *testing.T) {
	mocks := newMockSet()
	mocks.sentiment.err = errors.New("model endpoint unavailable")

	outcome := runPipeline(t, mocks, accidentTranscript)
	require.Error(t, outcome.Err)
	assert.Contains(t, outcome.Err.Error(), "sentiment classifier")
	assert.Contains(t, outcome.Err.Error(), "model endpoint unavailable")
	assert.Nil(t, outcome.Artifacts)
}

func TestRequestJSONLabelsTranscriptAsText(t *testing.T) {
	encoded, err := json.Marshal(Request{Tid: "test-tid", Text: "Physician: Hello."})
	require.NoError(t, err)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(encoded, &fields))
	assert.Equal(t, "Physician: Hello.", fields["text"])
	assert.Equal(t, "test-tid", fields["tid"])
}

func TestCombinedJSON(t *testing.T) {
	mocks := newMockSet()
	outcome := runPipeline(t, mocks, accidentTranscript)
	require.NoError(t, outcome.Err)

	combined, err := CombinedJSON(outcome.Artifacts)
	require.NoError(t, err)

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(combined), &payload))
	for _, name := range ArtifactNames {
		assert.Contains(t, payload, name)
	}
	assert.False(t, strings.Contains(combined, "\\\""), "artifacts must embed as raw JSON")
}
