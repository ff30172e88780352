package pipeline

import (
	"context"

	"text2phenotype.com/scribe/models"
	"text2phenotype.com/scribe/types"
)

type taggerMock struct {
	entities []types.RawEntity
	err      error
	gotText  string
}

func (mock *taggerMock) Tag(ctx context.Context, text string) ([]types.RawEntity, error) {
	mock.gotText = text
	if mock.err != nil {
		return nil, mock.err
	}
	return mock.entities, nil
}

type sentimentMock struct {
	score   types.ModelScore
	err     error
	gotText string
}

func (mock *sentimentMock) Classify(ctx context.Context, text string) (types.ModelScore, error) {
	mock.gotText = text
	if mock.err != nil {
		return types.ModelScore{}, mock.err
	}
	return mock.score, nil
}

type summarizerMock struct {
	summary   string
	err       error
	gotPrompt string
}

func (mock *summarizerMock) Summarize(ctx context.Context, prompt string) (string, error) {
	mock.gotPrompt = prompt
	if mock.err != nil {
		return "", mock.err
	}
	return mock.summary, nil
}

type keyphrasesMock struct {
	phrases []string
	err     error
	gotTopN int
}

func (mock *keyphrasesMock) Keyphrases(ctx context.Context, text string, topN int) ([]string, error) {
	mock.gotTopN = topN
	if mock.err != nil {
		return nil, mock.err
	}
	return mock.phrases, nil
}

type mockSet struct {
	biomedical *taggerMock
	general    *taggerMock
	sentiment  *sentimentMock
	summarizer *summarizerMock
	keyphrases *keyphrasesMock
}

func newMockSet() *mockSet {
	return &mockSet{
		biomedical: &taggerMock{},
		general:    &taggerMock{},
		sentiment:  &sentimentMock{score: types.ModelScore{Label: "POSITIVE", Score: 0.9}},
		summarizer: &summarizerMock{summary: "model generated summary"},
		keyphrases: &keyphrasesMock{phrases: []string{"neck pain"}},
	}
}

func (mocks *mockSet) collaborators() models.Collaborators {
	return models.Collaborators{
		BiomedicalTagger: mocks.biomedical,
		GeneralTagger:    mocks.general,
		Sentiment:        mocks.sentiment,
		Summarizer:       mocks.summarizer,
		Keyphrases:       mocks.keyphrases,
	}
}
