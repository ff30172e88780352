// Package models holds the handles for the external signal producers the
// pipeline consumes: entity taggers, the sentiment classifier, the
// summarizer and the keyphrase extractor. The handles are constructed once
// at startup and injected; their outputs are treated as opaque, noisy
// signals to be reconciled downstream.
package models

import (
	"context"

	"text2phenotype.com/scribe/types"
)

type EntityTagger interface {
	Tag(ctx context.Context, text string) ([]types.RawEntity, error)
}

type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (types.ModelScore, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

type KeyphraseExtractor interface {
	Keyphrases(ctx context.Context, text string, topN int) ([]string, error)
}

// Collaborators bundles every external handle a pipeline run needs.
type Collaborators struct {
	BiomedicalTagger EntityTagger
	GeneralTagger    EntityTagger
	Sentiment        SentimentClassifier
	Summarizer       Summarizer
	Keyphrases       KeyphraseExtractor
}
