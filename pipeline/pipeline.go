package pipeline

import (
	"context"
	"fmt"

	"text2phenotype.com/scribe/entities"
	"text2phenotype.com/scribe/logger"
	"text2phenotype.com/scribe/models"
	"text2phenotype.com/scribe/record"
	"text2phenotype.com/scribe/sentiment"
	"text2phenotype.com/scribe/soap"
	"text2phenotype.com/scribe/transcript"
	"text2phenotype.com/scribe/types"
)

// Pipeline converts one transcript into the result artifact documents.
// The returned channel yields exactly one Outcome.
type Pipeline func(request Request) <-chan Outcome

type Params struct {
	Rules         types.Rules
	KeyphraseTopN int
	Collaborators models.Collaborators
}

const summaryPromptTemplate = `
Write a short clinical summary (5-7 lines) of this physician-patient transcript.
Include:
- Accident details
- Symptoms
- Diagnosis
- Treatment
- Current status
- Prognosis

Transcript:
%s
`

// New builds the dialogue pipeline. The collaborator handles are owned by
// the caller and shared across runs; every run operates on its own
// immutable inputs.
func New(params Params) Pipeline {
	scribeLogger := logger.NewLogger("Dialogue pipeline")
	normalize := entities.NewNormalizer(params.Rules)
	resolve := record.NewResolver(params.Rules)

	return func(request Request) <-chan Outcome {
		outcomeCh := make(chan Outcome, 1)
		runLog := scribeLogger.With().Str("tid", request.Tid).Logger()

		go func() {
			defer close(outcomeCh)
			runLog.Info().Msg("Started dialogue pipeline")

			turns := transcript.SplitTurns(request.Text)
			blocks := transcript.GroupBySpeaker(turns)
			fullText := transcript.FullText(turns)
			runLog.Info().Int("turns", len(turns)).Msg("Segmented transcript")

			signals, err := collectSignals(params, blocks, fullText)
			if err != nil {
				runLog.Err(err).Msg("External collaborator call failed, aborting run")
				outcomeCh <- Outcome{Err: err}
				return
			}

			tagged := append(signals.biomedical, signals.general...)
			buckets := normalize(tagged, fullText)
			rec := resolve(blocks, buckets)
			note := soap.Build(rec)
			affect := sentiment.Resolve(signals.sentiment, blocks.Get(types.SpeakerPatient))

			artifacts, err := buildArtifacts(rec, note, affect, signals.keyphrases, signals.summary)
			if err != nil {
				runLog.Err(err).Msg("Failed to marshal result artifacts")
				outcomeCh <- Outcome{Err: err}
				return
			}
			runLog.Info().Msg("Finished dialogue pipeline")
			outcomeCh <- Outcome{Artifacts: artifacts}
		}()

		return outcomeCh
	}
}

type externalSignals struct {
	biomedical []types.RawEntity
	general    []types.RawEntity
	sentiment  types.ModelScore
	summary    string
	keyphrases []string
}

// collectSignals runs the five collaborator calls concurrently. Their
// outputs are unordered multisets to the normalizer, so completion order
// is irrelevant; the first error aborts the run.
func collectSignals(params Params, blocks types.SpeakerBlocks, fullText string) (externalSignals, error) {
	ctx := context.Background()
	collab := params.Collaborators

	var signals externalSignals
	errCh := make(chan error, 5)

	go func() {
		var err error
		signals.biomedical, err = collab.BiomedicalTagger.Tag(ctx, fullText)
		errCh <- wrap("biomedical tagger", err)
	}()
	go func() {
		var err error
		signals.general, err = collab.GeneralTagger.Tag(ctx, fullText)
		errCh <- wrap("general tagger", err)
	}()
	go func() {
		var err error
		signals.sentiment, err = collab.Sentiment.Classify(ctx, blocks.Get(types.SpeakerPatient))
		errCh <- wrap("sentiment classifier", err)
	}()
	go func() {
		var err error
		signals.summary, err = collab.Summarizer.Summarize(ctx, fmt.Sprintf(summaryPromptTemplate, fullText))
		errCh <- wrap("summarizer", err)
	}()
	go func() {
		var err error
		signals.keyphrases, err = collab.Keyphrases.Keyphrases(ctx, fullText, params.KeyphraseTopN)
		errCh <- wrap("keyphrase extractor", err)
	}()

	var firstErr error
	for i := 0; i < 5; i++ {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return signals, firstErr
}

func wrap(collaborator string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", collaborator, err)
}
