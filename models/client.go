package models

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"text2phenotype.com/scribe/logger"
	"text2phenotype.com/scribe/types"
	"text2phenotype.com/scribe/utils"
)

// Config describes the inference gateway the collaborator handles talk to.
type Config struct {
	BaseURL           string `envconfig:"SCRIBE_INFERENCE_URL" required:"true"`
	TimeoutSeconds    int    `envconfig:"SCRIBE_INFERENCE_TIMEOUT" default:"60"`
	ChunkSize         int    `envconfig:"SCRIBE_NER_CHUNK_SIZE" default:"450"`
	SentimentMaxChars int    `envconfig:"SCRIBE_SENTIMENT_MAX_CHARS" default:"1200"`
	CacheTTLSeconds   int    `envconfig:"SCRIBE_NER_CACHE_TTL" default:"900"`
}

func ReadConfig() (Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Client is a thin JSON client for the inference gateway. One client backs
// all collaborator handles.
type Client struct {
	config       Config
	httpClient   *http.Client
	taggerCache  *cache.Cache
	scribeLogger zerolog.Logger
}

func NewClient(config Config) *Client {
	ttl := time.Duration(config.CacheTTLSeconds) * time.Second
	return &Client{
		config:       config,
		httpClient:   &http.Client{Timeout: time.Duration(config.TimeoutSeconds) * time.Second},
		taggerCache:  cache.New(ttl, 2*ttl),
		scribeLogger: logger.NewLogger("Inference client"),
	}
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	endpoint, err := url.JoinPath(c.config.BaseURL, path)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("inference call %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("inference call %s returned status %d: %s", path, resp.StatusCode, raw)
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

type textRequest struct {
	Text string `json:"text"`
}

type entitiesResponse struct {
	Entities []types.RawEntity `json:"entities"`
}

// httpTagger tags text chunk by chunk against one gateway NER endpoint.
// Chunk responses are concatenated, never re-merged across boundaries.
type httpTagger struct {
	client *Client
	path   string
}

func NewBiomedicalTagger(client *Client) EntityTagger {
	return &httpTagger{client: client, path: "ner/biomedical"}
}

func NewGeneralTagger(client *Client) EntityTagger {
	return &httpTagger{client: client, path: "ner/general"}
}

func (tagger *httpTagger) Tag(ctx context.Context, text string) ([]types.RawEntity, error) {
	var tagged []types.RawEntity
	for _, chunk := range SplitChunks(text, tagger.client.config.ChunkSize) {
		entities, err := tagger.tagChunk(ctx, chunk)
		if err != nil {
			return nil, err
		}
		tagged = append(tagged, entities...)
	}
	return tagged, nil
}

func (tagger *httpTagger) tagChunk(ctx context.Context, chunk string) ([]types.RawEntity, error) {
	// Hashing endpoint and chunk together keeps the two taggers from
	// colliding on identical chunk text.
	cacheKey := strconv.FormatUint(utils.HashBytes([]byte(tagger.path), []byte(chunk)), 10)
	if cached, found := tagger.client.taggerCache.Get(cacheKey); found {
		return cached.([]types.RawEntity), nil
	}

	var response entitiesResponse
	if err := tagger.client.post(ctx, tagger.path, textRequest{Text: chunk}, &response); err != nil {
		return nil, err
	}
	tagger.client.scribeLogger.Debug().
		Str("endpoint", tagger.path).
		Int("entities", len(response.Entities)).
		Msg("Tagged chunk")
	tagger.client.taggerCache.SetDefault(cacheKey, response.Entities)
	return response.Entities, nil
}

type httpSentiment struct {
	client *Client
}

func NewSentimentClassifier(client *Client) SentimentClassifier {
	return &httpSentiment{client: client}
}

func (classifier *httpSentiment) Classify(ctx context.Context, text string) (types.ModelScore, error) {
	runes := []rune(text)
	if max := classifier.client.config.SentimentMaxChars; len(runes) > max {
		text = string(runes[:max])
	}
	var score types.ModelScore
	if err := classifier.client.post(ctx, "sentiment", textRequest{Text: text}, &score); err != nil {
		return types.ModelScore{}, err
	}
	return score, nil
}

type httpSummarizer struct {
	client *Client
}

func NewSummarizer(client *Client) Summarizer {
	return &httpSummarizer{client: client}
}

func (summarizer *httpSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	var response struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := summarizer.client.post(ctx, "summarize", textRequest{Text: prompt}, &response); err != nil {
		return "", err
	}
	return response.GeneratedText, nil
}

type httpKeyphrases struct {
	client *Client
}

func NewKeyphraseExtractor(client *Client) KeyphraseExtractor {
	return &httpKeyphrases{client: client}
}

func (extractor *httpKeyphrases) Keyphrases(ctx context.Context, text string, topN int) ([]string, error) {
	payload := struct {
		Text string `json:"text"`
		TopN int    `json:"top_n"`
	}{Text: text, TopN: topN}

	var response struct {
		Keyphrases []string `json:"keyphrases"`
	}
	if err := extractor.client.post(ctx, "keyphrases", payload, &response); err != nil {
		return nil, err
	}
	return response.Keyphrases, nil
}

// NewCollaborators wires every handle onto one shared client.
func NewCollaborators(config Config) Collaborators {
	client := NewClient(config)
	return Collaborators{
		BiomedicalTagger: NewBiomedicalTagger(client),
		GeneralTagger:    NewGeneralTagger(client),
		Sentiment:        NewSentimentClassifier(client),
		Summarizer:       NewSummarizer(client),
		Keyphrases:       NewKeyphraseExtractor(client),
	}
}
