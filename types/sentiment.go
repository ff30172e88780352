package types

const (
	SentimentAnxious   = "Anxious"
	SentimentNeutral   = "Neutral"
	SentimentReassured = "Reassured"
)

// ModelScore is the raw (label, confidence) pair returned by an external
// classifier.
type ModelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type SentimentResult struct {
	Sentiment string     `json:"Sentiment"`
	Model     ModelScore `json:"Sentiment_Model"`
	Intents   []string   `json:"Intent"`
}
