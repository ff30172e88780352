package transcript

import (
	"regexp"
	"strings"

	"text2phenotype.com/scribe/types"
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	bracketPattern    = regexp.MustCompile(`\[(.*?)\]`)
	markerPattern     = regexp.MustCompile(`(Physician|Doctor|Patient|System)\s*:\s*`)
)

var quoteReplacer = strings.NewReplacer("’", "'", "“", `"`, "”", `"`)

// Normalize collapses whitespace and straightens typographic quotes.
func Normalize(text string) string {
	text = quoteReplacer.Replace(text)
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// SplitTurns segments a raw transcript into speaker-attributed turns.
// Bracketed stage directions become System turns. Text before the first
// recognized marker is dropped; a transcript with no markers yields an
// empty sequence.
func SplitTurns(raw string) []types.Turn {
	text := Normalize(raw)
	text = bracketPattern.ReplaceAllString(text, " System: $1 ")

	markers := markerPattern.FindAllStringSubmatchIndex(text, -1)
	turns := make([]types.Turn, 0, len(markers))
	for i, marker := range markers {
		segmentEnd := len(text)
		if i+1 < len(markers) {
			segmentEnd = markers[i+1][0]
		}
		utterance := strings.TrimSpace(text[marker[1]:segmentEnd])
		if utterance == "" {
			continue
		}
		turns = append(turns, types.Turn{
			Speaker: speakerForMarker(text[marker[2]:marker[3]]),
			Text:    utterance,
		})
	}
	return turns
}

func speakerForMarker(marker string) types.Speaker {
	switch marker {
	case "Patient":
		return types.SpeakerPatient
	case "System":
		return types.SpeakerSystem
	default:
		// Physician and Doctor are the same role.
		return types.SpeakerPhysician
	}
}

// GroupBySpeaker concatenates turn texts per role, preserving turn order.
func GroupBySpeaker(turns []types.Turn) types.SpeakerBlocks {
	parts := make(map[types.Speaker][]string)
	for _, turn := range turns {
		parts[turn.Speaker] = append(parts[turn.Speaker], turn.Text)
	}
	blocks := make(types.SpeakerBlocks, len(parts))
	for speaker, texts := range parts {
		blocks[speaker] = strings.Join(texts, " ")
	}
	return blocks
}

// FullText joins every turn in transcript order, the form the taggers and
// the summarizer consume.
func FullText(turns []types.Turn) string {
	texts := make([]string, len(turns))
	for i, turn := range turns {
		texts[i] = turn.Text
	}
	return strings.Join(texts, " ")
}
