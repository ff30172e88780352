package entities

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"text2phenotype.com/scribe/types"
)

// Normalizer reconciles raw tagger spans against the text they came from:
// it drops fragments, low-confidence and junk spans, suppresses spans in a
// negation window, and maps the survivors into clinical buckets.
type Normalizer func(raw []types.RawEntity, text string) types.BucketedEntities

func NewNormalizer(rules types.Rules) Normalizer {
	cues := make([]string, len(rules.NegationCues))
	for i, cue := range rules.NegationCues {
		cues[i] = regexp.QuoteMeta(strings.ToLower(cue))
	}
	// Fixed-width token window, not a syntactic negation scope. Downstream
	// field logic depends on this exact behavior, misses included.
	windowPrefix := `(` + strings.Join(cues, "|") + `)\s+(?:\w+\s+){0,3}`

	junk := lowerSet(rules.GenericJunk)
	placeLabels := asSet(rules.PlaceLabels)
	orgLabels := asSet(rules.OrgLabels)

	return func(raw []types.RawEntity, text string) types.BucketedEntities {
		lowerText := strings.ToLower(text)

		var out types.BucketedEntities
		var symptoms, diagnosis, treatments, places, orgs []string

		for _, ent := range raw {
			entText := strings.TrimSpace(ent.Text)

			if placeLabels[ent.Label] {
				places = append(places, entText)
				continue
			}
			if orgLabels[ent.Label] {
				orgs = append(orgs, entText)
				continue
			}

			// Sub-word continuation artifacts carry a "##" prefix.
			if strings.HasPrefix(entText, "##") {
				continue
			}
			clean := strings.TrimSpace(strings.ReplaceAll(entText, "##", ""))

			if ent.Score < rules.ScoreThreshold {
				continue
			}
			if len([]rune(clean)) < rules.MinEntityRunes {
				continue
			}
			lowerClean := strings.ToLower(clean)
			if junk[lowerClean] {
				continue
			}
			if negatedWithinWindow(windowPrefix, lowerClean, lowerText) {
				continue
			}

			record := types.EvidenceRecord{
				Text:  clean,
				Label: ent.Label,
				Score: roundScore(ent.Score),
			}
			switch bucketForLabel(rules.LabelBuckets, ent.Label) {
			case types.BucketSymptoms:
				symptoms = append(symptoms, clean)
				out.Evidence.Symptoms = append(out.Evidence.Symptoms, record)
			case types.BucketDiagnosis:
				diagnosis = append(diagnosis, clean)
				out.Evidence.Diagnosis = append(out.Evidence.Diagnosis, record)
			case types.BucketTreatment:
				treatments = append(treatments, clean)
				out.Evidence.Treatment = append(out.Evidence.Treatment, record)
			default:
				if len(out.OtherSample) < rules.OtherSampleCap {
					out.OtherSample = append(out.OtherSample, record)
				}
			}
		}

		out.Symptoms = dedupSorted(symptoms)
		out.DiagnosisCandidates = dedupSorted(diagnosis)
		out.Treatments = dedupSorted(treatments)
		out.Places = dedupSorted(places)
		out.Organizations = dedupSorted(orgs)
		return out
	}
}

func bucketForLabel(table map[string]types.Bucket, label string) types.Bucket {
	bucket, ok := table[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return types.BucketOther
	}
	return bucket
}

func negatedWithinWindow(windowPrefix string, lowerClean string, lowerText string) bool {
	pattern, err := regexp.Compile(windowPrefix + regexp.QuoteMeta(lowerClean))
	if err != nil {
		return false
	}
	return pattern.MatchString(lowerText)
}

func dedupSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	sort.Strings(result)
	return result
}

func roundScore(score float64) float64 {
	return math.Round(score*10000) / 10000
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}

func asSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
