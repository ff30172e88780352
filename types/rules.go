package types

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds the literal rule tables the normalization layers run on.
// The defaults reproduce the shipped behavior exactly; a YAML file can
// extend or replace individual tables without touching control flow.
type Rules struct {
	ScoreThreshold float64 `yaml:"score_threshold" json:"score_threshold"`
	MinEntityRunes int     `yaml:"min_entity_runes" json:"min_entity_runes"`
	OtherSampleCap int     `yaml:"other_sample_cap" json:"other_sample_cap"`

	GenericJunk  []string `yaml:"generic_junk" json:"generic_junk"`
	NegationCues []string `yaml:"negation_cues" json:"negation_cues"`

	LabelBuckets map[string]Bucket `yaml:"label_buckets" json:"label_buckets"`
	PlaceLabels  []string          `yaml:"place_labels" json:"place_labels"`
	OrgLabels    []string          `yaml:"org_labels" json:"org_labels"`

	AccidentKeywords []string `yaml:"accident_keywords" json:"accident_keywords"`
	DiagnosisJunk    []string `yaml:"diagnosis_junk" json:"diagnosis_junk"`
	TreatmentJunk    []string `yaml:"treatment_junk" json:"treatment_junk"`

	// Medication display names keyed by the transcript substring that
	// triggers them, independent of tagger output.
	Medications map[string]string `yaml:"medications" json:"medications"`
}

func DefaultRules() Rules {
	return Rules{
		ScoreThreshold: 0.75,
		MinEntityRunes: 3,
		OtherSampleCap: 25,
		GenericJunk: []string{
			"issues", "damage", "recovery", "full range", "range", "movement",
			"mobility", "tenderness", "condition", "progress",
		},
		NegationCues: []string{
			"no", "not", "never", "without", "haven't", "hasn't", "didn't",
		},
		LabelBuckets: map[string]Bucket{
			"sign_symptom":          BucketSymptoms,
			"detailed_description":  BucketDiagnosis,
			"therapeutic_procedure": BucketTreatment,
			"medication":            BucketTreatment,
		},
		PlaceLabels: []string{"GPE", "LOC"},
		OrgLabels:   []string{"ORG"},
		AccidentKeywords: []string{
			"car accident", "accident", "collision", "rear-end", "rear end",
			"hit me", "hit from behind", "steering wheel", "seatbelt", "traffic",
		},
		DiagnosisJunk: []string{"and", "not constant", "constant"},
		TreatmentJunk: []string{"pain", "physical examination", "mobility", "heavy box"},
		Medications: map[string]string{
			"painkillers": "Painkillers",
			"paracetamol": "Paracetamol",
			"ibuprofen":   "Ibuprofen",
			"nsaids":      "NSAIDs",
		},
	}
}

// LoadRules reads a rules file and overlays it on the defaults. Tables
// present in the file replace the default table wholesale.
func LoadRules(filePath string) (Rules, error) {
	rules := DefaultRules()
	buf, err := os.ReadFile(filePath)
	if err != nil {
		return rules, err
	}
	if err := yaml.Unmarshal(buf, &rules); err != nil {
		return rules, err
	}
	return rules, nil
}
