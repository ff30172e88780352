package types

type Bucket string

const (
	BucketSymptoms  Bucket = "Symptoms"
	BucketDiagnosis Bucket = "Diagnosis"
	BucketTreatment Bucket = "Treatment"
	BucketOther     Bucket = "Other"
)

// RawEntity is a single span emitted by an external tagger. Spans may
// duplicate or overlap across text chunks; nothing is guaranteed beyond
// the three fields.
type RawEntity struct {
	Text  string  `json:"text"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// EvidenceRecord is the retained raw justification for an accepted entity.
type EvidenceRecord struct {
	Text  string  `json:"text"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type Evidence struct {
	Symptoms  []EvidenceRecord `json:"Symptoms"`
	Diagnosis []EvidenceRecord `json:"Diagnosis"`
	Treatment []EvidenceRecord `json:"Treatment"`
}

// BucketedEntities is the Entity Normalizer output: deduplicated, sorted
// surface lists per clinical bucket plus the full evidence trail.
type BucketedEntities struct {
	Symptoms            []string         `json:"Symptoms"`
	DiagnosisCandidates []string         `json:"Diagnosis_Candidates"`
	Treatments          []string         `json:"Treatments"`
	Places              []string         `json:"Places"`
	Organizations       []string         `json:"Organizations"`
	Evidence            Evidence         `json:"Evidence"`
	OtherSample         []EvidenceRecord `json:"Other_Model_Entities"`
}
