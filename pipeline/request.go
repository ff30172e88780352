package pipeline

type Request struct {
	Text string `json:"text"`
	Tid  string `json:"tid"`
}

// Outcome carries either the per-artifact result documents of one run or
// the error that aborted it. Collaborator failures are not recovered
// in-core; there is no partial-output mode.
type Outcome struct {
	Artifacts map[string]string
	Err       error
}
