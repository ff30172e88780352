package types

type SoapSubjective struct {
	ChiefComplaint          *string `json:"Chief_Complaint"`
	HistoryOfPresentIllness string  `json:"History_of_Present_Illness"`
}

type SoapObjective struct {
	PhysicalExam *string `json:"Physical_Exam"`
	Observations *string `json:"Observations"`
}

type SoapAssessment struct {
	Diagnosis *string `json:"Diagnosis"`
	Severity  string  `json:"Severity"`
}

type SoapPlan struct {
	Treatment []string `json:"Treatment"`
	FollowUp  string   `json:"Follow-Up"`
}

// SoapNote is a pure projection of a StructuredRecord; it carries no state
// of its own.
type SoapNote struct {
	Subjective SoapSubjective `json:"Subjective"`
	Objective  SoapObjective  `json:"Objective"`
	Assessment SoapAssessment `json:"Assessment"`
	Plan       SoapPlan       `json:"Plan"`
	Prognosis  *string        `json:"Prognosis"`
}
