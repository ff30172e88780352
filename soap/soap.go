package soap

import (
	"strings"

	"text2phenotype.com/scribe/types"
)

const (
	defaultSeverity = "Mild, improving"
	defaultFollowUp = "Return if symptoms worsen or persist."
)

// Build projects a StructuredRecord into SOAP form. It is a pure view:
// nothing is derived beyond null-coalescing and the two fixed defaults.
func Build(rec types.StructuredRecord) types.SoapNote {
	note := types.SoapNote{
		Subjective: types.SoapSubjective{
			HistoryOfPresentIllness: rec.HPI,
		},
		Objective: types.SoapObjective{
			PhysicalExam: rec.PhysicalExam,
		},
		Assessment: types.SoapAssessment{
			Diagnosis: rec.Diagnosis,
			Severity:  defaultSeverity,
		},
		Plan: types.SoapPlan{
			FollowUp: defaultFollowUp,
		},
		Prognosis: rec.Prognosis,
	}

	if len(rec.Symptoms) > 0 {
		chief := strings.Join(rec.Symptoms, ", ")
		note.Subjective.ChiefComplaint = &chief
	}
	if len(rec.Treatment) > 0 {
		note.Plan.Treatment = rec.Treatment
	}
	return note
}
