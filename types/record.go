package types

type AccidentDetails struct {
	Date           *string `json:"Accident_Date"`
	Time           *string `json:"Accident_Time"`
	MonthReference *string `json:"Accident_Month_Reference"`
	Mechanism      *string `json:"Mechanism"`
}

type FunctionalImpact struct {
	TimeOffWorkDays *int    `json:"Time_Off_Work_Days"`
	DailyLifeImpact *string `json:"Daily_Life_Impact"`
}

// StructuredRecord is the normalized clinical field set produced once per
// pipeline run. Every populated field traces back to a pattern match or an
// accepted entity; optional fields stay nil when the transcript is silent.
type StructuredRecord struct {
	PatientName      *string          `json:"Patient_Name"`
	AccidentDetails  AccidentDetails  `json:"Accident_Details"`
	Symptoms         []string         `json:"Symptoms"`
	Diagnosis        *string          `json:"Diagnosis"`
	Treatment        []string         `json:"Treatment"`
	CurrentStatus    string           `json:"Current_Status"`
	Prognosis        *string          `json:"Prognosis"`
	FunctionalImpact FunctionalImpact `json:"Functional_Impact"`
	HPI              string           `json:"HPI"`
	PhysicalExam     *string          `json:"Physical_Exam"`
	Evidence         Evidence         `json:"Evidence"`
}
