package model

type LabTestStatus string

const (
	LabTestStatusPending    LabTestStatus = "pending"
	LabTestStatusInProgress LabTestStatus = "in_progress"
	LabTestStatusCompleted  LabTestStatus = "completed"
)

type LabTest struct {
	ID            string        `json:"id"`
	PatientID     string        `json:"patientId"`
	TestName      string        `json:"testName"`
	OrderedBy     string        `json:"orderedBy"`
	OrderedDate   string        `json:"orderedDate"`
	Status        LabTestStatus `json:"status"`
	Results       string        `json:"results,omitempty"`
	CompletedDate string        `json:"completedDate,omitempty"`
}

// LabTestView is a lab test with its patient name resolved.
type LabTestView struct {
	*LabTest
	PatientName string `json:"patientName"`
}

type CompleteLabTestRequest struct {
	Results string `json:"results"`
}
