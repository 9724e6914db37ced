package model

type AdmissionStatus string

const (
	AdmissionStatusActive     AdmissionStatus = "active"
	AdmissionStatusDischarged AdmissionStatus = "discharged"
)

type Admission struct {
	ID            string          `json:"id"`
	PatientID     string          `json:"patientId"`
	WardID        string          `json:"wardId"`
	BedNumber     string          `json:"bedNumber"`
	AdmissionDate string          `json:"admissionDate"`
	DischargeDate string          `json:"dischargeDate,omitempty"`
	Diagnosis     string          `json:"diagnosis"`
	Status        AdmissionStatus `json:"status"`
}

type AdmissionView struct {
	*Admission
	PatientName string `json:"patientName"`
}
