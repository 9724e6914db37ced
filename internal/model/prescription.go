package model

type PrescriptionStatus string

const (
	PrescriptionStatusPending   PrescriptionStatus = "pending"
	PrescriptionStatusDispensed PrescriptionStatus = "dispensed"
)

type PrescribedMedicine struct {
	MedicineID string `json:"medicineId"`
	Dosage     string `json:"dosage"`
	Frequency  string `json:"frequency"`
	Duration   string `json:"duration"`
}

type Prescription struct {
	ID        string               `json:"id"`
	PatientID string               `json:"patientId"`
	DoctorID  string               `json:"doctorId"`
	Medicines []PrescribedMedicine `json:"medicines"`
	Date      string               `json:"date"`
	Status    PrescriptionStatus   `json:"status"`
}

// PrescriptionView resolves every foreign key of a prescription to a name.
type PrescriptionView struct {
	*Prescription
	PatientName   string   `json:"patientName"`
	DoctorName    string   `json:"doctorName"`
	MedicineNames []string `json:"medicineNames"`
}
