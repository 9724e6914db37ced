package model

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

type Patient struct {
	ID               string           `json:"id"`
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	DateOfBirth      string           `json:"dateOfBirth"`
	Gender           Gender           `json:"gender"`
	Phone            string           `json:"phone"`
	Email            string           `json:"email"`
	Address          string           `json:"address"`
	BloodType        string           `json:"bloodType,omitempty"`
	Allergies        []string         `json:"allergies"`
	Insurance        string           `json:"insurance,omitempty"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
}

// FullName joins first and last name the way every view displays it.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// PatientRecord is a patient together with the records that reference it.
type PatientRecord struct {
	Patient       *Patient        `json:"patient"`
	Prescriptions []*Prescription `json:"prescriptions"`
	LabTests      []*LabTest      `json:"labTests"`
}

type PatientFilters struct {
	Search string `form:"search"`
}
