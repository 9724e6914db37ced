package model

type Hospital struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	License        string `json:"license"`
	Accreditation  string `json:"accreditation"`
	OperatingHours string `json:"operatingHours"`
}

type UpdateHospitalRequest struct {
	Name           string `json:"name" validate:"required"`
	Address        string `json:"address"`
	Phone          string `json:"phone" validate:"required"`
	Email          string `json:"email" validate:"required,contains=@"`
	License        string `json:"license"`
	Accreditation  string `json:"accreditation"`
	OperatingHours string `json:"operatingHours"`
}
