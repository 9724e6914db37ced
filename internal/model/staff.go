package model

type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "active"
	StaffStatusInactive StaffStatus = "inactive"
)

type Staff struct {
	ID            string      `json:"id"`
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	Role          Role        `json:"role"`
	Department    string      `json:"department"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Qualification string      `json:"qualification"`
	JoinDate      string      `json:"joinDate"`
	Status        StaffStatus `json:"status"`
}

func (s *Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}

// StaffRequest carries the editable staff fields for create and update.
// Field order matters: validation reports the first failing field.
type StaffRequest struct {
	FirstName     string      `json:"firstName" validate:"required"`
	LastName      string      `json:"lastName" validate:"required"`
	Role          Role        `json:"role" validate:"required,role"`
	Department    string      `json:"department" validate:"required"`
	Email         string      `json:"email" validate:"required,contains=@"`
	Phone         string      `json:"phone" validate:"required"`
	Qualification string      `json:"qualification" validate:"required"`
	Status        StaffStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

type StaffFilters struct {
	Search string `form:"search"`
}
