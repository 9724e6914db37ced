package model

// Role is one of the fixed actor roles known to the system.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleNurse        Role = "nurse"
	RolePharmacist   Role = "pharmacist"
	RoleLabTech      Role = "lab_tech"
	RoleReceptionist Role = "receptionist"
)

// Roles lists every role in a stable order.
var Roles = []Role{
	RoleAdmin,
	RoleDoctor,
	RoleNurse,
	RolePharmacist,
	RoleLabTech,
	RoleReceptionist,
}

// Valid reports whether r is a member of the role enumeration.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
