package auth

import (
	"github.com/jwalitptl/hospiflow/internal/model"
)

type credential struct {
	password string
	actor    model.Actor
}

// credentials is the fixed sign-in table, one account per role.
var credentials = []credential{
	{
		password: "admin123",
		actor:    model.Actor{ID: "1", Username: "admin", Email: "admin@hospiflow.com", Role: model.RoleAdmin, FullName: "Admin User", Department: "Administration"},
	},
	{
		password: "doctor123",
		actor:    model.Actor{ID: "2", Username: "doctor", Email: "doctor@hospiflow.com", Role: model.RoleDoctor, FullName: "Dr. Sarah Johnson", Department: "General Medicine"},
	},
	{
		password: "nurse123",
		actor:    model.Actor{ID: "3", Username: "nurse", Email: "nurse@hospiflow.com", Role: model.RoleNurse, FullName: "Emily Davis", Department: "Emergency"},
	},
	{
		password: "pharma123",
		actor:    model.Actor{ID: "4", Username: "pharmacist", Email: "pharmacist@hospiflow.com", Role: model.RolePharmacist, FullName: "Michael Chen", Department: "Pharmacy"},
	},
	{
		password: "lab123",
		actor:    model.Actor{ID: "5", Username: "lab", Email: "lab@hospiflow.com", Role: model.RoleLabTech, FullName: "Robert Martinez", Department: "Laboratory"},
	},
}
