package rbac

import (
	"github.com/jwalitptl/hospiflow/internal/model"
)

// policy maps each module to the roles allowed to open it. Anything absent is
// denied.
var policy = map[model.Module][]model.Role{
	model.ModuleOverview: {
		model.RoleAdmin, model.RoleDoctor, model.RoleNurse,
		model.RolePharmacist, model.RoleLabTech, model.RoleReceptionist,
	},
	model.ModuleHospital:   {model.RoleAdmin},
	model.ModuleStaff:      {model.RoleAdmin},
	model.ModuleOutpatient: {model.RoleAdmin, model.RoleDoctor, model.RoleNurse, model.RoleReceptionist},
	model.ModuleInpatient:  {model.RoleAdmin, model.RoleDoctor, model.RoleNurse},
	model.ModulePharmacy:   {model.RoleAdmin, model.RoleDoctor, model.RolePharmacist},
	model.ModuleLaboratory: {model.RoleAdmin, model.RoleDoctor, model.RoleLabTech},
	model.ModuleChat: {
		model.RoleAdmin, model.RoleDoctor, model.RoleNurse,
		model.RolePharmacist, model.RoleLabTech, model.RoleReceptionist,
	},
}

// CanAccess reports whether role may open module. Unknown roles and modules
// are denied.
func CanAccess(role model.Role, module model.Module) bool {
	for _, allowed := range policy[module] {
		if allowed == role {
			return true
		}
	}
	return false
}

// AllowedModules returns the modules role may open, in display order.
func AllowedModules(role model.Role) []model.Module {
	out := make([]model.Module, 0, len(model.Modules))
	for _, m := range model.Modules {
		if CanAccess(role, m) {
			out = append(out, m)
		}
	}
	return out
}

// Policy returns a copy of the access table.
func Policy() map[model.Module][]model.Role {
	out := make(map[model.Module][]model.Role, len(policy))
	for m, roles := range policy {
		out[m] = append([]model.Role(nil), roles...)
	}
	return out
}
