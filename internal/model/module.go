package model

// Module is one top-level functional area of the dashboard.
type Module string

const (
	ModuleOverview   Module = "overview"
	ModuleHospital   Module = "hospital"
	ModuleStaff      Module = "staff"
	ModuleOutpatient Module = "outpatient"
	ModuleInpatient  Module = "inpatient"
	ModulePharmacy   Module = "pharmacy"
	ModuleLaboratory Module = "laboratory"
	ModuleChat       Module = "chat"
)

// Modules is the display order of the navigation.
var Modules = []Module{
	ModuleOverview,
	ModuleHospital,
	ModuleStaff,
	ModuleOutpatient,
	ModuleInpatient,
	ModulePharmacy,
	ModuleLaboratory,
	ModuleChat,
}

// Dashboard is what the shell needs to render: who is signed in and which
// modules they may open.
type Dashboard struct {
	Actor   *Actor   `json:"user"`
	Modules []Module `json:"modules"`
}
