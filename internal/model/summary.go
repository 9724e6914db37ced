package model

// Summary holds the counters shown on the overview and module cards.
// Every field is computed from the registry at read time.
type Summary struct {
	TotalPatients        int     `json:"totalPatients"`
	ActiveAdmissions     int     `json:"activeAdmissions"`
	PendingLabTests      int     `json:"pendingLabTests"`
	LowStockMedicines    int     `json:"lowStockMedicines"`
	TotalInventoryValue  float64 `json:"totalInventoryValue"`
	PendingPrescriptions int     `json:"pendingPrescriptions"`
	ActiveStaff          int     `json:"activeStaff"`
}
