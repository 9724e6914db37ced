package model

type Medicine struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity"`
	Unit         string  `json:"unit"`
	ExpiryDate   string  `json:"expiryDate"`
	BatchNumber  string  `json:"batchNumber"`
	ReorderLevel int     `json:"reorderLevel"`
	Price        float64 `json:"price"`
}

// LowStock is inclusive: a medicine at its reorder level needs reordering.
func (m *Medicine) LowStock() bool {
	return m.Quantity <= m.ReorderLevel
}

// Value is the stock value of this line.
func (m *Medicine) Value() float64 {
	return float64(m.Quantity) * m.Price
}

// MedicineView adds derived fields for the pharmacy module.
type MedicineView struct {
	*Medicine
	LowStock bool `json:"lowStock"`
}

type MedicineFilters struct {
	Search string `form:"search"`
}
