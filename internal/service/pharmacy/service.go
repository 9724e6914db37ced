package pharmacy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/repository"
	"github.com/jwalitptl/hospiflow/internal/service/event"
	apperrors "github.com/jwalitptl/hospiflow/pkg/errors"
)

// UnknownMedicine stands in for a medicine id that does not resolve.
const UnknownMedicine = "Unknown Medicine"

type PatientNamer interface {
	FindPatientName(ctx context.Context, id string) string
}

type StaffNamer interface {
	FindStaffName(ctx context.Context, id string) string
}

type Service struct {
	medicines     repository.MedicineRepository
	prescriptions repository.PrescriptionRepository
	patients      PatientNamer
	staff         StaffNamer
	events        event.Emitter
}

func NewService(
	medicines repository.MedicineRepository,
	prescriptions repository.PrescriptionRepository,
	patients PatientNamer,
	staff StaffNamer,
	events event.Emitter,
) *Service {
	return &Service{
		medicines:     medicines,
		prescriptions: prescriptions,
		patients:      patients,
		staff:         staff,
		events:        events,
	}
}

// ListMedicines filters by a case-insensitive match on name or category.
func (s *Service) ListMedicines(ctx context.Context, filters *model.MedicineFilters) ([]*model.MedicineView, error) {
	all, err := s.medicines.ListMedicines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}

	q := ""
	if filters != nil {
		q = strings.ToLower(strings.TrimSpace(filters.Search))
	}

	out := make([]*model.MedicineView, 0, len(all))
	for _, m := range all {
		if q != "" &&
			!strings.Contains(strings.ToLower(m.Name), q) &&
			!strings.Contains(strings.ToLower(m.Category), q) {
			continue
		}
		out = append(out, &model.MedicineView{Medicine: m, LowStock: m.LowStock()})
	}
	return out, nil
}

// LowStock lists medicines at or below their reorder level.
func (s *Service) LowStock(ctx context.Context) ([]*model.Medicine, error) {
	all, err := s.medicines.ListMedicines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}

	out := make([]*model.Medicine, 0)
	for _, m := range all {
		if m.LowStock() {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Service) InventoryValue(ctx context.Context) (float64, error) {
	all, err := s.medicines.ListMedicines(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list medicines: %w", err)
	}

	var total float64
	for _, m := range all {
		total += m.Value()
	}
	return total, nil
}

// FindMedicineName never fails; a missing medicine reads as UnknownMedicine.
func (s *Service) FindMedicineName(ctx context.Context, id string) string {
	m, err := s.medicines.GetMedicine(ctx, id)
	if err != nil {
		return UnknownMedicine
	}
	return m.Name
}

func (s *Service) ListPrescriptions(ctx context.Context) ([]*model.PrescriptionView, error) {
	all, err := s.prescriptions.ListPrescriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}

	out := make([]*model.PrescriptionView, 0, len(all))
	for _, p := range all {
		out = append(out, s.view(ctx, p))
	}
	return out, nil
}

func (s *Service) view(ctx context.Context, p *model.Prescription) *model.PrescriptionView {
	names := make([]string, 0, len(p.Medicines))
	for _, pm := range p.Medicines {
		names = append(names, s.FindMedicineName(ctx, pm.MedicineID))
	}
	return &model.PrescriptionView{
		Prescription:  p,
		PatientName:   s.patients.FindPatientName(ctx, p.PatientID),
		DoctorName:    s.staff.FindStaffName(ctx, p.DoctorID),
		MedicineNames: names,
	}
}

// Dispense marks a pending prescription dispensed. Stock levels are not
// touched.
func (s *Service) Dispense(ctx context.Context, actorID, id string) (*model.PrescriptionView, error) {
	p, err := s.prescriptions.TransitionPrescription(ctx, id, model.PrescriptionStatusPending, func(p *model.Prescription) {
		p.Status = model.PrescriptionStatusDispensed
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.NotFound("prescription", err)
	case errors.Is(err, repository.ErrStatusChanged):
		return nil, apperrors.Conflict(
			fmt.Sprintf("Prescription %s is already %s", p.ID, p.Status),
			model.ErrInvalidTransition,
		)
	case err != nil:
		return nil, fmt.Errorf("failed to update prescription: %w", err)
	}

	s.events.Emit(ctx, model.EventPrescriptionDispensed, actorID, map[string]string{"id": p.ID})
	return s.view(ctx, p), nil
}
