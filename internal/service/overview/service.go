// Package overview computes the dashboard counters. Nothing is cached; every
// call reads the registry so all modules agree after a mutation.
package overview

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/repository"
)

type Service struct {
	registry repository.Registry
}

func NewService(registry repository.Registry) *Service {
	return &Service{registry: registry}
}

func (s *Service) Summary(ctx context.Context) (*model.Summary, error) {
	var sum model.Summary

	patients, err := s.registry.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	sum.TotalPatients = len(patients)

	admissions, err := s.registry.ListAdmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admissions: %w", err)
	}
	for _, a := range admissions {
		if a.Status == model.AdmissionStatusActive {
			sum.ActiveAdmissions++
		}
	}

	tests, err := s.registry.ListLabTests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lab tests: %w", err)
	}
	for _, t := range tests {
		if t.Status == model.LabTestStatusPending {
			sum.PendingLabTests++
		}
	}

	medicines, err := s.registry.ListMedicines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	for _, m := range medicines {
		if m.LowStock() {
			sum.LowStockMedicines++
		}
		sum.TotalInventoryValue += m.Value()
	}

	prescriptions, err := s.registry.ListPrescriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	for _, p := range prescriptions {
		if p.Status == model.PrescriptionStatusPending {
			sum.PendingPrescriptions++
		}
	}

	staff, err := s.registry.ListStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	for _, st := range staff {
		if st.Status == model.StaffStatusActive {
			sum.ActiveStaff++
		}
	}

	return &sum, nil
}
