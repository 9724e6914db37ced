package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/repository"
	apperrors "github.com/jwalitptl/hospiflow/pkg/errors"
)

// UnknownName stands in for a patient id that does not resolve.
const UnknownName = "Unknown"

type Service struct {
	patients      repository.PatientRepository
	prescriptions repository.PrescriptionRepository
	labTests      repository.LabTestRepository
}

func NewService(patients repository.PatientRepository, prescriptions repository.PrescriptionRepository, labTests repository.LabTestRepository) *Service {
	return &Service{
		patients:      patients,
		prescriptions: prescriptions,
		labTests:      labTests,
	}
}

// ListPatients filters by a case-insensitive match on first name, last name or id.
func (s *Service) ListPatients(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	patients, err := s.patients.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	if filters == nil || strings.TrimSpace(filters.Search) == "" {
		return patients, nil
	}

	q := strings.ToLower(strings.TrimSpace(filters.Search))
	out := make([]*model.Patient, 0, len(patients))
	for _, p := range patients {
		if strings.Contains(strings.ToLower(p.FirstName), q) ||
			strings.Contains(strings.ToLower(p.LastName), q) ||
			strings.Contains(strings.ToLower(p.ID), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*model.Patient, error) {
	p, err := s.patients.GetPatient(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("patient", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return p, nil
}

// GetPatientRecord returns the patient with every prescription and lab test
// that references it.
func (s *Service) GetPatientRecord(ctx context.Context, id string) (*model.PatientRecord, error) {
	p, err := s.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	prescriptions, err := s.PrescriptionsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	tests, err := s.LabTestsFor(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.PatientRecord{
		Patient:       p,
		Prescriptions: prescriptions,
		LabTests:      tests,
	}, nil
}

// FindPatientName never fails; a missing patient reads as UnknownName.
func (s *Service) FindPatientName(ctx context.Context, id string) string {
	p, err := s.patients.GetPatient(ctx, id)
	if err != nil {
		return UnknownName
	}
	return p.FullName()
}

// PrescriptionsFor keeps registry order.
func (s *Service) PrescriptionsFor(ctx context.Context, patientID string) ([]*model.Prescription, error) {
	all, err := s.prescriptions.ListPrescriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}

	out := make([]*model.Prescription, 0)
	for _, p := range all {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	return out, nil
}

// LabTestsFor keeps registry order.
func (s *Service) LabTestsFor(ctx context.Context, patientID string) ([]*model.LabTest, error) {
	all, err := s.labTests.ListLabTests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lab tests: %w", err)
	}

	out := make([]*model.LabTest, 0)
	for _, t := range all {
		if t.PatientID == patientID {
			out = append(out, t)
		}
	}
	return out, nil
}
