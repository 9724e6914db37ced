package inpatient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/repository"
	"github.com/jwalitptl/hospiflow/internal/service/event"
	apperrors "github.com/jwalitptl/hospiflow/pkg/errors"
)

type PatientNamer interface {
	FindPatientName(ctx context.Context, id string) string
}

type Service struct {
	repo     repository.AdmissionRepository
	patients PatientNamer
	events   event.Emitter
	now      func() time.Time
}

func NewService(repo repository.AdmissionRepository, patients PatientNamer, events event.Emitter) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		events:   events,
		now:      time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) ListAdmissions(ctx context.Context, activeOnly bool) ([]*model.AdmissionView, error) {
	all, err := s.repo.ListAdmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admissions: %w", err)
	}

	out := make([]*model.AdmissionView, 0, len(all))
	for _, a := range all {
		if activeOnly && a.Status != model.AdmissionStatusActive {
			continue
		}
		out = append(out, &model.AdmissionView{
			Admission:   a,
			PatientName: s.patients.FindPatientName(ctx, a.PatientID),
		})
	}
	return out, nil
}

// Discharge closes an active admission with today's date.
func (s *Service) Discharge(ctx context.Context, actorID, id string) (*model.AdmissionView, error) {
	discharged := s.now().Format("2006-01-02")
	a, err := s.repo.TransitionAdmission(ctx, id, model.AdmissionStatusActive, func(a *model.Admission) {
		a.Status = model.AdmissionStatusDischarged
		a.DischargeDate = discharged
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.NotFound("admission", err)
	case errors.Is(err, repository.ErrStatusChanged):
		return nil, apperrors.Conflict(
			fmt.Sprintf("Admission %s is already %s", a.ID, a.Status),
			model.ErrInvalidTransition,
		)
	case err != nil:
		return nil, fmt.Errorf("failed to update admission: %w", err)
	}

	s.events.Emit(ctx, model.EventPatientDischarged, actorID, map[string]string{
		"id":        a.ID,
		"patientId": a.PatientID,
	})

	return &model.AdmissionView{
		Admission:   a,
		PatientName: s.patients.FindPatientName(ctx, a.PatientID),
	}, nil
}
