package laboratory

import (
	"context"
	"errors"
	"fmt"
	"strings"
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
	repo     repository.LabTestRepository
	patients PatientNamer
	events   event.Emitter
	now      func() time.Time
}

func NewService(repo repository.LabTestRepository, patients PatientNamer, events event.Emitter) *Service {
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

// ListTests optionally filters by status. An empty status lists everything.
func (s *Service) ListTests(ctx context.Context, status model.LabTestStatus) ([]*model.LabTestView, error) {
	all, err := s.repo.ListLabTests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lab tests: %w", err)
	}

	out := make([]*model.LabTestView, 0, len(all))
	for _, t := range all {
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, s.view(ctx, t))
	}
	return out, nil
}

func (s *Service) GetTest(ctx context.Context, id string) (*model.LabTestView, error) {
	t, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, t), nil
}

// Start moves a pending test to in_progress.
func (s *Service) Start(ctx context.Context, actorID, id string) (*model.LabTestView, error) {
	t, err := s.repo.TransitionLabTest(ctx, id, model.LabTestStatusPending, func(t *model.LabTest) {
		t.Status = model.LabTestStatusInProgress
	})
	if err != nil {
		return nil, transitionError(t, model.LabTestStatusInProgress, err)
	}

	s.events.Emit(ctx, model.EventLabTestStarted, actorID, map[string]string{"id": t.ID})
	return s.view(ctx, t), nil
}

// Complete records results on an in_progress test and stamps today's date.
func (s *Service) Complete(ctx context.Context, actorID, id, results string) (*model.LabTestView, error) {
	if strings.TrimSpace(results) == "" {
		return nil, apperrors.Validation("Results are required")
	}

	completed := s.now().Format("2006-01-02")
	t, err := s.repo.TransitionLabTest(ctx, id, model.LabTestStatusInProgress, func(t *model.LabTest) {
		t.Status = model.LabTestStatusCompleted
		t.Results = results
		t.CompletedDate = completed
	})
	if err != nil {
		return nil, transitionError(t, model.LabTestStatusCompleted, err)
	}

	s.events.Emit(ctx, model.EventLabTestCompleted, actorID, map[string]string{"id": t.ID})
	return s.view(ctx, t), nil
}

func (s *Service) get(ctx context.Context, id string) (*model.LabTest, error) {
	t, err := s.repo.GetLabTest(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("lab test", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lab test: %w", err)
	}
	return t, nil
}

func (s *Service) view(ctx context.Context, t *model.LabTest) *model.LabTestView {
	return &model.LabTestView{LabTest: t, PatientName: s.patients.FindPatientName(ctx, t.PatientID)}
}

func transitionError(current *model.LabTest, to model.LabTestStatus, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound("lab test", err)
	case errors.Is(err, repository.ErrStatusChanged):
		return apperrors.Conflict(
			fmt.Sprintf("Lab test %s cannot move from %s to %s", current.ID, current.Status, to),
			model.ErrInvalidTransition,
		)
	default:
		return fmt.Errorf("failed to update lab test: %w", err)
	}
}
