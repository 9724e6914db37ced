package hospital

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/repository"
	"github.com/jwalitptl/hospiflow/internal/service/event"
	apperrors "github.com/jwalitptl/hospiflow/pkg/errors"
)

type Service struct {
	repo     repository.HospitalRepository
	validate *validator.Validate
	events   event.Emitter
}

func NewService(repo repository.HospitalRepository, events event.Emitter) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		events:   events,
	}
}

func (s *Service) GetHospital(ctx context.Context) (*model.Hospital, error) {
	h, err := s.repo.GetHospital(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}
	return h, nil
}

// UpdateHospital replaces the profile. Name, phone and an email with @ are required.
func (s *Service) UpdateHospital(ctx context.Context, actorID string, req *model.UpdateHospitalRequest) (*model.Hospital, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("Name, phone and a valid email are required")
	}

	h := &model.Hospital{
		Name:           req.Name,
		Address:        req.Address,
		Phone:          req.Phone,
		Email:          req.Email,
		License:        req.License,
		Accreditation:  req.Accreditation,
		OperatingHours: req.OperatingHours,
	}
	if err := s.repo.UpdateHospital(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to update hospital: %w", err)
	}

	updated, err := s.GetHospital(ctx)
	if err != nil {
		return nil, err
	}

	s.events.Emit(ctx, model.EventHospitalUpdated, actorID, updated)
	return updated, nil
}
