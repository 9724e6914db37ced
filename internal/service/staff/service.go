package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/repository"
	"github.com/jwalitptl/hospiflow/internal/service/event"
	apperrors "github.com/jwalitptl/hospiflow/pkg/errors"
	"github.com/jwalitptl/hospiflow/pkg/logger"
	"github.com/jwalitptl/hospiflow/pkg/metrics"
)

// UnknownName stands in for a staff id that does not resolve.
const UnknownName = "Unknown"

const dateLayout = "2006-01-02"

type Service struct {
	repo     repository.StaffRepository
	validate *validator.Validate
	events   event.Emitter
	metrics  *metrics.Metrics
	logger   *logger.Logger
	now      func() time.Time
}

func NewService(repo repository.StaffRepository, events event.Emitter, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: newValidator(),
		events:   events,
		metrics:  m,
		logger:   log.With("staff"),
		now:      time.Now,
	}
}

// WithClock replaces the clock used for join dates.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ListStaff filters by a case-insensitive match on first name, last name or department.
func (s *Service) ListStaff(ctx context.Context, filters *model.StaffFilters) ([]*model.Staff, error) {
	all, err := s.repo.ListStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	if filters == nil || strings.TrimSpace(filters.Search) == "" {
		return all, nil
	}

	q := strings.ToLower(strings.TrimSpace(filters.Search))
	out := make([]*model.Staff, 0, len(all))
	for _, st := range all {
		if strings.Contains(strings.ToLower(st.FirstName), q) ||
			strings.Contains(strings.ToLower(st.LastName), q) ||
			strings.Contains(strings.ToLower(st.Department), q) {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *Service) GetStaff(ctx context.Context, id string) (*model.Staff, error) {
	st, err := s.repo.GetStaff(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("staff member", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return st, nil
}

// FindStaffName never fails; a missing record reads as UnknownName.
func (s *Service) FindStaffName(ctx context.Context, id string) string {
	st, err := s.repo.GetStaff(ctx, id)
	if err != nil {
		return UnknownName
	}
	return st.FullName()
}

// CreateStaff validates field by field and reports the first failure. The new
// id is S plus the zero-padded collection size plus one, skipping ids that are
// already taken.
func (s *Service) CreateStaff(ctx context.Context, actorID string, req *model.StaffRequest) (*model.Staff, error) {
	if msg := firstMessage(s.validate, req); msg != "" {
		s.record("create", "invalid")
		return nil, apperrors.Validation(msg)
	}

	existing, err := s.repo.ListStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	st := &model.Staff{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Role:          req.Role,
		Department:    req.Department,
		Email:         req.Email,
		Phone:         req.Phone,
		Qualification: req.Qualification,
		JoinDate:      s.now().Format(dateLayout),
		Status:        model.StaffStatusActive,
	}

	for n := len(existing) + 1; ; n++ {
		st.ID = fmt.Sprintf("S%03d", n)
		err = s.repo.CreateStaff(ctx, st)
		if !errors.Is(err, repository.ErrAlreadyExists) {
			break
		}
	}
	if err != nil {
		s.record("create", "error")
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}

	s.record("create", "success")
	s.logger.Info("staff created", "id", st.ID, "actor", actorID)
	s.events.Emit(ctx, model.EventStaffCreated, actorID, st)

	return st, nil
}

// UpdateStaff replaces the editable fields of id. Any validation failure is
// reported with one combined message, unlike create.
func (s *Service) UpdateStaff(ctx context.Context, actorID, id string, req *model.StaffRequest) (*model.Staff, error) {
	if msg := firstMessage(s.validate, req); msg != "" {
		s.record("update", "invalid")
		return nil, apperrors.Validation(updateValidationMessage)
	}

	st, err := s.GetStaff(ctx, id)
	if err != nil {
		s.record("update", "not_found")
		return nil, err
	}

	st.FirstName = req.FirstName
	st.LastName = req.LastName
	st.Role = req.Role
	st.Department = req.Department
	st.Email = req.Email
	st.Phone = req.Phone
	st.Qualification = req.Qualification
	if req.Status != "" {
		st.Status = req.Status
	}

	if err := s.repo.UpdateStaff(ctx, st); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.record("update", "not_found")
			return nil, apperrors.NotFound("staff member", err)
		}
		s.record("update", "error")
		return nil, fmt.Errorf("failed to update staff: %w", err)
	}

	s.record("update", "success")
	s.logger.Info("staff updated", "id", st.ID, "actor", actorID)
	s.events.Emit(ctx, model.EventStaffUpdated, actorID, st)

	return st, nil
}

// DeleteStaff removes exactly one record. References held by prescriptions or
// admissions are left alone and resolve to UnknownName afterwards.
func (s *Service) DeleteStaff(ctx context.Context, actorID, id string) error {
	if err := s.repo.DeleteStaff(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.record("delete", "not_found")
			return apperrors.NotFound("staff member", err)
		}
		s.record("delete", "error")
		return fmt.Errorf("failed to delete staff: %w", err)
	}

	s.record("delete", "success")
	s.logger.Info("staff deleted", "id", id, "actor", actorID)
	s.events.Emit(ctx, model.EventStaffDeleted, actorID, map[string]string{"id": id})

	return nil
}

func (s *Service) record(op, outcome string) {
	if s.metrics != nil {
		s.metrics.StaffMutations.WithLabelValues(op, outcome).Inc()
	}
}
