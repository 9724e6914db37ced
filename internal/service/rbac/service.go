package rbac

import (
	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/pkg/metrics"
)

// Service is the injectable form of the access policy. It records denials.
type Service struct {
	metrics *metrics.Metrics
}

func NewService(m *metrics.Metrics) *Service {
	return &Service{metrics: m}
}

func (s *Service) CanAccess(role model.Role, module model.Module) bool {
	ok := CanAccess(role, module)
	if !ok && s.metrics != nil {
		s.metrics.AccessDenied.WithLabelValues(string(role), string(module)).Inc()
	}
	return ok
}

func (s *Service) AllowedModules(role model.Role) []model.Module {
	return AllowedModules(role)
}

// Dashboard composes the shell view for actor.
func (s *Service) Dashboard(actor *model.Actor) *model.Dashboard {
	return &model.Dashboard{
		Actor:   actor,
		Modules: AllowedModules(actor.Role),
	}
}

func (s *Service) Policy() map[model.Module][]model.Role {
	return Policy()
}
