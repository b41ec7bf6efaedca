package services

import (
	"context"

	portsrepo "github.com/SscSPs/blood_desk_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/blood_desk_app/internal/core/ports/services"
)

type healthService struct {
	checker portsrepo.HealthChecker
}

// NewHealthService wraps the store's ping. A nil checker always reports healthy.
func NewHealthService(checker portsrepo.HealthChecker) portssvc.HealthSvc {
	return &healthService{checker: checker}
}

func (s *healthService) Check(ctx context.Context) error {
	if s.checker == nil {
		return nil
	}
	return s.checker.Ping(ctx)
}
