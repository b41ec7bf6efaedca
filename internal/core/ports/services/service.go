package services

import "context"

// HealthSvc reports backing store reachability.
type HealthSvc interface {
	Check(ctx context.Context) error
}

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Stock     StockSvcFacade
	Donor     DonorSvcFacade
	Auth      AuthSvcFacade
	Analytics AnalyticsSvc
	Export    ExportSvc
	Health    HealthSvc
}
