package services

import (
	portsrepo "github.com/SscSPs/blood_desk_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/blood_desk_app/internal/core/ports/services"
	"github.com/SscSPs/blood_desk_app/internal/platform/config"
	"github.com/SscSPs/blood_desk_app/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.Metrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Stock = NewStockService(repos.StockRepo, WithStockMetrics(m))
	container.Donor = NewDonorService(repos.DonorRepo)
	container.Auth = NewAuthService(repos.UserRepo, TokenConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		Expiry: cfg.JWTExpiryDuration,
	})
	container.Analytics = NewAnalyticsService(repos.StockRepo, container.Stock,
		WithLowStockThreshold(cfg.LowStockThreshold),
		WithScanLimit(cfg.AnalyticsScanLimit),
	)
	container.Export = NewExportService(container.Donor)

	var checker portsrepo.HealthChecker
	if cfg.EnableDBCheck {
		checker = repos.Health
	}
	container.Health = NewHealthService(checker)

	return container
}
