package pgsql

import (
	portsrepo "github.com/SscSPs/blood_desk_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every postgres repository onto a single pool.
// db is normally a *pgxpool.Pool.
func NewRepositoryProvider(db DBTX) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		StockRepo: newPgxStockRepository(db),
		DonorRepo: newPgxDonorRepository(db),
		UserRepo:  newPgxUserRepository(db),
		Health:    &BaseRepository{Pool: db},
	}
}
