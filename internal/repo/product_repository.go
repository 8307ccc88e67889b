package repo

import (
	"context"

	"github.com/rogerio-castellano/catalog-validator/internal/models"
)

// ProductRepository defines the read side of a stored catalog. Fetch makes
// every repository usable as the catalog source of a check run.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	Fetch(ctx context.Context) ([]models.Product, error)
}

var (
	_ ProductRepository = (*PostgresProductRepository)(nil)
	_ ProductRepository = (*InMemoryProductRepository)(nil)
)
