package repo

import (
	"context"

	"github.com/rogerio-castellano/catalog-validator/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	products []models.Product
}

// NewInMemoryProductRepository creates a repository holding the given products.
func NewInMemoryProductRepository(products ...models.Product) *InMemoryProductRepository {
	return &InMemoryProductRepository{products: products}
}

// GetAll retrieves all products from the repository.
func (r *InMemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *InMemoryProductRepository) Fetch(ctx context.Context) ([]models.Product, error) {
	return r.GetAll(ctx)
}
