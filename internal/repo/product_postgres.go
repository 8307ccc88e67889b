package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rogerio-castellano/catalog-validator/internal/models"
	"github.com/shopspring/decimal"
)

// PostgresProductRepository reads catalog records from the products table.
// NULL columns become absent fields so they are validated like missing JSON keys.
type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

type productRow struct {
	ID          int64
	Title       sql.NullString
	Price       sql.NullString
	RatingRate  sql.NullString
	RatingCount sql.NullInt64
}

func (r *PostgresProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT id, title, price::text, rating_rate::text, rating_count FROM products ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var row productRow
		if err := rows.Scan(&row.ID, &row.Title, &row.Price, &row.RatingRate, &row.RatingCount); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p, err := row.toProduct()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}

// Fetch lets the repository act as the catalog source of a check run.
func (r *PostgresProductRepository) Fetch(ctx context.Context) ([]models.Product, error) {
	return r.GetAll(ctx)
}

func (row productRow) toProduct() (models.Product, error) {
	values := map[string]any{"id": row.ID}
	if row.Title.Valid {
		values["title"] = row.Title.String
	}
	if row.Price.Valid {
		values["price"] = numeric(row.Price.String)
	}

	rating := map[string]any{}
	if row.RatingRate.Valid {
		rating["rate"] = numeric(row.RatingRate.String)
	}
	if row.RatingCount.Valid {
		rating["count"] = row.RatingCount.Int64
	}
	if len(rating) > 0 {
		values["rating"] = rating
	}

	p, err := models.ProductFromValues(values)
	if err != nil {
		return models.Product{}, fmt.Errorf("product %d: %w", row.ID, err)
	}
	return p, nil
}

// numeric keeps NUMERIC text as a JSON number; values such as NaN that are not
// valid JSON numbers are passed on as strings.
func numeric(s string) any {
	if _, err := decimal.NewFromString(s); err != nil {
		return s
	}
	return json.Number(s)
}
