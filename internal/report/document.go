package report

import (
	"github.com/rogerio-castellano/catalog-validator/internal/models"
	"github.com/samber/lo"
)

// Document is the structured form of a report used for JSON and YAML output.
type Document struct {
	RunID           string         `json:"run_id" yaml:"run_id"`
	Timestamp       string         `json:"timestamp" yaml:"timestamp"`
	TotalProducts   int            `json:"total_products" yaml:"total_products"`
	TotalViolations int            `json:"total_violations" yaml:"total_violations"`
	Products        []ProductEntry `json:"products" yaml:"products"`
}

type ProductEntry struct {
	ProductID  string           `json:"product_id" yaml:"product_id"`
	Violations []ViolationEntry `json:"violations" yaml:"violations"`
}

type ViolationEntry struct {
	Type    string `json:"type" yaml:"type"`
	Details string `json:"details" yaml:"details"`
}

func (r *Reporter) document(result *models.RunResult) Document {
	return Document{
		RunID:           result.RunID.String(),
		Timestamp:       r.now().Format(timestampLayout),
		TotalProducts:   result.TotalProducts,
		TotalViolations: len(result.Violations),
		Products: lo.Map(result.Grouped(), func(g models.ProductViolations, _ int) ProductEntry {
			return ProductEntry{
				ProductID: g.ProductID.String(),
				Violations: lo.Map(g.Violations, func(v models.Violation, _ int) ViolationEntry {
					return ViolationEntry{Type: v.Type.String(), Details: v.Details}
				}),
			}
		}),
	}
}
