package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// RunResult is the in-memory state of one check run.
type RunResult struct {
	RunID         uuid.UUID
	StartedAt     time.Time
	TotalProducts int
	Violations    []Violation
}

func NewRunResult(startedAt time.Time) *RunResult {
	return &RunResult{
		RunID:      uuid.New(),
		StartedAt:  startedAt,
		Violations: []Violation{},
	}
}

func (r *RunResult) Add(vs ...Violation) {
	r.Violations = append(r.Violations, vs...)
}

func (r *RunResult) Passed() bool {
	return len(r.Violations) == 0
}

// ProductViolations is the block of violations reported for one product.
type ProductViolations struct {
	ProductID  ProductID
	Violations []Violation
}

// Grouped returns violations grouped by product, products in first-seen order
// and violations in the order they were recorded.
func (r *RunResult) Grouped() []ProductViolations {
	ids := lo.Uniq(lo.Map(r.Violations, func(v Violation, _ int) ProductID {
		return v.ProductID
	}))
	byID := lo.GroupBy(r.Violations, func(v Violation) ProductID {
		return v.ProductID
	})

	return lo.Map(ids, func(id ProductID, _ int) ProductViolations {
		return ProductViolations{ProductID: id, Violations: byID[id]}
	})
}

// CountByType returns the number of violations per rule.
func (r *RunResult) CountByType() map[ErrorType]int {
	return lo.CountValuesBy(r.Violations, func(v Violation) ErrorType {
		return v.Type
	})
}
