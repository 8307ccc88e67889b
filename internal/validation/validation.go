package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rogerio-castellano/catalog-validator/internal/models"
	"github.com/shopspring/decimal"
)

var maxRate = decimal.NewFromInt(5)

// emptyRating stands in for a missing rating field.
var emptyRating = models.FieldOf(json.RawMessage(`{}`))

// Validate checks one product against every rule and returns all violations.
// Rules never suppress each other, except that the rating value is only
// checked once the rating is known to be an object.
func Validate(p models.Product) []models.Violation {
	id := p.ID()
	errs := []models.Violation{}

	title := p.Get("title")
	if s, ok := title.Str(); !ok || strings.TrimSpace(s) == "" {
		errs = append(errs, models.Violation{
			ProductID: id,
			Type:      models.EmptyTitle,
			Details:   fmt.Sprintf("Title is empty or not a string: %s", title),
		})
	}

	price := p.Get("price")
	if v, ok := price.Num(); !ok || v.IsNegative() {
		errs = append(errs, models.Violation{
			ProductID: id,
			Type:      models.InvalidPrice,
			Details:   fmt.Sprintf("Price must be a non-negative number: %s", price),
		})
	}

	rating := p.Get("rating")
	if !rating.Present() {
		rating = emptyRating
	}
	obj, ok := rating.Obj()
	if !ok {
		errs = append(errs, models.Violation{
			ProductID: id,
			Type:      models.InvalidRatingStructure,
			Details:   fmt.Sprintf("Rating is not a dictionary: %s", rating),
		})
		return errs
	}

	rate := obj.Get("rate")
	if v, ok := rate.Num(); !ok || v.GreaterThan(maxRate) {
		errs = append(errs, models.Violation{
			ProductID: id,
			Type:      models.InvalidRating,
			Details:   fmt.Sprintf("Rating must be less than or equal to 5: %s", rate),
		})
	}

	return errs
}

// ValidateAll validates products in order and returns the violations in the
// order they were produced.
func ValidateAll(products []models.Product) []models.Violation {
	var all []models.Violation
	for _, p := range products {
		all = append(all, Validate(p)...)
	}
	return all
}
