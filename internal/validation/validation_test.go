package validation

import (
	"testing"

	"github.com/rogerio-castellano/catalog-validator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, body string) models.Product {
	t.Helper()
	p, err := models.ParseProduct([]byte(body))
	require.NoError(t, err)
	return p
}

func types(vs []models.Violation) []models.ErrorType {
	out := make([]models.ErrorType, len(vs))
	for i, v := range vs {
		out[i] = v.Type
	}
	return out
}

func TestValidate_ValidProduct(t *testing.T) {
	p := parse(t, `{"id":1,"title":"Widget","price":9.99,"rating":{"rate":4.2,"count":10}}`)

	assert.Empty(t, Validate(p))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []models.ErrorType
	}{
		{
			name:     "Missing fields",
			body:     `{"id":7}`,
			expected: []models.ErrorType{models.EmptyTitle, models.InvalidPrice, models.InvalidRating},
		},
		{
			name:     "Rate at upper bound",
			body:     `{"id":1,"title":"A","price":1,"rating":{"rate":5}}`,
			expected: []models.ErrorType{},
		},
		{
			name:     "Rate above upper bound",
			body:     `{"id":1,"title":"A","price":1,"rating":{"rate":5.01}}`,
			expected: []models.ErrorType{models.InvalidRating},
		},
		{
			name:     "Negative rate passes",
			body:     `{"id":1,"title":"A","price":1,"rating":{"rate":-3}}`,
			expected: []models.ErrorType{},
		},
		{
			name:     "Zero price",
			body:     `{"id":1,"title":"A","price":0,"rating":{"rate":1}}`,
			expected: []models.ErrorType{},
		},
		{
			name:     "Negative price",
			body:     `{"id":1,"title":"A","price":-0.01,"rating":{"rate":1}}`,
			expected: []models.ErrorType{models.InvalidPrice},
		},
		{
			name:     "Price as string",
			body:     `{"id":1,"title":"A","price":"9.99","rating":{"rate":1}}`,
			expected: []models.ErrorType{models.InvalidPrice},
		},
		{
			name:     "Price as bool",
			body:     `{"id":1,"title":"A","price":true,"rating":{"rate":1}}`,
			expected: []models.ErrorType{models.InvalidPrice},
		},
		{
			name:     "Blank title",
			body:     `{"id":1,"title":"  \t ","price":1,"rating":{"rate":1}}`,
			expected: []models.ErrorType{models.EmptyTitle},
		},
		{
			name:     "Numeric title",
			body:     `{"id":1,"title":42,"price":1,"rating":{"rate":1}}`,
			expected: []models.ErrorType{models.EmptyTitle},
		},
		{
			name:     "Rating is a list",
			body:     `{"id":1,"title":"A","price":1,"rating":[5]}`,
			expected: []models.ErrorType{models.InvalidRatingStructure},
		},
		{
			name:     "Rating is null",
			body:     `{"id":1,"title":"A","price":1,"rating":null}`,
			expected: []models.ErrorType{models.InvalidRatingStructure},
		},
		{
			name:     "Rate is a string",
			body:     `{"id":1,"title":"A","price":1,"rating":{"rate":"4"}}`,
			expected: []models.ErrorType{models.InvalidRating},
		},
		{
			name:     "Tiny price beyond exponent range",
			body:     `{"id":1,"title":"A","price":1e-99999999999,"rating":{"rate":1}}`,
			expected: []models.ErrorType{},
		},
		{
			name:     "Tiny negative price beyond exponent range",
			body:     `{"id":1,"title":"A","price":-1e-99999999999,"rating":{"rate":1}}`,
			expected: []models.ErrorType{models.InvalidPrice},
		},
		{
			name:     "Huge rate beyond exponent range",
			body:     `{"id":1,"title":"A","price":1,"rating":{"rate":1E+99999999999}}`,
			expected: []models.ErrorType{models.InvalidRating},
		},
		{
			name:     "Rate written with exponent",
			body:     `{"id":1,"title":"A","price":1,"rating":{"rate":0.5e1}}`,
			expected: []models.ErrorType{},
		},
		{
			name:     "Everything wrong",
			body:     `{"id":2,"title":"","price":-1,"rating":"good"}`,
			expected: []models.ErrorType{models.EmptyTitle, models.InvalidPrice, models.InvalidRatingStructure},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(parse(t, tt.body))
			assert.Equal(t, tt.expected, types(got))
		})
	}
}

func TestValidate_Details(t *testing.T) {
	p := parse(t, `{"title":"","price":"cheap","rating":{"rate":7}}`)

	got := Validate(p)
	require.Len(t, got, 3)

	for _, v := range got {
		assert.Equal(t, models.UnknownID, v.ProductID.String())
	}
	assert.Equal(t, "Title is empty or not a string: ", got[0].Details)
	assert.Equal(t, "Price must be a non-negative number: cheap", got[1].Details)
	assert.Equal(t, "Rating must be less than or equal to 5: 7", got[2].Details)
}

func TestValidate_RatingStructureDetails(t *testing.T) {
	got := Validate(parse(t, `{"id":4,"title":"A","price":1,"rating":[1,2]}`))
	require.Len(t, got, 1)

	assert.Equal(t, models.InvalidRatingStructure, got[0].Type)
	assert.Equal(t, "Rating is not a dictionary: [1,2]", got[0].Details)
}

func TestValidate_MissingValueDetails(t *testing.T) {
	got := Validate(parse(t, `{"id":7}`))
	require.Len(t, got, 3)

	assert.Equal(t, "Price must be a non-negative number: <missing>", got[1].Details)
	assert.Equal(t, "Rating must be less than or equal to 5: <missing>", got[2].Details)
}

func TestValidate_Idempotent(t *testing.T) {
	p := parse(t, `{"id":"abc","title":1,"price":-2,"rating":{"rate":9}}`)

	assert.Equal(t, Validate(p), Validate(p))
}

func TestValidateAll_KeepsFetchOrder(t *testing.T) {
	products := []models.Product{
		parse(t, `{"id":3,"title":"","price":-1,"rating":{"rate":1}}`),
		parse(t, `{"id":4,"title":"ok","price":1,"rating":{"rate":1}}`),
		parse(t, `{"id":5,"title":"ok","price":1,"rating":{"rate":6}}`),
	}

	got := ValidateAll(products)
	require.Len(t, got, 3)
	assert.Equal(t, "3", got[0].ProductID.String())
	assert.Equal(t, models.EmptyTitle, got[0].Type)
	assert.Equal(t, models.InvalidPrice, got[1].Type)
	assert.Equal(t, "5", got[2].ProductID.String())
}
