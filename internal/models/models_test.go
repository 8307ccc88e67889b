package models

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldOf_Kinds(t *testing.T) {
	tests := []struct {
		raw  string
		kind FieldKind
	}{
		{``, Absent},
		{`null`, Null},
		{`"x"`, String},
		{`12.5`, Number},
		{`-1e3`, Number},
		{`true`, Bool},
		{`false`, Bool},
		{` {"a":1}`, Object},
		{`[1,2]`, Array},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.kind, FieldOf([]byte(tt.raw)).Kind())
		})
	}
}

func TestField_Num(t *testing.T) {
	n, ok := FieldOf([]byte(`-1e3`)).Num()
	require.True(t, ok)
	assert.Equal(t, "-1000", n.String())

	_, ok = FieldOf([]byte(`"5"`)).Num()
	assert.False(t, ok)

	_, ok = Field{}.Num()
	assert.False(t, ok)
}

func TestField_Num_ExtremeExponents(t *testing.T) {
	tests := []struct {
		raw  string
		sign int
		cmp5 int
	}{
		{`1e-99999999999`, 1, -1},
		{`-1e-99999999999`, -1, -1},
		{`2.5E+99999999999999999999`, 1, 1},
		{`-7e2147483648`, -1, -1},
		{`0e99999999999`, 0, -1},
		{`50e-1`, 1, 0},
	}
	five := decimal.NewFromInt(5)
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			n, ok := FieldOf([]byte(tt.raw)).Num()
			require.True(t, ok)
			assert.Equal(t, tt.sign, n.Sign())
			assert.Equal(t, tt.cmp5, n.Cmp(five))
		})
	}
}

func TestField_String(t *testing.T) {
	assert.Equal(t, "<missing>", Field{}.String())
	assert.Equal(t, "null", FieldOf([]byte(`null`)).String())
	assert.Equal(t, "hello", FieldOf([]byte(`"hello"`)).String())
	assert.Equal(t, `{"rate":4}`, FieldOf([]byte(`{ "rate": 4 }`)).String())
}

func TestParseProduct_RejectsNonObject(t *testing.T) {
	for _, body := range []string{`[]`, `1`, `null`, `"p"`} {
		_, err := ParseProduct([]byte(body))
		assert.ErrorIs(t, err, ErrNotObject, body)
	}
}

func TestProductID(t *testing.T) {
	missing, err := ParseProduct([]byte(`{"title":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, UnknownID, missing.ID().String())

	num, _ := ParseProduct([]byte(`{"id":3}`))
	str, _ := ParseProduct([]byte(`{"id":"3"}`))
	assert.Equal(t, "3", num.ID().String())
	assert.Equal(t, "3", str.ID().String())
	assert.NotEqual(t, num.ID(), str.ID())
}

func TestProductFromValues(t *testing.T) {
	p, err := ProductFromValues(map[string]any{
		"id":     1,
		"title":  "Bag",
		"price":  nil,
		"rating": map[string]any{"rate": 3.9},
	})
	require.NoError(t, err)

	assert.False(t, p.Get("price").Present())
	assert.Equal(t, Object, p.Get("rating").Kind())
	assert.Equal(t, "1", p.ID().String())
}

func TestRunResult_Grouped(t *testing.T) {
	three := NewProductID(FieldOf([]byte(`3`)))
	five := NewProductID(FieldOf([]byte(`5`)))

	r := NewRunResult(time.Now())
	r.Add(
		Violation{ProductID: three, Type: EmptyTitle, Details: "a"},
		Violation{ProductID: five, Type: InvalidPrice, Details: "b"},
		Violation{ProductID: three, Type: InvalidRating, Details: "c"},
	)

	want := []ProductViolations{
		{ProductID: three, Violations: []Violation{
			{ProductID: three, Type: EmptyTitle, Details: "a"},
			{ProductID: three, Type: InvalidRating, Details: "c"},
		}},
		{ProductID: five, Violations: []Violation{
			{ProductID: five, Type: InvalidPrice, Details: "b"},
		}},
	}

	if diff := cmp.Diff(want, r.Grouped(), cmp.AllowUnexported(ProductID{})); diff != "" {
		t.Errorf("Grouped() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, map[ErrorType]int{EmptyTitle: 1, InvalidPrice: 1, InvalidRating: 1}, r.CountByType())
	assert.False(t, r.Passed())
}
