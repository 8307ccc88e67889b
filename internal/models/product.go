package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// UnknownID is shown for products that carry no id field.
const UnknownID = "Unknown ID"

// ErrNotObject is returned when a catalog entry is not a JSON object.
var ErrNotObject = errors.New("product is not a JSON object")

// Product is one untrusted catalog record. No key is guaranteed to be present
// or to have the expected type.
type Product struct {
	fields map[string]Field
}

// ParseProduct decodes a JSON object into a Product.
func ParseProduct(data []byte) (Product, error) {
	if FieldOf(data).Kind() != Object {
		return Product{}, ErrNotObject
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Product{}, fmt.Errorf("failed to decode product: %w", err)
	}

	p := Product{fields: make(map[string]Field, len(raw))}
	for k, v := range raw {
		p.fields[k] = FieldOf(v)
	}
	return p, nil
}

// ProductFromValues builds a Product from Go values, leaving out nil entries.
func ProductFromValues(values map[string]any) (Product, error) {
	clean := make(map[string]any, len(values))
	for k, v := range values {
		if v != nil {
			clean[k] = v
		}
	}
	data, err := json.Marshal(clean)
	if err != nil {
		return Product{}, fmt.Errorf("failed to encode product: %w", err)
	}
	return ParseProduct(data)
}

// Get returns the named field, or an absent Field.
func (p Product) Get(key string) Field {
	return p.fields[key]
}

func (p Product) ID() ProductID {
	return NewProductID(p.Get("id"))
}

// ProductID identifies the product a violation belongs to. Two ids are equal
// only when their JSON text is equal, so 3 and "3" are different products.
type ProductID struct {
	key     string
	display string
}

func NewProductID(f Field) ProductID {
	if !f.Present() {
		return ProductID{display: UnknownID}
	}
	return ProductID{key: string(f.Raw()), display: f.String()}
}

func (id ProductID) String() string {
	return id.display
}
