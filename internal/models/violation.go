package models

// ErrorType names the rule a violation came from.
type ErrorType int

const (
	EmptyTitle ErrorType = iota + 1
	InvalidPrice
	InvalidRatingStructure
	InvalidRating
)

func (t ErrorType) String() string {
	switch t {
	case EmptyTitle:
		return "Empty Title"
	case InvalidPrice:
		return "Invalid Price"
	case InvalidRatingStructure:
		return "Invalid Rating Structure"
	case InvalidRating:
		return "Invalid Rating"
	default:
		return "Unknown"
	}
}

// Violation is a single rule failure for one product.
type Violation struct {
	ProductID ProductID
	Type      ErrorType
	Details   string
}
