package catalog

import "fmt"

// Kind classifies why a catalog fetch failed.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindStatus
	KindDecode
	KindNotList
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindNotList:
		return "not_list"
	default:
		return "unknown"
	}
}

// FetchError is a terminal catalog fetch failure.
type FetchError struct {
	Kind       Kind
	StatusCode int   // set for KindStatus
	Err        error // underlying cause, nil for KindStatus and KindNotList
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("received status code %d", e.StatusCode)
	case KindNotList:
		return "response is not a list of products"
	case KindDecode:
		return fmt.Sprintf("invalid JSON: %v", e.Err)
	default:
		return fmt.Sprintf("request failed: %v", e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
