package enums

import "fmt"

// ListingSaleType represents how a listed pig is meant to be sold.
type ListingSaleType string

const (
	ListingSaleTypeMarket ListingSaleType = "market"
	ListingSaleTypeLechon ListingSaleType = "lechon"
)

var validListingSaleTypes = []ListingSaleType{
	ListingSaleTypeMarket,
	ListingSaleTypeLechon,
}

// String implements fmt.Stringer.
func (l ListingSaleType) String() string {
	return string(l)
}

// IsValid reports whether the value is a known ListingSaleType.
func (l ListingSaleType) IsValid() bool {
	for _, candidate := range validListingSaleTypes {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseListingSaleType converts raw input into a ListingSaleType.
func ParseListingSaleType(value string) (ListingSaleType, error) {
	for _, candidate := range validListingSaleTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid listing sale type %q", value)
}
