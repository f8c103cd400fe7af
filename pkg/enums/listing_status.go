package enums

import "fmt"

// ListingStatus tracks the lifecycle of an available-pig listing.
type ListingStatus string

const (
	ListingStatusAvailable ListingStatus = "available"
	ListingStatusReserved  ListingStatus = "reserved"
	ListingStatusSold      ListingStatus = "sold"
	ListingStatusRemoved   ListingStatus = "removed"
)

var validListingStatuses = []ListingStatus{
	ListingStatusAvailable,
	ListingStatusReserved,
	ListingStatusSold,
	ListingStatusRemoved,
}

// ActiveListingStatuses lists the statuses that block a second listing for
// the same pig.
func ActiveListingStatuses() []ListingStatus {
	return []ListingStatus{ListingStatusAvailable, ListingStatusReserved}
}

// String implements fmt.Stringer.
func (l ListingStatus) String() string {
	return string(l)
}

// IsValid reports whether the value is a known ListingStatus.
func (l ListingStatus) IsValid() bool {
	for _, candidate := range validListingStatuses {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseListingStatus converts raw input into a ListingStatus.
func ParseListingStatus(value string) (ListingStatus, error) {
	for _, candidate := range validListingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid listing status %q", value)
}
