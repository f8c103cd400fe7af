package enums

import "fmt"

// ReportType represents a generated farm report category.
type ReportType string

const (
	ReportTypeSales           ReportType = "sales"
	ReportTypeMortality       ReportType = "mortality"
	ReportTypeFeedConsumption ReportType = "feed_consumption"
	ReportTypeInventory       ReportType = "inventory"
)

var validReportTypes = []ReportType{
	ReportTypeSales,
	ReportTypeMortality,
	ReportTypeFeedConsumption,
	ReportTypeInventory,
}

// String implements fmt.Stringer.
func (r ReportType) String() string {
	return string(r)
}

// IsValid reports whether the value is a known ReportType.
func (r ReportType) IsValid() bool {
	for _, candidate := range validReportTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseReportType converts raw input into a ReportType.
func ParseReportType(value string) (ReportType, error) {
	for _, candidate := range validReportTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report type %q", value)
}
