package enums

import "fmt"

// SowStatus tracks the reproductive state of a sow.
type SowStatus string

const (
	SowStatusPregnant    SowStatus = "pregnant"
	SowStatusNonpregnant SowStatus = "nonpregnant"
	SowStatusMiscarriage SowStatus = "miscarriage"
	SowStatusGaveBirth   SowStatus = "gave_birth"
	SowStatusNursing     SowStatus = "nursing"
)

var validSowStatuses = []SowStatus{
	SowStatusPregnant,
	SowStatusNonpregnant,
	SowStatusMiscarriage,
	SowStatusGaveBirth,
	SowStatusNursing,
}

// String implements fmt.Stringer.
func (s SowStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SowStatus.
func (s SowStatus) IsValid() bool {
	for _, candidate := range validSowStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSowStatus converts raw input into a SowStatus.
func ParseSowStatus(value string) (SowStatus, error) {
	for _, candidate := range validSowStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sow status %q", value)
}
