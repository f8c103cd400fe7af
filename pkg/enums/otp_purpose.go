package enums

import "fmt"

// OTPPurpose represents the flow an email verification code belongs to.
type OTPPurpose string

const (
	OTPPurposeRegister OTPPurpose = "register"
)

var validOTPPurposes = []OTPPurpose{
	OTPPurposeRegister,
}

// String implements fmt.Stringer.
func (o OTPPurpose) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OTPPurpose.
func (o OTPPurpose) IsValid() bool {
	for _, candidate := range validOTPPurposes {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOTPPurpose converts raw input into an OTPPurpose.
func ParseOTPPurpose(value string) (OTPPurpose, error) {
	for _, candidate := range validOTPPurposes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid otp purpose %q", value)
}
