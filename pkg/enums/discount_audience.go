package enums

import "fmt"

// DiscountAudience selects which high-value discount table applies.
type DiscountAudience string

const (
	DiscountAudienceB2C DiscountAudience = "b2c"
	DiscountAudienceB2B DiscountAudience = "b2b"
)

var validDiscountAudiences = []DiscountAudience{
	DiscountAudienceB2C,
	DiscountAudienceB2B,
}

// String implements fmt.Stringer.
func (d DiscountAudience) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DiscountAudience.
func (d DiscountAudience) IsValid() bool {
	for _, candidate := range validDiscountAudiences {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDiscountAudience converts raw input into a DiscountAudience.
func ParseDiscountAudience(value string) (DiscountAudience, error) {
	for _, candidate := range validDiscountAudiences {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid discount audience %q", value)
}
