// Package phone validates and normalizes client phone numbers. Stored
// numbers are E.164; local formats ("0300...") are accepted on input and
// normalized against the configured default region.
package phone

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when a number has no international prefix and the
// caller supplies no region.
const DefaultRegion = "PK"

// ValidationResult contains the result of phone number validation.
type ValidationResult struct {
	IsValid             bool   `json:"is_valid"`
	E164Format          string `json:"e164_format"`
	InternationalFormat string `json:"international_format"`
	NationalFormat      string `json:"national_format"`
	CountryCode         string `json:"country_code"`
	IsMobile            bool   `json:"is_mobile"`
}

// Validate parses a phone number and returns detailed information.
func Validate(number, region string) (*ValidationResult, error) {
	if number == "" {
		return nil, fmt.Errorf("phone number cannot be empty")
	}
	if region == "" {
		region = DefaultRegion
	}

	parsed, err := phonenumbers.Parse(number, region)
	if err != nil {
		return nil, fmt.Errorf("failed to parse phone number: %w", err)
	}

	numberType := phonenumbers.GetNumberType(parsed)

	return &ValidationResult{
		IsValid:             phonenumbers.IsValidNumber(parsed),
		E164Format:          phonenumbers.Format(parsed, phonenumbers.E164),
		InternationalFormat: phonenumbers.Format(parsed, phonenumbers.INTERNATIONAL),
		NationalFormat:      phonenumbers.Format(parsed, phonenumbers.NATIONAL),
		CountryCode:         phonenumbers.GetRegionCodeForNumber(parsed),
		IsMobile:            numberType == phonenumbers.MOBILE || numberType == phonenumbers.FIXED_LINE_OR_MOBILE,
	}, nil
}

// Normalize converts a phone number to E.164 format, failing on numbers that
// do not parse as valid for their region.
func Normalize(number, region string) (string, error) {
	if number == "" {
		return "", fmt.Errorf("phone number cannot be empty")
	}
	if region == "" {
		region = DefaultRegion
	}

	parsed, err := phonenumbers.Parse(number, region)
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number: %w", err)
	}

	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("invalid phone number")
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

// NormalizeLoose normalizes to E.164 when possible and returns the input
// unchanged when it does not parse. Client records keep whatever the agent
// typed rather than rejecting the whole request over a phone field.
func NormalizeLoose(number, region string) string {
	if number == "" {
		return ""
	}
	if normalized, err := Normalize(number, region); err == nil {
		return normalized
	}
	return number
}
