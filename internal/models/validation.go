package models

// ValidationResult is the outcome of validating a record candidate.
// Errors is an ordered list of human-readable rule violations; callers
// display the messages and must not branch on their text.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors,omitempty"`
}

// Valid is the zero-violation result.
func Valid() ValidationResult {
	return ValidationResult{IsValid: true}
}

// Invalid builds a single-violation result.
func Invalid(msg string) ValidationResult {
	return ValidationResult{IsValid: false, Errors: []string{msg}}
}
