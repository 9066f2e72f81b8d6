// Package validator accumulates field-level validation errors. Validation is
// pure: inputs go in, a result comes out, no shared schema state.
package validator

import "regexp"

// Compiled patterns shared by the entity validators.
var (
	// NameRX matches a single capitalized name component.
	NameRX = regexp.MustCompile(`^[A-Za-z][a-z]+$`)
	// FullNameRX matches one or two capitalized name components.
	FullNameRX = regexp.MustCompile(`^[A-Za-z][a-z]+( [A-Za-z][a-z]+)?$`)
	// PhoneRX matches a 6-8 digit phone number.
	PhoneRX = regexp.MustCompile(`^\d{6,8}$`)
	// EmailRX matches the address shape the API has always accepted.
	EmailRX = regexp.MustCompile(`^\w[\w\-.]*\w@\w[\w-]*\.\w{2,4}$`)
)

// Validator collects field errors. An empty Validator is valid.
type Validator struct {
	Errors map[string]string
	order  []string
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid reports whether no field failed.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records the first failure for a field; later failures for the
// same field are ignored so the reported message is deterministic.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
		v.order = append(v.order, key)
	}
}

// Check adds an error for key when ok is false.
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// First returns the earliest recorded failure message, or "" when valid.
// The HTTP surface reports a single message per request.
func (v *Validator) First() string {
	if len(v.order) == 0 {
		return ""
	}
	return v.Errors[v.order[0]]
}

// ValidationError is the failure form of a Validator result.
type ValidationError struct {
	// First is the earliest failure message; the API reports one per request.
	First string
	// Fields maps each failing field to its message.
	Fields map[string]string
}

func (e *ValidationError) Error() string { return e.First }

// Err converts the accumulated result into an error, or nil when valid.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	fields := make(map[string]string, len(v.Errors))
	for key, msg := range v.Errors {
		fields[key] = msg
	}
	return &ValidationError{First: v.First(), Fields: fields}
}

// Matches reports whether value matches rx.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}
