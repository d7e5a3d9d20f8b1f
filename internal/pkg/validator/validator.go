package validator

// Validator validates structs using declarative rules (struct tags).
type Validator interface {
	// Validate checks data and returns an error describing the violations, if any.
	Validate(data any) error
}
