package model

import (
	"strings"
)

// Field error messages shared by entity validation
const (
	MsgBlank          = "can't be blank"
	MsgInvalid        = "is invalid"
	MsgTaken          = "has already been taken"
	MsgConfirmation   = "doesn't match Password"
	MsgMaxGteMin      = "must be greater than or equal to min participants"
	MsgTooShortFormat = "is too short (minimum is %s characters)"
	MsgTooLongFormat  = "is too long (maximum is %s characters)"
	MsgGreaterFormat  = "must be greater than %s"
)

// FieldError is a single rule violation on a named field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FullMessage renders the error the way it is shown to users,
// e.g. "Password confirmation doesn't match Password"
func (e FieldError) FullMessage() string {
	return HumanizeField(e.Field) + " " + e.Message
}

// ValidationError collects field errors that prevent an entity from being persisted
type ValidationError struct {
	Fields []FieldError
}

// Error implements error
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.FullMessage())
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}

// Add records a violation
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Has reports whether the field already has at least one error
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// For returns the messages recorded against a field
func (e *ValidationError) For(field string) []string {
	var msgs []string
	for _, f := range e.Fields {
		if f.Field == field {
			msgs = append(msgs, f.Message)
		}
	}
	return msgs
}

// Empty reports whether no violations were recorded
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// ErrOrNil returns the error if it has violations, nil otherwise
func (e *ValidationError) ErrOrNil() error {
	if e == nil || e.Empty() {
		return nil
	}
	return e
}

// FullMessages returns all errors as user-facing sentences
func (e *ValidationError) FullMessages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.FullMessage())
	}
	return msgs
}

// NewFieldError creates a ValidationError with a single violation
func NewFieldError(field, message string) *ValidationError {
	ve := &ValidationError{}
	ve.Add(field, message)
	return ve
}

// HumanizeField turns a snake_case field name into a label, e.g.
// "password_confirmation" -> "Password confirmation"
func HumanizeField(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
