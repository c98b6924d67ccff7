package quote

import "fmt"

// ValidationError reports malformed or contradictory input. It aborts
// assembly before any output is produced.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// MissingRateError reports a billable unit that could not be priced. The
// assembler records it as a warning and keeps going.
type MissingRateError struct {
	RoomID      string
	SurfaceType SurfaceType
	Kind        LineKind
	Reason      string
}

func (e *MissingRateError) Error() string {
	if e.RoomID == "" {
		return fmt.Sprintf("no %s rate: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("no %s rate for %s in room %s: %s", e.Kind, e.SurfaceType, e.RoomID, e.Reason)
}

// DuplicateNameError is returned by a TemplateStore when another template in
// the same organization already uses the name.
type DuplicateNameError struct {
	OrganizationID string
	Name           string
	ExistingID     string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("template name %q already used by %s", e.Name, e.ExistingID)
}

// NotFoundError is returned when a template id does not exist in the
// organization.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func validationf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
