package session

// ValidationError is a precondition failure caught before any network call:
// no file selected, no lead selected, empty refinement feedback.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// CapabilityError means a required remote capability (AI generation) is not
// available according to the last health probe. Checked client-side, before
// dispatch.
type CapabilityError struct {
	Message string
}

func (e *CapabilityError) Error() string { return e.Message }
