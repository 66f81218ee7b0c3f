package plan

import "fmt"

// ErrorKind classifies why a step aborted the plan.
type ErrorKind string

const (
	ErrUnknownOperation    ErrorKind = "unknown_operation"
	ErrUnresolvedReference ErrorKind = "unresolved_reference"
	ErrSchemaViolation     ErrorKind = "schema_violation"
	ErrActionFailure       ErrorKind = "action_failure"
)

// StepError reports the failing step's ordinal and the underlying
// cause. The executor aborts the plan at the first StepError; steps
// already applied are not rolled back.
type StepError struct {
	Ordinal int
	Op      string
	Kind    ErrorKind
	Err     error
}

func (e *StepError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("step %d (%s): %s: %v", e.Ordinal, e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("step %d: %s: %v", e.Ordinal, e.Kind, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
