package application

import (
	"errors"
	"fmt"

	"f2yaml/internal/domain"
	"f2yaml/internal/yamldoc"
)

// Sentinel errors for common conditions
var (
	ErrNotValidLink      = domain.ErrNotValidLink
	ErrUnableToFindTask  = errors.New("unable to find task")
	ErrUnableToFindFile  = errors.New("unable to find file")
	ErrNotAProperTask    = errors.New("not a proper task")
	ErrFailedToParseYaml = yamldoc.ErrParse
	ErrNoActiveTask      = domain.ErrTimerStopped
	ErrNoStandupReport   = errors.New("run specify Standup report first")
	ErrNotATask          = errors.New("not a task")
	ErrNoEnclosingTask   = errors.New("no enclosing task")
	ErrTimerPaused       = domain.ErrTimerPaused
	ErrTimerRunning      = domain.ErrTimerRunning
)

// LinkSyntaxError is re-exported for adapters
type LinkSyntaxError = domain.LinkSyntaxError

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ResolutionError reports a link segment or file that could not be found.
// Kind is ErrUnableToFindTask or ErrUnableToFindFile.
type ResolutionError struct {
	Kind error
	Name string
}

func (e *ResolutionError) Error() string {
	if e.Kind == ErrUnableToFindFile {
		return fmt.Sprintf("Unable to find the file %s", e.Name)
	}
	return fmt.Sprintf("Unable to find: %s", e.Name)
}

func (e *ResolutionError) Is(target error) bool {
	return target == e.Kind
}

// StructuralError reports a node whose shape cannot hold what is asked of it
type StructuralError struct {
	Path   string
	Reason string
}

func (e *StructuralError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *StructuralError) Is(target error) bool {
	return target == ErrNotAProperTask
}

// ParseError wraps a YAML syntax error with the file it came from
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Failed to parse YAML %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrFailedToParseYaml
}

// NotATaskError reports a link that does not address a task
type NotATaskError struct {
	Link string
}

func (e *NotATaskError) Error() string {
	return fmt.Sprintf("%s is not a task", e.Link)
}

func (e *NotATaskError) Is(target error) bool {
	return target == ErrNotATask
}

func notProperTask(path string) error {
	return &StructuralError{
		Path:   path,
		Reason: "This is not a proper task as it does not have any items inside it",
	}
}
