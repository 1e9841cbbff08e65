package application

import (
	"errors"
	"fmt"
	"strings"

	"f2yaml/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		// Format field name with spaces for error message (e.g., "srCode" -> "standup code")
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"link":     "link",
		"taskLink": "task link",
		"srCode":   "standup code",
		"srFile":   "standup file",
		"file":     "file",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	// Fallback: just return the field name as-is
	return fieldName
}

// ValidateLink checks that value is a parsable link.
// Returns a ValidationError wrapping the syntax error otherwise.
func ValidateLink(fieldName, value string, opts Options) error {
	if err := ValidateRequired(fieldName, value); err != nil {
		return err
	}
	if _, err := domain.ParseLink(value, opts.linkOptions()); err != nil {
		var syntaxErr *domain.LinkSyntaxError
		if errors.As(err, &syntaxErr) {
			return &ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("%s %s", syntaxErr.Reason, syntaxErr.Link),
			}
		}
		return err
	}
	return nil
}
