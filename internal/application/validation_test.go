package application

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantMsg string
	}{
		{"code given", "srCode", "2025-01-01", ""},
		{"code empty", "srCode", "", "standup code is required"},
		{"file blank", "srFile", "   ", "standup file is required"},
		{"task link blank", "taskLink", "\t", "task link is required"},
		{"unknown field", "owner", "", "owner is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.field, tt.value)
			if tt.wantMsg == "" {
				if err != nil {
					t.Errorf("unexpected error %v", err)
				}
				return
			}

			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if valErr.Field != tt.field || !strings.Contains(valErr.Message, tt.wantMsg) {
				t.Errorf("got %s: %q, want %s: %q", valErr.Field, valErr.Message, tt.field, tt.wantMsg)
			}
		})
	}
}

func TestValidateLink(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid link", "-->ProjectA//tasks.T-1<", false},
		{"empty", "", true},
		{"no delimiters", "ProjectA//tasks", true},
		{"unbalanced quotes", `-->A//b."x<`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLink("link", tt.value, Options{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateLink() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			}
		})
	}
}
