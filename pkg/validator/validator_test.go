package validator

import (
	"strings"
	"testing"
)

func TestValidateStruct(t *testing.T) {
	type request struct {
		CategoryID string `json:"category_id" validate:"required"`
		Points     int    `json:"points" validate:"gt=0"`
		Role       string `json:"role" validate:"omitempty,role"`
		Decision   string `json:"decision" validate:"omitempty,decision"`
	}

	tests := []struct {
		name    string
		input   request
		wantErr string
	}{
		{
			name:  "valid struct",
			input: request{CategoryID: "c1", Points: 3, Role: "tally_master", Decision: "APPROVED"},
		},
		{
			name:    "missing required field",
			input:   request{Points: 3},
			wantErr: "category_id is required",
		},
		{
			name:    "non-positive points",
			input:   request{CategoryID: "c1", Points: -1},
			wantErr: "points must be greater than 0",
		},
		{
			name:    "unknown role",
			input:   request{CategoryID: "c1", Points: 1, Role: "SUPERUSER"},
			wantErr: "role must be one of",
		},
		{
			name:    "unknown decision",
			input:   request{CategoryID: "c1", Points: 1, Decision: "MAYBE"},
			wantErr: "decision must be APPROVED or REJECTED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidateStructJoinsFailures(t *testing.T) {
	type request struct {
		A string `json:"a" validate:"required"`
		B string `json:"b" validate:"required"`
	}

	err := ValidateStruct(request{})
	if err == nil {
		t.Fatal("Expected error")
	}
	if err.Error() != "a is required; b is required" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  late\x00 entry \n"); got != "late entry" {
		t.Errorf("Expected %q, got %q", "late entry", got)
	}
}
