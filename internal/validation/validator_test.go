// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

type titleRequest struct {
	Title string `query:"title" validate:"required,notblank,max=20"`
	Count int    `json:"count" validate:"omitempty,min=1,max=50"`
	Mode  string `validate:"omitempty,oneof=positional selected"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     titleRequest
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name:  "valid",
			input: titleRequest{Title: "Avatar", Count: 5, Mode: "selected"},
		},
		{
			name:  "valid with unicode title",
			input: titleRequest{Title: "Amélie"},
		},
		{
			name:      "missing title",
			input:     titleRequest{},
			wantField: "title",
			wantTag:   "required",
			wantMsg:   "title is required",
		},
		{
			name:      "blank title",
			input:     titleRequest{Title: "   "},
			wantField: "title",
			wantTag:   "notblank",
			wantMsg:   "title must not be blank",
		},
		{
			name:      "title too long",
			input:     titleRequest{Title: strings.Repeat("x", 21)},
			wantField: "title",
			wantTag:   "max",
			wantMsg:   "title must be at most 20 characters",
		},
		{
			name:      "count out of range uses json name",
			input:     titleRequest{Title: "Avatar", Count: 51},
			wantField: "count",
			wantTag:   "max",
			wantMsg:   "count must be at most 50",
		},
		{
			name:      "bad oneof falls back to Go name",
			input:     titleRequest{Title: "Avatar", Mode: "none"},
			wantField: "Mode",
			wantTag:   "oneof",
			wantMsg:   "Mode must be one of: positional selected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.input)
			if tt.wantTag == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}

			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	verr := ValidateStruct(&titleRequest{})
	if verr == nil {
		t.Fatal("expected validation error")
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message != "title is required" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "title" {
		t.Errorf("Details[field] = %v, want title", apiErr.Details["field"])
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	verr := ValidateStruct(&titleRequest{Count: 99, Mode: "bogus"})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if len(verr.Errors()) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(verr.Errors()), verr)
	}

	apiErr := verr.ToAPIError()
	for _, want := range []string{"title:", "count:", "Mode:"} {
		if !strings.Contains(apiErr.Message, want) {
			t.Errorf("Message %q missing %q", apiErr.Message, want)
		}
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 3 {
		t.Errorf("Details[fields] = %v", apiErr.Details["fields"])
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	verr := &RequestValidationError{}
	if verr.Error() != "validation failed" {
		t.Errorf("Error() = %q", verr.Error())
	}
	if got := verr.ToAPIError(); got.Code != "VALIDATION_ERROR" || got.Message != "Validation failed" {
		t.Errorf("ToAPIError() = %+v", got)
	}
}
