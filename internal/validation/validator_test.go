// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package validation

import (
	"strings"
	"sync"
	"testing"
)

type handshakeRequest struct {
	UserID   int64  `json:"userId" validate:"required,gt=0"`
	Username string `json:"username" validate:"required,max=64"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,task_status"`
}

type listRequest struct {
	Status string `json:"status,omitempty" validate:"omitempty,task_status"`
	Limit  int    `validate:"min=1,max=500"`
}

func TestGetValidator_Singleton(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]interface{}, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = GetValidator()
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatal("GetValidator() returned different instances")
		}
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name string
		req  interface{}
	}{
		{"handshake", &handshakeRequest{UserID: 1, Username: "alice"}},
		{"status", &statusRequest{Status: "in_progress"}},
		{"list without status", &listRequest{Limit: 50}},
		{"list with status", &listRequest{Status: "cancelled", Limit: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(tt.req); err != nil {
				t.Errorf("ValidateStruct() = %v, want nil", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		req       interface{}
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"missing userId", &handshakeRequest{Username: "alice"}, "userId", "required", "userId is required"},
		{"missing username", &handshakeRequest{UserID: 7}, "username", "required", "username is required"},
		{"negative userId", &handshakeRequest{UserID: -1, Username: "alice"}, "userId", "gt", "userId must be greater than 0"},
		{"unknown status", &statusRequest{Status: "archived"}, "status", "task_status", "status must be one of: pending, in_progress, completed, cancelled"},
		{"limit too large", &listRequest{Limit: 501}, "Limit", "max", "Limit must be at most 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(tt.req)
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

func TestToAPIError(t *testing.T) {
	verr := ValidateStruct(&handshakeRequest{})
	if verr == nil {
		t.Fatal("expected validation error")
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "userId is required") || !strings.Contains(apiErr.Message, "username is required") {
		t.Errorf("Message = %q, want both field errors", apiErr.Message)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("Details[fields] = %#v, want 2 entries", apiErr.Details["fields"])
	}
}

func TestToAPIError_Empty(t *testing.T) {
	apiErr := (&RequestValidationError{}).ToAPIError()
	if apiErr.Message != "Validation failed" {
		t.Errorf("Message = %q, want Validation failed", apiErr.Message)
	}
}
