package gett

import (
	"fmt"
	"strings"
	"testing"
)

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Param: "email", Reason: "must be an email address"}
	if !strings.Contains(err.Error(), "email") {
		t.Errorf("expected message to name the parameter, got '%s'", err.Error())
	}
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{Op: "get share", Status: 404}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("expected message to contain the status, got '%s'", err.Error())
	}
	if !strings.Contains(err.Error(), "get share") {
		t.Errorf("expected message to contain the operation, got '%s'", err.Error())
	}
}

func TestIsNotOK(t *testing.T) {
	if !IsNotOK(&StatusError{Op: "x", Status: 500}) {
		t.Error("expected StatusError to be a service rejection")
	}
	if !IsNotOK(fmt.Errorf("wrapped: %w", &StatusError{Op: "x", Status: 500})) {
		t.Error("expected wrapped StatusError to be a service rejection")
	}
	if IsNotOK(&ValidationError{Param: "p"}) {
		t.Error("expected ValidationError to not be a service rejection")
	}
	if IsNotOK(nil) {
		t.Error("expected nil to not be a service rejection")
	}
}
