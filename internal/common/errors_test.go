package common

import (
	"errors"
	"strings"
	"testing"
)

func TestAppError(t *testing.T) {
	err := NewAppError("JOB_NOT_FOUND", "abc", ErrNotFound)
	if !errors.Is(err, ErrNotFound) {
		t.Error("AppError does not unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "JOB_NOT_FOUND") {
		t.Errorf("Error() = %q", err.Error())
	}

	bare := NewAppError("CONFIG_ERROR", "bad value", nil)
	if bare.Error() != "CONFIG_ERROR: bad value" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should be nil")
	}
	wrapped := WrapError(ErrDatabase, "saving job")
	if !errors.Is(wrapped, ErrDatabase) {
		t.Error("wrapped error lost its cause")
	}
}

func TestValidator(t *testing.T) {
	err := NewValidator().
		Field("file", "", Required).
		Field("id", "not-a-uuid", UUID).
		Error()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	if !strings.Contains(msg, "file") || !strings.Contains(msg, "id") {
		t.Errorf("combined message missing fields: %q", msg)
	}

	ok := NewValidator().
		Field("file", "/ocr/zreport.txt", Required).
		Field("id", "3f0c2f5e-9f1a-4c8e-8b6d-2f6a1f1c9d00", UUID).
		Error()
	if ok != nil {
		t.Errorf("unexpected validation error: %v", ok)
	}
}
