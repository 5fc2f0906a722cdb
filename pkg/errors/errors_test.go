package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidGender, "unknown gender: %s", "robot")

	if err.Code != ErrCodeInvalidGender {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidGender)
	}

	if err.Message != "unknown gender: robot" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown gender: robot")
	}

	expected := "INVALID_GENDER: unknown gender: robot"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeStorage, cause, "load tree")

	if err.Code != ErrCodeStorage {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStorage)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeMemberNotFound, "test"),
			code:     ErrCodeMemberNotFound,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeMemberNotFound, "test"),
			code:     ErrCodeStorage,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeStorage, New(ErrCodeInvalidFormat, "inner"), "outer"),
			code:     ErrCodeStorage,
			expected: true,
		},
		{
			name:     "inner code",
			err:      Wrap(ErrCodeStorage, New(ErrCodeInvalidFormat, "inner"), "outer"),
			code:     ErrCodeInvalidFormat,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("config.toml: %w", New(ErrCodeInvalidConfig, "bad")),
			code:     ErrCodeInvalidConfig,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := Wrap(ErrCodeInvalidRelation, errors.New("x"), "father must be male")
	if got := GetCode(err); got != ErrCodeInvalidRelation {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidRelation)
	}
	if got := UserMessage(err); got != "father must be male: x" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(New(ErrCodeDeclined, "cancelled")); got != "cancelled" {
		t.Errorf("UserMessage(no cause) = %q", got)
	}
	nested := Wrap(ErrCodeStorage, New(ErrCodeInvalidFormat, "not JSON"), "load tree")
	if got := UserMessage(nested); got != "load tree: not JSON" {
		t.Errorf("UserMessage(nested) = %q", got)
	}

	plain := errors.New("plain")
	if got := GetCode(plain); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
	if got := UserMessage(plain); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
