package result

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := New(CodeKeyNotFound, "container", "no value named total")
	msg := err.Error()
	if !strings.Contains(msg, "container") {
		t.Errorf("module missing from %q", msg)
	}
	if !strings.Contains(msg, "no value named total") {
		t.Errorf("detail missing from %q", msg)
	}
}

func TestCodeString(t *testing.T) {
	cases := map[Code]string{
		CodeKeyNotFound:           "KeyNotFound",
		CodeTypeMismatch:          "TypeMismatch",
		CodeValueOutOfRange:       "Overflow",
		CodeDeserializationFailed: "DeserializationFailed",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Errorf("Code(%d).String() = %q, want %q", code, got, want)
		}
	}
}

func TestIsCode(t *testing.T) {
	err := Newf(CodeTypeMismatch, "container", "wanted %s", "int")
	if !IsCode(err, CodeTypeMismatch) {
		t.Error("IsCode did not match direct error")
	}
	if IsCode(err, CodeKeyNotFound) {
		t.Error("IsCode matched wrong code")
	}

	wrapped := fmt.Errorf("loading fixture: %w", err)
	if !IsCode(wrapped, CodeTypeMismatch) {
		t.Error("IsCode did not match wrapped error")
	}

	if IsCode(errors.New("plain"), CodeTypeMismatch) {
		t.Error("IsCode matched a plain error")
	}
	if IsCode(nil, CodeTypeMismatch) {
		t.Error("IsCode matched nil")
	}
}

func TestErrorsIs(t *testing.T) {
	err := New(CodeEmptyKey, "container", "name is empty")
	target := &Error{Code: CodeEmptyKey}
	if !errors.Is(err, target) {
		t.Error("errors.Is did not match on code")
	}
}
