package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New("T001", "link")
	if err.Code != "T001" {
		t.Errorf("Code = %q, want T001", err.Code)
	}
	if err.Category != CategoryToolbox {
		t.Errorf("Category = %q, want toolbox", err.Category)
	}
	if !strings.Contains(err.Message, `"link"`) {
		t.Errorf("Message = %q, want formatted key", err.Message)
	}
	if !strings.HasPrefix(err.Error(), "T001: ") {
		t.Errorf("Error() = %q, want code prefix", err.Error())
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("Z999")
	if err.Code != "Z999" || err.Message != "unknown error" {
		t.Errorf("New(Z999) = %+v", err)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := Wrap("C001", cause, "viewkit.yaml")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestIsMatchesByCode(t *testing.T) {
	a := New("C002", "one.yaml")
	b := New("C002", "two.yaml")
	if !stderrors.Is(a, b) {
		t.Error("same code did not match")
	}
	if stderrors.Is(a, New("C001", "x")) {
		t.Error("different code matched")
	}
}
