package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	pkgErrors "task-planner/pkg/errors"
)

func TestAsHTTPError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", pkgErrors.NewNotFoundError("task not found"))

	he, ok := pkgErrors.AsHTTPError(wrapped)
	if !ok {
		t.Fatal("expected the wrapped HTTPError to be found")
	}
	if he.StatusCode != http.StatusNotFound || he.Message != "task not found" {
		t.Errorf("unexpected error %+v", he)
	}

	if _, ok := pkgErrors.AsHTTPError(errors.New("plain")); ok {
		t.Error("plain errors are not HTTP errors")
	}
}
