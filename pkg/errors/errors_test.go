package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsCodeThroughWrapping(t *testing.T) {
	base := Validation("text is empty")
	wrapped := fmt.Errorf("ingest: %w", base)

	if !IsCode(wrapped, CodeInvalid) {
		t.Fatal("expected wrapped validation error to keep its code")
	}
	if IsCode(wrapped, CodeInternal) {
		t.Fatal("validation error must not report internal code")
	}
	if CodeOf(errors.New("plain")) != CodeUnknown {
		t.Fatal("plain errors map to unknown")
	}
}

func TestStoreKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Store(cause, "commit ingest failed")

	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable via errors.Is")
	}
	if err.Error() != "internal: commit ingest failed: disk full" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if CodeOf(err) != CodeInternal {
		t.Fatalf("expected internal, got %s", CodeOf(err))
	}
}

func TestWithMetaAccumulates(t *testing.T) {
	err := Validation("empty text").WithMeta("org_id", "acme").WithMeta("field", "text")

	if err.Meta["org_id"] != "acme" || err.Meta["field"] != "text" {
		t.Fatalf("unexpected meta %v", err.Meta)
	}
	if err.Error() != "invalid: empty text" {
		t.Fatalf("meta must not change the message, got %q", err.Error())
	}
}
