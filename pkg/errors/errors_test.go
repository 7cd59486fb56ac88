package errors

import (
	"errors"
	"testing"
)

func TestVerifyErrorMessage(t *testing.T) {
	t.Run("includes field when present", func(t *testing.T) {
		err := Field(CodeMalformedField, "address", "bad length")
		want := `MALFORMED_FIELD: bad length (field "address")`
		if err.Error() != want {
			t.Fatalf("got %q, want %q", err.Error(), want)
		}
	})

	t.Run("omits field when absent", func(t *testing.T) {
		err := New(CodePagination, "must not paginate")
		want := "PAGINATION_NOT_SUPPORTED: must not paginate"
		if err.Error() != want {
			t.Fatalf("got %q, want %q", err.Error(), want)
		}
	})
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("decode failed")
	err := Wrap(CodeMalformedField, "pub_key.value", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected Wrap to preserve the cause for errors.Is")
	}
	if err.Cause != cause {
		t.Fatal("expected Cause field to be set")
	}
}

func TestAs(t *testing.T) {
	t.Run("matches a VerifyError", func(t *testing.T) {
		var err error = New(CodeHeightMismatch, "height mismatch")
		ve, ok := As(err)
		if !ok {
			t.Fatal("expected As to match")
		}
		if ve.Code != CodeHeightMismatch {
			t.Fatalf("got code %s", ve.Code)
		}
	})

	t.Run("rejects an unrelated error", func(t *testing.T) {
		if _, ok := As(errors.New("plain error")); ok {
			t.Fatal("expected As to reject a non-VerifyError")
		}
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		ve := New(CodeCountMismatch, "count mismatch")
		wrapped := errors.Join(ve)
		if _, ok := As(wrapped); !ok {
			t.Fatal("expected As to unwrap a joined error")
		}
	})
}
